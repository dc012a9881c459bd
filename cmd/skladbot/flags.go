package main

import (
	"flag"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/sourcecd/skladbot/internal/config"
)

func servFlags(config *config.Config) {
	flag.StringVar(&config.ServerAddr, "a", "localhost:8080", "Server bind address and port")
	flag.StringVar(&config.DatabaseDsn, "d", "", "Optional pg connect address for the order cache")
	flag.StringVar(&config.CachePath, "c", "/tmp/orders_cache.json", "Order cache file path")
	flag.DurationVar(&config.RequestTimeout, "t", 10*time.Second, "Outbound request timeout")
	flag.Parse()
}

func servEnv(config *config.Config) {
	if err := env.Parse(config); err != nil {
		log.Fatal(err)
	}
}
