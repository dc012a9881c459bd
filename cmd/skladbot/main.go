package main

import (
	"context"

	"github.com/sourcecd/skladbot/internal/config"
	"github.com/sourcecd/skladbot/internal/server"
)

func main() {
	ctx := context.Background()

	var config config.Config

	servFlags(&config)
	servEnv(&config)

	server.Run(ctx, config)
}
