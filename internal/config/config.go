package config

import (
	"time"

	"github.com/sourcecd/skladbot/internal/prjerrors"
)

type Config struct {
	ServerAddr         string        `env:"RUN_ADDRESS"`
	MoySkladToken      string        `env:"MS_TOKEN"`
	MoySkladBasicToken string        `env:"MS_BASIC_TOKEN"`
	TelegramBotToken   string        `env:"TG_BOT_TOKEN"`
	TelegramChatID     string        `env:"TG_CHAT_ID"`
	DatabaseDsn        string        `env:"DATABASE_URI"`
	CachePath          string        `env:"CACHE_PATH"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"`
}

// Credentials is the MoySklad auth mode, resolved once at startup and never
// re-evaluated per request.
type Credentials struct {
	scheme string
	token  string
}

func (c Credentials) Header() string {
	return c.scheme + " " + c.token
}

func NewCredentials(bearer, basic string) (Credentials, error) {
	switch {
	case bearer != "" && basic != "":
		return Credentials{}, prjerrors.ErrBothMoySkladCreds
	case bearer != "":
		return Credentials{scheme: "Bearer", token: bearer}, nil
	case basic != "":
		return Credentials{scheme: "Basic", token: basic}, nil
	}
	return Credentials{}, prjerrors.ErrNoMoySkladCreds
}

func (c *Config) Credentials() (Credentials, error) {
	return NewCredentials(c.MoySkladToken, c.MoySkladBasicToken)
}

func (c *Config) ValidateTelegram() error {
	if c.TelegramBotToken == "" {
		return prjerrors.ErrNoBotToken
	}
	if c.TelegramChatID == "" {
		return prjerrors.ErrNoChatID
	}
	return nil
}
