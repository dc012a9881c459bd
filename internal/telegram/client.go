package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sourcecd/skladbot/internal/prjerrors"
)

const apiURL = "https://api.telegram.org"

// Sender posts a text message to the preconfigured chat.
type Sender interface {
	SendMessage(ctx context.Context, text string) error
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type Client struct {
	cl     *resty.Client
	path   string
	chatID string
}

func New(botToken, chatID string, timeout time.Duration) *Client {
	return &Client{
		cl:     resty.New().SetTimeout(timeout).SetBaseURL(apiURL),
		path:   fmt.Sprintf("/bot%s/sendMessage", botToken),
		chatID: chatID,
	}
}

func (c *Client) SendMessage(ctx context.Context, text string) error {
	resp, err := c.cl.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(sendMessageRequest{ChatID: c.chatID, Text: text}).
		Post(c.path)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: %d from telegram api", prjerrors.ErrUnexpectedStatus, resp.StatusCode())
	}
	return nil
}
