package prjerrors

import "errors"

var (
	ErrNoMoySkladCreds   = errors.New("neither MS_TOKEN nor MS_BASIC_TOKEN is set")
	ErrBothMoySkladCreds = errors.New("MS_TOKEN and MS_BASIC_TOKEN are mutually exclusive")
	ErrNoBotToken        = errors.New("TG_BOT_TOKEN is not set")
	ErrNoChatID          = errors.New("TG_CHAT_ID is not set")

	ErrReqJSONParse = errors.New("request json parse failed")
	ErrEmptyEvents  = errors.New("webhook payload contains no events")
	ErrBadEventMeta = errors.New("event meta.href is missing or not a url")

	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrEmptyCache       = errors.New("order cache is empty")
)
