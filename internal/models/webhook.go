package models

type WebhookPayload struct {
	Events []WebhookEvent `json:"events"`
}

type WebhookEvent struct {
	Meta   EventMeta `json:"meta"`
	Action string    `json:"action,omitempty"`
}

type EventMeta struct {
	Type string `json:"type" valid:"required"`
	Href string `json:"href" valid:"required,url"`
}
