package models

// OrderNotification is built fresh from one fetched order and discarded after
// the message is sent. Optional fields stay nil until render time.
type OrderNotification struct {
	Number           string
	Moment           string
	CounterpartyName *string
	Sum              *int64
	StateName        *string
	Comment          *string
	Href             string
}
