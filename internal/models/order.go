package models

type Meta struct {
	Href string `json:"href,omitempty"`
	Type string `json:"type,omitempty"`
}

type Agent struct {
	Meta  Meta   `json:"meta,omitempty"`
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type State struct {
	Meta Meta   `json:"meta,omitempty"`
	Name string `json:"name,omitempty"`
}

type ShipmentAddress struct {
	City      string `json:"city,omitempty"`
	Region    string `json:"region,omitempty"`
	Comment   string `json:"comment,omitempty"`
	Recipient string `json:"recipient,omitempty"`
}

// CustomerOrder is the subset of the MoySklad customerorder entity this
// service reads. Sum is in minor currency units.
type CustomerOrder struct {
	ID              string           `json:"id,omitempty"`
	Meta            Meta             `json:"meta"`
	Name            string           `json:"name,omitempty"`
	Number          string           `json:"number,omitempty"`
	Moment          string           `json:"moment,omitempty"`
	Sum             *int64           `json:"sum,omitempty"`
	Description     string           `json:"description,omitempty"`
	Agent           *Agent           `json:"agent,omitempty"`
	State           *State           `json:"state,omitempty"`
	ShipmentAddress *ShipmentAddress `json:"shipmentAddressFull,omitempty"`
}

// Entity is the generic shape of a referenced record fetched by href.
type Entity struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type OrderList struct {
	Rows []CustomerOrder `json:"rows"`
}
