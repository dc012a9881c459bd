package models

type OrderSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state,omitempty"`
	Moment    string `json:"moment,omitempty"`
	Sum       *int64 `json:"sum,omitempty"`
	City      string `json:"city,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Link      string `json:"link"`
}

type CacheStats struct {
	NewOrders   int `json:"new_orders"`
	CdekOrders  int `json:"cdek_orders"`
	TotalOrders int `json:"total_orders"`
}

type OrderCache struct {
	UpdatedAt  string         `json:"updated_at"`
	TTLSeconds int            `json:"ttl_seconds"`
	Stats      CacheStats     `json:"stats"`
	Orders     []OrderSummary `json:"orders"`
}

// CacheEvent is what SSE subscribers receive on every cache update.
type CacheEvent struct {
	OrderCache
	Stale bool `json:"stale"`
}
