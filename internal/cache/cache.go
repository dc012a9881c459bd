package cache

import (
	"context"
	"strings"
	"time"

	"github.com/sourcecd/skladbot/internal/models"
)

const TTLSeconds = 300

// Store keeps the latest snapshot of recent customer orders for the
// dashboard. It is not part of the notification path.
type Store interface {
	Snapshot(ctx context.Context) (*models.OrderCache, error)
	Save(ctx context.Context, snap *models.OrderCache) error
	Upsert(ctx context.Context, order models.OrderSummary) (*models.OrderCache, error)
}

var newStateWords = []string{"нов", "принят", "оплачен", "обработ"}

func IsCdekState(state string) bool {
	return strings.Contains(strings.ToLower(state), "сдек")
}

func IsNewState(state string) bool {
	v := strings.ToLower(state)
	for _, word := range newStateWords {
		if strings.Contains(v, word) {
			return true
		}
	}
	return false
}

func StatsFor(orders []models.OrderSummary) models.CacheStats {
	stats := models.CacheStats{TotalOrders: len(orders)}
	for _, order := range orders {
		if IsCdekState(order.State) {
			stats.CdekOrders++
			continue
		}
		if IsNewState(order.State) {
			stats.NewOrders++
		}
	}
	return stats
}

func NewSnapshot(orders []models.OrderSummary) *models.OrderCache {
	return &models.OrderCache{
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		TTLSeconds: TTLSeconds,
		Stats:      StatsFor(orders),
		Orders:     orders,
	}
}

func Stale(snap *models.OrderCache) bool {
	if snap == nil || snap.UpdatedAt == "" {
		return true
	}
	updated, err := time.Parse(time.RFC3339, snap.UpdatedAt)
	if err != nil {
		return true
	}
	ttl := snap.TTLSeconds
	if ttl == 0 {
		ttl = TTLSeconds
	}
	return time.Since(updated) > time.Duration(ttl)*time.Second
}

// upsertOrders replaces a summary by order id or appends it.
func upsertOrders(orders []models.OrderSummary, order models.OrderSummary) []models.OrderSummary {
	for i := range orders {
		if order.ID != "" && orders[i].ID == order.ID {
			orders[i] = order
			return orders
		}
	}
	return append(orders, order)
}
