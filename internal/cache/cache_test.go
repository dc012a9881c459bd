package cache

import (
	"testing"
	"time"

	"github.com/sourcecd/skladbot/internal/models"
	"github.com/stretchr/testify/require"
)

func TestIsCdekState(t *testing.T) {
	// MoySklad state texts spell it "СДЕК", not "СДЭК"
	require.True(t, IsCdekState("Отправлен СДЕК"))
	require.True(t, IsCdekState("ОТПРАВЛЕНО СДЕК"))
	require.False(t, IsCdekState("Отправлен СДЭК"))
	require.False(t, IsCdekState("Новый"))
}

func TestStatsFor(t *testing.T) {
	orders := []models.OrderSummary{
		{ID: "o1", State: "Новый"},
		{ID: "o2", State: "Отправлен СДЕК"},
		{ID: "o3", State: "Завершен"},
		{ID: "o4", State: "Оплачен"},
	}

	stats := StatsFor(orders)

	require.Equal(t, 4, stats.TotalOrders)
	require.Equal(t, 2, stats.NewOrders)
	require.Equal(t, 1, stats.CdekOrders)
}

func TestStale(t *testing.T) {
	require.True(t, Stale(nil))
	require.True(t, Stale(&models.OrderCache{}))
	require.True(t, Stale(&models.OrderCache{UpdatedAt: "not-a-timestamp"}))

	fresh := NewSnapshot(nil)
	require.False(t, Stale(fresh))

	old := &models.OrderCache{
		UpdatedAt:  time.Now().UTC().Add(-10 * time.Minute).Format(time.RFC3339),
		TTLSeconds: TTLSeconds,
	}
	require.True(t, Stale(old))
}

func TestUpsertOrders(t *testing.T) {
	orders := []models.OrderSummary{
		{ID: "o1", Name: "1"},
		{ID: "o2", Name: "2"},
	}

	replaced := upsertOrders(orders, models.OrderSummary{ID: "o1", Name: "1-updated"})
	require.Len(t, replaced, 2)
	require.Equal(t, "1-updated", replaced[0].Name)

	appended := upsertOrders(replaced, models.OrderSummary{ID: "o3", Name: "3"})
	require.Len(t, appended, 3)
	require.Equal(t, "o3", appended[2].ID)
}
