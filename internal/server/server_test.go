package server

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sourcecd/skladbot/internal/cache"
	"github.com/sourcecd/skladbot/internal/compression"
	"github.com/sourcecd/skladbot/internal/models"
	"github.com/sourcecd/skladbot/internal/prjerrors"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	env.h.health()(w, r)

	res := w.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestRefresh(t *testing.T) {
	env := newTestEnv(t)

	orders := []models.OrderSummary{{ID: "o1", Name: "00042", State: "Новый"}}
	env.ms.EXPECT().RecentOrders(gomock.Any()).Return(orders, nil)
	env.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	r := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	w := httptest.NewRecorder()

	env.h.refresh()(w, r)

	res := w.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp["status"])
	require.NotEmpty(t, resp["updated_at"])
}

func TestRefreshBroadcasts(t *testing.T) {
	env := newTestEnv(t)

	ch := env.h.broker.Subscribe()
	defer env.h.broker.Unsubscribe(ch)

	env.ms.EXPECT().RecentOrders(gomock.Any()).Return([]models.OrderSummary{{ID: "o1", State: "Новый"}}, nil)
	env.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	r := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	w := httptest.NewRecorder()

	env.h.refresh()(w, r)

	select {
	case payload := <-ch:
		var event models.CacheEvent
		require.NoError(t, json.Unmarshal([]byte(payload), &event))
		require.Equal(t, 1, event.Stats.NewOrders)
		require.False(t, event.Stale)
	case <-time.After(time.Second):
		t.Fatal("no event broadcast after refresh")
	}
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	snap := cache.NewSnapshot([]models.OrderSummary{
		{ID: "o1", Name: "00042", State: "Новый", Link: "https://online.moysklad.ru/app/#customerorder/edit?id=o1"},
	})
	env.store.EXPECT().Snapshot(gomock.Any()).Return(snap, nil)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	env.h.dashboard()(w, r)

	res := w.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, w.Body.String(), "00042")
	require.Contains(t, w.Body.String(), "Новый")
}

func TestDashboardGzip(t *testing.T) {
	env := newTestEnv(t)

	snap := cache.NewSnapshot([]models.OrderSummary{
		{ID: "o1", Name: "00042", State: "Новый"},
	})
	env.store.EXPECT().Snapshot(gomock.Any()).Return(snap, nil)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	compression.GzipCompressDecompress(env.h.dashboard())(w, r)

	res := w.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "gzip", res.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Contains(t, string(body), "00042")
}

func TestDashboardEmptyCache(t *testing.T) {
	env := newTestEnv(t)

	env.store.EXPECT().Snapshot(gomock.Any()).Return(nil, prjerrors.ErrEmptyCache)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	env.h.dashboard()(w, r)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	require.Contains(t, w.Body.String(), "Данные загружаются")
}

func TestEventPayloadStaleFlag(t *testing.T) {
	fresh := cache.NewSnapshot(nil)
	payload, err := eventPayload(fresh)
	require.NoError(t, err)

	var event models.CacheEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &event))
	require.False(t, event.Stale)

	old := &models.OrderCache{
		UpdatedAt:  time.Now().UTC().Add(-10 * time.Minute).Format(time.RFC3339),
		TTLSeconds: cache.TTLSeconds,
	}
	payload, err = eventPayload(old)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(payload), &event))
	require.True(t, event.Stale)
}

func TestWebRouterRoutes(t *testing.T) {
	env := newTestEnv(t)
	mux := webRouter(env.h)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Result().StatusCode)

	r = httptest.NewRequest(http.MethodGet, "/webhook/moysklad", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	require.Equal(t, http.StatusMethodNotAllowed, w.Result().StatusCode)
}
