package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/sourcecd/skladbot/internal/cache"
	"github.com/sourcecd/skladbot/internal/compression"
	"github.com/sourcecd/skladbot/internal/config"
	"github.com/sourcecd/skladbot/internal/events"
	"github.com/sourcecd/skladbot/internal/logging"
	"github.com/sourcecd/skladbot/internal/models"
	"github.com/sourcecd/skladbot/internal/moysklad"
	"github.com/sourcecd/skladbot/internal/notify"
	"github.com/sourcecd/skladbot/internal/prjerrors"
	"github.com/sourcecd/skladbot/internal/retr"
	"github.com/sourcecd/skladbot/internal/telegram"
)

const (
	orderEntityType = "customerorder"
	refreshInterval = 60 * time.Second
)

type handlers struct {
	ctx    context.Context
	ms     moysklad.Source
	tg     telegram.Sender
	store  cache.Store
	broker *events.Broker
	rtr    *retr.Retr

	refreshMu sync.Mutex
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", slog.String("error", err.Error()))
	}
}

// processEvent runs the fetch then notify sequence for one webhook event.
// Failures are logged and never surface to the webhook caller.
func (h *handlers) processEvent(ctx context.Context, href string) {
	order, err := h.ms.FetchOrder(ctx, href)
	if err != nil {
		slog.Error("order fetch failed", slog.String("href", href), slog.String("error", err.Error()))
		return
	}

	if snap, err := h.rtr.UpsertFuncRetr(h.store.Upsert)(ctx, h.ms.Summary(ctx, order)); err != nil {
		slog.Error("cache upsert failed", slog.String("error", err.Error()))
	} else {
		h.publish(snap)
	}

	text := notify.Render(h.ms.Notification(ctx, order))
	if err := h.tg.SendMessage(ctx, text); err != nil {
		slog.Error("telegram send failed", slog.String("error", err.Error()))
	}
}

func (h *handlers) webhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload models.WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, prjerrors.ErrReqJSONParse.Error(), http.StatusBadRequest)
			return
		}
		if len(payload.Events) == 0 {
			http.Error(w, prjerrors.ErrEmptyEvents.Error(), http.StatusBadRequest)
			return
		}

		var rejected int
		for _, event := range payload.Events {
			if event.Meta.Type != orderEntityType {
				continue
			}
			if ok, err := govalidator.ValidateStruct(event.Meta); err != nil || !ok {
				rejected++
				continue
			}
			h.processEvent(h.ctx, event.Meta.Href)
		}
		if rejected > 0 {
			http.Error(w, prjerrors.ErrBadEventMeta.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *handlers) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *handlers) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := h.refreshCache(h.ctx, "manual")
		if err != nil {
			snap, _ = h.rtr.SnapshotFuncRetr(h.store.Snapshot)(h.ctx)
		}

		resp := map[string]any{"status": "ok"}
		if snap != nil {
			resp["updated_at"] = snap.UpdatedAt
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *handlers) events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ch := h.broker.Subscribe()
		defer h.broker.Unsubscribe(ch)

		if snap, err := h.rtr.SnapshotFuncRetr(h.store.Snapshot)(r.Context()); err == nil {
			if payload, err := eventPayload(snap); err == nil {
				writeEvent(w, flusher, payload)
			}
		}

		for {
			select {
			case <-r.Context().Done():
				return
			case payload, ok := <-ch:
				if !ok {
					return
				}
				writeEvent(w, flusher, payload)
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, payload string) {
	fmt.Fprintf(w, "data: %s\n\n", payload)
	flusher.Flush()
}

func eventPayload(snap *models.OrderCache) (string, error) {
	b, err := json.Marshal(models.CacheEvent{OrderCache: *snap, Stale: cache.Stale(snap)})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *handlers) publish(snap *models.OrderCache) {
	payload, err := eventPayload(snap)
	if err != nil {
		slog.Error("event payload marshal failed", slog.String("error", err.Error()))
		return
	}
	h.broker.Publish(payload)
}

// refreshCache rebuilds the snapshot from the MoySklad list API. Serialized:
// concurrent refresh requests wait for the running one.
func (h *handlers) refreshCache(ctx context.Context, reason string) (*models.OrderCache, error) {
	h.refreshMu.Lock()
	defer h.refreshMu.Unlock()

	orders, err := h.ms.RecentOrders(ctx)
	if err != nil {
		slog.Error("cache refresh failed", slog.String("reason", reason), slog.String("error", err.Error()))
		return nil, err
	}
	snap := cache.NewSnapshot(orders)
	if err := h.rtr.SaveFuncRetr(h.store.Save)(ctx, snap); err != nil {
		slog.Error("cache save failed", slog.String("error", err.Error()))
		return nil, err
	}

	slog.Info("cache refreshed",
		slog.String("reason", reason),
		slog.Int("total", snap.Stats.TotalOrders),
		slog.Int("new", snap.Stats.NewOrders),
		slog.Int("cdek", snap.Stats.CdekOrders),
	)
	h.publish(snap)
	return snap, nil
}

func (h *handlers) refreshLoop(ctx context.Context) {
	if _, err := h.refreshCache(ctx, "startup"); err != nil {
		slog.Error(err.Error())
	}
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, err := h.rtr.SnapshotFuncRetr(h.store.Snapshot)(ctx)
			if err != nil || cache.Stale(snap) {
				if _, err := h.refreshCache(ctx, "ttl"); err != nil {
					slog.Error(err.Error())
				}
			}
		}
	}
}

func webRouter(h *handlers) *chi.Mux {
	mux := chi.NewRouter()
	mux.Post("/webhook/moysklad", logging.WriteLogging(h.webhook()))
	mux.Get("/health", logging.WriteLogging(h.health()))
	mux.Get("/", logging.WriteLogging(compression.GzipCompressDecompress(h.dashboard())))
	mux.Post("/refresh", logging.WriteLogging(compression.GzipCompressDecompress(h.refresh())))
	mux.Get("/events", h.events())

	return mux
}

func Run(ctx context.Context, config config.Config) {
	creds, err := config.Credentials()
	if err != nil {
		log.Fatal(err)
	}
	if err := config.ValidateTelegram(); err != nil {
		log.Fatal(err)
	}

	var store cache.Store
	if config.DatabaseDsn != "" {
		pg, err := cache.NewPgStore(config.DatabaseDsn)
		if err != nil {
			log.Fatal(err)
		}
		if err := pg.PopulateDB(ctx); err != nil {
			log.Fatal(err)
		}
		store = pg
	} else {
		store = cache.NewFileStore(config.CachePath)
	}

	h := &handlers{
		ctx:    ctx,
		ms:     moysklad.New(creds, config.RequestTimeout),
		tg:     telegram.New(config.TelegramBotToken, config.TelegramChatID, config.RequestTimeout),
		store:  store,
		broker: events.NewBroker(),
		rtr:    retr.NewRetr(),
	}

	go h.refreshLoop(ctx)

	log.Fatal(http.ListenAndServe(config.ServerAddr, webRouter(h)))
}
