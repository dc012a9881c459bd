package server

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/sourcecd/skladbot/internal/cache"
	"github.com/sourcecd/skladbot/internal/models"
	"github.com/sourcecd/skladbot/internal/notify"
	"github.com/sourcecd/skladbot/internal/prjerrors"
)

type dashboardData struct {
	HasCache  bool
	Stale     bool
	UpdatedAt string
	Stats     models.CacheStats
	Orders    []models.OrderSummary
}

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"moment": notify.FormatMoment,
	"sum":    notify.FormatSum,
}).Parse(dashboardHTML))

func (h *handlers) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data dashboardData
		snap, err := h.rtr.SnapshotFuncRetr(h.store.Snapshot)(h.ctx)
		if err != nil {
			if !errors.Is(err, prjerrors.ErrEmptyCache) {
				slog.Error("cache read failed", slog.String("error", err.Error()))
			}
		} else {
			data.HasCache = true
			data.Stale = cache.Stale(snap)
			data.UpdatedAt = notify.FormatMoment(snap.UpdatedAt)
			data.Stats = snap.Stats
			data.Orders = snap.Orders
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := dashboardTmpl.Execute(w, data); err != nil {
			slog.Error("dashboard render failed", slog.String("error", err.Error()))
		}
	}
}

const dashboardHTML = `<!doctype html>
<html lang="ru">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Заказы</title>
<style>
body { font-family: sans-serif; margin: 0 auto; max-width: 960px; padding: 24px; background: #111; color: #eee; }
h1 { font-size: 22px; }
.meta { color: #aaa; font-size: 13px; margin-bottom: 16px; }
.stats { display: flex; gap: 16px; margin-bottom: 20px; }
.card { background: #1c1c1c; border: 1px solid #333; border-radius: 8px; padding: 16px 24px; }
.card .value { font-size: 32px; font-weight: 700; }
.card .label { font-size: 12px; color: #aaa; text-transform: uppercase; }
table { width: 100%; border-collapse: collapse; font-size: 14px; }
th, td { text-align: left; padding: 8px 10px; border-bottom: 1px solid #2a2a2a; }
th { color: #aaa; font-weight: 400; }
.warning { border: 1px solid #b90; background: #331; color: #fc6; border-radius: 8px; padding: 10px 14px; margin-bottom: 16px; }
a { color: #8cf; }
button { background: #1c1c1c; color: #eee; border: 1px solid #555; border-radius: 6px; padding: 6px 14px; cursor: pointer; }
</style>
</head>
<body>
<h1>Заказы МойСклад</h1>
<div class="meta">
Обновлено: <span id="updated-at">{{if .HasCache}}{{.UpdatedAt}}{{else}}не обновлялось{{end}}</span>
<button id="refresh-button" type="button">Обновить</button>
</div>
{{if .Stale}}<div class="warning">Данные устарели. Нажмите «Обновить».</div>{{end}}
{{if not .HasCache}}<div class="warning">Данные загружаются. Попробуйте обновить позже.</div>{{end}}
<div class="stats">
<div class="card"><div class="value" id="new-orders">{{.Stats.NewOrders}}</div><div class="label">Новые заказы</div></div>
<div class="card"><div class="value" id="cdek-orders">{{.Stats.CdekOrders}}</div><div class="label">Отправлено СДЕК</div></div>
<div class="card"><div class="value" id="total-orders">{{.Stats.TotalOrders}}</div><div class="label">Всего за неделю</div></div>
</div>
<table>
<tr><th>Номер</th><th>Статус</th><th>Дата</th><th>Сумма</th><th>Город</th><th>Получатель</th><th></th></tr>
{{range .Orders}}
<tr>
<td>{{.Name}}</td>
<td>{{if .State}}{{.State}}{{else}}не указан{{end}}</td>
<td>{{moment .Moment}}</td>
<td>{{sum .Sum}}</td>
<td>{{if .City}}{{.City}}{{else}}не указан{{end}}</td>
<td>{{if .Recipient}}{{.Recipient}}{{else}}не указан{{end}}</td>
<td><a href="{{.Link}}" target="_blank" rel="noreferrer">Открыть</a></td>
</tr>
{{end}}
</table>
<script>
document.getElementById('refresh-button').addEventListener('click', async () => {
	const resp = await fetch('/refresh', { method: 'POST' });
	const payload = await resp.json();
	if (payload.updated_at) {
		document.getElementById('updated-at').textContent = payload.updated_at;
	}
});
const source = new EventSource('/events');
source.onmessage = (event) => {
	try {
		const payload = JSON.parse(event.data);
		document.getElementById('new-orders').textContent = payload.stats.new_orders;
		document.getElementById('cdek-orders').textContent = payload.stats.cdek_orders;
		document.getElementById('total-orders').textContent = payload.stats.total_orders;
		document.getElementById('updated-at').textContent = payload.updated_at;
	} catch (err) {
		console.warn('bad event', err);
	}
};
</script>
</body>
</html>
`
