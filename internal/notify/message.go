package notify

import (
	"fmt"
	"time"

	"github.com/sourcecd/skladbot/internal/models"
)

const (
	placeholderDash    = "—"
	placeholderComment = "нет"
)

const messageTemplate = `СОЗДАН НОВЫЙ ЗАКАЗ

Номер: %s
Дата: %s
Контрагент: %s
Сумма: %s
Статус: %s
Комментарий: %s
Ссылка: %s`

var momentLayouts = []string{
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// FormatMoment normalizes MoySklad timestamps for display; values it cannot
// parse pass through verbatim.
func FormatMoment(value string) string {
	if value == "" {
		return placeholderDash
	}
	for _, layout := range momentLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("2006-01-02 15:04:05")
		}
	}
	return value
}

// FormatSum renders minor currency units as major units with two decimals.
func FormatSum(sum *int64) string {
	if sum == nil {
		return placeholderDash
	}
	return fmt.Sprintf("%.2f", float64(*sum)/100)
}

func Render(n *models.OrderNotification) string {
	return fmt.Sprintf(messageTemplate,
		n.Number,
		FormatMoment(n.Moment),
		orPlaceholder(n.CounterpartyName, placeholderDash),
		FormatSum(n.Sum),
		orPlaceholder(n.StateName, placeholderDash),
		orPlaceholder(n.Comment, placeholderComment),
		n.Href,
	)
}

func orPlaceholder(v *string, placeholder string) string {
	if v == nil || *v == "" {
		return placeholder
	}
	return *v
}
