package notify

import (
	"testing"

	"github.com/sourcecd/skladbot/internal/models"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func sumPtr(v int64) *int64 {
	return &v
}

func TestFormatSum(t *testing.T) {
	require.Equal(t, "—", FormatSum(nil))
	require.Equal(t, "1500.00", FormatSum(sumPtr(150000)))
	require.Equal(t, "0.99", FormatSum(sumPtr(99)))
	require.Equal(t, "0.00", FormatSum(sumPtr(0)))
}

func TestFormatMoment(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		exp   string
	}{
		{
			name:  "alreadyNormalized",
			value: "2024-09-24 12:00:00",
			exp:   "2024-09-24 12:00:00",
		},
		{
			name:  "withMillis",
			value: "2024-09-24 12:00:00.000",
			exp:   "2024-09-24 12:00:00",
		},
		{
			name:  "rfc3339",
			value: "2024-09-24T12:00:00Z",
			exp:   "2024-09-24 12:00:00",
		},
		{
			name:  "unparseablePassthrough",
			value: "вчера",
			exp:   "вчера",
		},
		{
			name:  "absent",
			value: "",
			exp:   "—",
		},
	}

	for _, v := range testCases {
		t.Run(v.name, func(t *testing.T) {
			require.Equal(t, v.exp, FormatMoment(v.value))
		})
	}
}

func TestRender(t *testing.T) {
	testCases := []struct {
		name         string
		notification *models.OrderNotification
		exp          string
	}{
		{
			name: "allFields",
			notification: &models.OrderNotification{
				Number:           "000123",
				Moment:           "2024-09-24 12:00:00",
				CounterpartyName: strPtr("ООО Ромашка"),
				Sum:              sumPtr(150000),
				StateName:        strPtr("Новый"),
				Comment:          strPtr("срочно"),
				Href:             "https://api.moysklad.ru/api/remap/1.2/entity/customerorder/abc123",
			},
			exp: "СОЗДАН НОВЫЙ ЗАКАЗ\n\n" +
				"Номер: 000123\n" +
				"Дата: 2024-09-24 12:00:00\n" +
				"Контрагент: ООО Ромашка\n" +
				"Сумма: 1500.00\n" +
				"Статус: Новый\n" +
				"Комментарий: срочно\n" +
				"Ссылка: https://api.moysklad.ru/api/remap/1.2/entity/customerorder/abc123",
		},
		{
			name: "optionalFieldsAbsent",
			notification: &models.OrderNotification{
				Number: "000124",
				Moment: "2024-09-24 12:00:00",
				Sum:    sumPtr(150000),
				Href:   "https://api.moysklad.ru/api/remap/1.2/entity/customerorder/def456",
			},
			exp: "СОЗДАН НОВЫЙ ЗАКАЗ\n\n" +
				"Номер: 000124\n" +
				"Дата: 2024-09-24 12:00:00\n" +
				"Контрагент: —\n" +
				"Сумма: 1500.00\n" +
				"Статус: —\n" +
				"Комментарий: нет\n" +
				"Ссылка: https://api.moysklad.ru/api/remap/1.2/entity/customerorder/def456",
		},
		{
			name: "sumAbsent",
			notification: &models.OrderNotification{
				Number: "000125",
				Moment: "2024-09-24 12:00:00",
				Href:   "https://api.moysklad.ru/api/remap/1.2/entity/customerorder/ghi789",
			},
			exp: "СОЗДАН НОВЫЙ ЗАКАЗ\n\n" +
				"Номер: 000125\n" +
				"Дата: 2024-09-24 12:00:00\n" +
				"Контрагент: —\n" +
				"Сумма: —\n" +
				"Статус: —\n" +
				"Комментарий: нет\n" +
				"Ссылка: https://api.moysklad.ru/api/remap/1.2/entity/customerorder/ghi789",
		},
	}

	for _, v := range testCases {
		t.Run(v.name, func(t *testing.T) {
			require.Equal(t, v.exp, Render(v.notification))
		})
	}
}
