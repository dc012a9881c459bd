package moysklad

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sourcecd/skladbot/internal/config"
	"github.com/sourcecd/skladbot/internal/models"
	"github.com/sourcecd/skladbot/internal/prjerrors"
)

const (
	customerOrderURL = "https://api.moysklad.ru/api/remap/1.2/entity/customerorder"
	webOrderURL      = "https://online.moysklad.ru/app/#customerorder/edit?id="

	defaultPageLimit = 100
	listMaxDays      = 7
)

// Source is what the webhook and cache refresh paths need from the MoySklad
// API.
type Source interface {
	FetchOrder(ctx context.Context, href string) (*models.CustomerOrder, error)
	Notification(ctx context.Context, order *models.CustomerOrder) *models.OrderNotification
	Summary(ctx context.Context, order *models.CustomerOrder) models.OrderSummary
	RecentOrders(ctx context.Context) ([]models.OrderSummary, error)
}

type Client struct {
	cl        *resty.Client
	listURL   string
	pageLimit int
}

func New(creds config.Credentials, timeout time.Duration) *Client {
	return &Client{
		cl: resty.New().
			SetTimeout(timeout).
			SetHeader("Authorization", creds.Header()),
		listURL:   customerOrderURL,
		pageLimit: defaultPageLimit,
	}
}

func (c *Client) get(ctx context.Context, href string, out any) error {
	resp, err := c.cl.R().SetContext(ctx).Get(href)
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: %d from %s", prjerrors.ErrUnexpectedStatus, resp.StatusCode(), href)
	}
	return json.Unmarshal(resp.Body(), out)
}

func (c *Client) FetchOrder(ctx context.Context, href string) (*models.CustomerOrder, error) {
	var order models.CustomerOrder
	if err := c.get(ctx, href, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) fetchEntity(ctx context.Context, href string) (*models.Entity, error) {
	var entity models.Entity
	if err := c.get(ctx, href, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// agentName resolves the counterparty name, following agent.meta.href when
// the embedded record carries no name.
func (c *Client) agentName(ctx context.Context, order *models.CustomerOrder) string {
	if order.Agent == nil {
		return ""
	}
	if order.Agent.Name != "" {
		return order.Agent.Name
	}
	if order.Agent.Meta.Href == "" {
		return ""
	}
	entity, err := c.fetchEntity(ctx, order.Agent.Meta.Href)
	if err != nil {
		slog.Error("agent fetch failed", slog.String("error", err.Error()))
		return ""
	}
	return entity.Name
}

func (c *Client) stateName(ctx context.Context, order *models.CustomerOrder) string {
	if order.State == nil {
		return ""
	}
	if order.State.Name != "" {
		return order.State.Name
	}
	if order.State.Meta.Href == "" {
		return ""
	}
	entity, err := c.fetchEntity(ctx, order.State.Meta.Href)
	if err != nil {
		slog.Error("state fetch failed", slog.String("error", err.Error()))
		return ""
	}
	// Summary and Notification both resolve the state; keep it on the order
	// so the second call skips the fetch.
	order.State.Name = entity.Name
	return entity.Name
}

func orderNumber(order *models.CustomerOrder) string {
	if order.Number != "" {
		return order.Number
	}
	return order.Name
}

func orderComment(order *models.CustomerOrder) string {
	if order.Description != "" {
		return order.Description
	}
	if order.ShipmentAddress != nil {
		return order.ShipmentAddress.Comment
	}
	return ""
}

func webLink(order *models.CustomerOrder) string {
	if order.ID != "" {
		return webOrderURL + order.ID
	}
	return order.Meta.Href
}

// Notification normalizes a fetched order into the message entity, following
// entity hrefs for missing agent and state names.
func (c *Client) Notification(ctx context.Context, order *models.CustomerOrder) *models.OrderNotification {
	n := &models.OrderNotification{
		Number: orderNumber(order),
		Moment: order.Moment,
		Sum:    order.Sum,
		Href:   order.Meta.Href,
	}
	if name := c.agentName(ctx, order); name != "" {
		n.CounterpartyName = &name
	}
	if state := c.stateName(ctx, order); state != "" {
		n.StateName = &state
	}
	if comment := orderComment(order); comment != "" {
		n.Comment = &comment
	}
	return n
}

func (c *Client) Summary(ctx context.Context, order *models.CustomerOrder) models.OrderSummary {
	name := orderNumber(order)
	if name == "" {
		name = "без номера"
	}
	summary := models.OrderSummary{
		ID:     order.ID,
		Name:   name,
		State:  c.stateName(ctx, order),
		Moment: order.Moment,
		Sum:    order.Sum,
		Link:   webLink(order),
	}
	if order.Agent != nil {
		summary.Recipient = order.Agent.Name
	}
	if order.ShipmentAddress != nil {
		summary.City = order.ShipmentAddress.City
		if summary.City == "" {
			summary.City = order.ShipmentAddress.Region
		}
	}
	return summary
}

// RecentOrders pages through customer orders of the last week.
func (c *Client) RecentOrders(ctx context.Context) ([]models.OrderSummary, error) {
	since := time.Now().UTC().Add(-listMaxDays * 24 * time.Hour).Format("2006-01-02 15:04:05")

	var summaries []models.OrderSummary
	offset := 0
	for {
		resp, err := c.cl.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"limit":  strconv.Itoa(c.pageLimit),
				"offset": strconv.Itoa(offset),
				"expand": "state",
				"filter": "moment>=" + since,
			}).
			Get(c.listURL)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("%w: %d from %s", prjerrors.ErrUnexpectedStatus, resp.StatusCode(), c.listURL)
		}

		var page models.OrderList
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			return nil, err
		}
		for i := range page.Rows {
			summaries = append(summaries, c.Summary(ctx, &page.Rows[i]))
		}
		if len(page.Rows) < c.pageLimit {
			return summaries, nil
		}
		offset += c.pageLimit
	}
}
