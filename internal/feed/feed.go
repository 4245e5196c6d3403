//go:generate mockgen -source ./feed.go -destination=./mocks/feed.go -package=mock_feed
package feed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

type OrderStore interface {
	GetOrder(ctx context.Context, orderID string) (*fulfillment.Order, error)
	ListOrders(ctx context.Context, q storage.OrderQuery) ([]*fulfillment.Order, error)
	ListCustomerOrders(ctx context.Context, customerID string) ([]*fulfillment.Order, error)
	GetOrderHistory(ctx context.Context, orderID string) ([]storage.HistoryEntry, error)
}

// AdminOrderView is the staff record: every stored field plus the live estimate for open orders.
type AdminOrderView struct {
	*fulfillment.Order
	ETA *fulfillment.ETA `json:"eta,omitempty"`
}

// TrackedOrder is the customer-facing payload. Staff-only fields are left out.
type TrackedOrder struct {
	ID              string             `json:"id"`
	CreatedAt       time.Time          `json:"createdAt"`
	Status          fulfillment.Status `json:"status"`
	Stage           fulfillment.Stage  `json:"stage"`
	Items           []fulfillment.Item `json:"items"`
	Total           decimal.Decimal    `json:"total"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Phone           string             `json:"phone"`
	EstimatedTime   int                `json:"estimatedTime"`

	ElapsedMinutes   *int `json:"elapsedMinutes,omitempty"`
	RemainingMinutes *int `json:"remainingMinutes,omitempty"`
	RemainingSeconds *int `json:"remainingSeconds,omitempty"`
	ProgressPercent  *int `json:"progressPercent,omitempty"`
}

type CustomerFeed struct {
	Active              []TrackedOrder `json:"active"`
	History             []TrackedOrder `json:"history"`
	PollIntervalSeconds int            `json:"pollIntervalSeconds"`
}

type Feed struct {
	store        OrderStore
	pollInterval time.Duration
	logger       *zap.Logger
	timeNow      func() time.Time
}

func New(store OrderStore, pollInterval time.Duration, logger *zap.Logger) *Feed {
	return &Feed{
		store:        store,
		pollInterval: pollInterval,
		logger:       logger,
		timeNow:      time.Now,
	}
}

func (f *Feed) PollInterval() time.Duration {
	return f.pollInterval
}

// ListOrders serves the staff list, newest first.
func (f *Feed) ListOrders(ctx context.Context, q storage.OrderQuery) ([]AdminOrderView, error) {
	metrics.FeedRequestsTotal.WithLabelValues("admin_list").Inc()

	orders, err := f.store.ListOrders(ctx, q)
	if err != nil {
		return nil, err
	}

	now := f.timeNow()
	views := make([]AdminOrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, f.adminView(o, now))
	}
	return views, nil
}

func (f *Feed) GetOrder(ctx context.Context, orderID string) (AdminOrderView, error) {
	metrics.FeedRequestsTotal.WithLabelValues("admin_order").Inc()

	order, err := f.store.GetOrder(ctx, orderID)
	if err != nil {
		return AdminOrderView{}, err
	}
	return f.adminView(order, f.timeNow()), nil
}

func (f *Feed) GetOrderHistory(ctx context.Context, orderID string) ([]storage.HistoryEntry, error) {
	metrics.FeedRequestsTotal.WithLabelValues("admin_history").Inc()
	return f.store.GetOrderHistory(ctx, orderID)
}

// ListOwnOrders splits a customer's orders into active and closed ones. The poll hint
// drops to zero once nothing is active so the tracker stops refreshing.
func (f *Feed) ListOwnOrders(ctx context.Context, customerID string) (CustomerFeed, error) {
	metrics.FeedRequestsTotal.WithLabelValues("customer_list").Inc()

	orders, err := f.store.ListCustomerOrders(ctx, customerID)
	if err != nil {
		return CustomerFeed{}, err
	}

	now := f.timeNow()
	out := CustomerFeed{
		Active:  []TrackedOrder{},
		History: []TrackedOrder{},
	}
	for _, o := range orders {
		tracked := f.track(o, now)
		if o.IsActive() {
			out.Active = append(out.Active, tracked)
		} else {
			out.History = append(out.History, tracked)
		}
	}
	if len(out.Active) > 0 {
		out.PollIntervalSeconds = int(f.pollInterval / time.Second)
	}
	return out, nil
}

// GetOwnOrder returns a single tracked order. A foreign order is reported as
// ErrUnauthorized without any of its data.
func (f *Feed) GetOwnOrder(ctx context.Context, customerID, orderID string) (TrackedOrder, error) {
	metrics.FeedRequestsTotal.WithLabelValues("customer_order").Inc()

	order, err := f.store.GetOrder(ctx, orderID)
	if err != nil {
		return TrackedOrder{}, err
	}
	if order.CustomerID != customerID {
		f.logger.Warn("Customer requested a foreign order",
			zap.String("customer_id", customerID),
			zap.String("order_id", orderID),
		)
		return TrackedOrder{}, fulfillment.ErrUnauthorized
	}
	return f.track(order, f.timeNow()), nil
}

func (f *Feed) adminView(o *fulfillment.Order, now time.Time) AdminOrderView {
	eta, err := o.Estimate(now)
	if err != nil {
		f.logEstimateError(o, err)
	}
	return AdminOrderView{Order: o, ETA: eta}
}

func (f *Feed) track(o *fulfillment.Order, now time.Time) TrackedOrder {
	t := TrackedOrder{
		ID:              o.ID,
		CreatedAt:       o.CreatedAt,
		Status:          o.Status,
		Stage:           o.Stage,
		Items:           o.Items,
		Total:           o.Total,
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		EstimatedTime:   o.EstimatedTime,
	}

	eta, err := o.Estimate(now)
	if err != nil {
		f.logEstimateError(o, err)
		return t
	}
	if eta != nil {
		t.ElapsedMinutes = &eta.ElapsedMinutes
		t.RemainingMinutes = &eta.RemainingMinutes
		t.RemainingSeconds = &eta.RemainingSeconds
		t.ProgressPercent = &eta.ProgressPercent
	}
	return t
}

// logEstimateError reports a stored order the estimator cannot work with. It is still served, without an estimate.
func (f *Feed) logEstimateError(o *fulfillment.Order, err error) {
	metrics.OperationErrorsTotal.WithLabelValues("estimate").Inc()
	f.logger.Error("Failed to estimate order", zap.String("order_id", o.ID), zap.Error(err))
}
