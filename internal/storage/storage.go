package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

type OrderCache interface {
	Get(orderID string) (*fulfillment.Order, bool)
	Set(order *fulfillment.Order)
}

type Config struct {
	OrderTopic string
	AuditTopic string
	Pricing    PricingConfig
}

type Storage struct {
	db          db.DB
	orderRepo   OrderRepository
	historyRepo HistoryRepository
	outboxRepo  OutboxTaskRepository
	cache       OrderCache
	cfg         Config
	logger      *zap.Logger
	timeNow     func() time.Time
	newID       func() string
}

func NewStorage(
	database db.DB,
	orderRepo OrderRepository,
	historyRepo HistoryRepository,
	outboxRepo OutboxTaskRepository,
	cache OrderCache,
	cfg Config,
	logger *zap.Logger,
) *Storage {
	return &Storage{
		db:          database,
		orderRepo:   orderRepo,
		historyRepo: historyRepo,
		outboxRepo:  outboxRepo,
		cache:       cache,
		cfg:         cfg,
		logger:      logger,
		timeNow:     time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// CreateOrder places a new order in PENDING/RECEIVED with a quoted default estimate.
func (s *Storage) CreateOrder(ctx context.Context, p Placement) (*fulfillment.Order, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	quoter, err := s.cfg.Pricing.QuoterFor(p.Method)
	if err != nil {
		return nil, err
	}
	if quoter.Method() == MethodDelivery && p.DeliveryAddress == "" {
		return nil, fmt.Errorf("%w: delivery address is required", ErrInvalidOrder)
	}
	quote := QuoteItems(quoter, p.Items)
	if quote.EstimatedMinutes > fulfillment.MaxEstimateMinutes {
		return nil, fmt.Errorf("%w: estimated time exceeds %d minutes", ErrInvalidOrder, fulfillment.MaxEstimateMinutes)
	}

	now := s.timeNow().UTC()
	order := &fulfillment.Order{
		ID:              s.newID(),
		CustomerID:      p.CustomerID,
		CustomerName:    p.CustomerName,
		Items:           p.Items,
		Subtotal:        quote.Subtotal,
		DeliveryFee:     quote.DeliveryFee,
		Total:           quote.Total,
		PaymentMethod:   p.PaymentMethod,
		DeliveryAddress: p.DeliveryAddress,
		Phone:           p.Phone,
		CustomerNote:    p.CustomerNote,
		Status:          fulfillment.StatusPending,
		Stage:           fulfillment.StageReceived,
		EstimatedTime:   quote.EstimatedMinutes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = db.InTx(ctx, s.db, func(tx db.Tx) error {
		if err := s.orderRepo.CreateTx(ctx, tx, toRepoOrder(order)); err != nil {
			return fmt.Errorf("failed to add order: %w", err)
		}

		entry := &repository.HistoryEntry{
			OrderID:   order.ID,
			Field:     string(fulfillment.FieldStatus),
			NewValue:  string(order.Status),
			ChangedBy: p.CustomerID,
			ChangedAt: now,
		}
		if err := s.historyRepo.CreateTx(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to add order history entry: %w", err)
		}

		task, err := newOrderEvent(repository.EventOrderCreated, s.cfg.OrderTopic, order, nil, p.CustomerID, now)
		if err != nil {
			return err
		}
		if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
			return fmt.Errorf("failed to enqueue order event: %w", err)
		}
		return nil
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_order").Inc()
		return nil, err
	}

	s.cache.Set(order)
	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("customer_id", order.CustomerID),
		zap.Int("estimated_time", order.EstimatedTime),
	)
	return order.Clone(), nil
}

func (s *Storage) GetOrder(ctx context.Context, orderID string) (*fulfillment.Order, error) {
	if order, ok := s.cache.Get(orderID); ok {
		return order, nil
	}

	row, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, fulfillment.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return fromRepoOrder(row), nil
}

// PatchOrder applies a staff patch under the order's row lock. The patch is validated
// before the transaction starts, and an order that would not change is not written.
func (s *Storage) PatchOrder(ctx context.Context, orderID string, patch fulfillment.Patch, actor string) (*fulfillment.Order, fulfillment.Changeset, error) {
	l := s.logger.With(zap.String("order_id", orderID), zap.String("actor", actor))

	if err := patch.Validate(); err != nil {
		metrics.PatchRejectionsTotal.WithLabelValues("validation").Inc()
		l.Warn("Patch rejected", zap.Error(err))
		return nil, nil, err
	}

	var (
		order   *fulfillment.Order
		changes fulfillment.Changeset
	)
	err := db.InTx(ctx, s.db, func(tx db.Tx) error {
		row, err := s.orderRepo.GetByIDTx(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fulfillment.ErrNotFound
			}
			return fmt.Errorf("failed to get order: %w", err)
		}

		order = fromRepoOrder(row)
		now := s.timeNow().UTC()
		changes, err = fulfillment.Apply(order, patch, now)
		if err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		if err := s.orderRepo.UpdateFieldsTx(ctx, tx, orderID, columnsFor(changes, order)); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}

		for _, c := range changes {
			if !c.Historized() {
				continue
			}
			entry := &repository.HistoryEntry{
				OrderID:   orderID,
				Field:     string(c.Field),
				OldValue:  c.From,
				NewValue:  c.To,
				ChangedBy: actor,
				ChangedAt: now,
			}
			if err := s.historyRepo.CreateTx(ctx, tx, entry); err != nil {
				return fmt.Errorf("failed to add order history entry: %w", err)
			}
		}

		task, err := newOrderEvent(repository.EventOrderUpdated, s.cfg.OrderTopic, order, changes, actor, now)
		if err != nil {
			return err
		}
		if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
			return fmt.Errorf("failed to enqueue order event: %w", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, fulfillment.ErrOrderClosed):
			metrics.PatchRejectionsTotal.WithLabelValues("order_closed").Inc()
			l.Warn("Patch rejected", zap.Error(err))
		case errors.Is(err, fulfillment.ErrNotFound):
			l.Debug("Patch for unknown order")
		default:
			metrics.OperationErrorsTotal.WithLabelValues("patch_order").Inc()
			l.Error("Failed to patch order", zap.Error(err))
		}
		return nil, nil, err
	}

	if len(changes) > 0 {
		s.cache.Set(order)
		for _, f := range changes.Fields() {
			metrics.OrderFieldChangesTotal.WithLabelValues(string(f)).Inc()
		}
		l.Info("Order patched", zap.Any("fields", changes.Fields()))
	}
	return order, changes, nil
}

func (s *Storage) ListOrders(ctx context.Context, q OrderQuery) ([]*fulfillment.Order, error) {
	filter := repository.OrderFilter{Search: q.Search, Limit: q.Limit}
	if q.Status != nil {
		filter.Status = string(*q.Status)
	}
	rows, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return fromRepoOrders(rows), nil
}

func (s *Storage) ListCustomerOrders(ctx context.Context, customerID string) ([]*fulfillment.Order, error) {
	rows, err := s.orderRepo.List(ctx, repository.OrderFilter{CustomerID: customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to get customer orders: %w", err)
	}
	return fromRepoOrders(rows), nil
}

// ActiveOrders feeds the order cache at startup.
func (s *Storage) ActiveOrders(ctx context.Context) ([]*fulfillment.Order, error) {
	rows, err := s.orderRepo.GetAllActiveOrders(ctx)
	if err != nil {
		return nil, err
	}
	return fromRepoOrders(rows), nil
}

func (s *Storage) GetOrderHistory(ctx context.Context, orderID string) ([]HistoryEntry, error) {
	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	rows, err := s.historyRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}

	entries := make([]HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = HistoryEntry{
			Field:     row.Field,
			From:      row.OldValue,
			To:        row.NewValue,
			ChangedBy: row.ChangedBy,
			ChangedAt: row.ChangedAt,
		}
	}
	return entries, nil
}
