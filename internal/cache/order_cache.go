package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
)

type ActiveOrderSource interface {
	ActiveOrders(ctx context.Context) ([]*fulfillment.Order, error)
}

// tombstoneTTL bounds how long an evicted order's version is remembered.
const tombstoneTTL = 10 * time.Minute

type tombstone struct {
	version   time.Time
	evictedAt time.Time
}

// OrderCache keeps open orders in memory. Entries are versioned by UpdatedAt: a snapshot
// older than the cached one, or than the version an order was evicted at, is ignored.
type OrderCache struct {
	mu        sync.RWMutex
	cache     map[string]*fulfillment.Order
	evicted   map[string]tombstone
	lastSweep time.Time
	timeNow   func() time.Time
	logger    *zap.Logger
}

func NewOrderCache(logger *zap.Logger) *OrderCache {
	return &OrderCache{
		cache:   make(map[string]*fulfillment.Order),
		evicted: make(map[string]tombstone),
		timeNow: time.Now,
		logger:  logger,
	}
}

func (c *OrderCache) LoadInitialData(ctx context.Context, source ActiveOrderSource) error {
	c.logger.Info("Loading initial data into order cache")
	orders, err := source.ActiveOrders(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, order := range orders {
		c.setLocked(order)
	}
	metrics.OrderCacheItems.Set(float64(len(c.cache)))
	c.logger.Info("Order cache warmed up", zap.Int("orders", len(c.cache)))
	return nil
}

func (c *OrderCache) Get(orderID string) (*fulfillment.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	order, found := c.cache[orderID]
	if !found {
		return nil, false
	}
	return order.Clone(), true
}

// Set stores an active order or evicts a terminal one, unless a newer version is already known.
func (c *OrderCache) Set(order *fulfillment.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setLocked(order) {
		metrics.OrderCacheItems.Set(float64(len(c.cache)))
	}
}

func (c *OrderCache) setLocked(order *fulfillment.Order) bool {
	if c.isStale(order) {
		c.logger.Debug("Cache: ignored stale order",
			zap.String("order_id", order.ID),
			zap.Time("updated_at", order.UpdatedAt),
		)
		return false
	}

	if !order.IsActive() {
		delete(c.cache, order.ID)
		now := c.timeNow()
		c.evicted[order.ID] = tombstone{version: order.UpdatedAt, evictedAt: now}
		c.sweepLocked(now)
		c.logger.Debug("Cache: evicted order", zap.String("order_id", order.ID), zap.String("status", string(order.Status)))
		return true
	}

	delete(c.evicted, order.ID)
	c.cache[order.ID] = order.Clone()
	c.logger.Debug("Cache: set order", zap.String("order_id", order.ID), zap.String("status", string(order.Status)))
	return true
}

func (c *OrderCache) isStale(order *fulfillment.Order) bool {
	if cached, found := c.cache[order.ID]; found && order.UpdatedAt.Before(cached.UpdatedAt) {
		return true
	}
	if t, found := c.evicted[order.ID]; found && order.UpdatedAt.Before(t.version) {
		return true
	}
	return false
}

func (c *OrderCache) sweepLocked(now time.Time) {
	if now.Sub(c.lastSweep) < tombstoneTTL {
		return
	}
	c.lastSweep = now
	for id, t := range c.evicted {
		if now.Sub(t.evictedAt) > tombstoneTTL {
			delete(c.evicted, id)
		}
	}
}

func (c *OrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
