package feed

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_feed "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/feed/mocks"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestFeed(t *testing.T) (*Feed, *mock_feed.MockOrderStore) {
	ctrl := gomock.NewController(t)
	store := mock_feed.NewMockOrderStore(ctrl)
	f := New(store, 30*time.Second, zap.NewNop())
	f.timeNow = func() time.Time { return now }
	return f, store
}

func order(id, customer string, status fulfillment.Status, age time.Duration, estimate int) *fulfillment.Order {
	return &fulfillment.Order{
		ID:            id,
		CustomerID:    customer,
		Status:        status,
		Stage:         fulfillment.StagePreparing,
		EstimatedTime: estimate,
		HoldMinutes:   5,
		AssignedTo:    "chef",
		AdminNotes:    "vip",
		CreatedAt:     now.Add(-age),
	}
}

func TestFeed_ListOwnOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("splits active and history", func(t *testing.T) {
		f, store := newTestFeed(t)
		store.EXPECT().ListCustomerOrders(ctx, "cust-1").Return([]*fulfillment.Order{
			order("a", "cust-1", fulfillment.StatusConfirmed, 10*time.Minute+30*time.Second, 30),
			order("b", "cust-1", fulfillment.StatusCompleted, 2*time.Hour, 30),
		}, nil)

		got, err := f.ListOwnOrders(ctx, "cust-1")
		require.NoError(t, err)
		assert.Equal(t, 30, got.PollIntervalSeconds)

		require.Len(t, got.Active, 1)
		active := got.Active[0]
		assert.Equal(t, 10, *active.ElapsedMinutes)
		assert.Equal(t, 19, *active.RemainingMinutes)
		assert.Equal(t, 30, *active.RemainingSeconds)
		assert.Equal(t, 33, *active.ProgressPercent)

		require.Len(t, got.History, 1)
		assert.Nil(t, got.History[0].ElapsedMinutes)
		assert.Nil(t, got.History[0].ProgressPercent)
	})

	t.Run("no active orders stops polling", func(t *testing.T) {
		f, store := newTestFeed(t)
		store.EXPECT().ListCustomerOrders(ctx, "cust-1").Return([]*fulfillment.Order{
			order("b", "cust-1", fulfillment.StatusCancelled, time.Hour, 30),
		}, nil)

		got, err := f.ListOwnOrders(ctx, "cust-1")
		require.NoError(t, err)
		assert.Zero(t, got.PollIntervalSeconds)
		assert.Empty(t, got.Active)
	})

	t.Run("staff fields are not exposed", func(t *testing.T) {
		f, store := newTestFeed(t)
		store.EXPECT().ListCustomerOrders(ctx, "cust-1").Return([]*fulfillment.Order{
			order("a", "cust-1", fulfillment.StatusPending, time.Minute, 30),
		}, nil)

		got, err := f.ListOwnOrders(ctx, "cust-1")
		require.NoError(t, err)

		body, err := json.Marshal(got)
		require.NoError(t, err)
		for _, key := range []string{"assignedTo", "adminNotes", "holdMinutes", "queuePosition", "isOnHold"} {
			assert.NotContains(t, string(body), key)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		f, store := newTestFeed(t)
		store.EXPECT().ListCustomerOrders(ctx, "cust-1").Return(nil, errors.New("db down"))

		_, err := f.ListOwnOrders(ctx, "cust-1")
		assert.Error(t, err)
	})
}

func TestFeed_GetOwnOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		stored   *fulfillment.Order
		storeErr error
		wantErr  error
	}{
		{
			name:   "own order",
			stored: order("a", "cust-1", fulfillment.StatusPending, time.Minute, 30),
		},
		{
			name:    "foreign order",
			stored:  order("a", "cust-2", fulfillment.StatusPending, time.Minute, 30),
			wantErr: fulfillment.ErrUnauthorized,
		},
		{
			name:     "missing order",
			storeErr: fulfillment.ErrNotFound,
			wantErr:  fulfillment.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, store := newTestFeed(t)
			store.EXPECT().GetOrder(ctx, "a").Return(tt.stored, tt.storeErr)

			got, err := f.GetOwnOrder(ctx, "cust-1", "a")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, got.ID)
				assert.NotContains(t, err.Error(), "cust-2")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a", got.ID)
			assert.Equal(t, 1, *got.ElapsedMinutes)
		})
	}
}

func TestFeed_ListOrders(t *testing.T) {
	ctx := context.Background()
	f, store := newTestFeed(t)

	status := fulfillment.StatusConfirmed
	q := storage.OrderQuery{Status: &status, Search: "main"}
	store.EXPECT().ListOrders(ctx, q).Return([]*fulfillment.Order{
		order("a", "cust-1", fulfillment.StatusConfirmed, 45*time.Minute, 30),
		order("b", "cust-2", fulfillment.StatusCompleted, time.Hour, 30),
	}, nil)

	views, err := f.ListOrders(ctx, q)
	require.NoError(t, err)
	require.Len(t, views, 2)

	require.NotNil(t, views[0].ETA)
	assert.Equal(t, 100, views[0].ETA.ProgressPercent)
	assert.Zero(t, views[0].ETA.RemainingMillis)
	assert.Equal(t, 5, views[0].ETA.HoldBadgeMinutes)
	assert.Equal(t, now.Add(-15*time.Minute), views[0].ETA.Deadline)
	assert.Nil(t, views[1].ETA)

	body, err := json.Marshal(views[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"assignedTo":"chef"`)
	assert.Contains(t, string(body), `"eta":`)
}

func TestFeed_GetOrder(t *testing.T) {
	ctx := context.Background()
	f, store := newTestFeed(t)

	broken := order("x", "cust-1", fulfillment.StatusPending, time.Minute, -5)
	store.EXPECT().GetOrder(ctx, "x").Return(broken, nil)

	view, err := f.GetOrder(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, view.ETA)
	assert.Equal(t, "x", view.ID)
}
