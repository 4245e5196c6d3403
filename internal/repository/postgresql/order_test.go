package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository/postgresql"
)

func testOrder() *repository.Order {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return &repository.Order{
		ID:           "order-123",
		CustomerID:   "customer-456",
		CustomerName: "Ada",
		Items: repository.OrderItems{
			{Name: "Margherita", UnitPrice: decimal.RequireFromString("9.50"), Quantity: 2, PrepMinutes: 12},
		},
		Subtotal:        decimal.RequireFromString("19.00"),
		DeliveryFee:     decimal.RequireFromString("3.50"),
		Total:           decimal.RequireFromString("22.50"),
		PaymentMethod:   "card",
		DeliveryAddress: "1 Main St",
		Phone:           "+100000",
		Status:          "PENDING",
		Stage:           "RECEIVED",
		EstimatedTime:   32,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestOrderRepo_CreateTx(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)
		order := testOrder()

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(order.ID),
			gomock.Eq(order.CustomerID),
			gomock.Eq(order.CustomerName),
			gomock.Eq(order.Items),
			gomock.Eq(order.Subtotal),
			gomock.Eq(order.DeliveryFee),
			gomock.Eq(order.Total),
			gomock.Eq(order.PaymentMethod),
			gomock.Eq(order.DeliveryAddress),
			gomock.Eq(order.Phone),
			gomock.Eq(order.CustomerNote),
			gomock.Eq(order.Status),
			gomock.Eq(order.Stage),
			gomock.Eq(order.EstimatedTime),
			gomock.Eq(order.HoldMinutes),
			gomock.Eq(order.IsOnHold),
			gomock.Eq(order.QueuePosition),
			gomock.Eq(order.AssignedTo),
			gomock.Eq(order.AdminNotes),
			gomock.Eq(order.CreatedAt),
			gomock.Eq(order.UpdatedAt),
		).Return(nil, nil)

		err := repo.CreateTx(ctx, mockTx, order)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		expectedErr := errors.New("database error")
		anyArgs := make([]any, 23)
		for i := range anyArgs {
			anyArgs[i] = gomock.Any()
		}
		mockTx.EXPECT().Exec(anyArgs[0], anyArgs[1], anyArgs[2:]...).Return(nil, expectedErr)

		err := repo.CreateTx(ctx, mockTx, testOrder())
		assert.Equal(t, expectedErr, err)
	})
}

func TestOrderRepo_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("order found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)
		expected := testOrder()

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(expected.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Order, _ string, _ string) error {
				*dest = *expected
				return nil
			})

		order, err := repo.GetByID(ctx, expected.ID)
		assert.NoError(t, err)
		assert.Equal(t, expected, order)
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgx.ErrNoRows)

		order, err := repo.GetByID(ctx, "non-existent-id")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, order)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedErr)

		order, err := repo.GetByID(ctx, "order-123")
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, order)
	})
}

func TestOrderRepo_GetByIDTx(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)
		expected := testOrder()

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(expected.ID)).
			DoAndReturn(func(_ context.Context, dest *repository.Order, query string, _ string) error {
				assert.Contains(t, query, "FOR UPDATE")
				*dest = *expected
				return nil
			})

		order, err := repo.GetByIDTx(ctx, mockTx, expected.ID)
		assert.NoError(t, err)
		assert.Equal(t, expected, order)
	})

	t.Run("order not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(pgx.ErrNoRows)

		order, err := repo.GetByIDTx(ctx, mockTx, "missing")
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
		assert.Nil(t, order)
	})
}

func TestOrderRepo_UpdateFieldsTx(t *testing.T) {
	ctx := context.Background()

	t.Run("writes only the given columns in a stable order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)
		updatedAt := time.Date(2025, 1, 1, 12, 5, 0, 0, time.UTC)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(25), gomock.Eq("PREPARING"), gomock.Eq(updatedAt), gomock.Eq("order-123")).
			DoAndReturn(func(_ context.Context, query string, _ ...any) (pgconn.CommandTag, error) {
				assert.Equal(t, "UPDATE orders SET estimated_time = $1, stage = $2, updated_at = $3 WHERE id = $4", query)
				return pgconn.CommandTag("UPDATE 1"), nil
			})

		err := repo.UpdateFieldsTx(ctx, mockTx, "order-123", map[string]any{
			"stage":          "PREPARING",
			"updated_at":     updatedAt,
			"estimated_time": 25,
		})
		assert.NoError(t, err)
	})

	t.Run("immutable column is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		err := repo.UpdateFieldsTx(ctx, mockTx, "order-123", map[string]any{"total": "0"})
		assert.ErrorContains(t, err, "not updatable")
	})

	t.Run("no fields is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		assert.NoError(t, repo.UpdateFieldsTx(ctx, mockTx, "order-123", nil))
	})

	t.Run("missing row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := repo.UpdateFieldsTx(ctx, mockTx, "missing", map[string]any{"admin_notes": "x"})
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestOrderRepo_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name          string
		filter        repository.OrderFilter
		expectedWhere string
		expectedArgs  []any
	}{
		{
			name:          "no filter",
			filter:        repository.OrderFilter{},
			expectedWhere: " ORDER BY created_at DESC",
		},
		{
			name:          "status and search",
			filter:        repository.OrderFilter{Status: "PENDING", Search: "50%_off"},
			expectedWhere: " WHERE status = $1 AND (id ILIKE $2 OR phone ILIKE $2 OR delivery_address ILIKE $2 OR customer_name ILIKE $2) ORDER BY created_at DESC",
			expectedArgs:  []any{"PENDING", `%50\%\_off%`},
		},
		{
			name:          "customer active with limit",
			filter:        repository.OrderFilter{CustomerID: "c-1", ActiveOnly: true, Limit: 5},
			expectedWhere: " WHERE customer_id = $1 AND status NOT IN ('COMPLETED', 'CANCELLED') ORDER BY created_at DESC LIMIT $2",
			expectedArgs:  []any{"c-1", 5},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockDB := mock_database.NewMockDB(ctrl)
			repo := postgresql.NewOrderRepo(mockDB)

			matchers := make([]any, len(tc.expectedArgs))
			for i, a := range tc.expectedArgs {
				matchers[i] = gomock.Eq(a)
			}

			mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), matchers...).
				DoAndReturn(func(_ context.Context, dest *[]*repository.Order, query string, _ ...any) error {
					assert.True(t, len(query) > len(tc.expectedWhere))
					assert.Equal(t, tc.expectedWhere, query[len(query)-len(tc.expectedWhere):])
					*dest = []*repository.Order{testOrder()}
					return nil
				})

			orders, err := repo.List(ctx, tc.filter)
			require.NoError(t, err)
			assert.Len(t, orders, 1)
		})
	}
}

func TestOrderRepo_GetAllActiveOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewOrderRepo(mockDB)

	mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	_, err := repo.GetAllActiveOrders(context.Background())
	assert.ErrorContains(t, err, "failed to get all active orders")
}
