package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository/postgresql"
)

func TestHistoryRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	changedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		entry := &repository.HistoryEntry{
			OrderID:   "order-123",
			Field:     "stage",
			OldValue:  "RECEIVED",
			NewValue:  "PREPARING",
			ChangedBy: "admin",
			ChangedAt: changedAt,
		}

		mockTx.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(entry.OrderID),
			gomock.Eq(entry.Field),
			gomock.Eq(entry.OldValue),
			gomock.Eq(entry.NewValue),
			gomock.Eq(entry.ChangedBy),
			gomock.Eq(entry.ChangedAt),
		).Return(nil, nil)

		assert.NoError(t, repo.CreateTx(ctx, mockTx, entry))
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		expectedErr := errors.New("database error")
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)

		err := repo.CreateTx(ctx, mockTx, &repository.HistoryEntry{OrderID: "order-123"})
		assert.Equal(t, expectedErr, err)
	})
}

func TestHistoryRepo_GetByOrderID(t *testing.T) {
	ctx := context.Background()

	t.Run("entries found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		expected := []*repository.HistoryEntry{
			{ID: 1, OrderID: "order-123", Field: "status", OldValue: "PENDING", NewValue: "CONFIRMED"},
			{ID: 2, OrderID: "order-123", Field: "stage", OldValue: "RECEIVED", NewValue: "PREPARING"},
		}

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("order-123")).
			DoAndReturn(func(_ context.Context, dest *[]*repository.HistoryEntry, _ string, _ string) error {
				*dest = expected
				return nil
			})

		entries, err := repo.GetByOrderID(ctx, "order-123")
		assert.NoError(t, err)
		assert.Equal(t, expected, entries)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewHistoryRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(expectedErr)

		entries, err := repo.GetByOrderID(ctx, "order-123")
		assert.Equal(t, expectedErr, err)
		assert.Nil(t, entries)
	})
}
