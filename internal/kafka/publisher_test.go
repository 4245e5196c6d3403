package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/config"
	mock_db "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db/mocks"
	mock_kafka "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/kafka/mocks"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
	mock_storage "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage/mocks"
)

type publisherMocks struct {
	db       *mock_db.MockDB
	tx       *mock_db.MockTx
	repo     *mock_storage.MockOutboxTaskRepository
	producer *mock_kafka.MockProducer
}

func newTestPublisher(t *testing.T) (*Publisher, publisherMocks) {
	ctrl := gomock.NewController(t)
	m := publisherMocks{
		db:       mock_db.NewMockDB(ctrl),
		tx:       mock_db.NewMockTx(ctrl),
		repo:     mock_storage.NewMockOutboxTaskRepository(ctrl),
		producer: mock_kafka.NewMockProducer(ctrl),
	}
	p := NewPublisher(m.db, m.repo, m.producer, config.OutboxConfig{
		PollInterval: 10 * time.Millisecond,
		BatchSize:    10,
		MaxAttempts:  3,
	}, zap.NewNop())
	return p, m
}

func TestPublisher_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sends claimed tasks keyed by order", func(t *testing.T) {
		p, m := newTestPublisher(t)
		p.timeNow = func() time.Time { return fixed }

		task := &repository.OutboxTask{ID: uuid.New(), Topic: "order-events", Key: "order-1", Payload: []byte(`{"type":"order.updated"}`)}

		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.repo.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).Return([]*repository.OutboxTask{task}, nil)
		m.repo.EXPECT().UpdateTaskStatusTx(ctx, m.tx, task.ID, repository.TaskStatusProcessing, 0, nil, nil).Return(nil)
		m.tx.EXPECT().Commit(ctx).Return(nil)
		m.producer.EXPECT().SendMessage(ctx, "order-events", []byte("order-1"), task.Payload).Return(nil)
		m.repo.EXPECT().UpdateTaskStatus(gomock.Any(), m.db, task.ID, repository.TaskStatusDone, 0, nil, &fixed).Return(nil)

		require.NoError(t, p.processBatch(ctx))
	})

	t.Run("send failure marks the task failed", func(t *testing.T) {
		p, m := newTestPublisher(t)

		task := &repository.OutboxTask{ID: uuid.New(), Topic: "audit_logs", Attempts: 2, Payload: []byte(`{}`)}

		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.repo.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).Return([]*repository.OutboxTask{task}, nil)
		m.repo.EXPECT().UpdateTaskStatusTx(ctx, m.tx, task.ID, repository.TaskStatusProcessing, 2, nil, nil).Return(nil)
		m.tx.EXPECT().Commit(ctx).Return(nil)
		m.producer.EXPECT().SendMessage(ctx, "audit_logs", []byte(task.ID.String()), task.Payload).Return(errors.New("broker down"))
		m.repo.EXPECT().UpdateTaskStatus(gomock.Any(), m.db, task.ID, repository.TaskStatusFailed, 3, gomock.Any(), nil).DoAndReturn(
			func(_ context.Context, _ any, _ uuid.UUID, _ repository.TaskStatus, _ int, lastError *string, _ *time.Time) error {
				require.NotNil(t, lastError)
				assert.Equal(t, "broker down", *lastError)
				return nil
			})

		require.NoError(t, p.processBatch(ctx))
	})

	t.Run("shutdown mid batch releases unsent tasks", func(t *testing.T) {
		p, m := newTestPublisher(t)

		first := &repository.OutboxTask{ID: uuid.New(), Topic: "order-events", Key: "order-1", Attempts: 1}
		second := &repository.OutboxTask{ID: uuid.New(), Topic: "order-events", Key: "order-2"}

		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.repo.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).Return([]*repository.OutboxTask{first, second}, nil)
		m.repo.EXPECT().UpdateTaskStatusTx(ctx, m.tx, gomock.Any(), repository.TaskStatusProcessing, gomock.Any(), nil, nil).Return(nil).Times(2)
		m.tx.EXPECT().Commit(ctx).Return(nil)
		m.repo.EXPECT().UpdateTaskStatus(gomock.Any(), m.db, first.ID, repository.TaskStatusCreated, 1, nil, nil).Return(nil)
		m.repo.EXPECT().UpdateTaskStatus(gomock.Any(), m.db, second.ID, repository.TaskStatusCreated, 0, nil, nil).Return(nil)

		close(p.shutdownSignal)
		assert.ErrorIs(t, p.processBatch(ctx), errShutdown)
	})

	t.Run("cancelled context still records the outcome", func(t *testing.T) {
		p, m := newTestPublisher(t)
		cctx, cancel := context.WithCancel(ctx)
		defer cancel()

		task := &repository.OutboxTask{ID: uuid.New(), Topic: "order-events", Key: "order-1"}

		m.db.EXPECT().BeginTx(cctx).Return(m.tx, nil)
		m.repo.EXPECT().GetProcessableTasksTx(cctx, m.tx, 10, 3).Return([]*repository.OutboxTask{task}, nil)
		m.repo.EXPECT().UpdateTaskStatusTx(cctx, m.tx, task.ID, repository.TaskStatusProcessing, 0, nil, nil).Return(nil)
		m.tx.EXPECT().Commit(cctx).Return(nil)
		m.producer.EXPECT().SendMessage(cctx, "order-events", []byte("order-1"), gomock.Any()).DoAndReturn(
			func(context.Context, string, []byte, []byte) error {
				cancel()
				return context.Canceled
			})
		m.repo.EXPECT().UpdateTaskStatus(gomock.Any(), m.db, task.ID, repository.TaskStatusFailed, 1, gomock.Any(), nil).DoAndReturn(
			func(statusCtx context.Context, _ any, _ uuid.UUID, _ repository.TaskStatus, _ int, _ *string, _ *time.Time) error {
				assert.NoError(t, statusCtx.Err())
				return nil
			})

		require.NoError(t, p.processBatch(cctx))
	})

	t.Run("nothing to do", func(t *testing.T) {
		p, m := newTestPublisher(t)

		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.repo.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).Return(nil, nil)
		m.tx.EXPECT().Commit(ctx).Return(nil)

		require.NoError(t, p.processBatch(ctx))
	})

	t.Run("claim failure rolls back", func(t *testing.T) {
		p, m := newTestPublisher(t)

		m.db.EXPECT().BeginTx(ctx).Return(m.tx, nil)
		m.repo.EXPECT().GetProcessableTasksTx(ctx, m.tx, 10, 3).Return(nil, errors.New("db error"))
		m.tx.EXPECT().Rollback(ctx).Return(nil)

		assert.ErrorContains(t, p.processBatch(ctx), "failed to get processable tasks")
	})
}

func TestPublisher_Shutdown(t *testing.T) {
	p, m := newTestPublisher(t)
	p.config.PollInterval = time.Hour
	m.producer.EXPECT().Close().Return(nil)

	done := make(chan struct{})
	go func() {
		p.Run(context.Background())
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	p.Shutdown()
	p.Shutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}
