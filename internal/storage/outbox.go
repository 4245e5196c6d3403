package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

func newOrderEvent(eventType, topic string, o *fulfillment.Order, changes fulfillment.Changeset, actor string, now time.Time) (*repository.OutboxTask, error) {
	payload := repository.OrderEventPayload{
		EventID:       uuid.New(),
		Type:          eventType,
		OrderID:       o.ID,
		CustomerID:    o.CustomerID,
		Status:        string(o.Status),
		Stage:         string(o.Stage),
		EstimatedTime: o.EstimatedTime,
		HoldMinutes:   o.HoldMinutes,
		IsOnHold:      o.IsOnHold,
		QueuePosition: o.QueuePosition,
		ChangedBy:     actor,
		OccurredAt:    now,
	}
	for _, c := range changes {
		payload.Changes = append(payload.Changes, repository.FieldChange{Field: string(c.Field), From: c.From, To: c.To})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return &repository.OutboxTask{
		Payload: body,
		Topic:   topic,
		Key:     o.ID,
	}, nil
}

// RecordAudit stores a batch of staff audit entries as outbox tasks on the audit topic.
func (s *Storage) RecordAudit(ctx context.Context, entries []repository.AuditLogPayload) error {
	if len(entries) == 0 {
		return nil
	}
	return db.InTx(ctx, s.db, func(tx db.Tx) error {
		for _, entry := range entries {
			body, err := json.Marshal(entry)
			if err != nil {
				return fmt.Errorf("failed to marshal audit entry: %w", err)
			}
			task := &repository.OutboxTask{
				Payload: body,
				Topic:   s.cfg.AuditTopic,
				Key:     entry.OrderID,
			}
			if err := s.outboxRepo.CreateTx(ctx, tx, task); err != nil {
				return fmt.Errorf("failed to enqueue audit entry: %w", err)
			}
		}
		return nil
	})
}
