package server

import (
	"context"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository"
)

// AuditLogEntry records one staff request. Batches are handed to an AuditSink.
type AuditLogEntry = repository.AuditLogPayload

type AuditSink interface {
	RecordAudit(ctx context.Context, entries []repository.AuditLogPayload) error
}
