package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
)

const (
	// maxPatchBody caps a staff patch. Larger bodies are rejected with 413.
	maxPatchBody = 1 << 20
	// maxAuditBody caps the request copy kept in the audit entry.
	maxAuditBody = 64 << 10
)

// auditLogMiddleware records every staff request. Patches also capture the lifecycle
// fields before and after the change.
func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			Timestamp: time.Now().UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   handlerName(r),
			UserID:    staffFrom(r.Context()),
			OrderID:   mux.Vars(r)["id"],
		}

		if r.Body != nil && r.Method == http.MethodPatch {
			requestBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPatchBody))
			if err != nil {
				entry.StatusCode = rejectBody(w, err)
				s.AuditManager.LogEntry(r.Context(), entry)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(requestBody))
			entry.Request = string(requestBody[:min(len(requestBody), maxAuditBody)])

			if entry.OrderID != "" {
				s.captureLifecycle(r, &entry, requestBody)
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		if r.Method != http.MethodGet {
			entry.Response = string(wrw.GetBody())
		}

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func rejectBody(w http.ResponseWriter, err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return http.StatusRequestEntityTooLarge
	}
	respondError(w, http.StatusBadRequest, "Invalid request body")
	return http.StatusBadRequest
}

func (s *Server) captureLifecycle(r *http.Request, entry *AuditLogEntry, body []byte) {
	var patch fulfillment.Patch
	if err := json.Unmarshal(body, &patch); err != nil || !patch.TouchesLifecycle() {
		return
	}

	order, err := s.orders.GetOrder(r.Context(), entry.OrderID)
	if err != nil {
		return
	}
	if patch.Status != nil {
		entry.OldStatus = string(order.Status)
		entry.NewStatus = *patch.Status
	}
	if patch.Stage != nil {
		entry.OldStage = string(order.Stage)
		entry.NewStage = *patch.Stage
	}
}

func handlerName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
		return route.GetName()
	}
	return "unknown"
}
