//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
//go:generate mockgen -source ./audit.go -destination=./mocks/audit.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/feed"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

type OrderService interface {
	CreateOrder(ctx context.Context, p storage.Placement) (*fulfillment.Order, error)
	GetOrder(ctx context.Context, orderID string) (*fulfillment.Order, error)
	PatchOrder(ctx context.Context, orderID string, patch fulfillment.Patch, actor string) (*fulfillment.Order, fulfillment.Changeset, error)
}

type TrackingFeed interface {
	ListOrders(ctx context.Context, q storage.OrderQuery) ([]feed.AdminOrderView, error)
	GetOrder(ctx context.Context, orderID string) (feed.AdminOrderView, error)
	GetOrderHistory(ctx context.Context, orderID string) ([]storage.HistoryEntry, error)
	ListOwnOrders(ctx context.Context, customerID string) (feed.CustomerFeed, error)
	GetOwnOrder(ctx context.Context, customerID, orderID string) (feed.TrackedOrder, error)
	PollInterval() time.Duration
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

type Server struct {
	orders       OrderService
	feed         TrackingFeed
	userRepo     UserRepo
	cfg          config.HTTPConfig
	jwtSecret    []byte
	validate     *validator.Validate
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(
	orders OrderService,
	trackingFeed TrackingFeed,
	userRepo UserRepo,
	auditManager *AuditManager,
	cfg config.HTTPConfig,
	jwtSecret string,
	logger *zap.Logger,
) *Server {
	return &Server{
		orders:       orders,
		feed:         trackingFeed,
		userRepo:     userRepo,
		cfg:          cfg,
		jwtSecret:    []byte(jwtSecret),
		validate:     validator.New(),
		logger:       logger,
		AuditManager: auditManager,
	}
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	s.AuditManager.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", zap.String("port", s.cfg.Port))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("HTTP server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	return nil
}

func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet).Name("handleHealth")

	customer := r.NewRoute().Subrouter()
	customer.Use(s.customerAuthMiddleware)
	customer.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost).Name("handleCreateOrder")
	customer.HandleFunc("/me/orders", s.handleListOwnOrders).Methods(http.MethodGet).Name("handleListOwnOrders")
	customer.HandleFunc("/me/orders/{id}", s.handleGetOwnOrder).Methods(http.MethodGet).Name("handleGetOwnOrder")

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(s.basicAuthMiddleware, s.auditLogMiddleware)
	admin.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet).Name("handleListOrders")
	admin.HandleFunc("/orders/stream", s.handleOrderStream).Methods(http.MethodGet).Name("handleOrderStream")
	admin.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet).Name("handleGetOrder")
	admin.HandleFunc("/orders/{id}", s.handlePatchOrder).Methods(http.MethodPatch).Name("handlePatchOrder")
	admin.HandleFunc("/orders/{id}/history", s.handleOrderHistory).Methods(http.MethodGet).Name("handleOrderHistory")

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			zap.L().Error("Failed to encode response", zap.Error(err))
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps service errors to HTTP statuses. Unclassified errors are
// logged and reported as a bare internal error.
func (s *Server) respondDomainError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	switch {
	case errors.Is(err, fulfillment.ErrOrderClosed):
		respondError(w, http.StatusConflict, err.Error())
	case fulfillment.IsValidation(err):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": err.Error(),
			"field": string(fulfillment.FieldOf(err)),
		})
	case errors.Is(err, storage.ErrInvalidOrder):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, fulfillment.ErrNotFound):
		respondError(w, http.StatusNotFound, fulfillment.ErrNotFound.Error())
	case errors.Is(err, fulfillment.ErrUnauthorized):
		respondError(w, http.StatusForbidden, fulfillment.ErrUnauthorized.Error())
	case errors.As(err, new(badParamError)):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		s.logger.Error("Request failed",
			zap.String("operation", operation),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
