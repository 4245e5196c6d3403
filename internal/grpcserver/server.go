//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_grpcserver
package grpcserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/feed"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

type Feed interface {
	ListOrders(ctx context.Context, q storage.OrderQuery) ([]feed.AdminOrderView, error)
	ListOwnOrders(ctx context.Context, customerID string) (feed.CustomerFeed, error)
	GetOwnOrder(ctx context.Context, customerID, orderID string) (feed.TrackedOrder, error)
}

type OrderPatcher interface {
	PatchOrder(ctx context.Context, orderID string, patch fulfillment.Patch, actor string) (*fulfillment.Order, fulfillment.Changeset, error)
}

var _ TrackingServer = (*Server)(nil)

type Server struct {
	feed   Feed
	orders OrderPatcher
	logger *zap.Logger
	grpc   *grpc.Server
	health *health.Server
}

func NewServer(f Feed, orders OrderPatcher, logger *zap.Logger) *Server {
	return &Server{
		feed:   f,
		orders: orders,
		logger: logger,
	}
}

// Run serves Tracking and the standard health service until ctx is cancelled.
func (s *Server) Run(ctx context.Context, port string) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port %s: %w", port, err)
	}

	s.grpc = grpc.NewServer()
	s.health = health.NewServer()
	RegisterTrackingServer(s.grpc, s)
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.health.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info("Shutting down gRPC server")
		s.health.Shutdown()
		s.grpc.GracefulStop()
	}()

	s.logger.Info("gRPC server starting", zap.String("port", port))
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

func (s *Server) ListOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	l := s.logger.With(zap.String("rpc_method", "ListOrders"))
	l.Debug("RPC call received")

	q := storage.OrderQuery{Search: stringField(req, "q")}
	if raw := stringField(req, "status"); raw != "" {
		st, err := fulfillment.ParseStatus(raw)
		if err != nil {
			return nil, s.toStatus(l, "list_orders", err)
		}
		q.Status = &st
	}
	if limit := int(numberField(req, "limit")); limit > 0 {
		q.Limit = limit
	}

	views, err := s.feed.ListOrders(ctx, q)
	if err != nil {
		return nil, s.toStatus(l, "list_orders", err)
	}
	return toStruct(map[string]any{"orders": views})
}

func (s *Server) ListOwnOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	customerID := stringField(req, "customerId")
	l := s.logger.With(zap.String("rpc_method", "ListOwnOrders"), zap.String("customer_id", customerID))
	l.Debug("RPC call received")

	if customerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customerId is required")
	}

	result, err := s.feed.ListOwnOrders(ctx, customerID)
	if err != nil {
		return nil, s.toStatus(l, "list_own_orders", err)
	}
	return toStruct(result)
}

func (s *Server) GetOwnOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	customerID := stringField(req, "customerId")
	orderID := stringField(req, "orderId")
	l := s.logger.With(zap.String("rpc_method", "GetOwnOrder"), zap.String("customer_id", customerID))
	l.Debug("RPC call received")

	if customerID == "" || orderID == "" {
		return nil, status.Error(codes.InvalidArgument, "customerId and orderId are required")
	}

	order, err := s.feed.GetOwnOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, s.toStatus(l, "get_own_order", err)
	}
	return toStruct(order)
}

func (s *Server) PatchOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	orderID := stringField(req, "orderId")
	actor := stringField(req, "actor")
	l := s.logger.With(zap.String("rpc_method", "PatchOrder"), zap.String("order_id", orderID), zap.String("actor", actor))
	l.Debug("RPC call received")

	if orderID == "" || actor == "" {
		return nil, status.Error(codes.InvalidArgument, "orderId and actor are required")
	}

	var patch fulfillment.Patch
	if raw := req.GetFields()["patch"].GetStructValue(); raw != nil {
		body, err := raw.MarshalJSON()
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid patch: %v", err)
		}
		if patch, err = fulfillment.DecodePatch(bytes.NewReader(body)); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid patch: %v", err)
		}
	}

	order, changes, err := s.orders.PatchOrder(ctx, orderID, patch, actor)
	if err != nil {
		return nil, s.toStatus(l, "patch_order", err)
	}
	if changes == nil {
		changes = fulfillment.Changeset{}
	}
	return toStruct(map[string]any{"order": order, "changes": changes})
}

func (s *Server) toStatus(l *zap.Logger, operation string, err error) error {
	switch {
	case errors.Is(err, fulfillment.ErrOrderClosed):
		return status.Error(codes.FailedPrecondition, err.Error())
	case fulfillment.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, fulfillment.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, fulfillment.ErrUnauthorized):
		return status.Error(codes.PermissionDenied, fulfillment.ErrUnauthorized.Error())
	default:
		l.Error("RPC failed", zap.Error(err))
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		return status.Error(codes.Internal, "internal error")
	}
}

// toStruct converts v through its JSON form so the payload matches the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(body); err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func numberField(req *structpb.Struct, key string) float64 {
	return req.GetFields()[key].GetNumberValue()
}
