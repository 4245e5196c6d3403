package grpcserver

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/feed"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	mock_grpcserver "gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/grpcserver/mocks"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *mock_grpcserver.MockFeed, *mock_grpcserver.MockOrderPatcher) {
	ctrl := gomock.NewController(t)
	f := mock_grpcserver.NewMockFeed(ctrl)
	p := mock_grpcserver.NewMockOrderPatcher(ctrl)
	return NewServer(f, p, zap.NewNop()), f, p
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestServer_PatchOrder(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		req      map[string]any
		setup    func(p *mock_grpcserver.MockOrderPatcher)
		wantCode codes.Code
	}{
		{
			name: "hold and queue position",
			req: map[string]any{
				"orderId": "order-1",
				"actor":   "ops-bot",
				"patch":   map[string]any{"holdMinutes": 10, "queuePosition": nil, "stage": "preparing"},
			},
			setup: func(p *mock_grpcserver.MockOrderPatcher) {
				p.EXPECT().PatchOrder(ctx, "order-1", gomock.Any(), "ops-bot").DoAndReturn(
					func(_ context.Context, _ string, patch fulfillment.Patch, _ string) (*fulfillment.Order, fulfillment.Changeset, error) {
						require.NotNil(t, patch.HoldMinutes)
						assert.Equal(t, 10, *patch.HoldMinutes)
						assert.True(t, patch.QueuePosition.Set)
						assert.Nil(t, patch.QueuePosition.Value)
						assert.Equal(t, "preparing", *patch.Stage)
						return &fulfillment.Order{ID: "order-1"}, nil, nil
					})
			},
			wantCode: codes.OK,
		},
		{
			name: "closed order",
			req:  map[string]any{"orderId": "order-1", "actor": "ops-bot", "patch": map[string]any{"status": "PENDING"}},
			setup: func(p *mock_grpcserver.MockOrderPatcher) {
				p.EXPECT().PatchOrder(ctx, "order-1", gomock.Any(), "ops-bot").Return(nil, nil, fulfillment.ErrOrderClosed)
			},
			wantCode: codes.FailedPrecondition,
		},
		{
			name:     "unknown patch key",
			req:      map[string]any{"orderId": "order-1", "actor": "ops-bot", "patch": map[string]any{"stauts": "CANCELLED"}},
			setup:    func(*mock_grpcserver.MockOrderPatcher) {},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "invalid value",
			req:  map[string]any{"orderId": "order-1", "actor": "ops-bot", "patch": map[string]any{"status": "NOPE"}},
			setup: func(p *mock_grpcserver.MockOrderPatcher) {
				p.EXPECT().PatchOrder(ctx, "order-1", gomock.Any(), "ops-bot").
					Return(nil, nil, &fulfillment.FieldError{Field: fulfillment.FieldStatus, Err: fulfillment.ErrInvalidEnumValue})
			},
			wantCode: codes.InvalidArgument,
		},
		{
			name:     "missing actor",
			req:      map[string]any{"orderId": "order-1"},
			setup:    func(*mock_grpcserver.MockOrderPatcher) {},
			wantCode: codes.InvalidArgument,
		},
		{
			name: "storage failure is not leaked",
			req:  map[string]any{"orderId": "order-1", "actor": "ops-bot"},
			setup: func(p *mock_grpcserver.MockOrderPatcher) {
				p.EXPECT().PatchOrder(ctx, "order-1", gomock.Any(), "ops-bot").Return(nil, nil, errors.New("pq: connection reset"))
			},
			wantCode: codes.Internal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, p := newTestServer(t)
			tt.setup(p)

			resp, err := s.PatchOrder(ctx, mustStruct(t, tt.req))
			assert.Equal(t, tt.wantCode, status.Code(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, "order-1", resp.GetFields()["order"].GetStructValue().GetFields()["id"].GetStringValue())
				assert.NotNil(t, resp.GetFields()["changes"].GetListValue())
			}
			if tt.wantCode == codes.Internal {
				assert.NotContains(t, err.Error(), "pq:")
			}
		})
	}
}

func TestServer_GetOwnOrder(t *testing.T) {
	ctx := context.Background()
	s, f, _ := newTestServer(t)

	f.EXPECT().GetOwnOrder(ctx, "cust-1", "order-2").Return(feed.TrackedOrder{}, fulfillment.ErrUnauthorized)

	_, err := s.GetOwnOrder(ctx, mustStruct(t, map[string]any{"customerId": "cust-1", "orderId": "order-2"}))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	assert.Equal(t, "access denied", status.Convert(err).Message())
}

func TestServer_OverTheWire(t *testing.T) {
	s, f, _ := newTestServer(t)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterTrackingServer(srv, s)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()

	f.EXPECT().ListOrders(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q storage.OrderQuery) ([]feed.AdminOrderView, error) {
			require.NotNil(t, q.Status)
			assert.Equal(t, fulfillment.StatusPending, *q.Status)
			assert.Equal(t, 5, q.Limit)
			return []feed.AdminOrderView{{Order: &fulfillment.Order{ID: "order-1", AdminNotes: "vip"}}}, nil
		})

	resp, err := Invoke(ctx, conn, "ListOrders", mustStruct(t, map[string]any{"status": "pending", "limit": 5}))
	require.NoError(t, err)
	orders := resp.GetFields()["orders"].GetListValue().GetValues()
	require.Len(t, orders, 1)
	assert.Equal(t, "vip", orders[0].GetStructValue().GetFields()["adminNotes"].GetStringValue())

	f.EXPECT().ListOwnOrders(gomock.Any(), "cust-1").Return(feed.CustomerFeed{
		Active:              []feed.TrackedOrder{},
		History:             []feed.TrackedOrder{},
		PollIntervalSeconds: 0,
	}, nil)

	resp, err = Invoke(ctx, conn, "ListOwnOrders", mustStruct(t, map[string]any{"customerId": "cust-1"}))
	require.NoError(t, err)
	assert.Zero(t, resp.GetFields()["pollIntervalSeconds"].GetNumberValue())

	_, err = Invoke(ctx, conn, "ListOrders", mustStruct(t, map[string]any{"status": "SHIPPED"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
