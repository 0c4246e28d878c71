package infrastructure

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"storefront/internal/cart/application"
	"storefront/internal/cart/domain"
	grpcpkg "storefront/pkg/grpc"
	"storefront/pkg/logger"
)

func startCartServer(t *testing.T, uc *application.CartUseCase, opts ...grpc.DialOption) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	server := grpc.NewServer(grpc.UnaryInterceptor(grpcpkg.UnaryServerInterceptor(logger.NewNop(), 5*time.Second)))
	NewGRPCServer(uc).Register(server)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	opts = append([]grpc.DialOption{
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(grpcpkg.JSONCodecName)),
	}, opts...)
	conn, err := grpc.DialContext(context.Background(), "bufnet", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestGRPC_GetCartTotals(t *testing.T) {
	uc := newCartUseCase(t)
	_, err := uc.AddItem(context.Background(), application.AddItemInput{
		SessionID: testSession,
		Variant:   domain.ProductVariant{ProductID: "p", VariantID: "v", ProductName: "Whey"},
		UnitPrice: decimal.NewFromInt(500),
		Quantity:  2,
	})
	require.NoError(t, err)
	_, err = uc.ApplyCoupon(context.Background(), application.ApplyCouponInput{SessionID: testSession, Code: "SAVE20"})
	require.NoError(t, err)
	conn := startCartServer(t, uc)

	var resp GetCartTotalsResponse
	err = conn.Invoke(context.Background(), GetCartTotalsMethod, &GetCartTotalsRequest{SessionID: testSession}, &resp)

	require.NoError(t, err)
	assert.Equal(t, int32(2), resp.TotalQuantity)
	assert.Equal(t, "SAVE20", resp.CouponCode)
	assert.Equal(t, "1000.00", resp.Subtotal)
	assert.Equal(t, "200.00", resp.Discount)
	assert.Equal(t, "800.00", resp.Total)
	assert.False(t, resp.DiscountCapped)
}

func TestGRPC_GetCartTotals_MissingSession(t *testing.T) {
	conn := startCartServer(t, newCartUseCase(t))

	var resp GetCartTotalsResponse
	err := conn.Invoke(context.Background(), GetCartTotalsMethod, &GetCartTotalsRequest{}, &resp)

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGRPC_SessionFromMetadata(t *testing.T) {
	// Arrange
	uc := newCartUseCase(t)
	_, err := uc.AddItem(context.Background(), application.AddItemInput{
		SessionID: testSession,
		Variant:   domain.ProductVariant{ProductID: "p", VariantID: "v", ProductName: "Whey"},
		UnitPrice: decimal.NewFromInt(250),
		Quantity:  3,
	})
	require.NoError(t, err)
	conn := startCartServer(t, uc)
	ctx := metadata.AppendToOutgoingContext(context.Background(),
		grpcpkg.SessionIDMetadataKey, testSession,
		grpcpkg.TraceIDMetadataKey, "trace-grpc",
	)

	// Act
	var resp GetCartTotalsResponse
	err = conn.Invoke(ctx, GetCartTotalsMethod, &GetCartTotalsRequest{}, &resp)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testSession, resp.SessionID)
	assert.Equal(t, "750.00", resp.Subtotal)
}

func TestGRPC_MalformedSessionMetadataIsIgnored(t *testing.T) {
	conn := startCartServer(t, newCartUseCase(t))
	ctx := metadata.AppendToOutgoingContext(context.Background(), grpcpkg.SessionIDMetadataKey, "not-a-uuid")

	var resp GetCartTotalsResponse
	err := conn.Invoke(ctx, GetCartTotalsMethod, &GetCartTotalsRequest{}, &resp)

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
