package infrastructure

import (
	"context"

	"google.golang.org/grpc"

	"storefront/internal/cart/application"
	"storefront/pkg/logger"
)

const (
	// CartServiceName is the fully qualified gRPC service name
	CartServiceName = "storefront.cart.v1.CartService"
	// GetCartTotalsMethod is the full method name of GetCartTotals
	GetCartTotalsMethod = "/" + CartServiceName + "/GetCartTotals"
)

// GetCartTotalsRequest asks for the totals of a session's cart. An empty
// SessionID falls back to the x-session-id call metadata.
type GetCartTotalsRequest struct {
	SessionID string `json:"session_id"`
}

// GetCartTotalsResponse carries amounts as decimal strings in rupees
type GetCartTotalsResponse struct {
	SessionID      string `json:"session_id"`
	Version        int64  `json:"version"`
	TotalQuantity  int32  `json:"total_quantity"`
	CouponCode     string `json:"coupon_code,omitempty"`
	Subtotal       string `json:"subtotal"`
	Discount       string `json:"discount"`
	Shipping       string `json:"shipping"`
	Total          string `json:"total"`
	DiscountCapped bool   `json:"discount_capped"`
}

// CartServiceServer is the server API for CartService
type CartServiceServer interface {
	GetCartTotals(ctx context.Context, req *GetCartTotalsRequest) (*GetCartTotalsResponse, error)
}

// CartServiceDesc describes CartService for grpc.Server.RegisterService.
// Messages travel with the json codec from pkg/grpc.
var CartServiceDesc = grpc.ServiceDesc{
	ServiceName: CartServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCartTotals",
			Handler:    getCartTotalsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storefront/cart/v1/cart.proto",
}

func getCartTotalsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCartTotalsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CartServiceServer).GetCartTotals(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetCartTotalsMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CartServiceServer).GetCartTotals(ctx, req.(*GetCartTotalsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// GRPCServer implements CartServiceServer
type GRPCServer struct {
	useCase *application.CartUseCase
}

// NewGRPCServer creates a new gRPC server
func NewGRPCServer(useCase *application.CartUseCase) *GRPCServer {
	return &GRPCServer{useCase: useCase}
}

// Register adds the service to s
func (s *GRPCServer) Register(server *grpc.Server) {
	server.RegisterService(&CartServiceDesc, s)
}

// GetCartTotals implements CartServiceServer.GetCartTotals
func (s *GRPCServer) GetCartTotals(ctx context.Context, req *GetCartTotalsRequest) (*GetCartTotalsResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = logger.GetSessionID(ctx)
	}
	output, err := s.useCase.GetTotals(ctx, application.GetCartInput{
		SessionID: sessionID,
	})
	if err != nil {
		return nil, err
	}

	totals := NewTotalsResponse(output.Totals)
	return &GetCartTotalsResponse{
		SessionID:      output.SessionID,
		Version:        output.Version,
		TotalQuantity:  int32(output.TotalQuantity),
		CouponCode:     output.CouponCode,
		Subtotal:       totals.Subtotal,
		Discount:       totals.Discount,
		Shipping:       totals.Shipping,
		Total:          totals.Total,
		DiscountCapped: totals.DiscountCapped,
	}, nil
}
