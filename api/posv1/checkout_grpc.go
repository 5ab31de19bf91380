package posv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CheckoutServiceName = "pos.v1.CheckoutService"

type CheckoutServiceServer interface {
	CommitSale(context.Context, *CommitRequest) (*CommitResponse, error)
	CommitPurchase(context.Context, *CommitRequest) (*CommitResponse, error)
}

type UnimplementedCheckoutServiceServer struct{}

func (UnimplementedCheckoutServiceServer) CommitSale(context.Context, *CommitRequest) (*CommitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CommitSale not implemented")
}
func (UnimplementedCheckoutServiceServer) CommitPurchase(context.Context, *CommitRequest) (*CommitResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CommitPurchase not implemented")
}

var CheckoutService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CheckoutServiceName,
	HandlerType: (*CheckoutServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CheckoutServiceName, "CommitSale", CheckoutServiceServer.CommitSale),
		unary(CheckoutServiceName, "CommitPurchase", CheckoutServiceServer.CommitPurchase),
	},
	Metadata: "pos/v1/checkout",
}

func RegisterCheckoutServiceServer(s grpc.ServiceRegistrar, srv CheckoutServiceServer) {
	s.RegisterService(&CheckoutService_ServiceDesc, srv)
}

type CheckoutServiceClient interface {
	CommitSale(ctx context.Context, in *CommitRequest, opts ...grpc.CallOption) (*CommitResponse, error)
	CommitPurchase(ctx context.Context, in *CommitRequest, opts ...grpc.CallOption) (*CommitResponse, error)
}

type checkoutServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCheckoutServiceClient(cc grpc.ClientConnInterface) CheckoutServiceClient {
	return &checkoutServiceClient{cc}
}

func (c *checkoutServiceClient) CommitSale(ctx context.Context, in *CommitRequest, opts ...grpc.CallOption) (*CommitResponse, error) {
	return invoke[CommitResponse](ctx, c.cc, "/"+CheckoutServiceName+"/CommitSale", in, opts)
}

func (c *checkoutServiceClient) CommitPurchase(ctx context.Context, in *CommitRequest, opts ...grpc.CallOption) (*CommitResponse, error) {
	return invoke[CommitResponse](ctx, c.cc, "/"+CheckoutServiceName+"/CommitPurchase", in, opts)
}
