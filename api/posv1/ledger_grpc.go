package posv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const LedgerServiceName = "pos.v1.LedgerService"

type LedgerServiceServer interface {
	ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error)
	GetTicket(context.Context, *GetTicketRequest) (*TicketResponse, error)
	GetSummary(context.Context, *GetSummaryRequest) (*SummaryResponse, error)
	StreamEntries(*StreamEntriesRequest, grpc.ServerStreamingServer[LedgerEntry]) error
}

type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) ListEntries(context.Context, *ListEntriesRequest) (*ListEntriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEntries not implemented")
}
func (UnimplementedLedgerServiceServer) GetTicket(context.Context, *GetTicketRequest) (*TicketResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTicket not implemented")
}
func (UnimplementedLedgerServiceServer) GetSummary(context.Context, *GetSummaryRequest) (*SummaryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSummary not implemented")
}
func (UnimplementedLedgerServiceServer) StreamEntries(*StreamEntriesRequest, grpc.ServerStreamingServer[LedgerEntry]) error {
	return status.Error(codes.Unimplemented, "method StreamEntries not implemented")
}

func streamEntriesHandler(srv any, stream grpc.ServerStream) error {
	in := new(StreamEntriesRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(LedgerServiceServer).StreamEntries(in, &grpc.GenericServerStream[StreamEntriesRequest, LedgerEntry]{ServerStream: stream})
}

var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: LedgerServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(LedgerServiceName, "ListEntries", LedgerServiceServer.ListEntries),
		unary(LedgerServiceName, "GetTicket", LedgerServiceServer.GetTicket),
		unary(LedgerServiceName, "GetSummary", LedgerServiceServer.GetSummary),
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamEntries",
			Handler:       streamEntriesHandler,
			ServerStreams: true,
		},
	},
	Metadata: "pos/v1/ledger",
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

type LedgerServiceClient interface {
	ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error)
	GetTicket(ctx context.Context, in *GetTicketRequest, opts ...grpc.CallOption) (*TicketResponse, error)
	GetSummary(ctx context.Context, in *GetSummaryRequest, opts ...grpc.CallOption) (*SummaryResponse, error)
	StreamEntries(ctx context.Context, in *StreamEntriesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[LedgerEntry], error)
}

type ledgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) LedgerServiceClient {
	return &ledgerServiceClient{cc}
}

func (c *ledgerServiceClient) ListEntries(ctx context.Context, in *ListEntriesRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c.cc, "/"+LedgerServiceName+"/ListEntries", in, opts)
}

func (c *ledgerServiceClient) GetTicket(ctx context.Context, in *GetTicketRequest, opts ...grpc.CallOption) (*TicketResponse, error) {
	return invoke[TicketResponse](ctx, c.cc, "/"+LedgerServiceName+"/GetTicket", in, opts)
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, in *GetSummaryRequest, opts ...grpc.CallOption) (*SummaryResponse, error) {
	return invoke[SummaryResponse](ctx, c.cc, "/"+LedgerServiceName+"/GetSummary", in, opts)
}

func (c *ledgerServiceClient) StreamEntries(ctx context.Context, in *StreamEntriesRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[LedgerEntry], error) {
	stream, err := c.cc.NewStream(ctx, &LedgerService_ServiceDesc.Streams[0], "/"+LedgerServiceName+"/StreamEntries", callOptions(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[StreamEntriesRequest, LedgerEntry]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
