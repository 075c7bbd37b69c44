package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "gotrak.TrackerService"

type TrackerServiceClient interface {
	GetStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error)
	SetAcquisition(ctx context.Context, in *AcquisitionRequest, opts ...grpc.CallOption) (*StatusResponse, error)
	ListSensors(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SensorListResponse, error)
	GetFrame(ctx context.Context, in *FrameRequest, opts ...grpc.CallOption) (*FrameResponse, error)
	GetFrameStream(ctx context.Context, in *FrameRequest, opts ...grpc.CallOption) (TrackerService_GetFrameStreamClient, error)
}

type trackerServiceClient struct{ cc grpc.ClientConnInterface }

func NewTrackerServiceClient(cc grpc.ClientConnInterface) TrackerServiceClient {
	return &trackerServiceClient{cc}
}

func (c *trackerServiceClient) GetStatus(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetStatus", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerServiceClient) SetAcquisition(ctx context.Context, in *AcquisitionRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/SetAcquisition", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerServiceClient) ListSensors(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SensorListResponse, error) {
	out := new(SensorListResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ListSensors", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerServiceClient) GetFrame(ctx context.Context, in *FrameRequest, opts ...grpc.CallOption) (*FrameResponse, error) {
	out := new(FrameResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetFrame", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *trackerServiceClient) GetFrameStream(ctx context.Context, in *FrameRequest, opts ...grpc.CallOption) (TrackerService_GetFrameStreamClient, error) {
	stream, err := c.cc.NewStream(ctx, &frameStreamDesc, "/"+serviceName+"/GetFrameStream", opts...)
	if err != nil {
		return nil, err
	}
	x := &trackerServiceGetFrameStreamClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

var frameStreamDesc = grpc.StreamDesc{
	StreamName:    "GetFrameStream",
	ServerStreams: true,
}

type TrackerService_GetFrameStreamClient interface {
	Recv() (*FrameStreamResponse, error)
	grpc.ClientStream
}

type trackerServiceGetFrameStreamClient struct{ grpc.ClientStream }

func (x *trackerServiceGetFrameStreamClient) Recv() (*FrameStreamResponse, error) {
	m := new(FrameStreamResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type TrackerServiceServer interface {
	GetStatus(context.Context, *Empty) (*StatusResponse, error)
	SetAcquisition(context.Context, *AcquisitionRequest) (*StatusResponse, error)
	ListSensors(context.Context, *Empty) (*SensorListResponse, error)
	GetFrame(context.Context, *FrameRequest) (*FrameResponse, error)
	GetFrameStream(*FrameRequest, TrackerService_GetFrameStreamServer) error
	mustEmbedUnimplementedTrackerServiceServer()
}

type UnimplementedTrackerServiceServer struct{}

func (UnimplementedTrackerServiceServer) GetStatus(context.Context, *Empty) (*StatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetStatus not implemented")
}
func (UnimplementedTrackerServiceServer) SetAcquisition(context.Context, *AcquisitionRequest) (*StatusResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SetAcquisition not implemented")
}
func (UnimplementedTrackerServiceServer) ListSensors(context.Context, *Empty) (*SensorListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListSensors not implemented")
}
func (UnimplementedTrackerServiceServer) GetFrame(context.Context, *FrameRequest) (*FrameResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetFrame not implemented")
}
func (UnimplementedTrackerServiceServer) GetFrameStream(*FrameRequest, TrackerService_GetFrameStreamServer) error {
	return status.Errorf(codes.Unimplemented, "method GetFrameStream not implemented")
}
func (UnimplementedTrackerServiceServer) mustEmbedUnimplementedTrackerServiceServer() {}

type TrackerService_GetFrameStreamServer interface {
	Send(*FrameStreamResponse) error
	grpc.ServerStream
}

type trackerServiceGetFrameStreamServer struct{ grpc.ServerStream }

func (x *trackerServiceGetFrameStreamServer) Send(m *FrameStreamResponse) error {
	return x.ServerStream.SendMsg(m)
}

func RegisterTrackerServiceServer(s grpc.ServiceRegistrar, srv TrackerServiceServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*TrackerServiceServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetStatus",
				Handler: func(_ interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
					in := new(Empty)
					if err := dec(in); err != nil {
						return nil, err
					}
					return srv.GetStatus(ctx, in)
				},
			},
			{
				MethodName: "SetAcquisition",
				Handler: func(_ interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
					in := new(AcquisitionRequest)
					if err := dec(in); err != nil {
						return nil, err
					}
					return srv.SetAcquisition(ctx, in)
				},
			},
			{
				MethodName: "ListSensors",
				Handler: func(_ interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
					in := new(Empty)
					if err := dec(in); err != nil {
						return nil, err
					}
					return srv.ListSensors(ctx, in)
				},
			},
			{
				MethodName: "GetFrame",
				Handler: func(_ interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
					in := new(FrameRequest)
					if err := dec(in); err != nil {
						return nil, err
					}
					return srv.GetFrame(ctx, in)
				},
			},
		},
		Streams: []grpc.StreamDesc{
			{
				StreamName: "GetFrameStream",
				Handler: func(_ interface{}, stream grpc.ServerStream) error {
					in := new(FrameRequest)
					if err := stream.RecvMsg(in); err != nil {
						return err
					}
					return srv.GetFrameStream(in, &trackerServiceGetFrameStreamServer{stream})
				},
				ServerStreams: true,
			},
		},
		Metadata: "tracker.proto",
	}, srv)
}
