package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "fraudcheck.FraudCheckService"

// Full method names, used by interceptors to decide which calls need a token.
const (
	MethodPing           = "/" + ServiceName + "/Ping"
	MethodRegisterUser   = "/" + ServiceName + "/RegisterUser"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodRefreshToken   = "/" + ServiceName + "/RefreshToken"
	MethodLogout         = "/" + ServiceName + "/Logout"
	MethodGetCurrentUser = "/" + ServiceName + "/GetCurrentUser"
	MethodListRecords    = "/" + ServiceName + "/ListRecords"
	MethodGetRecord      = "/" + ServiceName + "/GetRecord"
	MethodCreateRecord   = "/" + ServiceName + "/CreateRecord"
	MethodUpdateRecord   = "/" + ServiceName + "/UpdateRecord"
	MethodUploadFile     = "/" + ServiceName + "/UploadFile"
)

// FraudCheckServiceServer is implemented by the server transport.
type FraudCheckServiceServer interface {
	Ping(context.Context, *emptypb.Empty) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*emptypb.Empty, error)
	GetCurrentUser(context.Context, *emptypb.Empty) (*User, error)
	ListRecords(context.Context, *emptypb.Empty) (*ListRecordsResponse, error)
	GetRecord(context.Context, *GetRecordRequest) (*Record, error)
	CreateRecord(context.Context, *CreateRecordRequest) (*Record, error)
	UpdateRecord(context.Context, *UpdateRecordRequest) (*Record, error)
	UploadFile(context.Context, *UploadFileRequest) (*UploadFileResponse, error)
}

// UnimplementedFraudCheckServiceServer can be embedded to satisfy the
// interface while only some methods are implemented.
type UnimplementedFraudCheckServiceServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedFraudCheckServiceServer) Ping(context.Context, *emptypb.Empty) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedFraudCheckServiceServer) RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error) {
	return nil, unimplemented("RegisterUser")
}
func (UnimplementedFraudCheckServiceServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedFraudCheckServiceServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedFraudCheckServiceServer) Logout(context.Context, *LogoutRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("Logout")
}
func (UnimplementedFraudCheckServiceServer) GetCurrentUser(context.Context, *emptypb.Empty) (*User, error) {
	return nil, unimplemented("GetCurrentUser")
}
func (UnimplementedFraudCheckServiceServer) ListRecords(context.Context, *emptypb.Empty) (*ListRecordsResponse, error) {
	return nil, unimplemented("ListRecords")
}
func (UnimplementedFraudCheckServiceServer) GetRecord(context.Context, *GetRecordRequest) (*Record, error) {
	return nil, unimplemented("GetRecord")
}
func (UnimplementedFraudCheckServiceServer) CreateRecord(context.Context, *CreateRecordRequest) (*Record, error) {
	return nil, unimplemented("CreateRecord")
}
func (UnimplementedFraudCheckServiceServer) UpdateRecord(context.Context, *UpdateRecordRequest) (*Record, error) {
	return nil, unimplemented("UpdateRecord")
}
func (UnimplementedFraudCheckServiceServer) UploadFile(context.Context, *UploadFileRequest) (*UploadFileResponse, error) {
	return nil, unimplemented("UploadFile")
}

// unaryHandler adapts a typed server method to a grpc method handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(FraudCheckServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		s := srv.(FraudCheckServiceServer)
		if interceptor == nil {
			return call(s, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(s, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes FraudCheckService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FraudCheckServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, FraudCheckServiceServer.Ping)},
		{MethodName: "RegisterUser", Handler: unaryHandler(MethodRegisterUser, FraudCheckServiceServer.RegisterUser)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, FraudCheckServiceServer.Login)},
		{MethodName: "RefreshToken", Handler: unaryHandler(MethodRefreshToken, FraudCheckServiceServer.RefreshToken)},
		{MethodName: "Logout", Handler: unaryHandler(MethodLogout, FraudCheckServiceServer.Logout)},
		{MethodName: "GetCurrentUser", Handler: unaryHandler(MethodGetCurrentUser, FraudCheckServiceServer.GetCurrentUser)},
		{MethodName: "ListRecords", Handler: unaryHandler(MethodListRecords, FraudCheckServiceServer.ListRecords)},
		{MethodName: "GetRecord", Handler: unaryHandler(MethodGetRecord, FraudCheckServiceServer.GetRecord)},
		{MethodName: "CreateRecord", Handler: unaryHandler(MethodCreateRecord, FraudCheckServiceServer.CreateRecord)},
		{MethodName: "UpdateRecord", Handler: unaryHandler(MethodUpdateRecord, FraudCheckServiceServer.UpdateRecord)},
		{MethodName: "UploadFile", Handler: unaryHandler(MethodUploadFile, FraudCheckServiceServer.UploadFile)},
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterFraudCheckServiceServer(s grpc.ServiceRegistrar, srv FraudCheckServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// FraudCheckServiceClient is the client side of FraudCheckService.
type FraudCheckServiceClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error)
	RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetCurrentUser(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*User, error)
	ListRecords(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListRecordsResponse, error)
	GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*Record, error)
	CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*Record, error)
	UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*Record, error)
	UploadFile(ctx context.Context, in *UploadFileRequest, opts ...grpc.CallOption) (*UploadFileResponse, error)
}

type fraudCheckServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewFraudCheckServiceClient(cc grpc.ClientConnInterface) FraudCheckServiceClient {
	return &fraudCheckServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fraudCheckServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *fraudCheckServiceClient) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, MethodRegisterUser, in, opts)
}

func (c *fraudCheckServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *fraudCheckServiceClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *fraudCheckServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *fraudCheckServiceClient) GetCurrentUser(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*User, error) {
	return invoke[User](ctx, c.cc, MethodGetCurrentUser, in, opts)
}

func (c *fraudCheckServiceClient) ListRecords(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListRecordsResponse, error) {
	return invoke[ListRecordsResponse](ctx, c.cc, MethodListRecords, in, opts)
}

func (c *fraudCheckServiceClient) GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*Record, error) {
	return invoke[Record](ctx, c.cc, MethodGetRecord, in, opts)
}

func (c *fraudCheckServiceClient) CreateRecord(ctx context.Context, in *CreateRecordRequest, opts ...grpc.CallOption) (*Record, error) {
	return invoke[Record](ctx, c.cc, MethodCreateRecord, in, opts)
}

func (c *fraudCheckServiceClient) UpdateRecord(ctx context.Context, in *UpdateRecordRequest, opts ...grpc.CallOption) (*Record, error) {
	return invoke[Record](ctx, c.cc, MethodUpdateRecord, in, opts)
}

func (c *fraudCheckServiceClient) UploadFile(ctx context.Context, in *UploadFileRequest, opts ...grpc.CallOption) (*UploadFileResponse, error) {
	return invoke[UploadFileResponse](ctx, c.cc, MethodUploadFile, in, opts)
}
