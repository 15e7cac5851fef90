// Package grpc is the gRPC transport of the fraudcheck server: the service
// implementation, the access-token interceptor and RPC metrics.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/fraudcheck/internal/api"
	"github.com/dmitrijs2005/fraudcheck/internal/logging"
	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
	"github.com/dmitrijs2005/fraudcheck/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, *models.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type recordSvc interface {
	List(ctx context.Context) ([]*models.Record, error)
	Get(ctx context.Context, id string) (*models.Record, error)
	Create(ctx context.Context, callerEmail string, rec *models.Record) (*models.Record, error)
	Update(ctx context.Context, callerEmail, id string, patch *models.RecordPatch) (*models.Record, error)
	Upload(ctx context.Context, callerID, key, contentType string, data []byte) (string, error)
}

type GRPCServer struct {
	api.UnimplementedFraudCheckServiceServer
	address        string
	users          userSvc
	records        recordSvc
	logger         logging.Logger
	jwtSecret      []byte
	maxRecvMsgSize int
	metrics        *Metrics
}

type Option func(*GRPCServer)

// WithMaxRecvMsgSize raises the inbound message limit. Uploads travel as
// base64 inside JSON, so this should be well above the upload size limit.
func WithMaxRecvMsgSize(n int) Option {
	return func(s *GRPCServer) { s.maxRecvMsgSize = n }
}

func WithMetrics(m *Metrics) Option {
	return func(s *GRPCServer) { s.metrics = m }
}

func NewGRPCServer(address string, l logging.Logger, us userSvc, rs recordSvc, secretKey string, opts ...Option) *GRPCServer {
	s := &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		records:   rs,
		jwtSecret: []byte(secretKey),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *GRPCServer) newServer() *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{}
	if s.metrics != nil {
		interceptors = append(interceptors, s.metrics.UnaryInterceptor)
	}
	interceptors = append(interceptors, s.accessTokenInterceptor)

	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}
	if s.maxRecvMsgSize > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(s.maxRecvMsgSize))
	}

	srv := grpc.NewServer(opts...)
	api.RegisterFraudCheckServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
