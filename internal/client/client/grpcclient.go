package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fraudcheck/internal/api"
	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

type GRPCClient struct {
	endpointURL string
	pingTimeout time.Duration
	conn        *grpc.ClientConn
	client      api.FraudCheckServiceClient

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onRefresh    func(refreshToken string)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	hook := s.onRefresh
	s.mu.Unlock()

	if hook != nil && refresh != "" {
		hook(refresh)
	}
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.tokens()
	if accessToken != "" {
		ctx = withAccessToken(ctx, accessToken)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
	if rerr != nil {
		return rerr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	ctx = withAccessToken(ctx, resp.AccessToken)
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient dials endpointURL lazily; the connection is established on
// the first call. Extra dial options are appended to the defaults.
func NewGRPCClient(endpointURL string, pingTimeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, pingTimeout: pingTimeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewFraudCheckServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	if s.pingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.pingTimeout)
		defer cancel()
	}

	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) error {
	_, err := s.client.RegisterUser(ctx, &api.RegisterUserRequest{Email: email, Password: password})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)

	if resp.User == nil {
		return s.CurrentUser(ctx)
	}
	return &models.Identity{ID: resp.User.ID, Email: resp.User.Email}, nil
}

func (s *GRPCClient) Resume(ctx context.Context, refreshToken string) (*models.Identity, error) {
	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return s.CurrentUser(ctx)
}

// Logout revokes the refresh token on the server. Local tokens are dropped
// even when the call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refreshToken := s.tokens()

	s.mu.Lock()
	s.accessToken, s.refreshToken = "", ""
	s.mu.Unlock()

	if refreshToken == "" {
		return nil
	}

	if _, err := s.client.Logout(ctx, &api.LogoutRequest{RefreshToken: refreshToken}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (*models.Identity, error) {
	u, err := s.client.GetCurrentUser(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Identity{ID: u.ID, Email: u.Email}, nil
}

func (s *GRPCClient) RefreshToken() string {
	_, r := s.tokens()
	return r
}

// OnTokensRefreshed registers fn to be called with every new refresh token.
func (s *GRPCClient) OnTokensRefreshed(fn func(refreshToken string)) {
	s.mu.Lock()
	s.onRefresh = fn
	s.mu.Unlock()
}

func (s *GRPCClient) ListRecords(ctx context.Context) ([]*models.Record, error) {
	resp, err := s.client.ListRecords(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}

	res := make([]*models.Record, 0, len(resp.Records))
	for _, r := range resp.Records {
		res = append(res, toModel(r))
	}
	return res, nil
}

func (s *GRPCClient) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	r, err := s.client.GetRecord(ctx, &api.GetRecordRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toModel(r), nil
}

func (s *GRPCClient) CreateRecord(ctx context.Context, rec *models.Record) (*models.Record, error) {
	req := &api.CreateRecordRequest{
		Name:        rec.Name,
		Email:       rec.Email,
		Phone:       rec.Phone,
		Description: rec.Description,
		AddedBy:     rec.AddedBy,
		ResumeURL:   rec.ResumeURL,
	}

	r, err := s.client.CreateRecord(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return toModel(r), nil
}

// UpdateRecord sends the mutable fields of rec. AddedBy is never sent.
func (s *GRPCClient) UpdateRecord(ctx context.Context, rec *models.Record) (*models.Record, error) {
	req := &api.UpdateRecordRequest{
		ID:          rec.ID,
		Name:        rec.Name,
		Email:       rec.Email,
		Phone:       rec.Phone,
		Description: rec.Description,
		ResumeURL:   rec.ResumeURL,
	}

	r, err := s.client.UpdateRecord(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return toModel(r), nil
}

func (s *GRPCClient) UploadFile(ctx context.Context, key, contentType string, data []byte) (string, error) {
	resp, err := s.client.UploadFile(ctx, &api.UploadFileRequest{Key: key, ContentType: contentType, Data: data})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

func toModel(r *api.Record) *models.Record {
	return &models.Record{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Description: r.Description,
		AddedBy:     r.AddedBy,
		ResumeURL:   r.ResumeURL,
		CreatedAt:   r.CreatedAt,
	}
}

// mapError turns a gRPC status into the matching sentinel from package
// common, keeping the server's message.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}

	msg := st.Message()
	switch st.Code() {
	case codes.Unauthenticated:
		for _, e := range []error{common.ErrTokenExpired, common.ErrRefreshTokenExpired, common.ErrInvalidToken} {
			if strings.HasPrefix(msg, e.Error()) {
				return withMessage(e, msg)
			}
		}
		return withMessage(common.ErrorUnauthorized, msg)
	case codes.PermissionDenied:
		return withMessage(common.ErrAccessDenied, msg)
	case codes.NotFound:
		return withMessage(common.ErrorNotFound, msg)
	case codes.AlreadyExists:
		return withMessage(common.ErrAlreadyExists, msg)
	case codes.InvalidArgument:
		if msg == common.ErrUnsupportedFileType.Error() {
			return common.ErrUnsupportedFileType
		}
		return withMessage(common.ErrorValidation, msg)
	case codes.ResourceExhausted:
		return withMessage(common.ErrFileTooLarge, msg)
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// withMessage wraps sentinel so that Error() reads like msg.
func withMessage(sentinel error, msg string) error {
	prefix := sentinel.Error()
	switch {
	case msg == "" || msg == prefix:
		return sentinel
	case strings.HasPrefix(msg, prefix):
		return fmt.Errorf("%w%s", sentinel, strings.TrimPrefix(msg, prefix))
	default:
		return fmt.Errorf("%w: %s", sentinel, msg)
	}
}

var _ Client = (*GRPCClient)(nil)

// IsUnauthenticated reports whether err means the session is no longer valid.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, common.ErrorUnauthorized) ||
		errors.Is(err, common.ErrTokenExpired) ||
		errors.Is(err, common.ErrRefreshTokenExpired) ||
		errors.Is(err, common.ErrInvalidToken)
}
