package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/fraudcheck/internal/api"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"github.com/dmitrijs2005/fraudcheck/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethodsSkipToken(t *testing.T) {
	s := newServer(&fakeUser{}, &fakeRecords{})

	for _, m := range []string{api.MethodPing, api.MethodLogin, api.MethodRegisterUser, api.MethodRefreshToken, api.MethodLogout} {
		called := false
		h := func(ctx context.Context, req any) (any, error) {
			called = true
			return "ok", nil
		}
		resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: m}, h)
		require.NoError(t, err, m)
		assert.True(t, called, m)
		assert.Equal(t, "ok", resp)
	}
}

func TestInterceptor_ProtectedMethods(t *testing.T) {
	s := newServer(&fakeUser{}, &fakeRecords{})
	info := &grpc.UnaryServerInfo{FullMethod: api.MethodUpdateRecord}

	valid, err := auth.GenerateToken("user-123", "me@x.io", []byte("k"), time.Hour)
	require.NoError(t, err)
	expired, err := auth.GenerateToken("user-123", "me@x.io", []byte("k"), -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		ctx     context.Context
		wantErr string
	}{
		{"missing token", context.Background(), "missing token"},
		{"garbage", withToken("not-a-valid-jwt"), ""},
		{"expired", withToken(expired), common.ErrTokenExpired.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := func(ctx context.Context, req any) (any, error) {
				t.Fatal("handler should not be called")
				return nil, nil
			}
			_, err := s.accessTokenInterceptor(tt.ctx, nil, info, h)
			assert.Equal(t, codes.Unauthenticated, status.Code(err))
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, status.Convert(err).Message())
			}
		})
	}

	var gotID, gotEmail any
	h := func(ctx context.Context, req any) (any, error) {
		gotID, gotEmail = ctx.Value(UserIDKey), ctx.Value(EmailKey)
		return "ok", nil
	}
	_, err = s.accessTokenInterceptor(withToken(valid), nil, info, h)
	require.NoError(t, err)
	assert.Equal(t, "user-123", gotID)
	assert.Equal(t, "me@x.io", gotEmail)
}
