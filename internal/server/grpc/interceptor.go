package grpc

import (
	"context"

	"github.com/dmitrijs2005/fraudcheck/internal/api"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"github.com/dmitrijs2005/fraudcheck/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	UserIDKey ctxKey = "userID"
	EmailKey  ctxKey = "email"
)

// publicMethods can be called without an access token.
var publicMethods = map[string]struct{}{
	api.MethodPing:         {},
	api.MethodRegisterUser: {},
	api.MethodLogin:        {},
	api.MethodRefreshToken: {},
	api.MethodLogout:       {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := publicMethods[info.FullMethod]; ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)

	return handler(ctx, req)
}

// caller returns the identity the interceptor stored in ctx.
func caller(ctx context.Context) (userID, email string, err error) {
	userID, _ = ctx.Value(UserIDKey).(string)
	email, _ = ctx.Value(EmailKey).(string)
	if userID == "" {
		return "", "", status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return userID, email, nil
}
