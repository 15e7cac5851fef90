package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrorValidation, codes.InvalidArgument},
	{common.ErrUnsupportedFileType, codes.InvalidArgument},
	{common.ErrFileTooLarge, codes.ResourceExhausted},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrAccessDenied, codes.PermissionDenied},
	{common.ErrAlreadyExists, codes.AlreadyExists},
	{common.ErrorUnauthorized, codes.Unauthenticated},
	{common.ErrRefreshTokenExpired, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
}

// toStatus converts a service error into a gRPC status. Known errors keep
// their message; anything else is logged and reported as Internal.
func (s *GRPCServer) toStatus(ctx context.Context, op string, err error) error {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			s.logger.Debug(ctx, op+" rejected", "error", err.Error(), "code", e.code.String())
			return status.Error(e.code, err.Error())
		}
	}
	s.logger.Error(ctx, op+" failed", "error", err.Error())
	return status.Error(codes.Internal, "internal error")
}
