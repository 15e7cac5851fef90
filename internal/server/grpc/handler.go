package grpc

import (
	"context"

	"github.com/dmitrijs2005/fraudcheck/internal/api"
	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
	"google.golang.org/protobuf/types/known/emptypb"
)

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *api.RegisterUserRequest) (*api.RegisterUserResponse, error) {
	user, err := s.users.Register(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "register", err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &api.RegisterUserResponse{ID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	tokens, user, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "login", err)
	}

	return &api.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         &api.User{ID: user.ID, Email: user.Email},
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "refresh token", err)
	}
	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*emptypb.Empty, error) {
	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, s.toStatus(ctx, "logout", err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) GetCurrentUser(ctx context.Context, _ *emptypb.Empty) (*api.User, error) {
	userID, _, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CurrentUser(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "current user", err)
	}
	return &api.User{ID: user.ID, Email: user.Email}, nil
}

func (s *GRPCServer) ListRecords(ctx context.Context, _ *emptypb.Empty) (*api.ListRecordsResponse, error) {
	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "list records", err)
	}

	out := make([]*api.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, toAPIRecord(r))
	}
	return &api.ListRecordsResponse{Records: out}, nil
}

func (s *GRPCServer) GetRecord(ctx context.Context, req *api.GetRecordRequest) (*api.Record, error) {
	rec, err := s.records.Get(ctx, req.ID)
	if err != nil {
		return nil, s.toStatus(ctx, "get record", err)
	}
	return toAPIRecord(rec), nil
}

func (s *GRPCServer) CreateRecord(ctx context.Context, req *api.CreateRecordRequest) (*api.Record, error) {
	_, email, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.records.Create(ctx, email, &models.Record{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
		AddedBy:     req.AddedBy,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		return nil, s.toStatus(ctx, "create record", err)
	}

	s.logger.Info(ctx, "Record created", "id", rec.ID, "added_by", rec.AddedBy)
	return toAPIRecord(rec), nil
}

func (s *GRPCServer) UpdateRecord(ctx context.Context, req *api.UpdateRecordRequest) (*api.Record, error) {
	_, email, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.records.Update(ctx, email, req.ID, &models.RecordPatch{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
		ResumeURL:   req.ResumeURL,
	})
	if err != nil {
		return nil, s.toStatus(ctx, "update record", err)
	}

	s.logger.Info(ctx, "Record updated", "id", rec.ID)
	return toAPIRecord(rec), nil
}

func (s *GRPCServer) UploadFile(ctx context.Context, req *api.UploadFileRequest) (*api.UploadFileResponse, error) {
	userID, _, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	url, err := s.records.Upload(ctx, userID, req.Key, req.ContentType, req.Data)
	if err != nil {
		return nil, s.toStatus(ctx, "upload", err)
	}

	s.logger.Info(ctx, "File uploaded", "key", req.Key, "size", len(req.Data))
	return &api.UploadFileResponse{Key: req.Key, URL: url}, nil
}

func toAPIRecord(r *models.Record) *api.Record {
	return &api.Record{
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
