package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/fraudcheck/internal/api"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
	"github.com/dmitrijs2005/fraudcheck/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeUser{}, &fakeRecords{})
	resp, err := s.Ping(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestRegisterUser(t *testing.T) {
	s := newServer(&fakeUser{regResp: &models.User{ID: "42"}}, &fakeRecords{})
	resp, err := s.RegisterUser(context.Background(), &api.RegisterUserRequest{Email: "a@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "42", resp.ID)

	s = newServer(&fakeUser{regErr: common.ErrAlreadyExists}, &fakeRecords{})
	_, err = s.RegisterUser(context.Background(), &api.RegisterUserRequest{Email: "a@x.io", Password: "pw"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	s = newServer(&fakeUser{regErr: errors.New("db down")}, &fakeRecords{})
	_, err = s.RegisterUser(context.Background(), &api.RegisterUserRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "internal error", status.Convert(err).Message())
}

func TestLogin(t *testing.T) {
	u := &fakeUser{
		loginPair: &services.TokenPair{AccessToken: "A", RefreshToken: "R"},
		loginUser: &models.User{ID: "u1", Email: "a@x.io"},
	}
	s := newServer(u, &fakeRecords{})
	resp, err := s.Login(context.Background(), &api.LoginRequest{Email: "a@x.io", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "A", resp.AccessToken)
	assert.Equal(t, "R", resp.RefreshToken)
	assert.Equal(t, &api.User{ID: "u1", Email: "a@x.io"}, resp.User)

	s = newServer(&fakeUser{loginErr: common.ErrorUnauthorized}, &fakeRecords{})
	_, err = s.Login(context.Background(), &api.LoginRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRefreshTokenAndLogout(t *testing.T) {
	u := &fakeUser{refreshResp: &services.TokenPair{AccessToken: "a", RefreshToken: "r"}}
	s := newServer(u, &fakeRecords{})

	resp, err := s.RefreshToken(context.Background(), &api.RefreshTokenRequest{RefreshToken: "r0"})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.AccessToken)

	_, err = s.Logout(context.Background(), &api.LogoutRequest{RefreshToken: "r"})
	require.NoError(t, err)
	assert.Equal(t, "r", u.logoutToken)

	u.refreshErr = common.ErrRefreshTokenExpired
	_, err = s.RefreshToken(context.Background(), &api.RefreshTokenRequest{RefreshToken: "r0"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGetCurrentUser(t *testing.T) {
	s := newServer(&fakeUser{current: &models.User{ID: "u1", Email: "a@x.io"}}, &fakeRecords{})

	_, err := s.GetCurrentUser(context.Background(), &emptypb.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	u, err := s.GetCurrentUser(authed(context.Background(), "u1", "a@x.io"), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", u.Email)
}

func TestListAndGetRecords(t *testing.T) {
	url := "https://cdn/x.pdf"
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &fakeRecords{
		list: []*models.Record{{ID: "r2", ResumeURL: &url, CreatedAt: created}, {ID: "r1"}},
		rec:  &models.Record{ID: "r1", Name: "Ann"},
	}
	s := newServer(&fakeUser{}, r)
	ctx := authed(context.Background(), "u1", "a@x.io")

	list, err := s.ListRecords(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.Records, 2)
	assert.Equal(t, "r2", list.Records[0].ID)
	assert.Equal(t, &url, list.Records[0].ResumeURL)
	assert.Equal(t, created, list.Records[0].CreatedAt)

	rec, err := s.GetRecord(ctx, &api.GetRecordRequest{ID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", rec.Name)

	r.err = common.ErrorNotFound
	_, err = s.GetRecord(ctx, &api.GetRecordRequest{ID: "r9"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestCreateRecord_UsesCallerEmail(t *testing.T) {
	r := &fakeRecords{}
	s := newServer(&fakeUser{}, r)

	rec, err := s.CreateRecord(authed(context.Background(), "u1", "me@x.io"), &api.CreateRecordRequest{
		Name: "Ann", Email: "ann@x.io", AddedBy: "me@x.io",
	})
	require.NoError(t, err)
	assert.Equal(t, "r-new", rec.ID)
	assert.Equal(t, "me@x.io", r.gotCaller)
	assert.Nil(t, r.gotRecord.ResumeURL)

	r.err = common.ErrorValidation
	_, err = s.CreateRecord(authed(context.Background(), "u1", "me@x.io"), &api.CreateRecordRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestUpdateRecord(t *testing.T) {
	r := &fakeRecords{}
	s := newServer(&fakeUser{}, r)
	ctx := authed(context.Background(), "u1", "me@x.io")

	rec, err := s.UpdateRecord(ctx, &api.UpdateRecordRequest{ID: "r1", Name: "Ann", Email: "ann@x.io"})
	require.NoError(t, err)
	assert.Equal(t, "me@x.io", rec.AddedBy)
	assert.Equal(t, "me@x.io", r.gotCaller)

	r.err = common.ErrAccessDenied
	_, err = s.UpdateRecord(ctx, &api.UpdateRecordRequest{ID: "r1", Name: "Ann", Email: "ann@x.io"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestUploadFile(t *testing.T) {
	r := &fakeRecords{url: "https://cdn/resumes/u1/k.pdf"}
	s := newServer(&fakeUser{}, r)
	ctx := authed(context.Background(), "u1", "me@x.io")

	resp, err := s.UploadFile(ctx, &api.UploadFileRequest{Key: "u1/k.pdf", Data: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/resumes/u1/k.pdf", resp.URL)
	assert.Equal(t, "u1", r.gotCaller)

	tests := []struct {
		err  error
		code codes.Code
	}{
		{common.ErrAlreadyExists, codes.AlreadyExists},
		{common.ErrFileTooLarge, codes.ResourceExhausted},
		{common.ErrUnsupportedFileType, codes.InvalidArgument},
		{common.ErrAccessDenied, codes.PermissionDenied},
		{errors.New("s3 down"), codes.Internal},
	}
	for _, tt := range tests {
		r.err = tt.err
		_, err := s.UploadFile(ctx, &api.UploadFileRequest{Key: "u1/k.pdf"})
		assert.Equal(t, tt.code, status.Code(err), tt.err.Error())
	}
}
