package grpc

import (
	"context"

	"github.com/dmitrijs2005/fraudcheck/internal/logging"
	"github.com/dmitrijs2005/fraudcheck/internal/server/models"
	"github.com/dmitrijs2005/fraudcheck/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeUser struct {
	regResp *models.User
	regErr  error

	loginPair *services.TokenPair
	loginUser *models.User
	loginErr  error

	refreshResp *services.TokenPair
	refreshErr  error

	logoutToken string
	logoutErr   error

	current    *models.User
	currentErr error
}

func (f *fakeUser) Register(ctx context.Context, email, password string) (*models.User, error) {
	return f.regResp, f.regErr
}
func (f *fakeUser) Login(ctx context.Context, email, password string) (*services.TokenPair, *models.User, error) {
	return f.loginPair, f.loginUser, f.loginErr
}
func (f *fakeUser) RefreshToken(ctx context.Context, refresh string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}
func (f *fakeUser) Logout(ctx context.Context, refresh string) error {
	f.logoutToken = refresh
	return f.logoutErr
}
func (f *fakeUser) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return f.current, f.currentErr
}

type fakeRecords struct {
	list []*models.Record
	rec  *models.Record
	url  string
	err  error

	gotCaller string
	gotRecord *models.Record
	gotPatch  *models.RecordPatch
	gotKey    string
}

func (f *fakeRecords) List(ctx context.Context) ([]*models.Record, error) { return f.list, f.err }
func (f *fakeRecords) Get(ctx context.Context, id string) (*models.Record, error) {
	return f.rec, f.err
}
func (f *fakeRecords) Create(ctx context.Context, callerEmail string, rec *models.Record) (*models.Record, error) {
	f.gotCaller, f.gotRecord = callerEmail, rec
	if f.err != nil {
		return nil, f.err
	}
	rec.ID = "r-new"
	return rec, nil
}
func (f *fakeRecords) Update(ctx context.Context, callerEmail, id string, patch *models.RecordPatch) (*models.Record, error) {
	f.gotCaller, f.gotPatch = callerEmail, patch
	if f.err != nil {
		return nil, f.err
	}
	return &models.Record{ID: id, Name: patch.Name, Email: patch.Email, AddedBy: callerEmail}, nil
}
func (f *fakeRecords) Upload(ctx context.Context, callerID, key, contentType string, data []byte) (string, error) {
	f.gotCaller, f.gotKey = callerID, key
	return f.url, f.err
}

func newServer(u userSvc, r recordSvc) *GRPCServer {
	return &GRPCServer{
		address:   "127.0.0.1:0",
		users:     u,
		records:   r,
		logger:    nopLogger{},
		jwtSecret: []byte("k"),
	}
}

func authed(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, EmailKey, email)
}
