// Package clienttest provides an in-memory client.Client that enforces the
// same rules as the real backend: tokens, the owner-only update policy and
// no-overwrite uploads.
package clienttest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
)

const PublicBase = "http://127.0.0.1:9000/resumes"

type user struct {
	id       string
	password string
}

type Fake struct {
	mu sync.Mutex

	users   map[string]user
	tokens  map[string]string
	records []*models.Record
	objects map[string][]byte

	identity  *models.Identity
	refresh   string
	onRefresh func(string)
	seq       int

	// Errs injects a failure for the named method, e.g. "UpdateRecord".
	Errs  map[string]error
	Calls []string
	Now   func() time.Time

	// LastCreate is the record as the client sent it to CreateRecord.
	LastCreate *models.Record
}

func New() *Fake {
	return &Fake{
		users:   map[string]user{},
		tokens:  map[string]string{},
		objects: map[string][]byte{},
		Errs:    map[string]error{},
		Now:     time.Now,
	}
}

// AddUser registers email/password and returns the user id.
func (f *Fake) AddUser(email, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addUser(email, password)
}

func (f *Fake) addUser(email, password string) string {
	f.seq++
	id := fmt.Sprintf("user-%d", f.seq)
	f.users[email] = user{id: id, password: password}
	return id
}

// Seed stores rec as if it had been created by rec.AddedBy.
func (f *Fake) Seed(rec models.Record) *models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := rec
	if r.ID == "" {
		f.seq++
		r.ID = fmt.Sprintf("rec-%d", f.seq)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = f.Now()
	}
	f.records = append(f.records, &r)
	f.sort()
	return clone(&r)
}

// IssueRefreshToken returns a valid refresh token for email without
// signing the fake in.
func (f *Fake) IssueRefreshToken(email string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issue(email)
}

func (f *Fake) issue(email string) string {
	f.seq++
	t := fmt.Sprintf("refresh-%d", f.seq)
	f.tokens[t] = email
	return t
}

func (f *Fake) Stored(id string) *models.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			return clone(r)
		}
	}
	return nil
}

func (f *Fake) Object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[key]
	return b, ok
}

func (f *Fake) ObjectKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Called reports how many times method was invoked.
func (f *Fake) Called(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *Fake) enter(method string) error {
	f.Calls = append(f.Calls, method)
	return f.Errs[method]
}

func (f *Fake) sort() {
	sort.SliceStable(f.records, func(i, j int) bool {
		return f.records[i].CreatedAt.After(f.records[j].CreatedAt)
	})
}

func (f *Fake) signIn(email string) *models.Identity {
	id := &models.Identity{ID: f.users[email].id, Email: email}
	f.identity = id
	f.refresh = f.issue(email)
	if f.onRefresh != nil {
		f.onRefresh(f.refresh)
	}
	c := *id
	return &c
}

func (f *Fake) Close() error { return nil }

func (f *Fake) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enter("Ping")
}

func (f *Fake) Register(ctx context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Register"); err != nil {
		return err
	}
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}
	if _, ok := f.users[email]; ok {
		return common.ErrAlreadyExists
	}
	f.addUser(email, password)
	return nil
}

func (f *Fake) Login(ctx context.Context, email, password string) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Login"); err != nil {
		return nil, err
	}
	u, ok := f.users[email]
	if !ok || u.password != password {
		return nil, common.ErrorUnauthorized
	}
	return f.signIn(email), nil
}

func (f *Fake) Resume(ctx context.Context, refreshToken string) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("Resume"); err != nil {
		return nil, err
	}
	email, ok := f.tokens[refreshToken]
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	delete(f.tokens, refreshToken)
	return f.signIn(email), nil
}

func (f *Fake) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := f.enter("Logout")
	f.identity = nil
	if err != nil {
		return err
	}
	delete(f.tokens, f.refresh)
	f.refresh = ""
	return nil
}

func (f *Fake) CurrentUser(ctx context.Context) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CurrentUser"); err != nil {
		return nil, err
	}
	if f.identity == nil {
		return nil, common.ErrorUnauthorized
	}
	c := *f.identity
	return &c, nil
}

func (f *Fake) RefreshToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh
}

func (f *Fake) OnTokensRefreshed(fn func(string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onRefresh = fn
}

func (f *Fake) authed(method string) error {
	if err := f.enter(method); err != nil {
		return err
	}
	if f.identity == nil {
		return common.ErrorUnauthorized
	}
	return nil
}

func (f *Fake) ListRecords(ctx context.Context) ([]*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed("ListRecords"); err != nil {
		return nil, err
	}
	res := make([]*models.Record, 0, len(f.records))
	for _, r := range f.records {
		res = append(res, clone(r))
	}
	return res, nil
}

func (f *Fake) GetRecord(ctx context.Context, id string) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed("GetRecord"); err != nil {
		return nil, err
	}
	for _, r := range f.records {
		if r.ID == id {
			return clone(r), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *Fake) CreateRecord(ctx context.Context, rec *models.Record) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed("CreateRecord"); err != nil {
		return nil, err
	}
	if rec.Name == "" || rec.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", common.ErrorValidation)
	}
	f.LastCreate = clone(rec)

	r := clone(rec)
	f.seq++
	r.ID = fmt.Sprintf("rec-%d", f.seq)
	r.CreatedAt = f.Now()
	r.AddedBy = f.identity.Email
	f.records = append(f.records, r)
	f.sort()
	return clone(r), nil
}

// UpdateRecord applies the row policy: only the creator may update.
func (f *Fake) UpdateRecord(ctx context.Context, rec *models.Record) (*models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed("UpdateRecord"); err != nil {
		return nil, err
	}
	for _, r := range f.records {
		if r.ID != rec.ID {
			continue
		}
		if r.AddedBy != f.identity.Email {
			return nil, common.ErrAccessDenied
		}
		r.Name, r.Email, r.Phone, r.Description = rec.Name, rec.Email, rec.Phone, rec.Description
		if rec.ResumeURL != nil {
			u := *rec.ResumeURL
			r.ResumeURL = &u
		}
		return clone(r), nil
	}
	return nil, common.ErrorNotFound
}

func (f *Fake) UploadFile(ctx context.Context, key, contentType string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.authed("UploadFile"); err != nil {
		return "", err
	}
	if !strings.HasPrefix(key, f.identity.ID+"/") {
		return "", common.ErrAccessDenied
	}
	if _, ok := f.objects[key]; ok {
		return "", common.ErrAlreadyExists
	}
	f.objects[key] = append([]byte(nil), data...)
	return PublicBase + "/" + key, nil
}

func clone(r *models.Record) *models.Record {
	c := *r
	if r.ResumeURL != nil {
		u := *r.ResumeURL
		c.ResumeURL = &u
	}
	return &c
}
