// Package session tracks who is signed in to the CLI and tells the rest of
// the client when that changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fraudcheck/internal/client/client"
	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"github.com/dmitrijs2005/fraudcheck/internal/logging"

	sessionrepo "github.com/dmitrijs2005/fraudcheck/internal/client/repositories/session"
)

type EventKind int

const (
	EventSignedIn EventKind = iota + 1
	EventSignedOut
)

func (k EventKind) String() string {
	switch k {
	case EventSignedIn:
		return "signed_in"
	case EventSignedOut:
		return "signed_out"
	}
	return "unknown"
}

// Event is delivered to subscribers after the identity has changed.
type Event struct {
	Kind     EventKind
	Identity models.Identity
}

type subscriber struct {
	id int
	fn func(Event)
}

// Manager owns the current identity. Its zero value is not usable; create
// it with NewManager.
type Manager struct {
	api    client.Client
	store  sessionrepo.Repository
	logger logging.Logger

	mu      sync.RWMutex
	current *models.Identity

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

func NewManager(api client.Client, store sessionrepo.Repository, logger logging.Logger) *Manager {
	m := &Manager{api: api, store: store, logger: logger.With("module", "session")}
	api.OnTokensRefreshed(m.persistRefreshToken)
	return m
}

func (m *Manager) persistRefreshToken(token string) {
	if err := m.store.Set(context.Background(), sessionrepo.KeyRefreshToken, []byte(token)); err != nil {
		m.logger.Warn(context.Background(), "cannot cache refresh token", "error", err.Error())
	}
}

// Restore resumes the session cached by a previous run. A missing or
// rejected token leaves the manager signed out and is not an error.
func (m *Manager) Restore(ctx context.Context) (models.Identity, bool, error) {
	token, err := m.store.Get(ctx, sessionrepo.KeyRefreshToken)
	if err != nil {
		return models.Identity{}, false, fmt.Errorf("error reading session cache: %w", err)
	}
	if len(token) == 0 {
		return models.Identity{}, false, nil
	}

	id, err := m.api.Resume(ctx, string(token))
	if err != nil {
		if client.IsUnauthenticated(err) {
			m.logger.Debug(ctx, "cached session rejected", "error", err.Error())
			if cerr := m.store.Clear(ctx); cerr != nil {
				m.logger.Warn(ctx, "cannot clear session cache", "error", cerr.Error())
			}
			return models.Identity{}, false, nil
		}
		return models.Identity{}, false, fmt.Errorf("error restoring session: %w", err)
	}

	m.signedIn(ctx, id)
	return *id, true, nil
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	id, err := m.api.Login(ctx, email, password)
	if err != nil {
		return models.Identity{}, fmt.Errorf("sign in failed: %w", err)
	}

	m.signedIn(ctx, id)
	return *id, nil
}

// SignUp registers the account and signs it in.
func (m *Manager) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	if err := m.api.Register(ctx, email, password); err != nil {
		return models.Identity{}, fmt.Errorf("sign up failed: %w", err)
	}
	return m.SignIn(ctx, email, password)
}

// SignOut always ends the local session. Revoking the refresh token on the
// server is attempted once and only logged when it fails.
func (m *Manager) SignOut(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.Warn(ctx, "server sign out failed", "error", err.Error())
	}
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn(ctx, "cannot clear session cache", "error", err.Error())
	}

	m.mu.Lock()
	prev := m.current
	m.current = nil
	m.mu.Unlock()

	ev := Event{Kind: EventSignedOut}
	if prev != nil {
		ev.Identity = *prev
	}
	m.notify(ev)
}

func (m *Manager) signedIn(ctx context.Context, id *models.Identity) {
	for k, v := range map[string]string{sessionrepo.KeyUserID: id.ID, sessionrepo.KeyEmail: id.Email} {
		if err := m.store.Set(ctx, k, []byte(v)); err != nil {
			m.logger.Warn(ctx, "cannot cache identity", "key", k, "error", err.Error())
		}
	}

	m.mu.Lock()
	c := *id
	m.current = &c
	m.mu.Unlock()

	m.notify(Event{Kind: EventSignedIn, Identity: c})
}

func (m *Manager) Current() (models.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.Identity{}, false
	}
	return *m.current, true
}

// Require returns the current identity or common.ErrAuthRequired.
func (m *Manager) Require() (models.Identity, error) {
	id, ok := m.Current()
	if !ok {
		return models.Identity{}, common.ErrAuthRequired
	}
	return id, nil
}

// Subscribe registers fn for identity changes. Callbacks run synchronously
// in subscription order; the returned func removes fn.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (m *Manager) notify(ev Event) {
	m.subMu.Lock()
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

// IsAuthRequired reports whether err means the caller must sign in again.
func IsAuthRequired(err error) bool {
	return errors.Is(err, common.ErrAuthRequired) || client.IsUnauthenticated(err)
}
