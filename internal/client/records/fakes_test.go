package records

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/fraudcheck/internal/client/clienttest"
	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
	"github.com/dmitrijs2005/fraudcheck/internal/client/session"
	"github.com/dmitrijs2005/fraudcheck/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	id   *models.Identity
	subs []func(session.Event)
}

func (s *fakeSessions) Current() (models.Identity, bool) {
	if s.id == nil {
		return models.Identity{}, false
	}
	return *s.id, true
}

func (s *fakeSessions) Subscribe(fn func(session.Event)) func() {
	s.subs = append(s.subs, fn)
	return func() { s.subs = nil }
}

func (s *fakeSessions) signOut() {
	prev := s.id
	s.id = nil
	for _, fn := range s.subs {
		fn(session.Event{Kind: session.EventSignedOut, Identity: *prev})
	}
}

// logSink captures warnings written by the editor.
type logSink struct {
	lines []string
}

func (l *logSink) Write(p []byte) (int, error) {
	l.lines = append(l.lines, string(p))
	return len(p), nil
}

func quietLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

// signedIn returns a fake backend with me@x.com signed in.
func signedIn(t *testing.T) (*clienttest.Fake, *fakeSessions) {
	t.Helper()
	api := clienttest.New()
	api.AddUser("me@x.com", "pw")
	id, err := api.Login(context.Background(), "me@x.com", "pw")
	require.NoError(t, err)
	return api, &fakeSessions{id: id}
}
