package records

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
	"github.com/dmitrijs2005/fraudcheck/internal/client/session"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
)

type Lister interface {
	ListRecords(ctx context.Context) ([]*models.Record, error)
}

// Sessions is the part of session.Manager the views depend on.
type Sessions interface {
	Current() (models.Identity, bool)
	Subscribe(fn func(session.Event)) (unsubscribe func())
}

// Row is a record with the actions the current identity may take on it.
type Row struct {
	Record        *models.Record
	CanEdit       bool
	HasAttachment bool
}

type ListView struct {
	api      Lister
	sessions Sessions
	unsub    func()

	mu      sync.RWMutex
	records []*models.Record
	loading bool
	err     error
}

// NewListView returns a view that forgets its records when the user signs
// out. Call Close to stop listening.
func NewListView(api Lister, sessions Sessions) *ListView {
	v := &ListView{api: api, sessions: sessions}
	v.unsub = sessions.Subscribe(func(e session.Event) {
		if e.Kind == session.EventSignedOut {
			v.Reset()
		}
	})
	return v
}

func (v *ListView) Close() {
	v.unsub()
}

// LoadAll fetches every record, newest first. On failure the previous
// records are kept and the error is available from Err.
func (v *ListView) LoadAll(ctx context.Context) error {
	if _, ok := v.sessions.Current(); !ok {
		v.setErr(common.ErrAuthRequired)
		return common.ErrAuthRequired
	}

	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	recs, err := v.api.ListRecords(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.err = fmt.Errorf("error loading records: %w", err)
		return v.err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	v.records = recs
	v.err = nil
	return nil
}

func (v *ListView) setErr(err error) {
	v.mu.Lock()
	v.err = err
	v.mu.Unlock()
}

func (v *ListView) Records() []*models.Record {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Filter(v.records, "")
}

// Search filters the last successful load.
func (v *ListView) Search(term string) []*models.Record {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Filter(v.records, term)
}

// Rows is Search with the per-record actions resolved for the current
// identity. Nobody may edit while signed out.
func (v *ListView) Rows(term string) []Row {
	id, ok := v.sessions.Current()
	recs := v.Search(term)

	rows := make([]Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, Row{
			Record:        r,
			CanEdit:       ok && id.Email != "" && id.Email == r.AddedBy,
			HasAttachment: r.HasAttachment(),
		})
	}
	return rows
}

// EmptyMessage is shown whenever Rows returns nothing, both before any
// record exists and when a search matches none.
const EmptyMessage = "No fraud candidates found."

func (v *ListView) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading
}

func (v *ListView) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.err
}

// Reset drops everything loaded for the previous identity.
func (v *ListView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records = nil
	v.err = nil
	v.loading = false
}
