package records

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
	"github.com/dmitrijs2005/fraudcheck/internal/logging"
	"github.com/google/uuid"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// EditorAPI is the backend surface the editor uses.
type EditorAPI interface {
	GetRecord(ctx context.Context, id string) (*models.Record, error)
	CreateRecord(ctx context.Context, rec *models.Record) (*models.Record, error)
	UpdateRecord(ctx context.Context, rec *models.Record) (*models.Record, error)
	UploadFile(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type Identifier interface {
	Current() (models.Identity, bool)
}

// Form holds the user-editable fields. ResumeURL is read-only here: it is
// only changed by attaching a file on submit.
type Form struct {
	Name        string
	Email       string
	Phone       string
	Description string
	ResumeURL   *string
}

// Editor creates a record or edits an existing one. In edit mode nothing is
// sent to the backend until the current identity has been confirmed as the
// record's creator.
type Editor struct {
	api    EditorAPI
	ident  Identifier
	logger logging.Logger
	now    func() time.Time
	newID  func() string

	mode Mode
	id   string

	mu       sync.Mutex
	form     Form
	busy     bool
	onBusy   func(busy bool)
	verified bool
	denied   bool
	err      error
}

func newEditor(api EditorAPI, ident Identifier, l logging.Logger, mode Mode, id string) *Editor {
	return &Editor{
		api:    api,
		ident:  ident,
		logger: l.With("module", "editor"),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
		mode:   mode,
		id:     id,
	}
}

func NewCreateEditor(api EditorAPI, ident Identifier, l logging.Logger) *Editor {
	return newEditor(api, ident, l, ModeCreate, "")
}

func NewEditEditor(api EditorAPI, ident Identifier, l logging.Logger, id string) *Editor {
	return newEditor(api, ident, l, ModeEdit, id)
}

func (e *Editor) Mode() Mode { return e.mode }
func (e *Editor) ID() string { return e.id }

func (e *Editor) Title() string {
	if e.mode == ModeEdit {
		return "Edit"
	}
	return "Add New"
}

// SubmitLabel is the caption of the submit action.
func (e *Editor) SubmitLabel() string {
	if e.Busy() {
		return "Saving..."
	}
	return "Save"
}

// OnBusyChange registers fn to be called when a submit starts and when it
// finishes. SubmitLabel already reflects the new state inside fn.
func (e *Editor) OnBusyChange(fn func(busy bool)) {
	e.mu.Lock()
	e.onBusy = fn
	e.mu.Unlock()
}

func (e *Editor) setBusy(busy bool) {
	e.mu.Lock()
	e.busy = busy
	fn := e.onBusy
	e.mu.Unlock()

	if fn != nil {
		fn(busy)
	}
}

func (e *Editor) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

// Denied reports that the ownership check failed and editing is disabled.
func (e *Editor) Denied() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.denied
}

func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Editor) Form() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form
}

func (e *Editor) fail(err error) error {
	e.mu.Lock()
	e.err = err
	e.mu.Unlock()
	return err
}

// Load fetches the record being edited into the form.
func (e *Editor) Load(ctx context.Context) error {
	if e.mode != ModeEdit {
		return nil
	}

	rec, err := e.api.GetRecord(ctx, e.id)
	if err != nil {
		return e.fail(fmt.Errorf("error loading record %s: %w", e.id, err))
	}

	e.mu.Lock()
	e.form = Form{
		Name:        rec.Name,
		Email:       rec.Email,
		Phone:       rec.Phone,
		Description: rec.Description,
		ResumeURL:   rec.ResumeURL,
	}
	e.err = nil
	e.mu.Unlock()
	return nil
}

// CheckOwnership fetches the record's creator and compares it with the
// signed-in email. Any failure, including a failed fetch, denies editing.
func (e *Editor) CheckOwnership(ctx context.Context) error {
	if e.mode != ModeEdit {
		return nil
	}

	id, ok := e.ident.Current()
	if !ok {
		return e.deny(common.ErrAuthRequired)
	}

	rec, err := e.api.GetRecord(ctx, e.id)
	if err != nil {
		return e.deny(fmt.Errorf("error checking ownership of %s: %w", e.id, err))
	}

	if id.Email == "" || rec.AddedBy != id.Email {
		return e.deny(fmt.Errorf("%w: only %s can edit this record", common.ErrAccessDenied, rec.AddedBy))
	}

	e.mu.Lock()
	e.verified = true
	e.denied = false
	e.err = nil
	e.mu.Unlock()
	return nil
}

func (e *Editor) deny(err error) error {
	e.mu.Lock()
	e.verified = false
	e.denied = true
	e.err = err
	e.mu.Unlock()
	return err
}

// Open prepares an edit session: load, then ownership check. It is a no-op
// in create mode.
func (e *Editor) Open(ctx context.Context) error {
	if err := e.Load(ctx); err != nil {
		return err
	}
	return e.CheckOwnership(ctx)
}

// AttachFile uploads file under the identity's namespace and returns its
// public location. Existing objects are never overwritten.
func (e *Editor) AttachFile(ctx context.Context, file *models.Attachment, identity models.Identity) (string, error) {
	ext := file.Ext()
	if !AcceptedExtension(ext) {
		return "", fmt.Errorf("%w: %q (accepted: %s)", common.ErrUnsupportedFileType, file.Name,
			strings.Join(common.AcceptedAttachmentExtensions, ", "))
	}
	if identity.ID == "" {
		return "", common.ErrAuthRequired
	}

	key := StorageKey(identity.ID, e.now(), e.newID(), ext)

	url, err := e.api.UploadFile(ctx, key, file.ContentType, file.Data)
	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", file.Name, err)
	}
	if url == "" {
		return "", fmt.Errorf("error uploading %s: no public location returned", file.Name)
	}
	return url, nil
}

// Submit validates form, uploads file when given and then creates or
// updates the record. The form stays populated whatever the outcome.
func (e *Editor) Submit(ctx context.Context, form Form, file *models.Attachment) (*models.Record, error) {
	e.mu.Lock()
	if e.busy {
		e.mu.Unlock()
		return nil, common.ErrSubmitInProgress
	}
	e.busy = true
	e.form.Name, e.form.Email, e.form.Phone, e.form.Description = form.Name, form.Email, form.Phone, form.Description
	fn := e.onBusy
	e.mu.Unlock()

	if fn != nil {
		fn(true)
	}
	defer e.setBusy(false)

	rec, err := e.submit(ctx, form, file)
	if err != nil {
		return nil, e.fail(err)
	}

	e.mu.Lock()
	e.form.ResumeURL = rec.ResumeURL
	e.err = nil
	e.mu.Unlock()
	return rec, nil
}

func (e *Editor) submit(ctx context.Context, form Form, file *models.Attachment) (*models.Record, error) {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" {
		return nil, fmt.Errorf("%w: name and email are required", common.ErrorValidation)
	}

	identity, ok := e.ident.Current()
	if !ok {
		return nil, common.ErrAuthRequired
	}

	if e.mode == ModeEdit {
		e.mu.Lock()
		verified := e.verified
		e.mu.Unlock()

		if !verified {
			if err := e.CheckOwnership(ctx); err != nil {
				return nil, err
			}
		}
	}

	rec := &models.Record{
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Description: form.Description,
	}

	var uploaded string
	if file != nil {
		url, err := e.AttachFile(ctx, file, identity)
		if err != nil {
			return nil, err
		}
		uploaded = url
		rec.ResumeURL = &url
	}

	var (
		saved *models.Record
		err   error
	)
	if e.mode == ModeEdit {
		rec.ID = e.id
		saved, err = e.api.UpdateRecord(ctx, rec)
		if err != nil {
			err = fmt.Errorf("error updating record %s: %w", e.id, err)
		}
	} else {
		rec.AddedBy = identity.Email
		if rec.AddedBy == "" {
			rec.AddedBy = common.UnknownAddedBy
		}
		saved, err = e.api.CreateRecord(ctx, rec)
		if err != nil {
			err = fmt.Errorf("error creating record: %w", err)
		}
	}

	if err != nil {
		if uploaded != "" {
			e.logger.Warn(ctx, "uploaded file is not referenced by any record", "url", uploaded, "error", err.Error())
		}
		return nil, err
	}
	return saved, nil
}
