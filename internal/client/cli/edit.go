package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fraudcheck/internal/client/client"
	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
	"github.com/dmitrijs2005/fraudcheck/internal/client/records"
	"github.com/dmitrijs2005/fraudcheck/internal/common"
)

// loadAttachment is a test seam for models.LoadAttachment.
var loadAttachment = models.LoadAttachment

func (a *App) Add(ctx context.Context) error {
	if _, err := a.sessions.Require(); err != nil {
		return err
	}
	ed := records.NewCreateEditor(a.api, a.sessions, a.logger)
	return a.runEditor(ctx, ed)
}

func (a *App) Edit(ctx context.Context, id string) error {
	if _, err := a.sessions.Require(); err != nil {
		return err
	}
	ed := records.NewEditEditor(a.api, a.sessions, a.logger, id)
	if err := ed.Open(ctx); err != nil {
		return err
	}
	return a.runEditor(ctx, ed)
}

// runEditor prompts for the fields and submits them. After a failed submit
// the user may retry; the prompts then default to what was entered before.
func (a *App) runEditor(ctx context.Context, ed *records.Editor) error {
	fmt.Fprintln(a.out, ed.Title())
	ed.OnBusyChange(func(busy bool) {
		if busy {
			fmt.Fprintln(a.out, ed.SubmitLabel())
		}
	})

	form, path := ed.Form(), ""
	for {
		var err error
		form, path, err = a.promptForm(form, path)
		if err != nil {
			return err
		}

		var file *models.Attachment
		if path != "" {
			file, err = loadAttachment(path)
		}
		if err == nil {
			var rec *models.Record
			rec, err = ed.Submit(ctx, form, file)
			if err == nil {
				fmt.Fprintf(a.out, "Saved %s (%s)\n", rec.Name, rec.ID)
				return a.List(ctx)
			}
			if !canRetry(ed, err) {
				return err
			}
			form = ed.Form()
		}

		fmt.Fprintln(a.out, "error:", err)
		retry, cerr := a.confirm("Retry with the values entered? [Y/n]")
		if cerr != nil {
			return err
		}
		if !retry {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}
	}
}

// canRetry is false for failures that another attempt cannot fix.
func canRetry(ed *records.Editor, err error) bool {
	return !ed.Denied() &&
		!errors.Is(err, common.ErrAccessDenied) &&
		!errors.Is(err, common.ErrAuthRequired) &&
		!client.IsUnauthenticated(err)
}

func (a *App) confirm(prompt string) (bool, error) {
	v, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v) {
	case "", "y", "yes":
		return true, nil
	}
	return false, nil
}

// promptForm asks for every field, offering cur as the defaults. Name and
// email cannot be cleared; phone, description and the file path can.
func (a *App) promptForm(cur records.Form, curPath string) (records.Form, string, error) {
	var err error
	f := cur

	if f.Name, err = GetTextWithDefault(a.reader, "Name", cur.Name, a.out); err != nil {
		return cur, curPath, err
	}
	if f.Email, err = GetTextWithDefault(a.reader, "Email", cur.Email, a.out); err != nil {
		return cur, curPath, err
	}
	if f.Phone, err = GetOptionalText(a.reader, "Phone", cur.Phone, a.out); err != nil {
		return cur, curPath, err
	}
	if f.Description, err = GetOptionalText(a.reader, "Description", cur.Description, a.out); err != nil {
		return cur, curPath, err
	}

	prompt := "Resume file path (empty to skip)"
	if cur.ResumeURL != nil {
		prompt = "Resume file path (empty to keep the current one)"
	}
	path, err := GetOptionalText(a.reader, prompt, curPath, a.out)
	if err != nil {
		return cur, curPath, err
	}
	return f, path, nil
}
