package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fraudcheck/internal/client/models"
	"github.com/dmitrijs2005/fraudcheck/internal/netx"
)

// download is a test seam for netx.Download.
var download = netx.Download

var errNoAttachment = errors.New("record has no resume attached")

func (a *App) getRecord(ctx context.Context, id string) (*models.Record, error) {
	if _, err := a.sessions.Require(); err != nil {
		return nil, err
	}
	return a.api.GetRecord(ctx, id)
}

func (a *App) Show(ctx context.Context, id string) error {
	r, err := a.getRecord(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:          %s\n", r.ID)
	fmt.Fprintf(a.out, "Name:        %s\n", r.Name)
	fmt.Fprintf(a.out, "Email:       %s\n", r.Email)
	fmt.Fprintf(a.out, "Phone:       %s\n", r.Phone)
	fmt.Fprintf(a.out, "Description: %s\n", r.Description)
	fmt.Fprintf(a.out, "Added by:    %s\n", r.AddedBy)
	fmt.Fprintf(a.out, "Created:     %s\n", r.CreatedAt.Local().Format(dateLayout))
	if r.HasAttachment() {
		fmt.Fprintf(a.out, "Resume:      %s\n", *r.ResumeURL)
	}
	return nil
}

func (a *App) Download(ctx context.Context, id string) error {
	r, err := a.getRecord(ctx, id)
	if err != nil {
		return err
	}
	if !r.HasAttachment() {
		return errNoAttachment
	}

	p, err := download(ctx, *r.ResumeURL, a.config.DownloadDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", p)
	return nil
}
