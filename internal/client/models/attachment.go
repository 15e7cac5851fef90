package models

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Attachment is a file the user selected for upload.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Ext returns the lower-case extension of Name without the dot.
func (a *Attachment) Ext() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(a.Name), "."))
}

// LoadAttachment reads the file at path. The content type is guessed from
// the extension and falls back to application/octet-stream.
func LoadAttachment(path string) (*Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}

	return &Attachment{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}
