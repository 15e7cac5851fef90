package models

import "time"

// Record is a fraud candidate entry as returned by the backend.
// ResumeURL is nil when nothing is attached.
type Record struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Description string
	AddedBy     string
	ResumeURL   *string
	CreatedAt   time.Time
}

func (r *Record) HasAttachment() bool {
	return r.ResumeURL != nil && *r.ResumeURL != ""
}
