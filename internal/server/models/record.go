package models

import "time"

// Record is one row of fraud_candidates. AddedBy holds the creator's email
// and is the ownership key for updates. ResumeURL is nil when no file was
// attached.
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

// RecordPatch carries the mutable fields of an update. A nil ResumeURL
// leaves the stored value as it is.
type RecordPatch struct {
	Name        string
	Email       string
	Phone       string
	Description string
	ResumeURL   *string
}
