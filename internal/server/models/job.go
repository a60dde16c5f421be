// Package models holds the server-side database records.
package models

import (
	"database/sql"
	"time"
)

// Valid job application statuses. The jobs table carries a CHECK constraint
// with the same set, so the enum and the schema cannot drift independently.
const (
	StatusApplied      = "applied"
	StatusInterviewing = "interviewing"
	StatusRejected     = "rejected"
	StatusAccepted     = "accepted"
	StatusPending      = "pending"
)

// Statuses lists every valid status value.
var Statuses = []string{
	StatusApplied,
	StatusInterviewing,
	StatusRejected,
	StatusAccepted,
	StatusPending,
}

// ValidStatus reports whether s is one of the enumerated statuses.
func ValidStatus(s string) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Job is one tracked application owned by a user.
type Job struct {
	ID          int64
	UserID      int64
	Company     string
	Position    string
	Status      string
	ResumePath  sql.NullString
	Notes       string
	AppliedDate sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   sql.NullTime

	Resumes []ResumeVersion
}

// ResumeVersion is one uploaded file revision attached to a job. Versions
// increase monotonically per job and are never reused, even after deletions.
type ResumeVersion struct {
	ID         int64
	JobID      int64
	Filename   string
	FilePath   string
	Version    int
	UploadDate time.Time
	Notes      string
}
