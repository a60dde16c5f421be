// Package models defines the client-side view of trackIt records as returned
// by the REST backend.
package models

// Status is the lifecycle state of a job application.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusRejected     Status = "rejected"
	StatusAccepted     Status = "accepted"
	StatusPending      Status = "pending"
)

// Statuses lists every valid Status in display order.
var Statuses = []Status{
	StatusApplied,
	StatusInterviewing,
	StatusRejected,
	StatusAccepted,
	StatusPending,
}

// Valid reports whether s is one of the five enumerated values.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
	IsGuest   bool   `json:"is_guest,omitempty"`
}

// ResumeVersion is one uploaded file revision attached to a job. Versions are
// assigned by the backend, monotonically increasing per job, never reused.
type ResumeVersion struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	Version    int    `json:"version"`
	UploadDate string `json:"upload_date"`
	Notes      string `json:"notes,omitempty"`
}

// Job is a single tracked application. Dates travel as RFC 3339 strings;
// the client displays them as received.
type Job struct {
	ID          int64           `json:"id"`
	Company     string          `json:"company"`
	Position    string          `json:"position"`
	Status      Status          `json:"status"`
	ResumePath  string          `json:"resume_path,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	AppliedDate string          `json:"applied_date,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
	Resumes     []ResumeVersion `json:"resumes"`
}
