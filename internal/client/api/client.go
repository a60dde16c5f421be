// Package api wraps the trackIt REST backend behind a typed client. It is
// the only place that knows about endpoint paths, bearer-token headers, and
// the backend's error payload shape.
package api

import (
	"context"

	"github.com/dmitrijs2005/trackit/internal/client/models"
)

// TokenResponse is the payload of the login and guest-login endpoints.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

// JobDraft carries the fields of the job creation form. Status and
// AppliedDate are optional; the backend defaults status to pending.
type JobDraft struct {
	Company     string
	Position    string
	Notes       string
	Status      models.Status
	AppliedDate string
}

// JobPatch is a partial update for a job. Nil fields are left untouched.
type JobPatch struct {
	Company     *string        `json:"company,omitempty"`
	Position    *string        `json:"position,omitempty"`
	Status      *models.Status `json:"status,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
	AppliedDate *string        `json:"applied_date,omitempty"`
}

// ResumeFile is an in-memory file to attach to a job.
type ResumeFile struct {
	Name string
	Data []byte
}

// Client defines the operations the backend collaborator exposes.
//
// All methods honor context cancellation. Failures are returned as *Error
// with the kind decoded at this boundary; no retries are attempted.
type Client interface {
	Signup(ctx context.Context, email, username, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	GuestLogin(ctx context.Context) (*TokenResponse, error)

	ListJobs(ctx context.Context) ([]models.Job, error)
	CreateJob(ctx context.Context, draft JobDraft, resume *ResumeFile) (*models.Job, error)
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	UpdateJob(ctx context.Context, id int64, patch JobPatch) (*models.Job, error)
	DeleteJob(ctx context.Context, id int64) error

	UploadResume(ctx context.Context, jobID int64, file ResumeFile) (*models.Job, error)
	DownloadResume(ctx context.Context, jobID, versionID int64) ([]byte, string, error)
	DeleteResume(ctx context.Context, jobID, versionID int64) error
}
