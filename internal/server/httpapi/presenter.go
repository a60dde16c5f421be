// Package httpapi exposes the trackIt REST surface over Fiber. Handlers stay
// thin: decode the request, call a service, render the response. Failures are
// rendered as {"detail": ...} so existing trackIt clients keep working.
package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/trackit/internal/server/models"
	"github.com/dmitrijs2005/trackit/internal/server/services"
)

// ErrorResponse is the error envelope. Detail is a plain message for most
// failures and may be a list of messages for validation errors.
type ErrorResponse struct {
	Detail any `json:"detail"`
}

func respondJSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func respondError(c *fiber.Ctx, status int, detail any) error {
	return respondJSON(c, status, ErrorResponse{Detail: detail})
}

// UserPayload is the wire form of an identity.
type UserPayload struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
	IsGuest   bool   `json:"is_guest,omitempty"`
}

// TokenPayload is the wire form of a successful login.
type TokenPayload struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserPayload `json:"user"`
}

// ResumePayload is the wire form of one resume version.
type ResumePayload struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	Version    int    `json:"version"`
	UploadDate string `json:"upload_date"`
	Notes      string `json:"notes,omitempty"`
}

// JobPayload is the wire form of a job with its nested versions.
type JobPayload struct {
	ID          int64           `json:"id"`
	Company     string          `json:"company"`
	Position    string          `json:"position"`
	Status      string          `json:"status"`
	ResumePath  string          `json:"resume_path,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	AppliedDate string          `json:"applied_date,omitempty"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
	Resumes     []ResumePayload `json:"resumes"`
}

func toUserPayload(u *models.User) UserPayload {
	return UserPayload{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toIdentityPayload(id services.Identity) UserPayload {
	p := UserPayload{
		ID:       id.ID,
		Email:    id.Email,
		Username: id.Username,
		IsGuest:  id.IsGuest,
	}
	if !id.CreatedAt.IsZero() {
		p.CreatedAt = id.CreatedAt.Format(time.RFC3339)
	}
	return p
}

func toTokenPayload(result *services.AuthResult) TokenPayload {
	return TokenPayload{
		AccessToken: result.AccessToken,
		TokenType:   "bearer",
		User:        toIdentityPayload(result.User),
	}
}

func toResumePayload(rv models.ResumeVersion) ResumePayload {
	return ResumePayload{
		ID:         rv.ID,
		Filename:   rv.Filename,
		FilePath:   rv.FilePath,
		Version:    rv.Version,
		UploadDate: rv.UploadDate.Format(time.RFC3339),
		Notes:      rv.Notes,
	}
}

func toJobPayload(job *models.Job) JobPayload {
	p := JobPayload{
		ID:        job.ID,
		Company:   job.Company,
		Position:  job.Position,
		Status:    job.Status,
		Notes:     job.Notes,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
		Resumes:   []ResumePayload{},
	}
	if job.ResumePath.Valid {
		p.ResumePath = job.ResumePath.String
	}
	if job.AppliedDate.Valid {
		p.AppliedDate = job.AppliedDate.Time.Format(time.RFC3339)
	}
	if job.UpdatedAt.Valid {
		p.UpdatedAt = job.UpdatedAt.Time.Format(time.RFC3339)
	}
	for _, rv := range job.Resumes {
		p.Resumes = append(p.Resumes, toResumePayload(rv))
	}
	return p
}
