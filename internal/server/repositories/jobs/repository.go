// Package jobs persists tracked applications.
package jobs

import (
	"context"
	"time"

	"github.com/dmitrijs2005/trackit/internal/server/models"
)

// Update describes a partial job change. Nil fields are left untouched.
type Update struct {
	Company     *string
	Position    *string
	Status      *string
	Notes       *string
	AppliedDate *time.Time
}

type Repository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Job, error)
	Get(ctx context.Context, userID, id int64) (*models.Job, error)
	Update(ctx context.Context, userID, id int64, upd Update) (*models.Job, error)
	Delete(ctx context.Context, userID, id int64) error
	NextResumeVersion(ctx context.Context, jobID int64) (int, error)
}
