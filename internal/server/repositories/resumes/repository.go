// Package resumes persists resume version records attached to jobs.
package resumes

import (
	"context"

	"github.com/dmitrijs2005/trackit/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, rv *models.ResumeVersion) (*models.ResumeVersion, error)
	Get(ctx context.Context, jobID, id int64) (*models.ResumeVersion, error)
	ListByJob(ctx context.Context, jobID int64) ([]models.ResumeVersion, error)
	Delete(ctx context.Context, jobID, id int64) error
}
