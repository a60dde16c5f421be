package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/dmitrijs2005/trackit/internal/dbx"
	"github.com/dmitrijs2005/trackit/internal/server/config"
	"github.com/dmitrijs2005/trackit/internal/server/models"
	"github.com/dmitrijs2005/trackit/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/trackit/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/trackit/internal/server/storage"
)

// UploadedFile is an in-memory file received from a multipart request.
type UploadedFile struct {
	Name string
	Data []byte
}

// JobDraft carries the fields of the job creation form. Status defaults to
// pending; AppliedDate is an optional ISO timestamp or plain date.
type JobDraft struct {
	Company     string
	Position    string
	Notes       string
	Status      string
	AppliedDate string
	Resume      *UploadedFile
}

// JobPatch is a partial update. Nil fields are left untouched; AppliedDate
// accepts the same formats as JobDraft.
type JobPatch struct {
	Company     *string
	Position    *string
	Status      *string
	Notes       *string
	AppliedDate *string
}

// JobService owns the job and resume-version lifecycle: CRUD on jobs, blob
// placement via the configured storage backend, and monotonic resume
// versioning.
type JobService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       storage.Store
	config      *config.Config
}

func NewJobService(db *sql.DB, m repomanager.RepositoryManager, store storage.Store, cfg *config.Config) *JobService {
	return &JobService{
		db:          db,
		repomanager: m,
		store:       store,
		config:      cfg,
	}
}

// parseAppliedDate accepts a full RFC 3339 timestamp or a plain date. The
// trailing "Z" form arrives from clients that serialize Date objects.
func parseAppliedDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date format: %q", common.ErrorValidation, value)
}

func normalizeStatus(status string) (string, error) {
	normalized := strings.ToLower(status)
	if !models.ValidStatus(normalized) {
		return "", fmt.Errorf("%w: invalid status value. Must be one of: %s",
			common.ErrorValidation, strings.Join(models.Statuses, ", "))
	}
	return normalized, nil
}

// attachResumes loads the version list for each job, ordered by version.
func (s *JobService) attachResumes(ctx context.Context, job *models.Job) error {
	repo := s.repomanager.Resumes(s.db)
	list, err := repo.ListByJob(ctx, job.ID)
	if err != nil {
		return err
	}
	if list == nil {
		list = []models.ResumeVersion{}
	}
	job.Resumes = list
	return nil
}

// List returns every job of the user, with nested resume versions.
func (s *JobService) List(ctx context.Context, userID int64) ([]models.Job, error) {
	repo := s.repomanager.Jobs(s.db)

	list, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}

	for i := range list {
		if err := s.attachResumes(ctx, &list[i]); err != nil {
			return nil, fmt.Errorf("error loading resumes: %w", err)
		}
	}

	return list, nil
}

// Get returns one job with its resume versions.
func (s *JobService) Get(ctx context.Context, userID, id int64) (*models.Job, error) {
	repo := s.repomanager.Jobs(s.db)

	job, err := repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachResumes(ctx, job); err != nil {
		return nil, fmt.Errorf("error loading resumes: %w", err)
	}

	return job, nil
}

// Create inserts a job and, when a resume travels with the form, stores it as
// the first version. A storage failure rolls the whole creation back by
// deleting the just-created row, so a job never exists with a half-uploaded
// resume.
func (s *JobService) Create(ctx context.Context, userID int64, draft JobDraft) (*models.Job, error) {
	if strings.TrimSpace(draft.Company) == "" || strings.TrimSpace(draft.Position) == "" {
		return nil, fmt.Errorf("%w: company and position are required", common.ErrorValidation)
	}

	status := models.StatusPending
	if draft.Status != "" {
		normalized, err := normalizeStatus(draft.Status)
		if err != nil {
			return nil, err
		}
		status = normalized
	}

	job := &models.Job{
		UserID:   userID,
		Company:  draft.Company,
		Position: draft.Position,
		Status:   status,
		Notes:    draft.Notes,
	}

	if draft.AppliedDate != "" {
		parsed, err := parseAppliedDate(draft.AppliedDate)
		if err != nil {
			return nil, err
		}
		job.AppliedDate = sql.NullTime{Time: parsed, Valid: true}
	}

	repo := s.repomanager.Jobs(s.db)
	job, err := repo.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("error creating job: %w", err)
	}

	if draft.Resume != nil {
		if _, err := s.storeVersion(ctx, job.ID, draft.Resume); err != nil {
			// Compensate: the blob never landed, so drop the fresh job too.
			_ = repo.Delete(ctx, userID, job.ID)
			return nil, fmt.Errorf("failed to upload resume: %w", err)
		}
	}

	if err := s.attachResumes(ctx, job); err != nil {
		return nil, fmt.Errorf("error loading resumes: %w", err)
	}

	return job, nil
}

// storeVersion assigns the next version number, saves the blob, and records
// the version row. The version counter only grows; a failed save leaves a gap
// in the sequence, which is harmless.
func (s *JobService) storeVersion(ctx context.Context, jobID int64, file *UploadedFile) (*models.ResumeVersion, error) {
	jobRepo := s.repomanager.Jobs(s.db)

	version, err := jobRepo.NextResumeVersion(ctx, jobID)
	if err != nil {
		return nil, err
	}

	key := s.store.NewKey(jobID, version, file.Name)
	if err := s.store.Save(ctx, key, file.Data); err != nil {
		return nil, err
	}

	rv := &models.ResumeVersion{
		JobID:    jobID,
		Filename: file.Name,
		FilePath: key,
		Version:  version,
	}

	resumeRepo := s.repomanager.Resumes(s.db)
	rv, err = resumeRepo.Create(ctx, rv)
	if err != nil {
		// The row never landed; remove the orphaned blob.
		_ = s.store.Delete(ctx, key)
		return nil, err
	}

	return rv, nil
}

// Update applies a partial change and stamps updated_at. Last write wins;
// there is no optimistic concurrency check.
func (s *JobService) Update(ctx context.Context, userID, id int64, patch JobPatch) (*models.Job, error) {
	upd := jobs.Update{
		Company:  patch.Company,
		Position: patch.Position,
		Notes:    patch.Notes,
	}

	if patch.Status != nil {
		normalized, err := normalizeStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
		upd.Status = &normalized
	}
	if patch.AppliedDate != nil {
		parsed, err := parseAppliedDate(*patch.AppliedDate)
		if err != nil {
			return nil, err
		}
		upd.AppliedDate = &parsed
	}
	if patch.Company != nil && strings.TrimSpace(*patch.Company) == "" {
		return nil, fmt.Errorf("%w: company must not be empty", common.ErrorValidation)
	}
	if patch.Position != nil && strings.TrimSpace(*patch.Position) == "" {
		return nil, fmt.Errorf("%w: position must not be empty", common.ErrorValidation)
	}

	repo := s.repomanager.Jobs(s.db)
	job, err := repo.Update(ctx, userID, id, upd)
	if err != nil {
		return nil, err
	}
	if err := s.attachResumes(ctx, job); err != nil {
		return nil, fmt.Errorf("error loading resumes: %w", err)
	}

	return job, nil
}

// Delete removes the job, its resume rows (FK cascade), and the stored blobs.
// Blob removal happens first; a missing blob is not an error.
func (s *JobService) Delete(ctx context.Context, userID, id int64) error {
	resumeRepo := s.repomanager.Resumes(s.db)

	job, err := s.repomanager.Jobs(s.db).Get(ctx, userID, id)
	if err != nil {
		return err
	}

	versions, err := resumeRepo.ListByJob(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("error loading resumes: %w", err)
	}
	for _, rv := range versions {
		if err := s.store.Delete(ctx, rv.FilePath); err != nil {
			return fmt.Errorf("error deleting resume file: %w", err)
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Jobs(tx).Delete(ctx, userID, id)
	})
}

// UploadResume stores a new version for an existing job and returns the
// refreshed job record.
func (s *JobService) UploadResume(ctx context.Context, userID, jobID int64, file *UploadedFile) (*models.Job, error) {
	repo := s.repomanager.Jobs(s.db)

	if _, err := repo.Get(ctx, userID, jobID); err != nil {
		return nil, err
	}

	if _, err := s.storeVersion(ctx, jobID, file); err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}

	return s.Get(ctx, userID, jobID)
}

// GetResume returns the version record and its blob.
func (s *JobService) GetResume(ctx context.Context, userID, jobID, resumeID int64) (*models.ResumeVersion, []byte, error) {
	if _, err := s.repomanager.Jobs(s.db).Get(ctx, userID, jobID); err != nil {
		return nil, nil, err
	}

	rv, err := s.repomanager.Resumes(s.db).Get(ctx, jobID, resumeID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.store.Open(ctx, rv.FilePath)
	if err != nil {
		return nil, nil, errors.Join(common.ErrorNotFound, err)
	}

	return rv, data, nil
}

// DeleteResume removes one version: blob first, then the row.
func (s *JobService) DeleteResume(ctx context.Context, userID, jobID, resumeID int64) error {
	if _, err := s.repomanager.Jobs(s.db).Get(ctx, userID, jobID); err != nil {
		return err
	}

	resumeRepo := s.repomanager.Resumes(s.db)
	rv, err := resumeRepo.Get(ctx, jobID, resumeID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, rv.FilePath); err != nil {
		return fmt.Errorf("error deleting resume file: %w", err)
	}

	return resumeRepo.Delete(ctx, jobID, resumeID)
}
