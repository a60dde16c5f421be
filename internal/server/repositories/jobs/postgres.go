package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/dmitrijs2005/trackit/internal/dbx"
	"github.com/dmitrijs2005/trackit/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const jobColumns = `id, user_id, company, position, status, resume_path, notes, applied_date, created_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (*models.Job, error) {
	job := &models.Job{}
	err := row.Scan(
		&job.ID, &job.UserID, &job.Company, &job.Position, &job.Status,
		&job.ResumePath, &job.Notes, &job.AppliedDate, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *PostgresRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {

	query :=
		`INSERT INTO jobs (user_id, company, position, status, notes, applied_date)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		job.UserID, job.Company, job.Position, job.Status, job.Notes, job.AppliedDate,
	).Scan(&job.ID, &job.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return job, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int64) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE user_id = $1 AND id = $2`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return job, nil
}

// Update applies the non-nil fields of upd and stamps updated_at. The SET
// clause is assembled from fixed column fragments; values always travel as
// placeholders.
func (r *PostgresRepository) Update(ctx context.Context, userID, id int64, upd Update) (*models.Job, error) {
	set := "updated_at = now()"
	args := []any{userID, id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if upd.Company != nil {
		appendSet("company", *upd.Company)
	}
	if upd.Position != nil {
		appendSet("position", *upd.Position)
	}
	if upd.Status != nil {
		appendSet("status", *upd.Status)
	}
	if upd.Notes != nil {
		appendSet("notes", *upd.Notes)
	}
	if upd.AppliedDate != nil {
		appendSet("applied_date", *upd.AppliedDate)
	}

	query := `UPDATE jobs SET ` + set + ` WHERE user_id = $1 AND id = $2 RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return job, nil
}

// NextResumeVersion advances the per-job version counter and returns the new
// value. The counter only ever grows, so versions are never reused even after
// the latest upload is deleted.
func (r *PostgresRepository) NextResumeVersion(ctx context.Context, jobID int64) (int, error) {
	query :=
		`UPDATE jobs SET resume_version_seq = resume_version_seq + 1
		 WHERE id = $1
		 RETURNING resume_version_seq
		 `

	var version int
	err := r.db.QueryRowContext(ctx, query, jobID).Scan(&version)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return version, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	query := `DELETE FROM jobs WHERE user_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
