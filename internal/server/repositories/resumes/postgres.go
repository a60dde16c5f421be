package resumes

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

func (r *PostgresRepository) Create(ctx context.Context, rv *models.ResumeVersion) (*models.ResumeVersion, error) {

	query :=
		`INSERT INTO resume_versions (job_id, filename, file_path, version, notes)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, upload_date
		 `

	err := r.db.QueryRowContext(ctx, query,
		rv.JobID, rv.Filename, rv.FilePath, rv.Version, rv.Notes,
	).Scan(&rv.ID, &rv.UploadDate)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rv, nil
}

func (r *PostgresRepository) Get(ctx context.Context, jobID, id int64) (*models.ResumeVersion, error) {
	query :=
		`SELECT id, job_id, filename, file_path, version, upload_date, notes
		 FROM resume_versions
		 WHERE job_id = $1 AND id = $2
		 `

	rv := &models.ResumeVersion{}
	err := r.db.QueryRowContext(ctx, query, jobID, id).Scan(
		&rv.ID, &rv.JobID, &rv.Filename, &rv.FilePath, &rv.Version, &rv.UploadDate, &rv.Notes)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rv, nil
}

func (r *PostgresRepository) ListByJob(ctx context.Context, jobID int64) ([]models.ResumeVersion, error) {
	query :=
		`SELECT id, job_id, filename, file_path, version, upload_date, notes
		 FROM resume_versions
		 WHERE job_id = $1
		 ORDER BY version
		 `

	rows, err := r.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var list []models.ResumeVersion
	for rows.Next() {
		rv := models.ResumeVersion{}
		if err := rows.Scan(&rv.ID, &rv.JobID, &rv.Filename, &rv.FilePath, &rv.Version, &rv.UploadDate, &rv.Notes); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, jobID, id int64) error {
	query := `DELETE FROM resume_versions WHERE job_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, jobID, id)
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
