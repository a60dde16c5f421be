package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/trackit/internal/common"
	"github.com/dmitrijs2005/trackit/internal/dbx"
	"github.com/dmitrijs2005/trackit/internal/server/models"
	jobsrepo "github.com/dmitrijs2005/trackit/internal/server/repositories/jobs"
	resumesrepo "github.com/dmitrijs2005/trackit/internal/server/repositories/resumes"
	usersrepo "github.com/dmitrijs2005/trackit/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- in-memory repositories ---

type fakeUsersRepo struct {
	users  []*models.User
	nextID int64
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeJobsRepo struct {
	jobs   map[int64]*models.Job
	seq    map[int64]int
	nextID int64
}

func newFakeJobsRepo() *fakeJobsRepo {
	return &fakeJobsRepo{jobs: map[int64]*models.Job{}, seq: map[int64]int{}}
}

func (f *fakeJobsRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	f.nextID++
	job.ID = f.nextID
	job.CreatedAt = time.Now()
	clone := *job
	f.jobs[job.ID] = &clone
	return job, nil
}

func (f *fakeJobsRepo) ListByUser(ctx context.Context, userID int64) ([]models.Job, error) {
	var list []models.Job
	for id := int64(1); id <= f.nextID; id++ {
		if job, ok := f.jobs[id]; ok && job.UserID == userID {
			list = append(list, *job)
		}
	}
	return list, nil
}

func (f *fakeJobsRepo) Get(ctx context.Context, userID, id int64) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok || job.UserID != userID {
		return nil, common.ErrorNotFound
	}
	clone := *job
	return &clone, nil
}

func (f *fakeJobsRepo) Update(ctx context.Context, userID, id int64, upd jobsrepo.Update) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok || job.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if upd.Company != nil {
		job.Company = *upd.Company
	}
	if upd.Position != nil {
		job.Position = *upd.Position
	}
	if upd.Status != nil {
		job.Status = *upd.Status
	}
	if upd.Notes != nil {
		job.Notes = *upd.Notes
	}
	if upd.AppliedDate != nil {
		job.AppliedDate = sql.NullTime{Time: *upd.AppliedDate, Valid: true}
	}
	job.UpdatedAt = sql.NullTime{Time: time.Now(), Valid: true}
	clone := *job
	return &clone, nil
}

func (f *fakeJobsRepo) Delete(ctx context.Context, userID, id int64) error {
	job, ok := f.jobs[id]
	if !ok || job.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobsRepo) NextResumeVersion(ctx context.Context, jobID int64) (int, error) {
	if _, ok := f.jobs[jobID]; !ok {
		return 0, common.ErrorNotFound
	}
	f.seq[jobID]++
	return f.seq[jobID], nil
}

type fakeResumesRepo struct {
	rows   []*models.ResumeVersion
	nextID int64
}

func (f *fakeResumesRepo) Create(ctx context.Context, rv *models.ResumeVersion) (*models.ResumeVersion, error) {
	f.nextID++
	rv.ID = f.nextID
	rv.UploadDate = time.Now()
	clone := *rv
	f.rows = append(f.rows, &clone)
	return rv, nil
}

func (f *fakeResumesRepo) Get(ctx context.Context, jobID, id int64) (*models.ResumeVersion, error) {
	for _, rv := range f.rows {
		if rv.JobID == jobID && rv.ID == id {
			clone := *rv
			return &clone, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeResumesRepo) ListByJob(ctx context.Context, jobID int64) ([]models.ResumeVersion, error) {
	var list []models.ResumeVersion
	for _, rv := range f.rows {
		if rv.JobID == jobID {
			list = append(list, *rv)
		}
	}
	return list, nil
}

func (f *fakeResumesRepo) Delete(ctx context.Context, jobID, id int64) error {
	for i, rv := range f.rows {
		if rv.JobID == jobID && rv.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	j *fakeJobsRepo
	r *fakeResumesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{},
		j: newFakeJobsRepo(),
		r: &fakeResumesRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error  { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Jobs(db dbx.DBTX) jobsrepo.Repository         { return m.j }
func (m *fakeRepoManager) Resumes(db dbx.DBTX) resumesrepo.Repository   { return m.r }

// --- in-memory blob store ---

type fakeStore struct {
	blobs   map[string][]byte
	saveErr error
	keys    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: map[string][]byte{}}
}

func (f *fakeStore) NewKey(jobID int64, version int, filename string) string {
	f.keys++
	return fmt.Sprintf("resume_%d_v%d_%d", jobID, version, f.keys)
}

func (f *fakeStore) Save(ctx context.Context, key string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.blobs[key] = data
	return nil
}

func (f *fakeStore) Open(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, fmt.Errorf("no blob %q", key)
	}
	return data, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	delete(f.blobs, key)
	return nil
}
