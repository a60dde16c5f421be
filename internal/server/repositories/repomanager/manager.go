package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/trackit/internal/dbx"
	"github.com/dmitrijs2005/trackit/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/trackit/internal/server/repositories/resumes"
	"github.com/dmitrijs2005/trackit/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Resumes(db dbx.DBTX) resumes.Repository
}
