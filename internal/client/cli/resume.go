package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/trackit/internal/client/api"
	"github.com/dmitrijs2005/trackit/internal/common"
)

var errBadResumeArgs = errors.New("expected a job id and a resume version")

func parseResumeArgs(args []string) (int64, int64, error) {
	if len(args) < 2 {
		return 0, 0, errBadResumeArgs
	}
	jobID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, errBadResumeArgs
	}
	resumeID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, 0, errBadResumeArgs
	}
	return jobID, resumeID, nil
}

// guardGuest blocks mutating resume operations in demo sessions before any
// request leaves the client.
func (a *App) guardGuest() error {
	if !a.session.IsGuest() {
		return nil
	}
	fmt.Fprintln(a.out, "Resume management is not available in demo mode. Register an account to upload resumes.")
	return common.ErrGuestRestricted
}

// ResumeUpload attaches a new resume version to a job. The backend assigns
// the version number.
func (a *App) ResumeUpload(ctx context.Context, args []string) error {
	if err := a.guardGuest(); err != nil {
		return err
	}

	if len(args) < 2 {
		fmt.Fprintln(a.out, "usage: resume-up <job id> <path>")
		return errBadResumeArgs
	}
	jobID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, errBadID.Error())
		return errBadID
	}
	path := args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(a.out, "Could not read file: %s\n", err.Error())
		return err
	}

	job, err := a.api.UploadResume(ctx, jobID, api.ResumeFile{Name: baseName(path), Data: data})
	if err != nil {
		a.reportAPIError("Upload failed", err)
		return err
	}
	a.store.Upsert(*job)

	if n := len(job.Resumes); n > 0 {
		latest := job.Resumes[n-1]
		fmt.Fprintf(a.out, "Uploaded %s as version %d\n", latest.Filename, latest.Version)
	} else {
		fmt.Fprintf(a.out, "Uploaded resume to job #%d\n", jobID)
	}
	return nil
}

// ResumeDownload fetches a resume version and writes it to disk. The output
// path defaults to the stored filename in the current directory.
func (a *App) ResumeDownload(ctx context.Context, args []string) error {
	jobID, resumeID, err := parseResumeArgs(args)
	if err != nil {
		fmt.Fprintln(a.out, "usage: resume-get <job id> <resume id> [output path]")
		return err
	}

	data, filename, err := a.api.DownloadResume(ctx, jobID, resumeID)
	if err != nil {
		a.reportAPIError("Download failed", err)
		return err
	}
	if filename == "" {
		filename = fmt.Sprintf("resume_%d_%d", jobID, resumeID)
	}

	out := filename
	if len(args) >= 3 {
		out = args[2]
		if fi, statErr := os.Stat(out); statErr == nil && fi.IsDir() {
			out = filepath.Join(out, filename)
		}
	}

	if err := os.WriteFile(out, data, 0o600); err != nil {
		fmt.Fprintf(a.out, "Could not write file: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Saved %s (%d bytes)\n", out, len(data))
	return nil
}

// ResumeDelete removes one resume version from a job.
func (a *App) ResumeDelete(ctx context.Context, args []string) error {
	if err := a.guardGuest(); err != nil {
		return err
	}

	jobID, resumeID, err := parseResumeArgs(args)
	if err != nil {
		fmt.Fprintln(a.out, "usage: resume-rm <job id> <resume id>")
		return err
	}

	if err := a.api.DeleteResume(ctx, jobID, resumeID); err != nil {
		a.reportAPIError("Delete failed", err)
		return err
	}

	if job, err := a.api.GetJob(ctx, jobID); err == nil {
		a.store.Upsert(*job)
	}

	fmt.Fprintf(a.out, "Deleted resume %d from job #%d\n", resumeID, jobID)
	return nil
}
