package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/trackit/internal/client/api"
	"github.com/dmitrijs2005/trackit/internal/client/models"
)

var errBadID = errors.New("expected a numeric job id")

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errBadID
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}

// Show prints one job with its resume versions. Registered sessions fetch
// the fresh record; guest sessions read the local list.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	var job *models.Job
	if a.session.IsGuest() {
		held, ok := a.store.Get(id)
		if !ok {
			fmt.Fprintln(a.out, "Job not found")
			return nil
		}
		job = held
	} else {
		fetched, err := a.api.GetJob(ctx, id)
		if err != nil {
			a.reportAPIError("Could not load job", err)
			return err
		}
		a.store.Upsert(*fetched)
		job = fetched
	}

	fmt.Fprintln(a.out, formatJobLine(*job))
	if job.AppliedDate != "" {
		fmt.Fprintf(a.out, "Applied: %s\n", job.AppliedDate)
	}
	if job.Notes != "" {
		fmt.Fprintf(a.out, "Notes: %s\n", job.Notes)
	}
	for _, rv := range job.Resumes {
		fmt.Fprintf(a.out, "  resume v%d (id %d): %s, uploaded %s\n", rv.Version, rv.ID, rv.Filename, rv.UploadDate)
	}
	return nil
}

// Add creates a job from interactive input. Registered sessions submit the
// form (with an optional resume file) to the backend and apply the confirmed
// response; guest sessions create the record locally.
func (a *App) Add(ctx context.Context) error {
	company, err := getSimpleText(a.reader, "Company", a.out)
	if err != nil {
		return err
	}
	position, err := getSimpleText(a.reader, "Position", a.out)
	if err != nil {
		return err
	}
	if company == "" || position == "" {
		fmt.Fprintln(a.out, "Company and position are required.")
		return errors.New("company and position are required")
	}

	status, err := getSimpleText(a.reader, "Status (applied/interviewing/rejected/accepted/pending, empty = pending)", a.out)
	if err != nil {
		return err
	}
	if status != "" && !models.Status(strings.ToLower(status)).Valid() {
		fmt.Fprintln(a.out, "Unknown status.")
		return errors.New("unknown status")
	}

	appliedDate, err := getSimpleText(a.reader, "Applied date (e.g. 2026-08-01, empty = none)", a.out)
	if err != nil {
		return err
	}
	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}

	if a.session.IsGuest() {
		job := models.Job{
			ID:        a.store.NextGuestID(),
			Company:   company,
			Position:  position,
			Status:    models.StatusPending,
			Notes:     notes,
			CreatedAt: time.Now().Format(time.RFC3339),
			Resumes:   []models.ResumeVersion{},
		}
		if status != "" {
			job.Status = models.Status(strings.ToLower(status))
		}
		if appliedDate != "" {
			job.AppliedDate = appliedDate
		}
		a.store.Upsert(job)
		fmt.Fprintf(a.out, "Created job #%d (demo only, not saved)\n", job.ID)
		return nil
	}

	resumePath, err := getSimpleText(a.reader, "Resume file to attach (path, empty = none)", a.out)
	if err != nil {
		return err
	}
	var resume *api.ResumeFile
	if resumePath != "" {
		data, err := os.ReadFile(resumePath)
		if err != nil {
			fmt.Fprintf(a.out, "Could not read file: %s\n", err.Error())
			return err
		}
		resume = &api.ResumeFile{Name: baseName(resumePath), Data: data}
	}

	draft := api.JobDraft{
		Company:     company,
		Position:    position,
		Notes:       notes,
		Status:      models.Status(strings.ToLower(status)),
		AppliedDate: appliedDate,
	}

	created, err := a.api.CreateJob(ctx, draft, resume)
	if err != nil {
		a.reportAPIError("Could not create job", err)
		return err
	}

	a.store.Upsert(*created)
	fmt.Fprintf(a.out, "Created job #%d\n", created.ID)
	return nil
}

// Edit changes a single field of a job, the same way the detail page edits
// field by field.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	field, err := getSimpleText(a.reader, "Field to edit (company/position/status/notes/applied_date)", a.out)
	if err != nil {
		return err
	}
	field = strings.ToLower(field)

	var value string
	if field == "notes" {
		value, err = GetMultiline(a.reader, "New notes", a.out)
	} else {
		value, err = getSimpleText(a.reader, "New value", a.out)
	}
	if err != nil {
		return err
	}

	patch := api.JobPatch{}
	switch field {
	case "company":
		patch.Company = &value
	case "position":
		patch.Position = &value
	case "status":
		status := models.Status(strings.ToLower(value))
		if !status.Valid() {
			fmt.Fprintln(a.out, "Unknown status.")
			return errors.New("unknown status")
		}
		patch.Status = &status
	case "notes":
		patch.Notes = &value
	case "applied_date":
		patch.AppliedDate = &value
	default:
		fmt.Fprintln(a.out, "Unknown field.")
		return errors.New("unknown field")
	}

	if a.session.IsGuest() {
		job, ok := a.store.Get(id)
		if !ok {
			fmt.Fprintln(a.out, "Job not found")
			return nil
		}
		applyPatch(job, patch)
		job.UpdatedAt = time.Now().Format(time.RFC3339)
		fmt.Fprintf(a.out, "Updated job #%d (demo only, not saved)\n", id)
		return nil
	}

	updated, err := a.api.UpdateJob(ctx, id, patch)
	if err != nil {
		a.reportAPIError("Could not update job", err)
		return err
	}
	a.store.Upsert(*updated)
	fmt.Fprintf(a.out, "Updated job #%d\n", updated.ID)
	return nil
}

func applyPatch(job *models.Job, patch api.JobPatch) {
	if patch.Company != nil {
		job.Company = *patch.Company
	}
	if patch.Position != nil {
		job.Position = *patch.Position
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if patch.Notes != nil {
		job.Notes = *patch.Notes
	}
	if patch.AppliedDate != nil {
		job.AppliedDate = *patch.AppliedDate
	}
}

// Delete removes a job and all its resume versions after an explicit
// confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete job #%d and all its resumes? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if a.session.IsGuest() {
		a.store.Remove(id)
		fmt.Fprintf(a.out, "Deleted job #%d (demo only)\n", id)
		return nil
	}

	if err := a.api.DeleteJob(ctx, id); err != nil {
		a.reportAPIError("Could not delete job", err)
		return err
	}
	a.store.Remove(id)
	fmt.Fprintf(a.out, "Deleted job #%d\n", id)
	return nil
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
