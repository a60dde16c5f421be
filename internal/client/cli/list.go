package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/trackit/internal/client/jobs"
	"github.com/dmitrijs2005/trackit/internal/client/models"
)

var errBadFilterArgs = errors.New("usage: filter company|position|status <value>, or: filter reset")

// List prints the jobs matching the current criteria, in collection order.
func (a *App) List(_ context.Context) error {
	visible := jobs.Filter(a.store.Jobs(), a.currentCriteria())

	if len(visible) == 0 {
		fmt.Fprintln(a.out, "No jobs match.")
		return nil
	}

	for _, job := range visible {
		fmt.Fprintln(a.out, formatJobLine(job))
	}
	fmt.Fprintf(a.out, "%d of %d job(s)\n", len(visible), len(a.store.Jobs()))
	return nil
}

// SetFilter mutates one criterion or resets all of them.
//
// Status selection applies immediately (it comes from a fixed choice, like
// the dropdown in the web UI). Free-text company/position values go through
// the debouncer so a burst of refinements produces one criteria update
// carrying the final value.
func (a *App) SetFilter(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.printFilter()
		return nil
	}

	field := strings.ToLower(args[0])

	if field == "reset" {
		a.debounce.Stop()
		a.setCriteria(func(c *jobs.Criteria) { *c = c.Reset() })
		fmt.Fprintln(a.out, "Filters cleared.")
		return nil
	}

	if len(args) < 2 {
		// A bare field clears just that criterion.
		args = append(args, "")
	}
	value := strings.Join(args[1:], " ")

	switch field {
	case "company":
		a.debounce.Trigger(func() {
			a.setCriteria(func(c *jobs.Criteria) { c.Company = value })
		})
	case "position":
		a.debounce.Trigger(func() {
			a.setCriteria(func(c *jobs.Criteria) { c.Position = value })
		})
	case "status":
		a.setCriteria(func(c *jobs.Criteria) { c.Status = value })
	default:
		fmt.Fprintln(a.out, errBadFilterArgs.Error())
		return errBadFilterArgs
	}
	return nil
}

func (a *App) printFilter() {
	c := a.currentCriteria()
	if c.Empty() {
		fmt.Fprintln(a.out, "No filters set.")
		return
	}
	if c.Company != "" {
		fmt.Fprintf(a.out, "company: %s\n", c.Company)
	}
	if c.Position != "" {
		fmt.Fprintf(a.out, "position: %s\n", c.Position)
	}
	if c.Status != "" {
		fmt.Fprintf(a.out, "status: %s\n", c.Status)
	}
}

func formatJobLine(job models.Job) string {
	line := fmt.Sprintf("#%d  %s — %s  [%s]", job.ID, job.Company, job.Position, job.Status)
	if len(job.Resumes) > 0 {
		line += fmt.Sprintf("  (%d resume version(s))", len(job.Resumes))
	}
	return line
}
