// Package jobs holds the client-side job collection: the in-memory store fed
// from the backend (or from sample data in guest mode), the filter engine
// that derives the visible subset, and the debouncer that coalesces
// free-text filter input.
package jobs

import (
	"strings"

	"github.com/dmitrijs2005/trackit/internal/client/models"
)

// Criteria is the user-chosen set of constraints. Empty fields impose no
// constraint. Criteria is ephemeral, page-local state; it is never persisted.
type Criteria struct {
	Company  string
	Position string
	Status   string
}

// Empty reports whether no constraint is set.
func (c Criteria) Empty() bool {
	return c.Company == "" && c.Position == "" && c.Status == ""
}

// Reset returns the all-empty criteria.
func (c Criteria) Reset() Criteria {
	return Criteria{}
}

// Filter derives the subset of in matching c, preserving the relative order
// of the input. Company and position are case-insensitive substring tests;
// status is a case-insensitive exact match. A record passes only if it
// satisfies every non-empty criterion.
//
// Pure function of its inputs: no side effects, no caching, safe to invoke
// on every keystroke. With empty criteria the input slice is returned
// unchanged. An unrecognized status value simply matches nothing.
func Filter(in []models.Job, c Criteria) []models.Job {
	if c.Empty() {
		return in
	}

	company := strings.ToLower(c.Company)
	position := strings.ToLower(c.Position)

	out := make([]models.Job, 0, len(in))
	for _, job := range in {
		if company != "" && !strings.Contains(strings.ToLower(job.Company), company) {
			continue
		}
		if position != "" && !strings.Contains(strings.ToLower(job.Position), position) {
			continue
		}
		if c.Status != "" && !strings.EqualFold(string(job.Status), c.Status) {
			continue
		}
		out = append(out, job)
	}
	return out
}
