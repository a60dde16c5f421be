package jobs

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/trackit/internal/client/models"
	"github.com/dmitrijs2005/trackit/internal/client/session"
)

// Lister is the slice of the API client the store needs.
type Lister interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
}

// Store owns the authoritative in-memory job list for the current session.
// It is the single writer; list and detail views read through it so they
// can never diverge. Mutations are applied only from confirmed server
// responses (or locally in guest mode), never speculatively.
type Store struct {
	client Lister

	list        []models.Job
	nextGuestID int64
}

func NewStore(client Lister) *Store {
	return &Store{client: client}
}

// Load synchronizes the held list with the session state:
//
//   - registered: one fetch of the full collection; on failure the list
//     degrades to empty and the error is returned for display (no retry).
//   - guest: the fixed built-in sample dataset, no network call.
//   - otherwise: the list is cleared.
func (s *Store) Load(ctx context.Context, sess *session.Store) error {
	switch sess.State() {
	case session.StateRegistered:
		list, err := s.client.ListJobs(ctx)
		if err != nil {
			s.list = nil
			return fmt.Errorf("fetching jobs: %w", err)
		}
		s.list = list
	case session.StateGuest:
		s.list = SampleJobs()
		s.resetGuestIDs()
	default:
		s.list = nil
	}
	return nil
}

// resetGuestIDs seeds the guest id counter above the highest held id.
// A monotonic counter instead of timestamps: two records created in the
// same instant must still get distinct ids.
func (s *Store) resetGuestIDs() {
	s.nextGuestID = 1
	for _, job := range s.list {
		if job.ID >= s.nextGuestID {
			s.nextGuestID = job.ID + 1
		}
	}
}

// NextGuestID returns a fresh id for a locally created guest-mode record.
func (s *Store) NextGuestID() int64 {
	id := s.nextGuestID
	s.nextGuestID++
	return id
}

// Jobs returns the current list.
func (s *Store) Jobs() []models.Job {
	return s.list
}

// Get returns the held job with the given id.
func (s *Store) Get(id int64) (*models.Job, bool) {
	for i := range s.list {
		if s.list[i].ID == id {
			return &s.list[i], true
		}
	}
	return nil, false
}

// Replace swaps in a new full list. Used after a CRUD operation that already
// received a confirmed server response, to avoid a redundant re-fetch.
func (s *Store) Replace(list []models.Job) {
	s.list = list
}

// Upsert replaces the held record with the same id, or appends when absent.
func (s *Store) Upsert(job models.Job) {
	for i := range s.list {
		if s.list[i].ID == job.ID {
			s.list[i] = job
			return
		}
	}
	s.list = append(s.list, job)
}

// Remove drops the record with the given id, preserving order.
func (s *Store) Remove(id int64) {
	for i := range s.list {
		if s.list[i].ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return
		}
	}
}
