package jobs

import (
	"time"

	"github.com/dmitrijs2005/trackit/internal/client/models"
)

// SampleJobs returns the fixed dataset shown to guest sessions. Dates are
// generated relative to now so the demo always looks current; ids start at 1
// and guest-created records continue from there.
func SampleJobs() []models.Job {
	now := time.Now()
	daysAgo := func(n int) string {
		return now.AddDate(0, 0, -n).Format(time.RFC3339)
	}

	return []models.Job{
		{
			ID:          1,
			Company:     "Google",
			Position:    "Full Stack Developer",
			Status:      models.StatusApplied,
			Notes:       "Applied through company website. Following up next week.",
			AppliedDate: daysAgo(0),
			CreatedAt:   daysAgo(0),
			Resumes:     []models.ResumeVersion{},
		},
		{
			ID:          2,
			Company:     "Microsoft",
			Position:    "Frontend Engineer",
			Status:      models.StatusInterviewing,
			Notes:       "Technical interview scheduled for next week. Preparing LeetCode problems.",
			AppliedDate: daysAgo(7),
			CreatedAt:   daysAgo(7),
			Resumes:     []models.ResumeVersion{},
		},
		{
			ID:          3,
			Company:     "Amazon",
			Position:    "Software Development Engineer",
			Status:      models.StatusRejected,
			Notes:       "Got feedback: 'Good technical skills but looking for more experience'.",
			AppliedDate: daysAgo(14),
			CreatedAt:   daysAgo(14),
			Resumes:     []models.ResumeVersion{},
		},
		{
			ID:          4,
			Company:     "Apple",
			Position:    "iOS Developer",
			Status:      models.StatusAccepted,
			Notes:       "Offer received! Reviewing compensation package.",
			AppliedDate: daysAgo(30),
			CreatedAt:   daysAgo(30),
			Resumes:     []models.ResumeVersion{},
		},
	}
}
