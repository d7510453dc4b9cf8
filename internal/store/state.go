// Package store holds one user's working set (profile, preferences, saved
// jobs, résumés, career items) in memory and keeps it in sync with a Backend.
//
// Every mutation is optimistic: the local state changes first, the backend
// write follows, and on failure the state is restored to the snapshot taken
// before the change. On success the affected collection is refetched.
package store

import (
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"slices"
)

type State struct {
	Profile     *models.UserProfile
	Preferences *models.JobPreferences
	SavedJobs   []models.SavedJob
	Resumes     []models.ParsedResume
	CareerItems []models.CareerItem
}

func (s State) clone() State {
	c := State{
		SavedJobs:   slices.Clone(s.SavedJobs),
		Resumes:     slices.Clone(s.Resumes),
		CareerItems: slices.Clone(s.CareerItems),
	}
	if s.Profile != nil {
		profile := *s.Profile
		c.Profile = &profile
	}
	if s.Preferences != nil {
		prefs := *s.Preferences
		c.Preferences = &prefs
	}
	return c
}

func (s State) PrimaryResume() (models.ParsedResume, bool) {
	for _, r := range s.Resumes {
		if r.IsPrimary {
			return r, true
		}
	}
	return models.ParsedResume{}, false
}

func (s State) JobsByStatus() map[models.ApplicationStatus][]models.SavedJob {
	board := make(map[models.ApplicationStatus][]models.SavedJob, len(models.ApplicationStatuses))
	for _, status := range models.ApplicationStatuses {
		board[status] = []models.SavedJob{}
	}
	for _, job := range s.SavedJobs {
		board[job.Status] = append(board[job.Status], job)
	}
	return board
}

func indexOf[T any](items []T, match func(T) bool) int {
	return slices.IndexFunc(items, match)
}
