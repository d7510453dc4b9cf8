package store

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/pipeline"
	"github.com/pkg/errors"
	"slices"
	"strings"
	"sync"
	"time"
)

type Backend interface {
	LoadProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	LoadPreferences(ctx context.Context, userID string) (*models.JobPreferences, error)

	ListSavedJobs(ctx context.Context, userID string) ([]models.SavedJob, error)
	SaveJob(ctx context.Context, job *models.SavedJob) error
	MoveJob(ctx context.Context, userID, id string, to models.ApplicationStatus) error
	DeleteJob(ctx context.Context, userID, id string) error

	ListResumes(ctx context.Context, userID string) ([]models.ParsedResume, error)
	SetPrimaryResume(ctx context.Context, userID, id string) error
	DeleteResume(ctx context.Context, userID, id string) error

	ListCareerItems(ctx context.Context, userID string) ([]models.CareerItem, error)
	AddCareerItem(ctx context.Context, item *models.CareerItem) error
	RemoveCareerItem(ctx context.Context, userID, id string) error
}

type Store struct {
	userID  string
	backend Backend
	now     func() time.Time

	// ops serializes mutations so a rollback never overwrites another mutation.
	ops   sync.Mutex
	mu    sync.RWMutex
	state State
}

func New(userID string, backend Backend) *Store {
	return &Store{userID: userID, backend: backend, now: time.Now}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Load replaces the state with a fresh read from the backend.
func (s *Store) Load(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	var fresh State
	var err error

	if fresh.Profile, err = s.backend.LoadProfile(ctx, s.userID); err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if fresh.Preferences, err = s.backend.LoadPreferences(ctx, s.userID); err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	if fresh.SavedJobs, err = s.backend.ListSavedJobs(ctx, s.userID); err != nil {
		return fmt.Errorf("failed to load saved jobs: %w", err)
	}
	if fresh.Resumes, err = s.backend.ListResumes(ctx, s.userID); err != nil {
		return fmt.Errorf("failed to load resumes: %w", err)
	}
	if fresh.CareerItems, err = s.backend.ListCareerItems(ctx, s.userID); err != nil {
		return fmt.Errorf("failed to load career items: %w", err)
	}

	s.mu.Lock()
	s.state = fresh
	s.mu.Unlock()
	return nil
}

// SaveJob bookmarks a listing. The limit is checked against the local state
// and a violation leaves everything untouched.
func (s *Store) SaveJob(ctx context.Context, listing models.JobListing) (models.SavedJob, error) {
	job := models.NewSavedJob(s.userID, listing)
	job.ID = uuid.NewString()

	err := s.mutate(ctx, mutation{
		apply: func(state *State) error {
			if len(state.SavedJobs) >= models.MaxSavedJobsPerUser {
				return models.ErrSavedJobsLimit
			}
			if indexOf(state.SavedJobs, func(j models.SavedJob) bool { return j.JobID == listing.ID }) >= 0 {
				return models.ErrDuplicateSavedJob
			}
			state.SavedJobs = append([]models.SavedJob{job}, state.SavedJobs...)
			return nil
		},
		remote: func(ctx context.Context) error {
			return s.backend.SaveJob(ctx, &job)
		},
		refetch: s.refetchSavedJobs,
	})
	return job, err
}

// MoveJob changes the application status of a saved job.
func (s *Store) MoveJob(ctx context.Context, id string, to models.ApplicationStatus) error {
	return s.mutate(ctx, mutation{
		apply: func(state *State) error {
			i := indexOf(state.SavedJobs, func(j models.SavedJob) bool { return j.ID == id })
			if i < 0 {
				return models.ErrNotFound
			}
			job := state.SavedJobs[i]
			if _, err := pipeline.Transition(&job, to, s.now().UTC()); err != nil {
				return err
			}
			state.SavedJobs[i] = job
			return nil
		},
		remote: func(ctx context.Context) error {
			return s.backend.MoveJob(ctx, s.userID, id, to)
		},
		refetch: s.refetchSavedJobs,
	})
}

func (s *Store) DeleteJob(ctx context.Context, id string) error {
	return s.mutate(ctx, mutation{
		apply: func(state *State) error {
			return remove(&state.SavedJobs, func(j models.SavedJob) bool { return j.ID == id })
		},
		remote: func(ctx context.Context) error {
			return s.backend.DeleteJob(ctx, s.userID, id)
		},
		refetch: s.refetchSavedJobs,
	})
}

func (s *Store) SetPrimaryResume(ctx context.Context, id string) error {
	return s.mutate(ctx, mutation{
		apply: func(state *State) error {
			if indexOf(state.Resumes, func(r models.ParsedResume) bool { return r.ID == id }) < 0 {
				return models.ErrNotFound
			}
			for i := range state.Resumes {
				state.Resumes[i].IsPrimary = state.Resumes[i].ID == id
			}
			return nil
		},
		remote: func(ctx context.Context) error {
			return s.backend.SetPrimaryResume(ctx, s.userID, id)
		},
		refetch: s.refetchResumes,
	})
}

func (s *Store) DeleteResume(ctx context.Context, id string) error {
	return s.mutate(ctx, mutation{
		apply: func(state *State) error {
			return remove(&state.Resumes, func(r models.ParsedResume) bool { return r.ID == id })
		},
		remote: func(ctx context.Context) error {
			return s.backend.DeleteResume(ctx, s.userID, id)
		},
		refetch: s.refetchResumes,
	})
}

// AddCareerItem adds an item unless one with the same type and title exists.
func (s *Store) AddCareerItem(ctx context.Context, itemType models.CareerItemType, title string) (models.CareerItem, error) {
	item := models.CareerItem{
		Base:   models.Base{ID: uuid.NewString(), UserID: s.userID},
		Type:   itemType,
		Title:  strings.TrimSpace(title),
		Status: models.CareerSaved,
	}

	err := s.mutate(ctx, mutation{
		apply: func(state *State) error {
			if item.Title == "" {
				return fmt.Errorf("career item title is required")
			}
			if indexOf(state.CareerItems, item.SameAs) >= 0 {
				return models.ErrDuplicateCareerItem
			}
			state.CareerItems = append(state.CareerItems, item)
			return nil
		},
		remote: func(ctx context.Context) error {
			return s.backend.AddCareerItem(ctx, &item)
		},
		refetch: s.refetchCareerItems,
	})
	return item, err
}

func (s *Store) RemoveCareerItem(ctx context.Context, id string) error {
	return s.mutate(ctx, mutation{
		apply: func(state *State) error {
			return remove(&state.CareerItems, func(c models.CareerItem) bool { return c.ID == id })
		},
		remote: func(ctx context.Context) error {
			return s.backend.RemoveCareerItem(ctx, s.userID, id)
		},
		refetch: s.refetchCareerItems,
	})
}

func (s *Store) refetchSavedJobs(ctx context.Context, state *State) error {
	jobs, err := s.backend.ListSavedJobs(ctx, s.userID)
	if err == nil {
		state.SavedJobs = jobs
	}
	return err
}

func (s *Store) refetchResumes(ctx context.Context, state *State) error {
	resumes, err := s.backend.ListResumes(ctx, s.userID)
	if err == nil {
		state.Resumes = resumes
	}
	return err
}

func (s *Store) refetchCareerItems(ctx context.Context, state *State) error {
	items, err := s.backend.ListCareerItems(ctx, s.userID)
	if err == nil {
		state.CareerItems = items
	}
	return err
}

func remove[T any](items *[]T, match func(T) bool) error {
	i := indexOf(*items, match)
	if i < 0 {
		return models.ErrNotFound
	}
	*items = slices.Delete(slices.Clone(*items), i, i+1)
	return nil
}
