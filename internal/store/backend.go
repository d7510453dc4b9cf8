package store

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
)

type profileReader interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
}

type preferencesReader interface {
	Get(ctx context.Context, userID string) (*models.JobPreferences, error)
}

type savedJobRepository interface {
	List(ctx context.Context, userID string) ([]models.SavedJob, error)
	Add(ctx context.Context, job *models.SavedJob) error
	Transition(ctx context.Context, userID, id string, to models.ApplicationStatus) (*models.SavedJob, error)
	Remove(ctx context.Context, userID, id string) error
}

type resumeRepository interface {
	List(ctx context.Context, userID string) ([]models.ParsedResume, error)
	SetPrimary(ctx context.Context, userID, id string) error
	Remove(ctx context.Context, userID, id string) error
}

type careerItemRepository interface {
	List(ctx context.Context, userID string) ([]models.CareerItem, error)
	Add(ctx context.Context, item *models.CareerItem) error
	Remove(ctx context.Context, userID, id string) error
}

// RepositoryBackend serves a Store straight from the database repositories.
type RepositoryBackend struct {
	Profiles    profileReader
	Preferences preferencesReader
	SavedJobs   savedJobRepository
	Resumes     resumeRepository
	CareerItems careerItemRepository
}

func (b RepositoryBackend) LoadProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return b.Profiles.Get(ctx, userID)
}

func (b RepositoryBackend) LoadPreferences(ctx context.Context, userID string) (*models.JobPreferences, error) {
	return b.Preferences.Get(ctx, userID)
}

func (b RepositoryBackend) ListSavedJobs(ctx context.Context, userID string) ([]models.SavedJob, error) {
	return b.SavedJobs.List(ctx, userID)
}

func (b RepositoryBackend) SaveJob(ctx context.Context, job *models.SavedJob) error {
	return b.SavedJobs.Add(ctx, job)
}

func (b RepositoryBackend) MoveJob(ctx context.Context, userID, id string, to models.ApplicationStatus) error {
	_, err := b.SavedJobs.Transition(ctx, userID, id, to)
	return err
}

func (b RepositoryBackend) DeleteJob(ctx context.Context, userID, id string) error {
	return b.SavedJobs.Remove(ctx, userID, id)
}

func (b RepositoryBackend) ListResumes(ctx context.Context, userID string) ([]models.ParsedResume, error) {
	return b.Resumes.List(ctx, userID)
}

func (b RepositoryBackend) SetPrimaryResume(ctx context.Context, userID, id string) error {
	return b.Resumes.SetPrimary(ctx, userID, id)
}

func (b RepositoryBackend) DeleteResume(ctx context.Context, userID, id string) error {
	return b.Resumes.Remove(ctx, userID, id)
}

func (b RepositoryBackend) ListCareerItems(ctx context.Context, userID string) ([]models.CareerItem, error) {
	return b.CareerItems.List(ctx, userID)
}

func (b RepositoryBackend) AddCareerItem(ctx context.Context, item *models.CareerItem) error {
	return b.CareerItems.Add(ctx, item)
}

func (b RepositoryBackend) RemoveCareerItem(ctx context.Context, userID, id string) error {
	return b.CareerItems.Remove(ctx, userID, id)
}
