package server

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/repositories"
	"github.com/maxaizer/job-copilot/internal/services"
	"time"
)

type tokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type jobSearcher interface {
	Search(ctx context.Context, filters models.JobSearchFilters) (models.SearchResults, error)
}

type deepMatcher interface {
	Search(ctx context.Context, request services.DeepMatchRequest) (services.DeepMatchResult, error)
}

type atsService interface {
	Score(ctx context.Context, request services.ATSRequest) (services.ATSResult, error)
	Reimprove(ctx context.Context, request services.ReimproveRequest) (services.ReimproveResult, error)
}

type documentService interface {
	Generate(ctx context.Context, request services.GenerateRequest) (services.GeneratedContent, error)
	Save(ctx context.Context, document *models.GeneratedDocument) error
}

type aiService interface {
	ParseResume(ctx context.Context, text string) (models.ResumeData, error)
	ResearchCompany(ctx context.Context, company, details string) (services.CompanyResearch, error)
}

type resumeUploader interface {
	Upload(ctx context.Context, userID string, upload services.ResumeUpload) (*models.ParsedResume, error)
}

type resumeAnalyzer interface {
	Analyze(ctx context.Context, resume models.ParsedResume, prefs models.JobPreferences) (*models.ResumeAnalysis, error)
}

type profileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Save(ctx context.Context, profile *models.UserProfile) error
}

type preferencesRepository interface {
	Get(ctx context.Context, userID string) (*models.JobPreferences, error)
	Save(ctx context.Context, prefs *models.JobPreferences) error
}

type savedJobRepository interface {
	List(ctx context.Context, userID string) ([]models.SavedJob, error)
	Add(ctx context.Context, job *models.SavedJob) error
	UpdateDetails(ctx context.Context, userID, id string, details models.SavedJobDetails) (*models.SavedJob, error)
	Transition(ctx context.Context, userID, id string, to models.ApplicationStatus) (*models.SavedJob, error)
	Remove(ctx context.Context, userID, id string) error
	CountByStatus(ctx context.Context, userID string) ([]repositories.StatusCount, error)
}

type resumeRepository interface {
	List(ctx context.Context, userID string) ([]models.ParsedResume, error)
	Get(ctx context.Context, userID, id string) (*models.ParsedResume, error)
	SetPrimary(ctx context.Context, userID, id string) error
	Remove(ctx context.Context, userID, id string) error
}

type analysisRepository interface {
	Latest(ctx context.Context, userID string) ([]models.ResumeAnalysis, error)
}

type documentRepository interface {
	List(ctx context.Context, userID, jobID string) ([]models.GeneratedDocument, error)
	Remove(ctx context.Context, userID, id string) error
}

type alertRepository interface {
	List(ctx context.Context, userID string) ([]models.JobAlert, error)
	Get(ctx context.Context, userID, id string) (*models.JobAlert, error)
	Add(ctx context.Context, alert *models.JobAlert) error
	Update(ctx context.Context, alert *models.JobAlert) error
	Remove(ctx context.Context, userID, id string) error
}

type careerItemRepository interface {
	List(ctx context.Context, userID string) ([]models.CareerItem, error)
	Add(ctx context.Context, item *models.CareerItem) error
	UpdateStatus(ctx context.Context, userID, id string, status models.CareerItemStatus) error
	Remove(ctx context.Context, userID, id string) error
}

// Dependencies are the services and repositories behind the HTTP API.
type Dependencies struct {
	Verifier tokenVerifier

	Jobs      jobSearcher
	DeepMatch deepMatcher
	ATS       atsService
	Documents documentService
	AI        aiService
	Uploader  resumeUploader
	Analyzer  resumeAnalyzer

	Profiles     profileRepository
	Preferences  preferencesRepository
	SavedJobs    savedJobRepository
	Resumes      resumeRepository
	Analyses     analysisRepository
	DocumentRepo documentRepository
	Alerts       alertRepository
	CareerItems  careerItemRepository
}

type Options struct {
	MaxRequestSize int64
	// RequestTimeout bounds each API request. Zero means no timeout.
	RequestTimeout time.Duration
}
