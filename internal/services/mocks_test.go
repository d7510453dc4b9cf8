package services

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/clients/adzuna"
	"github.com/maxaizer/job-copilot/internal/clients/llm"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/notify"
	"github.com/stretchr/testify/mock"
	"time"
)

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) Complete(ctx context.Context, prompt llm.Prompt) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func operation(name string) any {
	return mock.MatchedBy(func(p llm.Prompt) bool { return p.Operation == name })
}

type mockAdzuna struct {
	mock.Mock
}

func (m *mockAdzuna) Search(ctx context.Context, parameters adzuna.SearchParameters) (adzuna.SearchResult, error) {
	args := m.Called(ctx, parameters)
	return args.Get(0).(adzuna.SearchResult), args.Error(1)
}

type mockJobSearcher struct {
	mock.Mock
}

func (m *mockJobSearcher) Search(ctx context.Context, filters models.JobSearchFilters) (models.SearchResults, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(models.SearchResults), args.Error(1)
}

func query(q string) any {
	return mock.MatchedBy(func(f models.JobSearchFilters) bool { return f.Query == q })
}

type mockDocuments struct {
	mock.Mock
}

func (m *mockDocuments) CountByJobAndType(ctx context.Context, userID, jobID string, documentType models.DocumentType) (int64, error) {
	args := m.Called(ctx, userID, jobID, documentType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDocuments) Add(ctx context.Context, document *models.GeneratedDocument) error {
	return m.Called(ctx, document).Error(0)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, request GenerateRequest) (GeneratedContent, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(GeneratedContent), args.Error(1)
}

type mockAlerts struct {
	mock.Mock
}

func (m *mockAlerts) ListActive(ctx context.Context, limit, offset int) ([]models.JobAlert, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.JobAlert), args.Error(1)
}

func (m *mockAlerts) MarkSent(ctx context.Context, alertID string, at time.Time) error {
	return m.Called(ctx, alertID, at).Error(0)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.UserProfile)
	return profile, args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, recipient notify.Recipient, digest notify.Digest) error {
	return m.Called(ctx, recipient, digest).Error(0)
}

type mockAnalyses struct {
	mock.Mock
}

func (m *mockAnalyses) Add(ctx context.Context, analysis *models.ResumeAnalysis) error {
	return m.Called(ctx, analysis).Error(0)
}

func listing(id string) models.JobListing {
	return models.JobListing{ID: id, Title: "Job " + id, Source: "adzuna"}
}

func listings(ids ...string) []models.JobListing {
	result := make([]models.JobListing, 0, len(ids))
	for _, id := range ids {
		result = append(result, listing(id))
	}
	return result
}

func ids(listings []models.JobListing) []string {
	result := make([]string, 0, len(listings))
	for _, l := range listings {
		result = append(result, l.ID)
	}
	return result
}
