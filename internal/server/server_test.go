package server

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/clients/adzuna"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/repositories"
	"github.com/maxaizer/job-copilot/internal/services"
	"github.com/maxaizer/job-copilot/internal/storage"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

// tokenIsUser treats the bearer token itself as the user id.
type tokenIsUser struct{}

func (tokenIsUser) Verify(token string) (auth.Identity, error) {
	if token == "" {
		return auth.Identity{}, auth.ErrMissingToken
	}
	return auth.Identity{UserID: token}, nil
}

type mockJobs struct {
	mock.Mock
}

func (m *mockJobs) Search(ctx context.Context, filters models.JobSearchFilters) (models.SearchResults, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(models.SearchResults), args.Error(1)
}

type mockDeepMatch struct {
	mock.Mock
}

func (m *mockDeepMatch) Search(ctx context.Context, request services.DeepMatchRequest) (services.DeepMatchResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(services.DeepMatchResult), args.Error(1)
}

type mockATS struct {
	mock.Mock
}

func (m *mockATS) Score(ctx context.Context, request services.ATSRequest) (services.ATSResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(services.ATSResult), args.Error(1)
}

func (m *mockATS) Reimprove(ctx context.Context, request services.ReimproveRequest) (services.ReimproveResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(services.ReimproveResult), args.Error(1)
}

type mockParser struct {
	mock.Mock
}

func (m *mockParser) ParseResume(ctx context.Context, text string) (models.ResumeData, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(models.ResumeData), args.Error(1)
}

func (m *mockParser) ResearchCompany(ctx context.Context, company, details string) (services.CompanyResearch, error) {
	args := m.Called(ctx, company, details)
	return args.Get(0).(services.CompanyResearch), args.Error(1)
}

type testServer struct {
	handler   http.Handler
	jobs      *mockJobs
	deepMatch *mockDeepMatch
	ats       *mockATS
	ai        *mockParser
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbCtx, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	files, err := storage.NewFileStore(filepath.Join(t.TempDir(), "resumes"))
	require.NoError(t, err)

	ts := &testServer{jobs: &mockJobs{}, deepMatch: &mockDeepMatch{}, ats: &mockATS{}, ai: &mockParser{}}

	documentRepo := repositories.NewDocumentRepository(dbCtx.DB)
	resumeRepo := repositories.NewResumeRepository(dbCtx.DB, files)
	analyses := repositories.NewAnalysisRepository(dbCtx.DB)

	ts.handler = New(Dependencies{
		Verifier:     tokenIsUser{},
		Jobs:         ts.jobs,
		DeepMatch:    ts.deepMatch,
		ATS:          ts.ats,
		Documents:    services.NewDocumentService(nil, documentRepo),
		AI:           ts.ai,
		Uploader:     services.NewResumeService(files, ts.ai, resumeRepo),
		Analyzer:     services.NewResumeAnalyzer(nil, analyses),
		Profiles:     repositories.NewProfileRepository(dbCtx.DB),
		Preferences:  repositories.NewPreferencesRepository(dbCtx.DB),
		SavedJobs:    repositories.NewSavedJobRepository(dbCtx.DB, nil),
		Resumes:      resumeRepo,
		Analyses:     analyses,
		DocumentRepo: documentRepo,
		Alerts:       repositories.NewAlertRepository(dbCtx.DB),
		CareerItems:  repositories.NewCareerItemRepository(dbCtx.DB),
	}, Options{MaxRequestSize: 1 << 20}).Handler()

	return ts
}

func (ts *testServer) do(method, path, user string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+user)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) upload(t *testing.T, user, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "cv.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte(content))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+user)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &value), w.Body.String())
	return value
}

func Test_Server_PreflightAndCors(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodOptions, "/api/v1/jobs/search", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func Test_Server_RejectsMissingToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/saved-jobs", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, decode[map[string]string](t, w), "error")
}

func Test_Search_UpstreamErrorIsReportedInBody(t *testing.T) {
	ts := newTestServer(t)
	ts.jobs.On("Search", mock.Anything, mock.Anything).
		Return(models.SearchResults{}, adzuna.ErrMissingCredentials).Once()

	w := ts.do(http.MethodPost, "/api/v1/jobs/search", "u1", map[string]any{"query": "golang"})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, adzuna.ErrMissingCredentials.Error(), body["error"])
	assert.Equal(t, float64(0), body["count"])
}

func Test_Search_InvalidFilters(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/jobs/search", "u1", map[string]any{"sort_by": "popularity"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	ts.jobs.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func Test_Search_AnnotatesSkillMatch(t *testing.T) {
	ts := newTestServer(t)
	ts.jobs.On("Search", mock.Anything, mock.MatchedBy(func(f models.JobSearchFilters) bool {
		return f.Query == "frontend"
	})).Return(models.SearchResults{
		Results: []models.JobListing{
			{ID: "1", Title: "Fullstack Engineer", SkillsRequired: []string{"React", "Node", "AWS"}},
			{ID: "2", Title: "Designer", SkillsRequired: []string{}},
		},
		Count: 2,
	}, nil)

	w := ts.do(http.MethodPost, "/api/v1/jobs/search", "u1", map[string]any{
		"query": "frontend", "resume_skills": []string{"React", "Node"},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	results := decode[models.SearchResults](t, w).Results
	require.Len(t, results, 2)
	require.NotNil(t, results[0].SkillMatch)
	assert.Equal(t, models.SkillMatch{Matched: []string{"React", "Node"}, Missing: []string{"AWS"}, Score: 67}, *results[0].SkillMatch)
	assert.Nil(t, results[1].SkillMatch)

	// without explicit skills nothing is annotated until a primary résumé exists
	w = ts.do(http.MethodPost, "/api/v1/jobs/search", "u1", map[string]any{"query": "frontend"})
	assert.Nil(t, decode[models.SearchResults](t, w).Results[0].SkillMatch)

	ts.ai.On("ParseResume", mock.Anything, "Jane Doe\nReact, Node").
		Return(models.ResumeData{ExtractedSkills: []string{"react", "node"}}, nil).Once()
	require.Equal(t, http.StatusCreated, ts.upload(t, "u1", "Jane Doe\nReact, Node").Code)

	w = ts.do(http.MethodPost, "/api/v1/jobs/search", "u1", map[string]any{"query": "frontend"})
	match := decode[models.SearchResults](t, w).Results[0].SkillMatch
	require.NotNil(t, match)
	assert.Equal(t, []string{"AWS"}, match.Missing)
	assert.Equal(t, 67, match.Score)
}

func Test_DeepMatch_ReturnsRankedResults(t *testing.T) {
	ts := newTestServer(t)
	ts.deepMatch.On("Search", mock.Anything, mock.MatchedBy(func(r services.DeepMatchRequest) bool {
		return r.ResumeText == "Go developer"
	})).Return(services.DeepMatchResult{
		Results:     []models.JobListing{{ID: "1", Title: "Go Engineer", SkillsRequired: []string{"Go", "AWS"}}},
		Count:       1,
		QueriesUsed: []string{"golang"},
	}, nil).Once()

	w := ts.do(http.MethodPost, "/api/v1/jobs/deep-match", "u1", map[string]any{
		"resumeText": "Go developer", "resumeSkills": []string{"go"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decode[services.DeepMatchResult](t, w)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, []string{"golang"}, body.QueriesUsed)
	require.NotNil(t, body.Results[0].SkillMatch)
	assert.Equal(t, 50, body.Results[0].SkillMatch.Score)

	w = ts.do(http.MethodPost, "/api/v1/jobs/deep-match", "u1", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_ATSScore_FailureIsServerError(t *testing.T) {
	ts := newTestServer(t)
	ts.ats.On("Score", mock.Anything, mock.Anything).Return(services.ATSResult{}, errors.New("unparseable")).Once()

	w := ts.do(http.MethodPost, "/api/v1/ats/score", "u1", map[string]any{"rawText": "cv", "jobDescription": "jd"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "unparseable", decode[map[string]string](t, w)["error"])
}

func Test_SavedJobs_Flow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/saved-jobs", "u1", map[string]any{"id": "adzuna-1", "title": "Go Engineer"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saved := decode[models.SavedJob](t, w)
	assert.Equal(t, models.StatusSaved, saved.Status)

	w = ts.do(http.MethodPost, "/api/v1/saved-jobs", "u1", map[string]any{"id": "adzuna-1", "title": "Go Engineer"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/saved-jobs/"+saved.ID+"/status", "u1", map[string]any{"status": "applied"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	moved := decode[models.SavedJob](t, w)
	assert.Equal(t, models.StatusApplied, moved.Status)
	assert.NotNil(t, moved.AppliedDate)

	w = ts.do(http.MethodPost, "/api/v1/saved-jobs/"+saved.ID+"/status", "u1", map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPatch, "/api/v1/saved-jobs/"+saved.ID, "u1", map[string]any{"notes": "call on monday"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "call on monday", decode[models.SavedJob](t, w).Notes)

	w = ts.do(http.MethodGet, "/api/v1/saved-jobs/stats", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[[]repositories.StatusCount](t, w)
	require.Len(t, stats, len(models.ApplicationStatuses))
	assert.Equal(t, repositories.StatusCount{Status: models.StatusApplied, Count: 1}, stats[1])

	w = ts.do(http.MethodGet, "/api/v1/saved-jobs", "u2", nil)
	assert.Empty(t, decode[[]models.SavedJob](t, w))

	w = ts.do(http.MethodDelete, "/api/v1/saved-jobs/"+saved.ID, "u2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodDelete, "/api/v1/saved-jobs/"+saved.ID, "u1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func Test_Resumes_UploadAndPrimary(t *testing.T) {
	ts := newTestServer(t)
	ts.ai.On("ParseResume", mock.Anything, "Jane Doe\nGo, SQL").
		Return(models.ResumeData{Summary: "Go developer", ExtractedSkills: []string{"Go", "SQL"}}, nil)

	upload := func() *httptest.ResponseRecorder {
		return ts.upload(t, "u1", "Jane Doe\nGo, SQL")
	}

	w := upload()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[models.ParsedResume](t, w)
	assert.True(t, first.IsPrimary)
	assert.Equal(t, []string{"Go", "SQL"}, first.ExtractedSkills)

	w = upload()
	require.Equal(t, http.StatusCreated, w.Code)
	second := decode[models.ParsedResume](t, w)
	assert.False(t, second.IsPrimary)

	w = ts.do(http.MethodPost, "/api/v1/resumes/"+second.ID+"/primary", "u1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/resumes", "u1", nil)
	primaries := 0
	for _, r := range decode[[]models.ParsedResume](t, w) {
		if r.IsPrimary {
			primaries++
			assert.Equal(t, second.ID, r.ID)
		}
	}
	assert.Equal(t, 1, primaries)
}

func Test_Resumes_ParseAndCompanyResearch(t *testing.T) {
	ts := newTestServer(t)
	ts.ai.On("ParseResume", mock.Anything, "my resume").Return(models.ResumeData{Summary: "s"}, nil).Once()
	ts.ai.On("ResearchCompany", mock.Anything, "Acme", "").
		Return(services.CompanyResearch{Content: "## Acme"}, nil).Once()

	w := ts.do(http.MethodPost, "/api/v1/resumes/parse", "u1", map[string]any{"resumeText": "my resume"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "s", decode[models.ResumeData](t, w).Summary)

	w = ts.do(http.MethodPost, "/api/v1/company/research", "u1", map[string]any{"companyName": "Acme"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "## Acme", decode[services.CompanyResearch](t, w).Content)
}

func Test_Documents_Limit(t *testing.T) {
	ts := newTestServer(t)
	doc := map[string]any{"job_id": "adzuna-1", "document_type": "cover_letter", "content": "Dear team"}

	for range models.MaxDocumentsPerTypePerJob {
		w := ts.do(http.MethodPost, "/api/v1/documents", "u1", doc)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := ts.do(http.MethodPost, "/api/v1/documents", "u1", doc)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/documents?job_id=adzuna-1", "u1", nil)
	assert.Len(t, decode[[]models.GeneratedDocument](t, w), models.MaxDocumentsPerTypePerJob)
}

func Test_Alerts_Crud(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/alerts", "u1", map[string]any{
		"title": "Go jobs", "keywords": []string{"golang"}, "notification_frequency": "hourly",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/alerts", "u1", map[string]any{
		"title": "Go jobs", "keywords": []string{"golang"}, "notification_frequency": "weekly", "is_active": false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	alert := decode[models.JobAlert](t, w)
	assert.Equal(t, models.FrequencyWeekly, alert.NotificationFrequency)

	w = ts.do(http.MethodGet, "/api/v1/alerts", "u1", nil)
	alerts := decode[[]models.JobAlert](t, w)
	require.Len(t, alerts, 1)
	assert.False(t, alerts[0].IsActive)

	w = ts.do(http.MethodPut, "/api/v1/alerts/"+alert.ID, "u1", map[string]any{
		"title": "Remote Go", "keywords": []string{"golang", "remote"}, "is_active": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.JobAlert](t, w)
	assert.Equal(t, "Remote Go", updated.Title)
	assert.Equal(t, models.FrequencyDaily, updated.NotificationFrequency)
	assert.True(t, updated.IsActive)

	w = ts.do(http.MethodDelete, "/api/v1/alerts/"+alert.ID, "u1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func Test_Profile_DefaultsAndCareerItems(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/api/v1/preferences", "u1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", decode[models.JobPreferences](t, w).UserID)

	w = ts.do(http.MethodPut, "/api/v1/profile", "u1", map[string]any{"full_name": "Jane", "email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPut, "/api/v1/profile", "u1", map[string]any{"full_name": "Jane", "email": "jane@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.do(http.MethodGet, "/api/v1/profile", "u1", nil)
	assert.Equal(t, "Jane", decode[models.UserProfile](t, w).FullName)

	w = ts.do(http.MethodPost, "/api/v1/career-items", "u1", map[string]any{"type": "certification", "title": "CKA"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := decode[models.CareerItem](t, w)
	assert.Equal(t, models.CareerSaved, item.Status)

	w = ts.do(http.MethodPatch, "/api/v1/career-items/"+item.ID, "u1", map[string]any{"status": "in_progress"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPatch, "/api/v1/career-items/missing", "u1", map[string]any{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
