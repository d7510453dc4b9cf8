package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-copilot/internal/clients/adzuna"
	"github.com/maxaizer/job-copilot/internal/clients/llm"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/llmjson"
	"github.com/maxaizer/job-copilot/internal/logger"
	"github.com/maxaizer/job-copilot/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"math"
	"slices"
	"strings"
	"sync"
	"time"
)

const (
	deepMatchQueries     = 3
	deepMatchPerQuery    = 10
	deepMatchRankLimit   = 15
	genericQuery         = "software engineer"
	alternateQuery       = "software developer"
	unavailableReason    = "Analysis unavailable"
	maxMatchScore        = 100
	deepMatchRankTimeout = 90 * time.Second
)

type aiClient interface {
	Complete(ctx context.Context, prompt llm.Prompt) (string, error)
}

type jobSearcher interface {
	Search(ctx context.Context, filters models.JobSearchFilters) (models.SearchResults, error)
}

type DeepMatchRequest struct {
	ResumeText   string                  `json:"resumeText" binding:"required"`
	ResumeSkills []string                `json:"resumeSkills"`
	Preferences  models.JobPreferences   `json:"preferences"`
	Filters      models.JobSearchFilters `json:"filters"`
}

type DeepMatchResult struct {
	Results     []models.JobListing `json:"results"`
	Count       int                 `json:"count"`
	QueriesUsed []string            `json:"queries_used"`
}

type rankEntry struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// DeepMatch runs multi-query search and LLM re-ranking.
type DeepMatch struct {
	ai   aiClient
	jobs jobSearcher
}

func NewDeepMatch(ai aiClient, jobs jobSearcher) *DeepMatch {
	return &DeepMatch{ai: ai, jobs: jobs}
}

func (d *DeepMatch) Search(ctx context.Context, request DeepMatchRequest) (DeepMatchResult, error) {

	start := time.Now()
	defer func() {
		metrics.DeepMatchDuration.Observe(time.Since(start).Seconds())
	}()

	queries, err := d.generateQueries(ctx, request)
	if err != nil {
		return DeepMatchResult{}, err
	}

	listings, err := d.searchAll(ctx, queries, request.Filters, request.Preferences)
	if err != nil {
		return DeepMatchResult{}, err
	}

	listings = Dedupe(listings)
	if len(listings) > deepMatchRankLimit {
		listings = listings[:deepMatchRankLimit]
	}

	ranked := d.rank(ctx, request.ResumeText, listings)

	return DeepMatchResult{
		Results:     ranked,
		Count:       len(ranked),
		QueriesUsed: queries,
	}, nil
}

func (d *DeepMatch) generateQueries(ctx context.Context, request DeepMatchRequest) ([]string, error) {

	fallback := fallbackQueries(request.Filters.Query, request.Preferences)

	response, err := d.ai.Complete(ctx, llm.Prompt{
		Operation: "deep_match_queries",
		System:    queryGenerationSystem,
		User:      queryGenerationPrompt(request.ResumeText, request.Preferences),
	})
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return nil, err
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Warnf("query generation failed, using fallback queries: %v", err)
		return fallback, nil
	}

	queries, err := llmjson.Decode[[]string](response)
	if err == nil {
		err = validateQueries(queries)
	}
	if err != nil {
		log.Warnf("query generation returned unusable output, using fallback queries: %v", err)
		return fallback, nil
	}

	return lo.Map(queries, func(q string, _ int) string { return strings.TrimSpace(q) }), nil
}

func validateQueries(queries []string) error {
	if len(queries) != deepMatchQueries {
		return fmt.Errorf("expected %d queries, got %d", deepMatchQueries, len(queries))
	}
	seen := map[string]bool{}
	for _, q := range queries {
		key := strings.ToLower(strings.TrimSpace(q))
		if key == "" {
			return fmt.Errorf("empty query")
		}
		if seen[key] {
			return fmt.Errorf("duplicate query %q", q)
		}
		seen[key] = true
	}
	return nil
}

func fallbackQueries(query string, prefs models.JobPreferences) []string {
	query = strings.TrimSpace(query)
	if query == "" && len(prefs.DesiredRoles) > 0 {
		query = strings.TrimSpace(prefs.DesiredRoles[0])
	}
	if query == "" {
		query = genericQuery
	}
	if strings.EqualFold(query, genericQuery) {
		return []string{query, alternateQuery}
	}
	return []string{query, genericQuery}
}

func (d *DeepMatch) searchAll(ctx context.Context, queries []string, base models.JobSearchFilters,
	prefs models.JobPreferences) ([]models.JobListing, error) {

	results := make([][]models.JobListing, len(queries))
	errs := make([]error, len(queries))

	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()

			filters := base
			filters.Query = query
			filters.Page = 1
			filters.PerPage = deepMatchPerQuery
			if filters.Location == "" && len(prefs.Locations) > 0 {
				filters.Location = prefs.Locations[0]
			}
			filters.RemoteOnly = filters.RemoteOnly || prefs.RemoteOnly

			found, err := d.jobs.Search(ctx, filters)
			if err != nil {
				log.Warnf("deep match query %q failed: %v", query, err)
				errs[i] = err
				return
			}
			results[i] = found.Results
		}(i, query)
	}
	wg.Wait()

	failed := lo.Compact(errs)
	if len(failed) == len(queries) {
		if missing, ok := lo.Find(failed, func(err error) bool {
			return errors.Is(err, adzuna.ErrMissingCredentials)
		}); ok {
			return nil, missing
		}
		return nil, fmt.Errorf("all deep match searches failed: %w", failed[0])
	}

	return lo.Flatten(results), nil
}

// Dedupe keeps the first occurrence of each listing id.
func Dedupe(listings []models.JobListing) []models.JobListing {
	return lo.UniqBy(listings, func(listing models.JobListing) string {
		return listing.ID
	})
}

func (d *DeepMatch) rank(ctx context.Context, resume string, listings []models.JobListing) []models.JobListing {

	if len(listings) == 0 {
		return []models.JobListing{}
	}

	var ranking map[string]rankEntry

	rankCtx, cancel := context.WithTimeout(ctx, deepMatchRankTimeout)
	defer cancel()

	response, err := d.ai.Complete(rankCtx, llm.Prompt{
		Operation:  "deep_match_rank",
		System:     rankingSystem,
		User:       rankingPrompt(resume, listings),
		JSONObject: true,
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).Errorf("deep match ranking failed: %v", err)
	} else if ranking, err = llmjson.Decode[map[string]rankEntry](response); err != nil {
		log.Warnf("deep match ranking output unusable: %v", err)
		ranking = nil
	}

	return applyRanking(listings, ranking)
}

// applyRanking attaches scores and sorts by score descending, keeping input
// order for ties. Jobs without an entry get score 0.
func applyRanking(listings []models.JobListing, ranking map[string]rankEntry) []models.JobListing {
	ranked := make([]models.JobListing, len(listings))
	for i, listing := range listings {
		score, reason := 0, unavailableReason
		if entry, ok := ranking[listing.ID]; ok {
			score = lo.Clamp(int(math.Round(entry.Score)), 0, maxMatchScore)
			if strings.TrimSpace(entry.Reason) != "" {
				reason = strings.TrimSpace(entry.Reason)
			}
		}
		listing.MatchScore = lo.ToPtr(score)
		listing.MatchReason = reason
		ranked[i] = listing
	}

	slices.SortStableFunc(ranked, func(a, b models.JobListing) int {
		return *b.MatchScore - *a.MatchScore
	})
	return ranked
}
