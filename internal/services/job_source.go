package services

import (
	"context"
	"fmt"
	"github.com/PuerkitoBio/goquery"
	"github.com/maxaizer/job-copilot/internal/clients/adzuna"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/logger"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"math"
	"strings"
	"time"
)

const (
	jobSourceName   = "adzuna"
	defaultPerPage  = 20
	noSalaryDisplay = "Salary not disclosed"
)

type adzunaClient interface {
	Search(ctx context.Context, parameters adzuna.SearchParameters) (adzuna.SearchResult, error)
}

// JobSource normalizes upstream job board results into JobListing values.
type JobSource struct {
	client  adzunaClient
	cache   *searchCache
	country string
}

func NewJobSource(client adzunaClient, cache *gocache.Cache, defaultCountry string) *JobSource {
	return &JobSource{
		client:  client,
		cache:   newSearchCache(cache),
		country: defaultCountry,
	}
}

func (s *JobSource) Search(ctx context.Context, filters models.JobSearchFilters) (models.SearchResults, error) {

	filters = s.withDefaults(filters)

	if cached, ok := s.cache.get(filters); ok {
		return cached, nil
	}

	result, err := s.client.Search(ctx, toSearchParameters(filters))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobApi).
			Errorf("job search for %q failed: %v", filters.Query, err)
		return models.SearchResults{}, fmt.Errorf("job search failed: %w", err)
	}

	results := models.SearchResults{
		Results: lo.Map(result.Results, func(job adzuna.Job, _ int) models.JobListing {
			return normalizeJob(job)
		}),
		Count: result.Count,
	}

	s.cache.put(filters, results)
	return results, nil
}

func (s *JobSource) withDefaults(filters models.JobSearchFilters) models.JobSearchFilters {
	if filters.Country == "" {
		filters.Country = s.country
	}
	filters.Country = strings.ToLower(filters.Country)
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PerPage < 1 {
		filters.PerPage = defaultPerPage
	}
	if filters.SortBy == "" {
		filters.SortBy = models.SortByRelevance
	}
	filters.Query = strings.TrimSpace(filters.Query)
	return filters
}

func toSearchParameters(filters models.JobSearchFilters) adzuna.SearchParameters {
	what := filters.Query
	if filters.RemoteOnly && !strings.Contains(strings.ToLower(what), "remote") {
		what = strings.TrimSpace(what + " remote")
	}

	return adzuna.SearchParameters{
		What:           what,
		Where:          filters.Location,
		Distance:       filters.Radius,
		SalaryMin:      filters.SalaryMin,
		SalaryMax:      filters.SalaryMax,
		SortBy:         adzuna.SortBy(filters.SortBy),
		Country:        filters.Country,
		Page:           filters.Page,
		ResultsPerPage: filters.PerPage,
	}
}

func normalizeJob(job adzuna.Job) models.JobListing {
	title, description := stripHTML(job.Title), stripHTML(job.Description)

	listing := models.JobListing{
		ID:             job.ID,
		Title:          title,
		Company:        job.Company.DisplayName,
		Location:       job.Location.DisplayName,
		SalaryMin:      job.SalaryMin,
		SalaryMax:      job.SalaryMax,
		Salary:         FormatSalary(job.SalaryMin, job.SalaryMax),
		Description:    description,
		SkillsRequired: ExtractSkills(title + "\n" + description),
		Source:         jobSourceName,
		URL:            job.RedirectURL,
		Remote:         isRemote(job.Location.Area, job.Location.DisplayName),
	}

	if !job.Created.IsZero() {
		posted := job.Created.Time.In(time.UTC)
		listing.PostedAt = &posted
	}
	return listing
}

// FormatSalary renders the upstream salary range in thousands, rounding down.
func FormatSalary(minSalary, maxSalary *float64) string {
	switch {
	case minSalary != nil && maxSalary != nil:
		return fmt.Sprintf("$%dk - $%dk", thousands(*minSalary), thousands(*maxSalary))
	case minSalary != nil:
		return fmt.Sprintf("$%dk+", thousands(*minSalary))
	default:
		return noSalaryDisplay
	}
}

func thousands(amount float64) int64 {
	return int64(math.Floor(amount / 1000))
}

// isRemote is a heuristic over the upstream area tags; the board has no remote flag.
func isRemote(areas []string, displayName string) bool {
	for _, area := range areas {
		if strings.Contains(strings.ToLower(area), "remote") {
			return true
		}
	}
	return strings.Contains(strings.ToLower(displayName), "remote")
}

func stripHTML(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return strings.TrimSpace(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return strings.TrimSpace(text)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
