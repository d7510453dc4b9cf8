package services

import (
	"context"
	"encoding/json"
	"github.com/maxaizer/job-copilot/internal/clients/adzuna"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/pkg/errors"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func Test_FormatSalary(t *testing.T) {
	tests := []struct {
		min, max *float64
		expected string
	}{
		{lo.ToPtr(120000.0), lo.ToPtr(150500.0), "$120k - $150k"},
		{lo.ToPtr(45999.99), lo.ToPtr(60999.0), "$45k - $60k"},
		{lo.ToPtr(90000.0), nil, "$90k+"},
		{lo.ToPtr(999.0), nil, "$0k+"},
		{nil, lo.ToPtr(80000.0), "Salary not disclosed"},
		{nil, nil, "Salary not disclosed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatSalary(tt.min, tt.max))
	}
}

func loadAdzunaFixture(t *testing.T) adzuna.SearchResult {
	raw, err := os.ReadFile("../clients/adzuna/testdata/search.json")
	require.NoError(t, err)

	var result adzuna.SearchResult
	require.NoError(t, json.Unmarshal(raw, &result))
	return result
}

func Test_JobSource_Search_NormalizesListings(t *testing.T) {

	assert := assert.New(t)

	client := &mockAdzuna{}
	client.On("Search", mock.Anything, mock.MatchedBy(func(p adzuna.SearchParameters) bool {
		return p.What == "golang remote" && p.Country == "us" && p.Page == 1 && p.ResultsPerPage == 20 &&
			p.SortBy == adzuna.SortRelevance
	})).Return(loadAdzunaFixture(t), nil).Once()

	source := NewJobSource(client, gocache.New(time.Minute, time.Minute), "us")
	results, err := source.Search(context.Background(), models.JobSearchFilters{Query: "golang", RemoteOnly: true})
	require.NoError(t, err)

	assert.Equal(2, results.Count)
	require.Len(t, results.Results, 2)

	first := results.Results[0]
	assert.Equal("Senior Golang Engineer", first.Title)
	assert.Equal("Build distributed services in Go & Kubernetes.", first.Description)
	assert.True(first.Remote)
	assert.Equal("$120k - $150k", first.Salary)
	assert.Equal("adzuna", first.Source)
	assert.Equal("https://www.adzuna.com/details/4901234567", first.URL)
	assert.Equal([]string{"Go", "Golang", "Kubernetes"}, first.SkillsRequired)
	require.NotNil(t, first.PostedAt)
	assert.Equal(15, first.PostedAt.Day())

	second := results.Results[1]
	assert.False(second.Remote)
	assert.Equal("$90k+", second.Salary)
	assert.Equal([]string{}, second.SkillsRequired)

	client.AssertExpectations(t)
}

func Test_JobSource_Search_UsesCache(t *testing.T) {

	client := &mockAdzuna{}
	client.On("Search", mock.Anything, mock.Anything).Return(loadAdzunaFixture(t), nil).Once()

	source := NewJobSource(client, gocache.New(time.Minute, time.Minute), "us")
	filters := models.JobSearchFilters{Query: "golang", Location: "Austin"}

	_, err := source.Search(context.Background(), filters)
	require.NoError(t, err)
	cached, err := source.Search(context.Background(), filters)
	require.NoError(t, err)

	assert.Len(t, cached.Results, 2)
	client.AssertNumberOfCalls(t, "Search", 1)
}

func Test_JobSource_Search_PropagatesErrors(t *testing.T) {

	client := &mockAdzuna{}
	client.On("Search", mock.Anything, mock.Anything).
		Return(adzuna.SearchResult{}, adzuna.ErrMissingCredentials).Once()

	source := NewJobSource(client, nil, "gb")
	_, err := source.Search(context.Background(), models.JobSearchFilters{Query: "golang"})

	assert.True(t, errors.Is(err, adzuna.ErrMissingCredentials))
}

func Test_StripHTML(t *testing.T) {
	assert.Equal(t, "plain text", stripHTML("  plain text "))
	assert.Equal(t, "Go & Rust dev", stripHTML("<b>Go</b> &amp; <i>Rust</i>\n dev"))
}
