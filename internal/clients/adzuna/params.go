package adzuna

import (
	"fmt"
	"github.com/pkg/errors"
	"net/url"
	"strconv"
)

var ErrTooDeepPagination = errors.New("too deep pagination")

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortDate      SortBy = "date"
	SortSalary    SortBy = "salary"
)

const maxResults = 1000

type SearchParameters struct {
	What           string
	Where          string
	Distance       int
	SalaryMin      *float64
	SalaryMax      *float64
	SortBy         SortBy
	Country        string
	Page           int
	ResultsPerPage int
}

func (s SearchParameters) Validate() error {

	if len(s.Country) != 2 {
		return fmt.Errorf("country must be a two-letter code")
	}

	if s.Page < 1 {
		return fmt.Errorf("page must be positive")
	}

	if s.ResultsPerPage < 1 || s.ResultsPerPage > 50 {
		return fmt.Errorf("results per page must be between 1 and 50")
	}

	if s.Distance < 0 {
		return fmt.Errorf("distance must be non-negative")
	}

	if s.SalaryMin != nil && s.SalaryMax != nil && *s.SalaryMin > *s.SalaryMax {
		return fmt.Errorf("salary min is greater than salary max")
	}

	switch s.SortBy {
	case "", SortRelevance, SortDate, SortSalary:
	default:
		return fmt.Errorf("unknown sort order: %q", s.SortBy)
	}

	if s.Page*s.ResultsPerPage > maxResults {
		return ErrTooDeepPagination
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("results_per_page", strconv.Itoa(s.ResultsPerPage))

	if s.What != "" {
		params.Add("what", s.What)
	}

	if s.Where != "" {
		params.Add("where", s.Where)
		if s.Distance > 0 {
			params.Add("distance", strconv.Itoa(s.Distance))
		}
	}

	if s.SalaryMin != nil {
		params.Add("salary_min", strconv.FormatFloat(*s.SalaryMin, 'f', 0, 64))
	}

	if s.SalaryMax != nil {
		params.Add("salary_max", strconv.FormatFloat(*s.SalaryMax, 'f', 0, 64))
	}

	if s.SortBy != "" {
		params.Add("sort_by", string(s.SortBy))
	}

	return params
}
