package models

import "time"

// JobListing is a normalized search result. It is never persisted unless saved.
type JobListing struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Company        string      `json:"company"`
	Location       string      `json:"location"`
	SalaryMin      *float64    `json:"salary_min,omitempty"`
	SalaryMax      *float64    `json:"salary_max,omitempty"`
	Salary         string      `json:"salary"`
	Description    string      `json:"description"`
	SkillsRequired []string    `json:"skills_required"`
	PostedAt       *time.Time  `json:"posted_at,omitempty"`
	Source         string      `json:"source"`
	URL            string      `json:"url,omitempty"`
	Remote         bool        `json:"remote"`
	MatchScore     *int        `json:"match_score,omitempty"`
	MatchReason    string      `json:"match_reason,omitempty"`
	SkillMatch     *SkillMatch `json:"skill_match,omitempty"`
}

// SkillMatch compares a résumé's skills with the skills a listing requires.
type SkillMatch struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Score   int      `json:"score"`
}

type SortBy string

const (
	SortByRelevance SortBy = "relevance"
	SortByDate      SortBy = "date"
	SortBySalary    SortBy = "salary"
)

type JobSearchFilters struct {
	Query      string   `json:"query"`
	Location   string   `json:"location"`
	Radius     int      `json:"radius" binding:"gte=0,lte=500"`
	RemoteOnly bool     `json:"remote_only"`
	SalaryMin  *float64 `json:"salary_min" binding:"omitempty,gte=0"`
	SalaryMax  *float64 `json:"salary_max" binding:"omitempty,gte=0"`
	SortBy     SortBy   `json:"sort_by" binding:"omitempty,oneof=relevance date salary"`
	Country    string   `json:"country" binding:"omitempty,len=2"`
	Page       int      `json:"page" binding:"gte=0"`
	PerPage    int      `json:"per_page" binding:"gte=0,lte=50"`
}

type SearchResults struct {
	Results []JobListing `json:"results"`
	Count   int          `json:"count"`
}
