package models

import (
	"fmt"
	"time"
)

type ApplicationStatus string

const (
	StatusSaved        ApplicationStatus = "saved"
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffer        ApplicationStatus = "offer"
	StatusRejected     ApplicationStatus = "rejected"
)

var ApplicationStatuses = []ApplicationStatus{
	StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected,
}

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for _, status := range ApplicationStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid application status: %q", s)
}

func (s *ApplicationStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseApplicationStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

const MaxSavedJobsPerUser = 100

// SavedJob is a bookmarked JobListing tracked through the application pipeline.
type SavedJob struct {
	Base
	JobID          string     `gorm:"size:128;not null" json:"job_id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	SalaryMin      *float64   `json:"salary_min,omitempty"`
	SalaryMax      *float64   `json:"salary_max,omitempty"`
	Salary         string     `json:"salary"`
	Description    string     `gorm:"type:text" json:"description"`
	SkillsRequired []string   `gorm:"serializer:json" json:"skills_required"`
	PostedAt       *time.Time `json:"posted_at,omitempty"`
	Source         string     `json:"source"`
	URL            string     `json:"url,omitempty"`
	Remote         bool       `json:"remote"`
	MatchScore     *int       `json:"match_score,omitempty"`
	MatchReason    string     `json:"match_reason,omitempty"`

	Status        ApplicationStatus `gorm:"size:16;not null;default:saved;index" json:"status"`
	AppliedDate   *time.Time        `json:"applied_date,omitempty"`
	InterviewDate *time.Time        `json:"interview_date,omitempty"`
	OfferDate     *time.Time        `json:"offer_date,omitempty"`
	RejectedDate  *time.Time        `json:"rejected_date,omitempty"`
	Notes         string            `gorm:"type:text" json:"notes"`

	RecruiterName     string `json:"recruiter_name"`
	RecruiterEmail    string `json:"recruiter_email"`
	RecruiterPhone    string `json:"recruiter_phone"`
	RecruiterLinkedIn string `json:"recruiter_linkedin"`
}

func NewSavedJob(userID string, listing JobListing) SavedJob {
	return SavedJob{
		Base:           Base{UserID: userID},
		JobID:          listing.ID,
		Title:          listing.Title,
		Company:        listing.Company,
		Location:       listing.Location,
		SalaryMin:      listing.SalaryMin,
		SalaryMax:      listing.SalaryMax,
		Salary:         listing.Salary,
		Description:    listing.Description,
		SkillsRequired: listing.SkillsRequired,
		PostedAt:       listing.PostedAt,
		Source:         listing.Source,
		URL:            listing.URL,
		Remote:         listing.Remote,
		MatchScore:     listing.MatchScore,
		MatchReason:    listing.MatchReason,
		Status:         StatusSaved,
	}
}

// SavedJobDetails are the free-text fields editable without a status change.
type SavedJobDetails struct {
	Notes             *string `json:"notes"`
	RecruiterName     *string `json:"recruiter_name"`
	RecruiterEmail    *string `json:"recruiter_email" binding:"omitempty,email"`
	RecruiterPhone    *string `json:"recruiter_phone"`
	RecruiterLinkedIn *string `json:"recruiter_linkedin" binding:"omitempty,url"`
}

func (d SavedJobDetails) Apply(job *SavedJob) {
	if d.Notes != nil {
		job.Notes = *d.Notes
	}
	if d.RecruiterName != nil {
		job.RecruiterName = *d.RecruiterName
	}
	if d.RecruiterEmail != nil {
		job.RecruiterEmail = *d.RecruiterEmail
	}
	if d.RecruiterPhone != nil {
		job.RecruiterPhone = *d.RecruiterPhone
	}
	if d.RecruiterLinkedIn != nil {
		job.RecruiterLinkedIn = *d.RecruiterLinkedIn
	}
}
