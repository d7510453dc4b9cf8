// Package pipeline models the lifecycle of a job application.
//
// Any status may move to any other status. Moving into applied, interviewing,
// offer or rejected stamps the matching date field the first time only, and
// no transition ever clears a stamped date, so the history is cumulative.
package pipeline

import (
	"fmt"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/pkg/errors"
	"time"
)

var ErrInvalidTransition = errors.New("invalid status transition")

type DateField int

const (
	NoDate DateField = iota
	AppliedDate
	InterviewDate
	OfferDate
	RejectedDate
)

func (f DateField) String() string {
	switch f {
	case AppliedDate:
		return "applied_date"
	case InterviewDate:
		return "interview_date"
	case OfferDate:
		return "offer_date"
	case RejectedDate:
		return "rejected_date"
	default:
		return "none"
	}
}

type transition struct {
	from models.ApplicationStatus
	to   models.ApplicationStatus
}

var stampedBy = map[models.ApplicationStatus]DateField{
	models.StatusSaved:        NoDate,
	models.StatusApplied:      AppliedDate,
	models.StatusInterviewing: InterviewDate,
	models.StatusOffer:        OfferDate,
	models.StatusRejected:     RejectedDate,
}

var table = buildTable()

func buildTable() map[transition]DateField {
	t := make(map[transition]DateField)
	for _, from := range models.ApplicationStatuses {
		for _, to := range models.ApplicationStatuses {
			if from == to {
				continue
			}
			t[transition{from, to}] = stampedBy[to]
		}
	}
	return t
}

// FieldFor returns the date field a move from one status to another stamps.
func FieldFor(from, to models.ApplicationStatus) (DateField, error) {
	if from == to {
		return NoDate, nil
	}
	field, ok := table[transition{from, to}]
	if !ok {
		return NoDate, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return field, nil
}

// Transition moves job to status to. It reports whether anything changed.
func Transition(job *models.SavedJob, to models.ApplicationStatus, now time.Time) (bool, error) {
	if _, err := models.ParseApplicationStatus(string(to)); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	if job.Status == to {
		return false, nil
	}

	field, err := FieldFor(job.Status, to)
	if err != nil {
		return false, err
	}

	if slot := dateSlot(job, field); slot != nil && *slot == nil {
		stamped := now
		*slot = &stamped
	}
	job.Status = to
	return true, nil
}

func dateSlot(job *models.SavedJob, field DateField) **time.Time {
	switch field {
	case AppliedDate:
		return &job.AppliedDate
	case InterviewDate:
		return &job.InterviewDate
	case OfferDate:
		return &job.OfferDate
	case RejectedDate:
		return &job.RejectedDate
	default:
		return nil
	}
}
