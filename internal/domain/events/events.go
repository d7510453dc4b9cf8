package events

import (
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"time"
)

var ApplicationStatusChangedTopic = "ApplicationStatusChangedEvent"

type ApplicationStatusChanged struct {
	UserID     string
	SavedJobID string
	From       models.ApplicationStatus
	To         models.ApplicationStatus
	At         time.Time
}

var AlertDispatchedTopic = "AlertDispatchedEvent"

type AlertDispatched struct {
	Alert   models.JobAlert
	Matches int
	At      time.Time
}
