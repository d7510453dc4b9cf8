package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-copilot/internal/domain/events"
	"github.com/maxaizer/job-copilot/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// ActivityTracker records pipeline and alert activity published on the bus.
type ActivityTracker struct{}

func NewActivityTracker(bus EventBus.Bus) (*ActivityTracker, error) {
	tracker := &ActivityTracker{}

	if err := bus.Subscribe(events.ApplicationStatusChangedTopic, tracker.onStatusChanged); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.AlertDispatchedTopic, tracker.onAlertDispatched); err != nil {
		return nil, err
	}
	return tracker, nil
}

func (t *ActivityTracker) onStatusChanged(event events.ApplicationStatusChanged) {
	metrics.StatusTransitionsCounter.WithLabelValues(string(event.To)).Inc()
	log.WithFields(log.Fields{
		"user_id":      event.UserID,
		"saved_job_id": event.SavedJobID,
	}).Infof("application moved from %s to %s", event.From, event.To)
}

func (t *ActivityTracker) onAlertDispatched(event events.AlertDispatched) {
	log.WithFields(log.Fields{
		"user_id":  event.Alert.UserID,
		"alert_id": event.Alert.ID,
	}).Infof("alert %q sent with %d jobs", event.Alert.Title, event.Matches)
}
