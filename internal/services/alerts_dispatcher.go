package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-copilot/internal/domain/events"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/logger"
	"github.com/maxaizer/job-copilot/internal/metrics"
	"github.com/maxaizer/job-copilot/internal/notify"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"strings"
	"sync"
	"time"
)

const alertDigestSize = 10

const (
	outcomeSent   = "sent"
	outcomeNotDue = "not_due"
	outcomeEmpty  = "empty"
	outcomeFailed = "failed"
	outcomePanic  = "panic"
)

type alertRepository interface {
	ListActive(ctx context.Context, limit, offset int) ([]models.JobAlert, error)
	MarkSent(ctx context.Context, alertID string, at time.Time) error
}

type profileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
}

type digestNotifier interface {
	Notify(ctx context.Context, recipient notify.Recipient, digest notify.Digest) error
}

type DispatchStats struct {
	Checked int
	Sent    int
	NotDue  int
	Empty   int
	Failed  int
}

// AlertsDispatcher re-runs active alerts against the job source and sends digests.
// Alerts are processed one at a time; a failure in one never stops the batch.
type AlertsDispatcher struct {
	alerts   alertRepository
	profiles profileRepository
	jobs     jobSearcher
	notifier digestNotifier
	bus      EventBus.Bus
	pageSize int
	now      func() time.Time

	cron    *cron.Cron
	running sync.Mutex
}

func NewAlertsDispatcher(alerts alertRepository, profiles profileRepository, jobs jobSearcher,
	notifier digestNotifier, bus EventBus.Bus, pageSize int) *AlertsDispatcher {

	if pageSize <= 0 {
		pageSize = 50
	}

	return &AlertsDispatcher{
		alerts:   alerts,
		profiles: profiles,
		jobs:     jobs,
		notifier: notifier,
		bus:      bus,
		pageSize: pageSize,
		now:      time.Now,
	}
}

func (d *AlertsDispatcher) Start(schedule string) error {

	d.cron = cron.New()
	_, err := d.cron.AddFunc(schedule, func() {
		stats, err := d.RunOnce(context.Background())
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("alert dispatch failed: %v", err)
			return
		}
		log.Infof("alert dispatch finished: %+v", stats)
	})
	if err != nil {
		return fmt.Errorf("invalid alerts schedule %q: %w", schedule, err)
	}

	d.cron.Start()
	log.Infof("alerts dispatcher started, schedule: %s", schedule)
	return nil
}

func (d *AlertsDispatcher) Stop() {
	if d.cron != nil {
		<-d.cron.Stop().Done()
	}
}

// RunOnce processes every active alert once. Overlapping runs are skipped.
func (d *AlertsDispatcher) RunOnce(ctx context.Context) (DispatchStats, error) {

	var stats DispatchStats

	if !d.running.TryLock() {
		log.Warn("previous alert dispatch is still running, skipping")
		return stats, nil
	}
	defer d.running.Unlock()

	for offset := 0; ; offset += d.pageSize {
		alerts, err := d.alerts.ListActive(ctx, d.pageSize, offset)
		if err != nil {
			return stats, fmt.Errorf("failed to list active alerts: %w", err)
		}

		for _, alert := range alerts {
			stats.Checked++
			switch d.dispatch(ctx, alert) {
			case outcomeSent:
				stats.Sent++
			case outcomeNotDue:
				stats.NotDue++
			case outcomeEmpty:
				stats.Empty++
			default:
				stats.Failed++
			}
		}

		if len(alerts) < d.pageSize {
			break
		}
	}

	return stats, nil
}

func (d *AlertsDispatcher) dispatch(ctx context.Context, alert models.JobAlert) (outcome string) {

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic while dispatching alert %s: %v", alert.ID, r)
			outcome = outcomePanic
		}
		metrics.AlertsCounter.WithLabelValues(outcome).Inc()
	}()

	outcome, err := d.process(ctx, alert)
	if err != nil {
		log.Errorf("failed to dispatch alert %s: %v", alert.ID, err)
	}
	return outcome
}

func (d *AlertsDispatcher) process(ctx context.Context, alert models.JobAlert) (string, error) {

	now := d.now()
	if !alert.ShouldSend(now) {
		return outcomeNotDue, nil
	}

	found, err := d.jobs.Search(ctx, alertFilters(alert))
	if err != nil {
		return outcomeFailed, err
	}
	if len(found.Results) == 0 {
		return outcomeEmpty, nil
	}

	recipient, err := d.recipient(ctx, alert.UserID)
	if err != nil {
		return outcomeFailed, err
	}

	digest := notify.Digest{
		AlertTitle: alert.Title,
		Keywords:   alert.Keywords,
		Jobs:       found.Results,
		Total:      max(found.Count, len(found.Results)),
	}
	if err := d.notifier.Notify(ctx, recipient, digest); err != nil {
		return outcomeFailed, fmt.Errorf("failed to send digest: %w", err)
	}

	if err := d.alerts.MarkSent(ctx, alert.ID, now); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("digest for alert %s sent but last_sent_at not stored: %v", alert.ID, err)
		return outcomeFailed, err
	}

	if d.bus != nil {
		d.bus.Publish(events.AlertDispatchedTopic, events.AlertDispatched{
			Alert:   alert,
			Matches: len(found.Results),
			At:      now,
		})
	}
	return outcomeSent, nil
}

func (d *AlertsDispatcher) recipient(ctx context.Context, userID string) (notify.Recipient, error) {
	profile, err := d.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return notify.Recipient{}, notify.ErrNoChannel
		}
		return notify.Recipient{}, err
	}
	return notify.Recipient{
		Name:           profile.FullName,
		Email:          profile.Email,
		TelegramChatID: profile.TelegramChatID,
	}, nil
}

func alertFilters(alert models.JobAlert) models.JobSearchFilters {
	return models.JobSearchFilters{
		Query:      strings.Join(alert.Keywords, " "),
		Location:   alert.Location,
		RemoteOnly: alert.RemoteOnly,
		SalaryMin:  alert.MinSalary,
		SortBy:     models.SortByDate,
		Page:       1,
		PerPage:    alertDigestSize,
	}
}
