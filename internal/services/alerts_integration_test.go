package services_test

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-copilot/internal/domain/events"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/notify"
	"github.com/maxaizer/job-copilot/internal/repositories"
	"github.com/maxaizer/job-copilot/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

type staticJobs struct {
	results []models.JobListing
	queries []string
}

func (s *staticJobs) Search(_ context.Context, filters models.JobSearchFilters) (models.SearchResults, error) {
	s.queries = append(s.queries, filters.Query)
	return models.SearchResults{Results: s.results, Count: len(s.results)}, nil
}

type inbox struct {
	mu      sync.Mutex
	digests map[string][]notify.Digest
}

func (i *inbox) Name() string { return "inbox" }

func (i *inbox) Accepts(recipient notify.Recipient) bool { return recipient.Email != "" }

func (i *inbox) Send(_ context.Context, recipient notify.Recipient, digest notify.Digest) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.digests[recipient.Email] = append(i.digests[recipient.Email], digest)
	return nil
}

func Test_AlertDispatch_EndToEnd(t *testing.T) {

	dbCtx, err := repositories.NewDbContext(filepath.Join(t.TempDir(), "alerts.db"))
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	defer dbCtx.Close()

	ctx := context.Background()
	profiles := repositories.NewProfileRepository(dbCtx.DB)
	alerts := repositories.NewAlertRepository(dbCtx.DB)

	require.NoError(t, profiles.Save(ctx, &models.UserProfile{UserID: "jane", FullName: "Jane", Email: "jane@example.com"}))
	require.NoError(t, profiles.Save(ctx, &models.UserProfile{UserID: "bob", FullName: "Bob"}))

	recently := time.Now().Add(-time.Hour)
	for _, alert := range []*models.JobAlert{
		{Base: models.Base{UserID: "jane"}, Title: "Go", Keywords: []string{"golang", "remote"}, IsActive: true},
		{Base: models.Base{UserID: "jane"}, Title: "Rust", Keywords: []string{"rust"}, IsActive: true, LastSentAt: &recently},
		{Base: models.Base{UserID: "bob"}, Title: "Java", Keywords: []string{"java"}, IsActive: true},
		{Base: models.Base{UserID: "jane"}, Title: "Paused", Keywords: []string{"php"}},
	} {
		alert.NotificationFrequency = models.FrequencyDaily
		require.NoError(t, alerts.Add(ctx, alert))
	}

	bus := EventBus.New()
	_, err = services.NewActivityTracker(bus)
	require.NoError(t, err)

	dispatched := 0
	require.NoError(t, bus.Subscribe(events.AlertDispatchedTopic, func(events.AlertDispatched) {
		dispatched++
	}))

	mailbox := &inbox{digests: map[string][]notify.Digest{}}
	jobs := &staticJobs{results: []models.JobListing{{ID: "1", Title: "Go Engineer", Source: "adzuna"}}}
	dispatcher := services.NewAlertsDispatcher(alerts, profiles, jobs, notify.NewMulti(mailbox), bus, 2)

	stats, err := dispatcher.RunOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, services.DispatchStats{Checked: 3, Sent: 1, NotDue: 1, Failed: 1}, stats)
	assert.ElementsMatch(t, []string{"golang remote", "java"}, jobs.queries)
	require.Len(t, mailbox.digests["jane@example.com"], 1)
	assert.Equal(t, "Go", mailbox.digests["jane@example.com"][0].AlertTitle)
	assert.Equal(t, 1, dispatched)

	// the sent alert is stamped and not due again; bob still has no channel
	stats, err = dispatcher.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, services.DispatchStats{Checked: 3, NotDue: 2, Failed: 1}, stats)
	assert.Len(t, mailbox.digests["jane@example.com"], 1)
}
