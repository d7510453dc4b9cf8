package main

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-copilot/internal/clients/adzuna"
	"github.com/maxaizer/job-copilot/internal/clients/gemini"
	"github.com/maxaizer/job-copilot/internal/clients/llm"
	"github.com/maxaizer/job-copilot/internal/config"
	"github.com/maxaizer/job-copilot/internal/logger"
	"github.com/maxaizer/job-copilot/internal/metrics"
	"github.com/maxaizer/job-copilot/internal/notify"
	"github.com/maxaizer/job-copilot/internal/repositories"
	"github.com/maxaizer/job-copilot/internal/services"
	"github.com/maxaizer/job-copilot/internal/storage"
	"github.com/maxaizer/job-copilot/internal/store"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

type completer interface {
	Complete(ctx context.Context, prompt llm.Prompt) (string, error)
}

// app holds what every command needs: config, logging, the database and the bus.
type app struct {
	cfg *config.Config
	db  *repositories.DbContext
	bus EventBus.Bus

	profiles    *repositories.CachedProfiles
	preferences *repositories.Preferences
	savedJobs   *repositories.SavedJobs
	alerts      *repositories.Alerts
	careerItems *repositories.CareerItems
	documents   *repositories.Documents
	analyses    *repositories.Analyses

	closers []func() error
}

func setup(ctx context.Context) (*app, error) {

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		logger.Cleanup()
		return nil, fmt.Errorf("can't create db context: %w", err)
	}

	if err := dbContext.Migrate(); err != nil {
		_ = dbContext.Close()
		logger.Cleanup()
		return nil, fmt.Errorf("can't migrate db context: %w", err)
	}

	bus := EventBus.New()
	if _, err := services.NewActivityTracker(bus); err != nil {
		_ = dbContext.Close()
		logger.Cleanup()
		return nil, fmt.Errorf("can't subscribe activity tracker: %w", err)
	}

	db := dbContext.DB
	return &app{
		cfg:         cfg,
		db:          dbContext,
		bus:         bus,
		profiles:    repositories.NewCachedProfiles(repositories.NewProfileRepository(db)),
		preferences: repositories.NewPreferencesRepository(db),
		savedJobs:   repositories.NewSavedJobRepository(db, bus),
		alerts:      repositories.NewAlertRepository(db),
		careerItems: repositories.NewCareerItemRepository(db),
		documents:   repositories.NewDocumentRepository(db),
		analyses:    repositories.NewAnalysisRepository(db),
	}, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warnf("close failed: %v", err)
		}
	}
	if err := a.db.Close(); err != nil {
		log.Warnf("failed to close db: %v", err)
	}
	logger.Cleanup()
}

func (a *app) jobSource() *services.JobSource {
	cfg := a.cfg.Jobs

	client := adzuna.NewClient(cfg.AdzunaAppID, cfg.AdzunaAppKey)
	client.SetRateLimit(cfg.MaxRequestsPerSecond)
	if !client.HasCredentials() {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJobApi).
			Warn("adzuna credentials are not configured, job search will fail")
	}

	var cache *gocache.Cache
	if cfg.CacheTTL > 0 {
		cache = gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return services.NewJobSource(client, cache, cfg.Country)
}

// aiClients returns the completion client for the configured provider and the
// Perplexity client used for company research.
func (a *app) aiClients(ctx context.Context) (completion completer, research completer) {
	cfg := a.cfg.AI
	breaker := llm.BreakerSettings{
		Enabled:          cfg.CircuitBreaker.Enabled,
		MaxRequests:      cfg.CircuitBreaker.MaxRequests,
		Interval:         cfg.CircuitBreaker.Interval,
		Timeout:          cfg.CircuitBreaker.Timeout,
		MinRequests:      cfg.CircuitBreaker.MinRequests,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
	}

	chat := func(name, url, key, model string) *llm.Client {
		client := llm.NewClient(name, url, key, model)
		client.SetTimeout(cfg.Timeout)
		client.SetMinuteRateLimit(cfg.MaxRequestsPerMinute)
		client.SetCircuitBreaker(breaker)
		return client
	}

	research = chat("perplexity", llm.PerplexityURL, cfg.PerplexityKey, cfg.PerplexityModel)
	completion = chat("groq", llm.GroqURL, cfg.GroqKey, cfg.GroqModel)

	if cfg.Provider == config.ProviderGemini {
		client, err := gemini.NewClient(ctx, cfg.GeminiKey, gemini.Model(cfg.GeminiModel))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
				Errorf("can't create gemini client, falling back to groq: %v", err)
			return completion, research
		}
		client.SetMinuteRateLimit(cfg.MaxRequestsPerMinute)
		a.closers = append(a.closers, client.Close)
		completion = client
	}

	return completion, research
}

func (a *app) notifier() *notify.Multi {
	var channels []notify.Channel

	if a.cfg.Mail.Enabled() {
		mailer, err := notify.NewMailer(notify.MailSettings{
			Host:     a.cfg.Mail.Host,
			Port:     a.cfg.Mail.Port,
			Username: a.cfg.Mail.Username,
			Password: a.cfg.Mail.Password,
			From:     a.cfg.Mail.From,
		})
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeMail).Errorf("can't create mailer: %v", err)
		} else {
			channels = append(channels, mailer)
		}
	}

	if a.cfg.Telegram.Token != "" {
		telegram, err := notify.NewTelegram(a.cfg.Telegram.Token)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("can't create telegram notifier: %v", err)
		} else {
			channels = append(channels, telegram)
		}
	}

	if len(channels) == 0 {
		log.Warn("no notification channel is configured, alert digests can't be delivered")
	}
	return notify.NewMulti(channels...)
}

func (a *app) dispatcher(jobs *services.JobSource) *services.AlertsDispatcher {
	return services.NewAlertsDispatcher(a.alerts, a.profiles, jobs, a.notifier(), a.bus, a.cfg.Alerts.PageSize)
}

// userStore builds the client state store for one user, with résumé deletes
// removing the uploaded files too.
func (a *app) userStore(userID string) (*store.Store, error) {
	files, err := storage.NewFileStore(a.cfg.Storage.ResumeDir)
	if err != nil {
		return nil, err
	}

	return store.New(userID, store.RepositoryBackend{
		Profiles:    a.profiles,
		Preferences: a.preferences,
		SavedJobs:   a.savedJobs,
		Resumes:     repositories.NewResumeRepository(a.db.DB, files),
		CareerItems: a.careerItems,
	}), nil
}
