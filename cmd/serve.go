package main

import (
	"fmt"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/repositories"
	"github.com/maxaizer/job-copilot/internal/server"
	"github.com/maxaizer/job-copilot/internal/services"
	"github.com/maxaizer/job-copilot/internal/storage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"time"
)

const requestTimeout = 2 * time.Minute

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the alert scheduler and the metrics endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := setup(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if a.cfg.Server.JWTSecret == "" {
				log.Warn("jwt secret is not configured, every API request will be rejected")
			}

			files, err := storage.NewFileStore(a.cfg.Storage.ResumeDir)
			if err != nil {
				return err
			}
			resumes := repositories.NewResumeRepository(a.db.DB, files)

			jobs := a.jobSource()
			completion, research := a.aiClients(ctx)

			aiService := services.NewAIService(completion, research)
			documents := services.NewDocumentService(completion, a.documents)

			if a.cfg.Alerts.Enabled {
				dispatcher := a.dispatcher(jobs)
				if err := dispatcher.Start(a.cfg.Alerts.Schedule); err != nil {
					return fmt.Errorf("can't start alerts dispatcher: %w", err)
				}
				defer dispatcher.Stop()
			}

			api := server.New(server.Dependencies{
				Verifier:     auth.NewVerifier(a.cfg.Server.JWTSecret, a.cfg.Server.JWTIssuer),
				Jobs:         jobs,
				DeepMatch:    services.NewDeepMatch(completion, jobs),
				ATS:          services.NewATSService(completion, documents),
				Documents:    documents,
				AI:           aiService,
				Uploader:     services.NewResumeService(files, aiService, resumes),
				Analyzer:     services.NewResumeAnalyzer(completion, a.analyses),
				Profiles:     a.profiles,
				Preferences:  a.preferences,
				SavedJobs:    a.savedJobs,
				Resumes:      resumes,
				Analyses:     a.analyses,
				DocumentRepo: a.documents,
				Alerts:       a.alerts,
				CareerItems:  a.careerItems,
			}, server.Options{
				MaxRequestSize: a.cfg.Server.MaxRequestSize,
				RequestTimeout: requestTimeout,
			})

			return api.Run(ctx, fmt.Sprintf(":%d", a.cfg.Server.Port))
		},
	}
}
