// Package server exposes the copilot over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	deps   Dependencies
	opts   Options
	router *gin.Engine
}

func New(deps Dependencies, opts Options) *Server {
	s := &Server{deps: deps, opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("Shutting down HTTP server...")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), preflight(), cors.New(corsConfig()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(limitBody(s.opts.MaxRequestSize), timeout(s.opts.RequestTimeout), auth.Middleware(s.deps.Verifier))

	api.POST("/jobs/search", s.searchJobs)
	api.POST("/jobs/deep-match", s.deepMatch)
	api.POST("/ats/score", s.atsScore)
	api.POST("/ats/reimprove", s.atsReimprove)
	api.POST("/company/research", s.researchCompany)

	api.GET("/profile", s.getProfile)
	api.PUT("/profile", s.updateProfile)
	api.GET("/preferences", s.getPreferences)
	api.PUT("/preferences", s.updatePreferences)

	api.GET("/saved-jobs", s.listSavedJobs)
	api.POST("/saved-jobs", s.saveJob)
	api.GET("/saved-jobs/stats", s.savedJobStats)
	api.PATCH("/saved-jobs/:id", s.updateSavedJob)
	api.POST("/saved-jobs/:id/status", s.moveSavedJob)
	api.DELETE("/saved-jobs/:id", s.deleteSavedJob)

	api.GET("/resumes", s.listResumes)
	api.POST("/resumes", s.uploadResume)
	api.POST("/resumes/parse", s.parseResume)
	api.POST("/resumes/:id/primary", s.setPrimaryResume)
	api.POST("/resumes/:id/analyze", s.analyzeResume)
	api.DELETE("/resumes/:id", s.deleteResume)
	api.GET("/analyses", s.listAnalyses)

	api.GET("/documents", s.listDocuments)
	api.POST("/documents", s.saveDocument)
	api.POST("/documents/generate", s.generateDocument)
	api.DELETE("/documents/:id", s.deleteDocument)

	api.GET("/alerts", s.listAlerts)
	api.POST("/alerts", s.createAlert)
	api.PUT("/alerts/:id", s.updateAlert)
	api.DELETE("/alerts/:id", s.deleteAlert)

	api.GET("/career-items", s.listCareerItems)
	api.POST("/career-items", s.addCareerItem)
	api.PATCH("/career-items/:id", s.updateCareerItem)
	api.DELETE("/career-items/:id", s.deleteCareerItem)

	return router
}
