package server

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/logger"
	"github.com/maxaizer/job-copilot/internal/pipeline"
	"github.com/maxaizer/job-copilot/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var badRequest = []error{
	models.ErrSavedJobsLimit,
	models.ErrDocumentLimit,
	pipeline.ErrInvalidTransition,
	services.ErrUnreadableResume,
}

var conflict = []error{
	models.ErrDuplicateSavedJob,
	models.ErrDuplicateCareerItem,
}

func statusFor(err error) int {
	if errors.Is(err, models.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range conflict {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, errorType(c)).
			Errorf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSoftError reports a failure inside a 200 response. Search clients
// read the error field regardless of status.
func respondSoftError(c *gin.Context, err error) {
	log.WithField(logger.ErrorTypeField, errorType(c)).
		Warnf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusOK, gin.H{"error": err.Error(), "results": []models.JobListing{}, "count": 0})
}

func badInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

func errorType(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/jobs/search":
		return logger.ErrorTypeJobApi
	case "/api/v1/jobs/deep-match", "/api/v1/ats/score", "/api/v1/ats/reimprove", "/api/v1/documents/generate",
		"/api/v1/resumes/parse", "/api/v1/company/research", "/api/v1/resumes/:id/analyze":
		return logger.ErrorTypeAiApi
	default:
		return logger.ErrorTypeDb
	}
}
