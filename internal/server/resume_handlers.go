package server

import (
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/services"
	"github.com/pkg/errors"
	"io"
	"net/http"
)

func (s *Server) listResumes(c *gin.Context) {
	resumes, err := s.deps.Resumes.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumes)
}

// uploadResume accepts multipart form data with an optional "file" part and
// an optional "text" field holding the résumé as plain text.
func (s *Server) uploadResume(c *gin.Context) {
	upload := services.ResumeUpload{Text: c.PostForm("text")}

	header, err := c.FormFile("file")
	switch {
	case err == nil:
		if header.Size > services.MaxResumeSize {
			badInput(c, fmt.Errorf("file exceeds %d bytes", services.MaxResumeSize))
			return
		}
		file, err := header.Open()
		if err != nil {
			badInput(c, err)
			return
		}
		defer file.Close()

		upload.Filename = header.Filename
		if upload.Content, err = io.ReadAll(io.LimitReader(file, services.MaxResumeSize+1)); err != nil {
			badInput(c, err)
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		if upload.Text == "" {
			badInput(c, fmt.Errorf("file or text is required"))
			return
		}
	default:
		badInput(c, err)
		return
	}

	resume, err := s.deps.Uploader.Upload(c.Request.Context(), auth.UserID(c), upload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

func (s *Server) setPrimaryResume(c *gin.Context) {
	if err := s.deps.Resumes.SetPrimary(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteResume(c *gin.Context) {
	if err := s.deps.Resumes.Remove(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) analyzeResume(c *gin.Context) {
	ctx := c.Request.Context()
	userID := auth.UserID(c)

	resume, err := s.deps.Resumes.Get(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	prefs := models.JobPreferences{UserID: userID}
	stored, err := s.deps.Preferences.Get(ctx, userID)
	switch {
	case err == nil:
		prefs = *stored
	case !errors.Is(err, models.ErrNotFound):
		respondError(c, err)
		return
	}

	analysis, err := s.deps.Analyzer.Analyze(ctx, *resume, prefs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, analysis)
}

func (s *Server) listAnalyses(c *gin.Context) {
	analyses, err := s.deps.Analyses.Latest(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyses)
}
