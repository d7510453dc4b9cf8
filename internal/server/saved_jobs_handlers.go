package server

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"net/http"
)

func (s *Server) listSavedJobs(c *gin.Context) {
	jobs, err := s.deps.SavedJobs.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

type saveJobRequest struct {
	models.JobListing
	ID string `json:"id" binding:"required"`
}

func (s *Server) saveJob(c *gin.Context) {
	var request saveJobRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}
	listing := request.JobListing
	listing.ID = request.ID

	job := models.NewSavedJob(auth.UserID(c), listing)
	if err := s.deps.SavedJobs.Add(c.Request.Context(), &job); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (s *Server) updateSavedJob(c *gin.Context) {
	var details models.SavedJobDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		badInput(c, err)
		return
	}

	job, err := s.deps.SavedJobs.UpdateDetails(c.Request.Context(), auth.UserID(c), c.Param("id"), details)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type moveRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

func (s *Server) moveSavedJob(c *gin.Context) {
	var request moveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	job, err := s.deps.SavedJobs.Transition(c.Request.Context(), auth.UserID(c), c.Param("id"), request.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (s *Server) deleteSavedJob(c *gin.Context) {
	if err := s.deps.SavedJobs.Remove(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) savedJobStats(c *gin.Context) {
	stats, err := s.deps.SavedJobs.CountByStatus(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
