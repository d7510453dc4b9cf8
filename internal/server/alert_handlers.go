package server

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"net/http"
)

type alertRequest struct {
	Title                 string                       `json:"title" binding:"required"`
	Keywords              []string                     `json:"keywords" binding:"required,min=1,dive,required"`
	Location              string                       `json:"location"`
	MinSalary             *float64                     `json:"min_salary" binding:"omitempty,gte=0"`
	RemoteOnly            bool                         `json:"remote_only"`
	NotificationFrequency models.NotificationFrequency `json:"notification_frequency"`
	IsActive              *bool                        `json:"is_active"`
}

func (r alertRequest) apply(alert *models.JobAlert) {
	alert.Title = r.Title
	alert.Keywords = r.Keywords
	alert.Location = r.Location
	alert.MinSalary = r.MinSalary
	alert.RemoteOnly = r.RemoteOnly
	alert.NotificationFrequency = r.NotificationFrequency
	if alert.NotificationFrequency == "" {
		alert.NotificationFrequency = models.FrequencyDaily
	}
	if r.IsActive != nil {
		alert.IsActive = *r.IsActive
	}
}

func (s *Server) listAlerts(c *gin.Context) {
	alerts, err := s.deps.Alerts.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (s *Server) createAlert(c *gin.Context) {
	var request alertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	alert := &models.JobAlert{Base: models.Base{UserID: auth.UserID(c)}, IsActive: true}
	request.apply(alert)

	if err := s.deps.Alerts.Add(c.Request.Context(), alert); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, alert)
}

func (s *Server) updateAlert(c *gin.Context) {
	var request alertRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	alert, err := s.deps.Alerts.Get(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	request.apply(alert)

	if err := s.deps.Alerts.Update(c.Request.Context(), alert); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alert)
}

func (s *Server) deleteAlert(c *gin.Context) {
	if err := s.deps.Alerts.Remove(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
