package server

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"net/http"
	"strings"
)

func (s *Server) listCareerItems(c *gin.Context) {
	items, err := s.deps.CareerItems.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type careerItemRequest struct {
	Type  models.CareerItemType `json:"type" binding:"required"`
	Title string                `json:"title" binding:"required"`
}

func (s *Server) addCareerItem(c *gin.Context) {
	var request careerItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	item := &models.CareerItem{
		Base:  models.Base{UserID: auth.UserID(c)},
		Type:  request.Type,
		Title: strings.TrimSpace(request.Title),
	}
	if err := s.deps.CareerItems.Add(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type careerStatusRequest struct {
	Status models.CareerItemStatus `json:"status" binding:"required"`
}

func (s *Server) updateCareerItem(c *gin.Context) {
	var request careerStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	if err := s.deps.CareerItems.UpdateStatus(c.Request.Context(), auth.UserID(c), c.Param("id"), request.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": request.Status})
}

func (s *Server) deleteCareerItem(c *gin.Context) {
	if err := s.deps.CareerItems.Remove(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
