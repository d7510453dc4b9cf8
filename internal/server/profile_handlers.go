package server

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/pkg/errors"
	"net/http"
)

func (s *Server) getProfile(c *gin.Context) {
	userID := auth.UserID(c)

	profile, err := s.deps.Profiles.Get(c.Request.Context(), userID)
	if errors.Is(err, models.ErrNotFound) {
		identity, _ := auth.IdentityFrom(c)
		c.JSON(http.StatusOK, models.UserProfile{UserID: userID, Email: identity.Email})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) updateProfile(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badInput(c, err)
		return
	}
	profile.UserID = auth.UserID(c)

	if err := s.deps.Profiles.Save(c.Request.Context(), &profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) getPreferences(c *gin.Context) {
	userID := auth.UserID(c)

	prefs, err := s.deps.Preferences.Get(c.Request.Context(), userID)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusOK, models.JobPreferences{
			UserID:       userID,
			DesiredRoles: []string{},
			Locations:    []string{},
			JobTypes:     []string{},
			Industries:   []string{},
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) updatePreferences(c *gin.Context) {
	var prefs models.JobPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		badInput(c, err)
		return
	}
	prefs.UserID = auth.UserID(c)

	if err := s.deps.Preferences.Save(c.Request.Context(), &prefs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}
