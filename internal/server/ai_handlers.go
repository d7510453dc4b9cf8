package server

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/logger"
	"github.com/maxaizer/job-copilot/internal/services"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"net/http"
)

type searchRequest struct {
	models.JobSearchFilters
	ResumeSkills []string `json:"resume_skills"`
}

func (s *Server) searchJobs(c *gin.Context) {
	var request searchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	results, err := s.deps.Jobs.Search(c.Request.Context(), request.JobSearchFilters)
	if err != nil {
		respondSoftError(c, err)
		return
	}

	results.Results = services.AnnotateSkills(results.Results, s.resumeSkills(c, request.ResumeSkills))
	c.JSON(http.StatusOK, results)
}

func (s *Server) deepMatch(c *gin.Context) {
	var request services.DeepMatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	result, err := s.deps.DeepMatch.Search(c.Request.Context(), request)
	if err != nil {
		respondSoftError(c, err)
		return
	}

	result.Results = services.AnnotateSkills(result.Results, s.resumeSkills(c, request.ResumeSkills))
	c.JSON(http.StatusOK, result)
}

// resumeSkills prefers the skills sent with the request and falls back to the
// user's primary résumé. Lookup failures only disable the annotation.
func (s *Server) resumeSkills(c *gin.Context, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}

	resumes, err := s.deps.Resumes.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load resumes for skill match: %v", err)
		return nil
	}

	primary, ok := lo.Find(resumes, func(resume models.ParsedResume) bool { return resume.IsPrimary })
	if !ok {
		return nil
	}
	return primary.ExtractedSkills
}

func (s *Server) atsScore(c *gin.Context) {
	var request services.ATSRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	result, err := s.deps.ATS.Score(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) atsReimprove(c *gin.Context) {
	var request services.ReimproveRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	result, err := s.deps.ATS.Reimprove(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) generateDocument(c *gin.Context) {
	var request services.GenerateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	content, err := s.deps.Documents.Generate(c.Request.Context(), request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

type parseResumeRequest struct {
	ResumeText string `json:"resumeText" binding:"required"`
}

func (s *Server) parseResume(c *gin.Context) {
	var request parseResumeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	data, err := s.deps.AI.ParseResume(c.Request.Context(), request.ResumeText)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

type researchRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Context     string `json:"context"`
}

func (s *Server) researchCompany(c *gin.Context) {
	var request researchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	research, err := s.deps.AI.ResearchCompany(c.Request.Context(), request.CompanyName, request.Context)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, research)
}
