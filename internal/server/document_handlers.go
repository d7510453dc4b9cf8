package server

import (
	"github.com/gin-gonic/gin"
	"github.com/maxaizer/job-copilot/internal/auth"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"net/http"
)

func (s *Server) listDocuments(c *gin.Context) {
	documents, err := s.deps.DocumentRepo.List(c.Request.Context(), auth.UserID(c), c.Query("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, documents)
}

type saveDocumentRequest struct {
	ResumeID        string              `json:"resume_id"`
	JobID           string              `json:"job_id" binding:"required"`
	JobTitle        string              `json:"job_title"`
	Company         string              `json:"company"`
	DocumentType    models.DocumentType `json:"document_type" binding:"required"`
	Content         string              `json:"content" binding:"required"`
	ATSScore        *int                `json:"ats_score" binding:"omitempty,gte=0,lte=100"`
	MatchedKeywords []string            `json:"matched_keywords"`
	MissingKeywords []string            `json:"missing_keywords"`
}

func (s *Server) saveDocument(c *gin.Context) {
	var request saveDocumentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		badInput(c, err)
		return
	}

	document := &models.GeneratedDocument{
		Base:            models.Base{UserID: auth.UserID(c)},
		ResumeID:        request.ResumeID,
		JobID:           request.JobID,
		JobTitle:        request.JobTitle,
		Company:         request.Company,
		DocumentType:    request.DocumentType,
		Content:         request.Content,
		ATSScore:        request.ATSScore,
		MatchedKeywords: request.MatchedKeywords,
		MissingKeywords: request.MissingKeywords,
	}
	if err := s.deps.Documents.Save(c.Request.Context(), document); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, document)
}

func (s *Server) deleteDocument(c *gin.Context) {
	if err := s.deps.DocumentRepo.Remove(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
