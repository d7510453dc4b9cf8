package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-copilot/internal/clients/llm"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/pkg/errors"
	"strings"
)

var ErrEmptyDocument = errors.New("model returned an empty document")

type GenerateRequest struct {
	ResumeData     models.ResumeData   `json:"resumeData"`
	RawText        string              `json:"rawText"`
	JobDescription string              `json:"jobDescription" binding:"required"`
	DocumentType   models.DocumentType `json:"documentType" binding:"required"`
	FocusKeywords  []string            `json:"focusKeywords"`
	JobTitle       string              `json:"jobTitle"`
}

type GeneratedContent struct {
	Content string `json:"content"`
}

type documentRepository interface {
	CountByJobAndType(ctx context.Context, userID, jobID string, documentType models.DocumentType) (int64, error)
	Add(ctx context.Context, document *models.GeneratedDocument) error
}

type DocumentService struct {
	ai        aiClient
	documents documentRepository
}

func NewDocumentService(ai aiClient, documents documentRepository) *DocumentService {
	return &DocumentService{ai: ai, documents: documents}
}

// Generate produces a tailored résumé or cover letter as plain text.
func (s *DocumentService) Generate(ctx context.Context, request GenerateRequest) (GeneratedContent, error) {

	source := request.RawText
	if strings.TrimSpace(source) == "" {
		source = resumeText(request.ResumeData)
	}

	var user string
	switch request.DocumentType {
	case models.DocumentResume:
		user = resumeDocumentPrompt(source, request.JobTitle, request.JobDescription)
	case models.DocumentCoverLetter:
		user = coverLetterPrompt(source, request.JobTitle, request.JobDescription)
	default:
		return GeneratedContent{}, fmt.Errorf("invalid document type: %q", request.DocumentType)
	}

	keywords := cleanKeywords(request.FocusKeywords)
	if len(keywords) > 0 {
		user += focusKeywordsBlock(keywords)
	}

	content, err := s.ai.Complete(ctx, llm.Prompt{
		Operation:   "generate_" + string(request.DocumentType),
		System:      documentSystem,
		User:        user,
		Temperature: 0.5,
	})
	if err != nil {
		return GeneratedContent{}, fmt.Errorf("document generation failed: %w", err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return GeneratedContent{}, ErrEmptyDocument
	}
	return GeneratedContent{Content: content}, nil
}

// Save stores a document unless the user already has the maximum for this job
// and type. The count check and insert are not atomic.
func (s *DocumentService) Save(ctx context.Context, document *models.GeneratedDocument) error {

	count, err := s.documents.CountByJobAndType(ctx, document.UserID, document.JobID, document.DocumentType)
	if err != nil {
		return err
	}
	if count >= models.MaxDocumentsPerTypePerJob {
		return models.ErrDocumentLimit
	}

	return s.documents.Add(ctx, document)
}

func cleanKeywords(keywords []string) []string {
	var cleaned []string
	seen := map[string]bool{}
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" || seen[strings.ToLower(k)] {
			continue
		}
		seen[strings.ToLower(k)] = true
		cleaned = append(cleaned, k)
	}
	return cleaned
}
