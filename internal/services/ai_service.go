package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-copilot/internal/clients/llm"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/llmjson"
	"strings"
)

// AIService hosts the single-call model operations: résumé parsing and company research.
type AIService struct {
	aiClient       aiClient
	researchClient aiClient
}

func NewAIService(aiClient aiClient, researchClient aiClient) *AIService {
	return &AIService{aiClient: aiClient, researchClient: researchClient}
}

func (a *AIService) ParseResume(ctx context.Context, text string) (models.ResumeData, error) {

	if strings.TrimSpace(text) == "" {
		return models.ResumeData{}, fmt.Errorf("resume text is empty")
	}

	response, err := a.aiClient.Complete(ctx, llm.Prompt{
		Operation:   "resume_parse",
		System:      resumeParseSystem,
		User:        resumeParsePrompt(text),
		JSONObject:  true,
		Temperature: 0.1,
	})
	if err != nil {
		return models.ResumeData{}, fmt.Errorf("resume parsing failed: %w", err)
	}

	data, err := llmjson.Decode[models.ResumeData](response)
	if err != nil {
		return models.ResumeData{}, fmt.Errorf("resume parsing failed: %w", err)
	}

	data.ExtractedSkills = cleanKeywords(data.ExtractedSkills)
	if data.ExtractedSkills == nil {
		data.ExtractedSkills = []string{}
	}
	return data, nil
}

type CompanyResearch struct {
	Content string `json:"content"`
}

func (a *AIService) ResearchCompany(ctx context.Context, company, details string) (CompanyResearch, error) {

	company = strings.TrimSpace(company)
	if company == "" {
		return CompanyResearch{}, fmt.Errorf("company name is required")
	}

	content, err := a.researchClient.Complete(ctx, llm.Prompt{
		Operation: "company_research",
		System:    researchSystem,
		User:      companyResearchPrompt(company, details),
	})
	if err != nil {
		return CompanyResearch{}, fmt.Errorf("company research failed: %w", err)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return CompanyResearch{}, fmt.Errorf("company research returned no content")
	}
	return CompanyResearch{Content: content}, nil
}
