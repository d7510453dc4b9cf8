package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-copilot/internal/clients/llm"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/llmjson"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"strings"
)

const analysisParseFailure = "Failed to parse analysis"

type analysisRepository interface {
	Add(ctx context.Context, analysis *models.ResumeAnalysis) error
}

type analysisResponse struct {
	models.AnalysisData
	MarketInsights string `json:"market_insights"`
}

type ResumeAnalyzer struct {
	ai       aiClient
	analyses analysisRepository
}

func NewResumeAnalyzer(ai aiClient, analyses analysisRepository) *ResumeAnalyzer {
	return &ResumeAnalyzer{ai: ai, analyses: analyses}
}

// Analyze appends a readiness analysis for the résumé to the user's history.
// Unparseable model output is stored as an explicit failure payload.
func (a *ResumeAnalyzer) Analyze(ctx context.Context, resume models.ParsedResume,
	prefs models.JobPreferences) (*models.ResumeAnalysis, error) {

	text := resume.RawText
	if strings.TrimSpace(text) == "" {
		text = resumeText(resume.Data())
	}

	response, err := a.ai.Complete(ctx, llm.Prompt{
		Operation:  "resume_analysis",
		System:     analysisSystem,
		User:       analysisPrompt(text, prefs),
		JSONObject: true,
	})
	if err != nil {
		return nil, fmt.Errorf("resume analysis failed: %w", err)
	}

	analysis := &models.ResumeAnalysis{
		Base:     models.Base{UserID: resume.UserID},
		ResumeID: resume.ID,
	}

	decoded, err := llmjson.Decode[analysisResponse](response)
	if err != nil {
		log.Warnf("resume analysis output unusable for resume %s: %v", resume.ID, err)
		analysis.AnalysisData = datatypes.NewJSONType(models.AnalysisData{
			RecommendedRoles: []string{},
			SkillGaps:        []models.SkillGap{},
			Error:            analysisParseFailure,
		})
	} else {
		data := decoded.AnalysisData
		data.RecommendedRoles = lo.Ternary(data.RecommendedRoles == nil, []string{}, data.RecommendedRoles)
		data.SkillGaps = lo.Ternary(data.SkillGaps == nil, []models.SkillGap{}, data.SkillGaps)
		analysis.AnalysisData = datatypes.NewJSONType(data)
		analysis.MarketInsights = decoded.MarketInsights
	}

	if err := a.analyses.Add(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}
