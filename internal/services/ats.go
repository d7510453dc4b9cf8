package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/job-copilot/internal/clients/llm"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/llmjson"
	"github.com/samber/lo"
	"math"
	"strings"
)

const (
	keywordsWeight   = 0.4
	skillsWeight     = 0.3
	experienceWeight = 0.2
	educationWeight  = 0.1

	maxPlanItems = 3
)

// ATSBreakdown holds the per-category scores. Model output may be fractional;
// normalized results carry whole numbers.
type ATSBreakdown struct {
	Keywords   float64 `json:"keywords" validate:"gte=0,lte=100"`
	Skills     float64 `json:"skills" validate:"gte=0,lte=100"`
	Experience float64 `json:"experience" validate:"gte=0,lte=100"`
	Education  float64 `json:"education" validate:"gte=0,lte=100"`
}

// Composite is the weighted score: keywords 40%, skills 30%, experience 20%, education 10%.
func (b ATSBreakdown) Composite() int {
	score := keywordsWeight*b.Keywords +
		skillsWeight*b.Skills +
		experienceWeight*b.Experience +
		educationWeight*b.Education
	return int(math.Round(score))
}

func (b ATSBreakdown) rounded() ATSBreakdown {
	return ATSBreakdown{
		Keywords:   math.Round(b.Keywords),
		Skills:     math.Round(b.Skills),
		Experience: math.Round(b.Experience),
		Education:  math.Round(b.Education),
	}
}

type CertificateSuggestion struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"required,oneof=High Medium Low high medium low"`
}

type RoleSuggestion struct {
	Title  string `json:"title" validate:"required"`
	Reason string `json:"reason"`
}

type ImprovementPlan struct {
	Certificates       []CertificateSuggestion `json:"certificates" validate:"dive"`
	SteppingStoneRoles []RoleSuggestion        `json:"stepping_stone_roles,omitempty" validate:"dive"`
}

type ATSResult struct {
	ATSScore        int             `json:"ats_score"`
	Breakdown       ATSBreakdown    `json:"breakdown"`
	MatchedKeywords []string        `json:"matched_keywords"`
	MissingKeywords []string        `json:"missing_keywords"`
	ImprovementPlan ImprovementPlan `json:"improvement_plan"`
}

// atsOutput is the model's answer. Its own composite is ignored and may be fractional.
type atsOutput struct {
	ATSResult
	ATSScore float64 `json:"ats_score"`
}

type ATSRequest struct {
	ResumeData     *models.ResumeData `json:"resumeData"`
	RawText        string             `json:"rawText"`
	JobDescription string             `json:"jobDescription" binding:"required"`
}

func (r ATSRequest) document() string {
	if strings.TrimSpace(r.RawText) != "" {
		return r.RawText
	}
	if r.ResumeData != nil {
		return resumeText(*r.ResumeData)
	}
	return ""
}

type ReimproveRequest struct {
	GenerateRequest
	PreviousScore   int      `json:"previousScore" binding:"gte=0,lte=100"`
	MissingKeywords []string `json:"missingKeywords"`
}

type ReimproveResult struct {
	Content         string   `json:"content"`
	PreviousScore   int      `json:"previous_score"`
	ATSScore        int      `json:"ats_score"`
	Improved        bool     `json:"improved"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

type documentGenerator interface {
	Generate(ctx context.Context, request GenerateRequest) (GeneratedContent, error)
}

type ATSService struct {
	ai        aiClient
	generator documentGenerator
}

func NewATSService(ai aiClient, generator documentGenerator) *ATSService {
	return &ATSService{ai: ai, generator: generator}
}

// Score asks the model for an ATS evaluation. Unparseable output is an error.
func (s *ATSService) Score(ctx context.Context, request ATSRequest) (ATSResult, error) {

	document := request.document()
	if strings.TrimSpace(document) == "" {
		return ATSResult{}, fmt.Errorf("resume data or raw text is required")
	}

	response, err := s.ai.Complete(ctx, llm.Prompt{
		Operation:  "ats_score",
		System:     atsSystem,
		User:       atsPrompt(document, request.JobDescription),
		JSONObject: true,
	})
	if err != nil {
		return ATSResult{}, fmt.Errorf("ats scoring failed: %w", err)
	}

	output, err := llmjson.Decode[atsOutput](response)
	if err != nil {
		return ATSResult{}, fmt.Errorf("ats scoring failed: %w", err)
	}

	return normalizeATSResult(output.ATSResult), nil
}

func normalizeATSResult(result ATSResult) ATSResult {
	result.ATSScore = result.Breakdown.Composite()
	result.Breakdown = result.Breakdown.rounded()
	result.MatchedKeywords = lo.Ternary(result.MatchedKeywords == nil, []string{}, result.MatchedKeywords)
	result.MissingKeywords = lo.Ternary(result.MissingKeywords == nil, []string{}, result.MissingKeywords)

	plan := &result.ImprovementPlan
	if len(plan.Certificates) > maxPlanItems {
		plan.Certificates = plan.Certificates[:maxPlanItems]
	}
	if len(plan.SteppingStoneRoles) > maxPlanItems {
		plan.SteppingStoneRoles = plan.SteppingStoneRoles[:maxPlanItems]
	}
	for i := range plan.Certificates {
		p := strings.ToLower(plan.Certificates[i].Priority)
		plan.Certificates[i].Priority = strings.ToUpper(p[:1]) + p[1:]
	}
	if plan.Certificates == nil {
		plan.Certificates = []CertificateSuggestion{}
	}
	return result
}

// Reimprove regenerates the document focusing on the previously missing
// keywords and rescores it.
func (s *ATSService) Reimprove(ctx context.Context, request ReimproveRequest) (ReimproveResult, error) {

	generate := request.GenerateRequest
	generate.FocusKeywords = request.MissingKeywords

	generated, err := s.generator.Generate(ctx, generate)
	if err != nil {
		return ReimproveResult{}, err
	}

	scored, err := s.Score(ctx, ATSRequest{RawText: generated.Content, JobDescription: request.JobDescription})
	if err != nil {
		return ReimproveResult{}, err
	}

	return ReimproveResult{
		Content:         generated.Content,
		PreviousScore:   request.PreviousScore,
		ATSScore:        scored.ATSScore,
		Improved:        scored.ATSScore > request.PreviousScore,
		MatchedKeywords: scored.MatchedKeywords,
		MissingKeywords: scored.MissingKeywords,
	}, nil
}
