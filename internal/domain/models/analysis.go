package models

import "gorm.io/datatypes"

type SkillGap struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type AnalysisData struct {
	ReadinessScore   int        `json:"readiness_score" validate:"gte=0,lte=100"`
	RecommendedRoles []string   `json:"recommended_roles"`
	SkillGaps        []SkillGap `json:"skill_gaps" validate:"dive"`
	Error            string     `json:"error,omitempty"`
}

const AnalysisHistoryLimit = 5

// ResumeAnalysis rows are append-only.
type ResumeAnalysis struct {
	Base
	ResumeID       string                           `gorm:"size:36;index" json:"resume_id"`
	AnalysisData   datatypes.JSONType[AnalysisData] `json:"analysis_data"`
	MarketInsights string                           `gorm:"type:text" json:"market_insights"`
}
