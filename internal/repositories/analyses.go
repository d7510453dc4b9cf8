package repositories

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"gorm.io/gorm"
)

type Analyses struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *Analyses {
	return &Analyses{db: db}
}

func (repo *Analyses) Add(ctx context.Context, analysis *models.ResumeAnalysis) error {
	return repo.db.WithContext(ctx).Create(analysis).Error
}

// Latest returns the newest analyses first, at most models.AnalysisHistoryLimit.
func (repo *Analyses) Latest(ctx context.Context, userID string) ([]models.ResumeAnalysis, error) {
	var analyses []models.ResumeAnalysis
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(models.AnalysisHistoryLimit).
		Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}
