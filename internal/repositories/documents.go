package repositories

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"gorm.io/gorm"
)

type Documents struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *Documents {
	return &Documents{db: db}
}

func (repo *Documents) List(ctx context.Context, userID, jobID string) ([]models.GeneratedDocument, error) {
	query := repo.db.WithContext(ctx).Where("user_id = ?", userID)
	if jobID != "" {
		query = query.Where("job_id = ?", jobID)
	}

	var documents []models.GeneratedDocument
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		return nil, err
	}
	return documents, nil
}

func (repo *Documents) CountByJobAndType(ctx context.Context, userID, jobID string, documentType models.DocumentType) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.GeneratedDocument{}).
		Where("user_id = ? AND job_id = ? AND document_type = ?", userID, jobID, documentType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *Documents) Add(ctx context.Context, document *models.GeneratedDocument) error {
	return repo.db.WithContext(ctx).Create(document).Error
}

func (repo *Documents) Remove(ctx context.Context, userID, id string) error {
	return affected(repo.db.WithContext(ctx).Delete(&models.GeneratedDocument{}, "user_id = ? AND id = ?", userID, id))
}
