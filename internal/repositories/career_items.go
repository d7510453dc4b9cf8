package repositories

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"gorm.io/gorm"
)

type CareerItems struct {
	db *gorm.DB
}

func NewCareerItemRepository(db *gorm.DB) *CareerItems {
	return &CareerItems{db: db}
}

func (repo *CareerItems) List(ctx context.Context, userID string) ([]models.CareerItem, error) {
	var items []models.CareerItem
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Add inserts the item. Duplicates by (type, title) are filtered by the client
// state store, not here.
func (repo *CareerItems) Add(ctx context.Context, item *models.CareerItem) error {
	if item.Status == "" {
		item.Status = models.CareerSaved
	}
	return repo.db.WithContext(ctx).Create(item).Error
}

func (repo *CareerItems) UpdateStatus(ctx context.Context, userID, id string, status models.CareerItemStatus) error {
	return affected(repo.db.WithContext(ctx).Model(&models.CareerItem{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("status", status))
}

func (repo *CareerItems) Remove(ctx context.Context, userID, id string) error {
	return affected(repo.db.WithContext(ctx).Delete(&models.CareerItem{}, "user_id = ? AND id = ?", userID, id))
}
