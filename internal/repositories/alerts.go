package repositories

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"gorm.io/gorm"
	"time"
)

type Alerts struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *Alerts {
	return &Alerts{db: db}
}

func (repo *Alerts) List(ctx context.Context, userID string) ([]models.JobAlert, error) {
	var alerts []models.JobAlert
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *Alerts) Get(ctx context.Context, userID, id string) (*models.JobAlert, error) {
	var alert models.JobAlert
	if err := repo.db.WithContext(ctx).First(&alert, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &alert, nil
}

// Add inserts the alert. Inserts replace a false is_active with the column
// default, so inactive alerts take a second write.
func (repo *Alerts) Add(ctx context.Context, alert *models.JobAlert) error {
	active := alert.IsActive
	if err := repo.db.WithContext(ctx).Create(alert).Error; err != nil {
		return err
	}
	if active {
		return nil
	}

	alert.IsActive = false
	return repo.db.WithContext(ctx).Model(&models.JobAlert{}).
		Where("id = ?", alert.ID).Update("is_active", false).Error
}

func (repo *Alerts) Update(ctx context.Context, alert *models.JobAlert) error {
	return affected(repo.db.WithContext(ctx).Model(&models.JobAlert{}).
		Where("user_id = ? AND id = ?", alert.UserID, alert.ID).
		Select("title", "keywords", "location", "min_salary", "remote_only", "notification_frequency", "is_active", "updated_at").
		Updates(alert))
}

func (repo *Alerts) Remove(ctx context.Context, userID, id string) error {
	return affected(repo.db.WithContext(ctx).Delete(&models.JobAlert{}, "user_id = ? AND id = ?", userID, id))
}

// ListActive pages through active alerts of all users in a stable order.
func (repo *Alerts) ListActive(ctx context.Context, limit, offset int) ([]models.JobAlert, error) {
	var alerts []models.JobAlert
	if err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

func (repo *Alerts) MarkSent(ctx context.Context, alertID string, at time.Time) error {
	return affected(repo.db.WithContext(ctx).Model(&models.JobAlert{}).Where("id = ?", alertID).
		Update("last_sent_at", at.UTC()))
}
