package repositories

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (repo *Profiles) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := repo.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &profile, nil
}

func (repo *Profiles) Save(ctx context.Context, profile *models.UserProfile) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "headline", "phone", "location", "linkedin_url", "telegram_chat_id", "updated_at"}),
	}).Create(profile).Error
}

type Preferences struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) *Preferences {
	return &Preferences{db: db}
}

func (repo *Preferences) Get(ctx context.Context, userID string) (*models.JobPreferences, error) {
	var prefs models.JobPreferences
	if err := repo.db.WithContext(ctx).First(&prefs, "user_id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &prefs, nil
}

func (repo *Preferences) Save(ctx context.Context, prefs *models.JobPreferences) error {
	return repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"desired_roles", "locations", "remote_only", "salary_min", "job_types", "industries", "updated_at"}),
	}).Create(prefs).Error
}
