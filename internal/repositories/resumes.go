package repositories

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type blobDeleter interface {
	Delete(path string) error
}

type Resumes struct {
	db    *gorm.DB
	blobs blobDeleter
}

func NewResumeRepository(db *gorm.DB, blobs blobDeleter) *Resumes {
	return &Resumes{db: db, blobs: blobs}
}

func (repo *Resumes) List(ctx context.Context, userID string) ([]models.ParsedResume, error) {
	var resumes []models.ParsedResume
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&resumes).Error; err != nil {
		return nil, err
	}
	return resumes, nil
}

func (repo *Resumes) Get(ctx context.Context, userID, id string) (*models.ParsedResume, error) {
	var resume models.ParsedResume
	if err := repo.db.WithContext(ctx).First(&resume, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &resume, nil
}

func (repo *Resumes) GetPrimary(ctx context.Context, userID string) (*models.ParsedResume, error) {
	var resume models.ParsedResume
	if err := repo.db.WithContext(ctx).First(&resume, "user_id = ? AND is_primary = ?", userID, true).Error; err != nil {
		return nil, notFound(err)
	}
	return &resume, nil
}

// Add stores a parsed résumé. The user's first résumé becomes primary.
func (repo *Resumes) Add(ctx context.Context, resume *models.ParsedResume) error {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.ParsedResume{}).
		Where("user_id = ?", resume.UserID).Count(&count).Error; err != nil {
		return err
	}

	resume.IsPrimary = count == 0
	return repo.db.WithContext(ctx).Create(resume).Error
}

// SetPrimary clears the flag on every other résumé of the user, then sets it on id.
func (repo *Resumes) SetPrimary(ctx context.Context, userID, id string) error {
	if _, err := repo.Get(ctx, userID, id); err != nil {
		return err
	}

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ParsedResume{}).
			Where("user_id = ? AND id <> ?", userID, id).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.ParsedResume{}).
			Where("user_id = ? AND id = ?", userID, id).
			Update("is_primary", true).Error
	})
}

// Remove deletes the row and its uploaded file.
func (repo *Resumes) Remove(ctx context.Context, userID, id string) error {
	resume, err := repo.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Delete(&models.ParsedResume{}, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return err
	}

	if resume.StoragePath != "" && repo.blobs != nil {
		if err := repo.blobs.Delete(resume.StoragePath); err != nil {
			log.Errorf("resume %s deleted but its file %s was not: %v", id, resume.StoragePath, err)
		}
	}
	return nil
}
