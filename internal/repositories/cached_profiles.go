package repositories

import (
	"context"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type profileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Save(ctx context.Context, profile *models.UserProfile) error
}

// CachedProfiles keeps recently read profiles in memory.
type CachedProfiles struct {
	repo  profileRepository
	cache *gocache.Cache
}

func NewCachedProfiles(repo profileRepository) *CachedProfiles {
	return &CachedProfiles{repo: repo, cache: gocache.New(10*time.Minute, 20*time.Minute)}
}

func (c CachedProfiles) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	if value, found := c.cache.Get(userID); found {
		profile := value.(models.UserProfile)
		return &profile, nil
	}

	profile, err := c.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.cache.Set(userID, *profile, gocache.DefaultExpiration)
	return profile, nil
}

func (c CachedProfiles) Save(ctx context.Context, profile *models.UserProfile) error {
	if err := c.repo.Save(ctx, profile); err != nil {
		return err
	}
	c.cache.Delete(profile.UserID)
	return nil
}
