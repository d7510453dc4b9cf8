package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"github.com/maxaizer/job-copilot/internal/domain/models"
	"github.com/maxaizer/job-copilot/internal/metrics"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
)

type searchCache struct {
	cache *gocache.Cache
}

func newSearchCache(cache *gocache.Cache) *searchCache {
	return &searchCache{cache: cache}
}

func (h *searchCache) get(filters models.JobSearchFilters) (models.SearchResults, bool) {
	if h.cache == nil {
		return models.SearchResults{}, false
	}

	cached, found := h.cache.Get(createSearchCacheID(filters))
	if !found {
		metrics.JobSearchesCounter.WithLabelValues("miss").Inc()
		return models.SearchResults{}, false
	}

	metrics.JobSearchesCounter.WithLabelValues("hit").Inc()
	return cached.(models.SearchResults), true
}

func (h *searchCache) put(filters models.JobSearchFilters, results models.SearchResults) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Add(createSearchCacheID(filters), results, gocache.DefaultExpiration); err != nil {
		log.Debugf("search results already cached: %v", err)
	}
}

func createSearchCacheID(filters models.JobSearchFilters) string {
	raw, err := json.Marshal(filters)
	if err != nil {
		log.Errorf("failed to encode search filters for caching: %v", err)
	}
	hash := sha256.Sum256(raw)
	return "search:" + hex.EncodeToString(hash[:])
}
