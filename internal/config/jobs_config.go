package config

import (
	"errors"
	"fmt"
	"time"
)

type JobsConfig struct {
	AdzunaAppID          string        `mapstructure:"adzuna_app_id"`
	AdzunaAppKey         string        `mapstructure:"adzuna_app_key"`
	Country              string        `mapstructure:"country"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

var jobsEnv = map[string]string{
	"jobs.adzuna_app_id":  "ADZUNA_APP_ID",
	"jobs.adzuna_app_key": "ADZUNA_APP_KEY",
}

func (config JobsConfig) validate() error {
	var errs []error

	if len(config.Country) != 2 {
		errs = append(errs, fmt.Errorf("country must be a two-letter code, got %q", config.Country))
	}
	if config.MaxRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must be non-negative"))
	}

	return errors.Join(errs...)
}
