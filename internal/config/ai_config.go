package config

import (
	"errors"
	"fmt"
	"time"
)

type AIProvider string

const (
	ProviderGroq   AIProvider = "groq"
	ProviderGemini AIProvider = "gemini"
)

type AIConfig struct {
	Provider             AIProvider           `mapstructure:"provider"`
	GroqKey              string               `mapstructure:"groq_key"`
	GroqModel            string               `mapstructure:"groq_model"`
	PerplexityKey        string               `mapstructure:"perplexity_key"`
	PerplexityModel      string               `mapstructure:"perplexity_model"`
	GeminiKey            string               `mapstructure:"gemini_key"`
	GeminiModel          string               `mapstructure:"gemini_model"`
	MaxRequestsPerMinute float32              `mapstructure:"max_requests_per_minute"`
	Timeout              time.Duration        `mapstructure:"timeout"`
	CircuitBreaker       CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MinRequests      uint32        `mapstructure:"min_requests"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

var aiEnv = map[string]string{
	"ai.provider":       "AI_PROVIDER",
	"ai.groq_key":       "GROQ_API_KEY",
	"ai.perplexity_key": "PERPLEXITY_API_KEY",
	"ai.gemini_key":     "GEMINI_API_KEY",
}

func (config AIConfig) validate() error {
	var errs []error

	switch config.Provider {
	case ProviderGroq, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("unsupported provider: %q", config.Provider))
	}

	if config.MaxRequestsPerMinute < 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_minute must be non-negative"))
	}

	cb := config.CircuitBreaker
	if cb.Enabled && (cb.FailureThreshold <= 0 || cb.FailureThreshold > 1) {
		errs = append(errs, fmt.Errorf("circuit_breaker.failure_threshold must be in (0, 1]"))
	}

	return errors.Join(errs...)
}
