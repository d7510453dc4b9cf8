package config

import (
	"github.com/spf13/viper"
	"time"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.app_name", "job-copilot")
	v.SetDefault("logger.output_file", "./logs/errors.log")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.max_request_size", 10<<20)

	v.SetDefault("ai.provider", string(ProviderGroq))
	v.SetDefault("ai.groq_model", "llama-3.3-70b-versatile")
	v.SetDefault("ai.perplexity_model", "sonar")
	v.SetDefault("ai.gemini_model", "gemini-1.5-flash")
	v.SetDefault("ai.max_requests_per_minute", 30)
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.circuit_breaker.enabled", true)
	v.SetDefault("ai.circuit_breaker.max_requests", 3)
	v.SetDefault("ai.circuit_breaker.interval", time.Minute)
	v.SetDefault("ai.circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("ai.circuit_breaker.min_requests", 5)
	v.SetDefault("ai.circuit_breaker.failure_threshold", 0.6)

	v.SetDefault("jobs.country", "us")
	v.SetDefault("jobs.max_requests_per_second", 5)
	v.SetDefault("jobs.cache_ttl", 10*time.Minute)

	v.SetDefault("alerts.enabled", true)
	v.SetDefault("alerts.schedule", "0 * * * *")
	v.SetDefault("alerts.page_size", 50)

	v.SetDefault("mail.port", 587)

	v.SetDefault("storage.resume_dir", "./data/resumes")
}
