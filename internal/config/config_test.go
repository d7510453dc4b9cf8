package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	t.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "overrideSecret")
	t.Setenv("DB_CONNECTION_STRING", "newConnectionString")
	t.Setenv("AI_PROVIDER", "gemini")
	t.Setenv("GROQ_API_KEY", "groqKey")
	t.Setenv("ADZUNA_APP_ID", "appID")
	t.Setenv("ADZUNA_APP_KEY", "appKey")
	t.Setenv("ALERTS_SCHEDULE", "*/5 * * * *")

	cfg := Get()

	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "overrideSecret", cfg.Server.JWTSecret)
	assert.Equal(t, "newConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "groqKey", cfg.AI.GroqKey)
	assert.Equal(t, "appID", cfg.Jobs.AdzunaAppID)
	assert.Equal(t, "appKey", cfg.Jobs.AdzunaAppKey)
	assert.Equal(t, "*/5 * * * *", cfg.Alerts.Schedule)
}

func Test_Config_FileValuesAreDecoded(t *testing.T) {
	cfg, err := loadConfig("../../configs/config.yaml")
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Jobs.CacheTTL)
	assert.Equal(t, "us", cfg.Jobs.Country)
	assert.True(t, cfg.AI.CircuitBreaker.Enabled)
	assert.Equal(t, uint32(5), cfg.AI.CircuitBreaker.MinRequests)
}

func Test_Config_InvalidSectionsAreReported(t *testing.T) {
	cfg := Config{
		Logger:  LoggerConfig{},
		Server:  ServerConfig{Port: 0},
		AI:      AIConfig{Provider: "openai"},
		Jobs:    JobsConfig{Country: "usa"},
		Alerts:  AlertsConfig{Enabled: true, Schedule: "not a cron", PageSize: 10},
		Storage: StorageConfig{ResumeDir: "./data"},
	}

	err := cfg.validate()
	require.Error(t, err)

	for _, part := range []string{"log_level", "invalid port", "db connection string",
		"unsupported provider", "two-letter", "invalid schedule"} {
		assert.Contains(t, err.Error(), part)
	}
}

func TestMain(m *testing.M) {
	_ = os.Unsetenv("CONFIG_PATH")
	os.Exit(m.Run())
}
