package config

import (
	"errors"
	"fmt"
	"github.com/robfig/cron/v3"
)

type AlertsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
	PageSize int    `mapstructure:"page_size"`
}

var alertsEnv = map[string]string{
	"alerts.enabled":  "ALERTS_ENABLED",
	"alerts.schedule": "ALERTS_SCHEDULE",
}

func (config AlertsConfig) validate() error {
	var errs []error

	if config.Enabled {
		if _, err := cron.ParseStandard(config.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("invalid schedule %q: %w", config.Schedule, err))
		}
	}
	if config.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page_size must be positive"))
	}

	return errors.Join(errs...)
}

type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

var mailEnv = map[string]string{
	"mail.host":     "SMTP_HOST",
	"mail.username": "SMTP_USERNAME",
	"mail.password": "SMTP_PASSWORD",
	"mail.from":     "MAIL_FROM",
}

func (config MailConfig) validate() error {
	if config.Host != "" && config.From == "" {
		return fmt.Errorf("missing variable: from")
	}
	return nil
}

func (config MailConfig) Enabled() bool {
	return config.Host != ""
}

type TelegramConfig struct {
	Token string `mapstructure:"token"`
}

var telegramEnv = map[string]string{
	"telegram.token": "TG_TOKEN",
}

func (config TelegramConfig) validate() error {
	return nil
}

type StorageConfig struct {
	ResumeDir string `mapstructure:"resume_dir"`
}

var storageEnv = map[string]string{
	"storage.resume_dir": "RESUME_DIR",
}

func (config StorageConfig) validate() error {
	if config.ResumeDir == "" {
		return fmt.Errorf("missing variable: resume_dir")
	}
	return nil
}
