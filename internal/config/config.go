package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	AI       AIConfig       `mapstructure:"ai"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Alerts   AlertsConfig   `mapstructure:"alerts"`
	Mail     MailConfig     `mapstructure:"mail"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

var configFile = "./configs/config.yaml"

type section interface {
	validate() error
}

func Get() *Config {

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	v := viper.New()
	v.SetConfigFile(file)
	v.AutomaticEnv()

	setDefaults(v)

	err := bindEnvironmentVariables(v)
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func (config *Config) sections() map[string]section {
	return map[string]section{
		"LoggerConfig":   config.Logger,
		"ServerConfig":   config.Server,
		"DBConfig":       config.DB,
		"AIConfig":       config.AI,
		"JobsConfig":     config.Jobs,
		"AlertsConfig":   config.Alerts,
		"MailConfig":     config.Mail,
		"TelegramConfig": config.Telegram,
		"StorageConfig":  config.Storage,
	}
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	bindings := map[string]map[string]string{
		"LoggerConfig":   loggerEnv,
		"ServerConfig":   serverEnv,
		"DBConfig":       dbEnv,
		"AIConfig":       aiEnv,
		"JobsConfig":     jobsEnv,
		"AlertsConfig":   alertsEnv,
		"MailConfig":     mailEnv,
		"TelegramConfig": telegramEnv,
		"StorageConfig":  storageEnv,
	}

	for name, env := range bindings {
		if err := bindEnv(v, env); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindEnv(v *viper.Viper, env map[string]string) error {
	var errs []error
	for key, variable := range env {
		if err := v.BindEnv(key, variable); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (config *Config) validate() error {
	var errs []error

	for name, s := range config.sections() {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
