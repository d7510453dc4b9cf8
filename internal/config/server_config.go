package config

import (
	"errors"
	"fmt"
)

type ServerConfig struct {
	Port           int    `mapstructure:"port"`
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTIssuer      string `mapstructure:"jwt_issuer"`
	MaxRequestSize int64  `mapstructure:"max_request_size"`
}

var serverEnv = map[string]string{
	"server.port":       "PORT",
	"server.jwt_secret": "JWT_SECRET",
	"server.jwt_issuer": "JWT_ISSUER",
}

func (config ServerConfig) validate() error {
	var errs []error

	if config.Port <= 0 || config.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", config.Port))
	}
	if config.MaxRequestSize < 0 {
		errs = append(errs, fmt.Errorf("max_request_size must be non-negative"))
	}

	return errors.Join(errs...)
}
