package config

import (
	"fmt"
)

type DBConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
}

var dbEnv = map[string]string{
	"db.connection_string": "DB_CONNECTION_STRING",
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	return nil
}
