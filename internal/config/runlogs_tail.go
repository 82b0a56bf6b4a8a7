package config

import (
	"github.com/kelseyhightower/envconfig"
)

// RunLogsTail holds the run log tail configuration.
type RunLogsTail struct {
	Environment

	Redis
	Postgres
	Kafka
	RunLogsTailConfig
}

// RunLogsTailConfig holds the configuration for the run log tail.
type RunLogsTailConfig struct {
	Transport string `envconfig:"RUNLOGS_TRANSPORT" default:"redis"`
	RunID     string `envconfig:"RUNLOGS_RUN_ID"`
	Query     string `envconfig:"RUNLOGS_QUERY"`
	Since     int64  `envconfig:"RUNLOGS_SINCE"`
}

// InitRunLogsTailConfig initializes the run log tail configuration.
func InitRunLogsTailConfig() (*RunLogsTail, error) {
	var cfg RunLogsTail
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
