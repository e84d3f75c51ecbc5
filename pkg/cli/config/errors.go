package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrMissingProject  = goerr.New("firestore-project-id is required when using firestore backend")
	ErrInvalidBackend  = goerr.New("invalid repository backend")
	ErrInvalidDuration = goerr.New("duration must be positive")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	BackendKey    = "backend"
	FlagKey       = "flag"
)
