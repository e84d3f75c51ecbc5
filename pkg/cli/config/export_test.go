package config

import (
	"log/slog"
	"time"
)

// NewClientForTest creates a Client config as if the flags had been parsed
func NewClientForTest(serverURL string, timeout time.Duration, startPath, configPath string) *Client {
	return &Client{
		serverURL:  serverURL,
		timeout:    timeout,
		startPath:  startPath,
		configPath: configPath,
	}
}

// Resolve exposes resolve
func (x *Client) Resolve(isSet func(name string) bool) (*ClientSettings, error) {
	return x.resolve(isSet)
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}

// WithRedisForTest sets the Redis session store flags
func (r *Repository) WithRedisForTest(url, prefix string) *Repository {
	r.redisURL = url
	r.redisKeyPrefix = prefix
	return r
}

// NewServerForTest creates a Server config for testing purposes
func NewServerForTest(addr string, sessionTTL, sweepInterval time.Duration, maxNoteLength int) *Server {
	return &Server{
		addr:          addr,
		sessionTTL:    sessionTTL,
		sweepInterval: sweepInterval,
		maxNoteLength: maxNoteLength,
	}
}

// NewSentryForTest creates a Sentry config for testing purposes
func NewSentryForTest(dsn, env string) *Sentry {
	return &Sentry{dsn: dsn, env: env}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// Build exposes build
func (l *Logger) Build() (*slog.Logger, func(), error) {
	return l.build()
}
