package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Sentry holds CLI flags for error reporting
type Sentry struct {
	dsn string
	env string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Category:    "Sentry",
			Usage:       "Sentry DSN. Error reporting is disabled when empty.",
			Sources:     cli.EnvVars("NOTEPAD_SENTRY_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Category:    "Sentry",
			Usage:       "Sentry environment",
			Value:       "development",
			Sources:     cli.EnvVars("NOTEPAD_SENTRY_ENV"),
			Destination: &s.env,
		},
	}
}

// LogAttrs returns log attributes for the Sentry configuration
func (s *Sentry) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("enabled", s.Enabled()),
		slog.String("env", s.env),
	}
}

// Enabled reports whether a DSN is configured
func (s *Sentry) Enabled() bool {
	return s.dsn != ""
}

// Configure initializes the Sentry client. The returned closer flushes
// pending events. Without a DSN it does nothing.
func (s *Sentry) Configure(release string) (func(), error) {
	if !s.Enabled() {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.dsn,
		Environment: s.env,
		Release:     release,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry", goerr.V("env", s.env))
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}

// Middleware returns an HTTP middleware attaching a Sentry hub to each request,
// or nil when Sentry is disabled.
func (s *Sentry) Middleware() func(http.Handler) http.Handler {
	if !s.Enabled() {
		return nil
	}
	return sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle
}
