package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
	"github.com/secmon-lab/notepad/pkg/service/worker"
	"github.com/secmon-lab/notepad/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Server holds CLI flags for the reference backend
type Server struct {
	addr          string
	sessionTTL    time.Duration
	sweepInterval time.Duration
	maxNoteLength int
}

// Flags returns CLI flags for server configuration
func (s *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("NOTEPAD_ADDR"),
			Destination: &s.addr,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Lifetime of a login session",
			Value:       auth.DefaultTokenTTL,
			Sources:     cli.EnvVars("NOTEPAD_SESSION_TTL"),
			Destination: &s.sessionTTL,
		},
		&cli.DurationFlag{
			Name:        "sweep-interval",
			Usage:       "How often expired sessions are removed",
			Value:       worker.DefaultSweepInterval,
			Sources:     cli.EnvVars("NOTEPAD_SWEEP_INTERVAL"),
			Destination: &s.sweepInterval,
		},
		&cli.IntFlag{
			Name:        "max-note-length",
			Usage:       "Maximum note length in characters",
			Value:       usecase.DefaultMaxNoteLength,
			Sources:     cli.EnvVars("NOTEPAD_MAX_NOTE_LENGTH"),
			Destination: &s.maxNoteLength,
		},
	}
}

// LogAttrs returns log attributes for the server configuration
func (s *Server) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", s.addr),
		slog.Duration("session_ttl", s.sessionTTL),
		slog.Duration("sweep_interval", s.sweepInterval),
		slog.Int("max_note_length", s.maxNoteLength),
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.addr
}

// SweepInterval returns the session sweep interval
func (s *Server) SweepInterval() time.Duration {
	return s.sweepInterval
}

// Configure validates the flags and returns the use case options they imply
func (s *Server) Configure() ([]usecase.Option, error) {
	if s.addr == "" {
		return nil, goerr.Wrap(ErrInvalidConfig, "addr is required", goerr.V(FlagKey, "addr"))
	}
	if s.sessionTTL <= 0 {
		return nil, goerr.Wrap(ErrInvalidDuration, "invalid session TTL",
			goerr.V(FlagKey, "session-ttl"), goerr.V("value", s.sessionTTL))
	}
	if s.sweepInterval <= 0 {
		return nil, goerr.Wrap(ErrInvalidDuration, "invalid sweep interval",
			goerr.V(FlagKey, "sweep-interval"), goerr.V("value", s.sweepInterval))
	}
	if s.maxNoteLength <= 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "max-note-length must be positive",
			goerr.V(FlagKey, "max-note-length"), goerr.V("value", s.maxNoteLength))
	}

	return []usecase.Option{
		usecase.WithSessionTTL(s.sessionTTL),
		usecase.WithMaxNoteLength(s.maxNoteLength),
	}, nil
}
