package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/notepad/pkg/service/notesapi"
	"github.com/urfave/cli/v3"
)

// Client holds CLI flags for the notes client used by the shell command
type Client struct {
	serverURL  string
	timeout    time.Duration
	startPath  string
	configPath string
}

// ClientSettings is the resolved client configuration
type ClientSettings struct {
	ServerURL string
	Timeout   time.Duration
	StartPath string
}

// clientFile is the TOML layout of --config
type clientFile struct {
	ServerURL string `toml:"server_url"`
	Timeout   string `toml:"timeout"`
	StartPath string `toml:"start_path"`
}

const (
	flagServer    = "server"
	flagTimeout   = "timeout"
	flagStartPath = "start-path"
)

// Flags returns CLI flags for client configuration
func (x *Client) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        flagServer,
			Usage:       "Base URL of the notes backend",
			Value:       "http://localhost:8080",
			Sources:     cli.EnvVars("NOTEPAD_SERVER"),
			Destination: &x.serverURL,
		},
		&cli.DurationFlag{
			Name:        flagTimeout,
			Usage:       "Timeout of a single backend call",
			Value:       notesapi.DefaultTimeout,
			Sources:     cli.EnvVars("NOTEPAD_TIMEOUT"),
			Destination: &x.timeout,
		},
		&cli.StringFlag{
			Name:        flagStartPath,
			Usage:       "Path opened when the shell starts",
			Value:       "/",
			Sources:     cli.EnvVars("NOTEPAD_START_PATH"),
			Destination: &x.startPath,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML file with server_url, timeout and start_path. Flags take precedence.",
			Sources:     cli.EnvVars("NOTEPAD_CONFIG"),
			Destination: &x.configPath,
		},
	}
}

// LogAttrs returns log attributes for the client configuration
func (x *Client) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("server", x.serverURL),
		slog.Duration("timeout", x.timeout),
		slog.String("start_path", x.startPath),
		slog.String("config", x.configPath),
	}
}

// Configure resolves the settings and creates the backend client
func (x *Client) Configure(c *cli.Command) (*notesapi.Client, *ClientSettings, error) {
	settings, err := x.resolve(c.IsSet)
	if err != nil {
		return nil, nil, err
	}

	client, err := notesapi.New(settings.ServerURL, notesapi.WithTimeout(settings.Timeout))
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create notes client")
	}

	return client, settings, nil
}

// resolve merges the config file under the flags. isSet reports whether a flag was given
// explicitly on the command line or through the environment.
func (x *Client) resolve(isSet func(name string) bool) (*ClientSettings, error) {
	settings := &ClientSettings{
		ServerURL: x.serverURL,
		Timeout:   x.timeout,
		StartPath: x.startPath,
	}

	if x.configPath != "" {
		file, err := loadClientFile(x.configPath)
		if err != nil {
			return nil, err
		}

		if file.ServerURL != "" && !isSet(flagServer) {
			settings.ServerURL = file.ServerURL
		}
		if file.Timeout != "" && !isSet(flagTimeout) {
			d, err := time.ParseDuration(file.Timeout)
			if err != nil {
				return nil, goerr.Wrap(ErrInvalidConfig, "invalid timeout in config file",
					goerr.V(ConfigPathKey, x.configPath),
					goerr.V("timeout", file.Timeout),
				)
			}
			settings.Timeout = d
		}
		if file.StartPath != "" && !isSet(flagStartPath) {
			settings.StartPath = file.StartPath
		}
	}

	if settings.Timeout <= 0 {
		return nil, goerr.Wrap(ErrInvalidDuration, "timeout must be positive",
			goerr.V(FlagKey, flagTimeout),
			goerr.V("timeout", settings.Timeout),
		)
	}
	if !strings.HasPrefix(settings.StartPath, "/") {
		settings.StartPath = "/" + settings.StartPath
	}

	return settings, nil
}

func loadClientFile(path string) (*clientFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "client config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var file clientFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("cause", err.Error()),
		)
	}

	return &file, nil
}
