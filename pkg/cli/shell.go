package cli

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/secmon-lab/notepad/pkg/cli/config"
	"github.com/secmon-lab/notepad/pkg/controller/term"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdShell() *cli.Command {
	var clientCfg config.Client
	var noColor bool

	flags := clientCfg.Flags()
	flags = append(flags, &cli.BoolFlag{
		Name:        "no-color",
		Usage:       "Disable coloured output",
		Sources:     cli.EnvVars("NOTEPAD_NO_COLOR", "NO_COLOR"),
		Destination: &noColor,
	})

	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"sh"},
		Usage:   "Open the interactive notes client",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			client, settings, err := clientCfg.Configure(c)
			if err != nil {
				return err
			}

			logging.Default().Debug("Shell configuration",
				"server", settings.ServerURL,
				"timeout", settings.Timeout,
				"start_path", settings.StartPath,
			)

			shell := term.NewShell(client, os.Stdout, term.WithColor(!noColor && !color.NoColor))
			return shell.Run(ctx, os.Stdin, settings.StartPath)
		},
	}
}
