package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/cli/config"
	httpctrl "github.com/secmon-lab/notepad/pkg/controller/http"
	"github.com/secmon-lab/notepad/pkg/service/worker"
	"github.com/secmon-lab/notepad/pkg/usecase"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func cmdServe(version string) *cli.Command {
	var serverCfg config.Server
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the notes backend",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Serve configuration",
				attrGroup("server", serverCfg.LogAttrs()),
				attrGroup("repository", repoCfg.LogAttrs()),
				attrGroup("sentry", sentryCfg.LogAttrs()),
			)

			ucOpts, err := serverCfg.Configure()
			if err != nil {
				return err
			}

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer flush()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, ucOpts...)

			var httpOpts []httpctrl.Options
			if mw := sentryCfg.Middleware(); mw != nil {
				httpOpts = append(httpOpts, httpctrl.WithMiddleware(mw))
				logger.Info("Sentry error reporting enabled")
			}

			server := &http.Server{
				Addr:              serverCfg.Addr(),
				Handler:           httpctrl.New(uc.Account, uc.Note, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sweeper := worker.NewSessionSweeper(repo, serverCfg.SweepInterval())

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)

			eg.Go(func() error {
				logger.Info("Starting HTTP server", "addr", serverCfg.Addr())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", serverCfg.Addr()))
				}
				return nil
			})

			eg.Go(func() error {
				if err := sweeper.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start session sweeper")
				}
				<-ctx.Done()
				sweeper.Stop()
				return nil
			})

			eg.Go(func() error {
				<-ctx.Done()
				logger.Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logger.Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}

func attrGroup(key string, attrs []slog.Attr) slog.Attr {
	return slog.Attr{Key: key, Value: slog.GroupValue(attrs...)}
}
