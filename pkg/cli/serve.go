package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caucaconecta/caucaconecta/frontend"
	"github.com/caucaconecta/caucaconecta/pkg/cli/config"
	controller "github.com/caucaconecta/caucaconecta/pkg/controller/http"
	"github.com/caucaconecta/caucaconecta/pkg/repository"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		appCfg      config.App
		geoCfg      config.Geo
		slackCfg    config.Slack
		geocoderCfg config.Geocoder
	)

	flags := joinFlags(
		serverCfg.Flags(),
		appCfg.Flags(),
		geoCfg.Flags(),
		slackCfg.Flags(),
		geocoderCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := serverCfg.Validate(); err != nil {
				return err
			}
			if err := appCfg.Validate(); err != nil {
				return err
			}

			logger.Info("Starting caucaconecta server",
				slog.Any("server", serverCfg),
				slog.Any("app", appCfg),
				slog.Any("geo", geoCfg),
				slog.Any("slack", slackCfg),
				slog.Any("geocoder", geocoderCfg),
			)

			geography, err := geoCfg.Configure()
			if err != nil {
				return err
			}
			renderer, err := appCfg.Renderer()
			if err != nil {
				return err
			}
			geocoder, err := geocoderCfg.Configure(ctx, geography.Regions)
			if err != nil {
				return err
			}

			opts := append(appCfg.Options(), usecase.WithMapRenderer(renderer))
			if geocoder != nil {
				opts = append(opts, usecase.WithGeocoder(geocoder))
			}
			if forwarder := slackCfg.ConfigureOptional(ctx); forwarder != nil {
				opts = append(opts, usecase.WithNotifier(forwarder))
			}

			logger.Warn("Using memory storage. All data is lost when shutting down")
			uc := usecase.New(repository.NewMemory(), geography, opts...)
			defer uc.Close()

			if appCfg.SeedSamples {
				if err := uc.Incident.SeedSamples(ctx); err != nil {
					return goerr.Wrap(err, "failed to seed sample incidents")
				}
			}

			srvCfg := controller.Config{Addr: serverCfg.Addr}
			if fs, err := frontend.GetHTTPFS(); err != nil {
				logger.Warn("Embedded frontend not available, using fallback page", "error", err)
			} else {
				srvCfg.Frontend = fs
			}

			server, err := controller.NewServer(ctx, srvCfg, controller.NewUseCases(uc))
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, egCtx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "HTTP server failed", goerr.V("addr", serverCfg.Addr))
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				logger.Info("Shutting down...")

				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverCfg.ShutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := eg.Wait(); err != nil {
				return err
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
