package config

import (
	"log/slog"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/service/mapview"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// App holds application behavior settings
type App struct {
	MapBackend     string
	SeedSamples    bool
	LeaderFollowup time.Duration
	ReportFollowup time.Duration
	SessionTTL     time.Duration
	SessionSweep   time.Duration
}

// Flags returns CLI flags for App configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "map-backend",
			Usage:       "Map rendering backend (static, embed, tiles)",
			Category:    "Map",
			Value:       mapview.BackendStatic,
			Sources:     cli.EnvVars("CAUCA_MAP_BACKEND"),
			Destination: &a.MapBackend,
		},
		&cli.BoolFlag{
			Name:        "seed-samples",
			Usage:       "Load the sample incidents at startup",
			Category:    "Data",
			Sources:     cli.EnvVars("CAUCA_SEED_SAMPLES"),
			Destination: &a.SeedSamples,
		},
		&cli.DurationFlag{
			Name:        "followup-delay-leader",
			Usage:       "Delay before the leader verification notice",
			Category:    "Notifications",
			Value:       usecase.DefaultLeaderFollowupDelay,
			Sources:     cli.EnvVars("CAUCA_FOLLOWUP_DELAY_LEADER"),
			Destination: &a.LeaderFollowup,
		},
		&cli.DurationFlag{
			Name:        "followup-delay-report",
			Usage:       "Delay before the report review notice",
			Category:    "Notifications",
			Value:       usecase.DefaultReportFollowupDelay,
			Sources:     cli.EnvVars("CAUCA_FOLLOWUP_DELAY_REPORT"),
			Destination: &a.ReportFollowup,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Lifetime of a sign-in session",
			Category:    "Session",
			Value:       usecase.DefaultSessionTTL,
			Sources:     cli.EnvVars("CAUCA_SESSION_TTL"),
			Destination: &a.SessionTTL,
		},
		&cli.DurationFlag{
			Name:        "session-sweep",
			Usage:       "Interval for purging expired sessions (0 disables)",
			Category:    "Session",
			Value:       usecase.DefaultSessionSweep,
			Sources:     cli.EnvVars("CAUCA_SESSION_SWEEP"),
			Destination: &a.SessionSweep,
		},
	}
}

// Validate validates the application configuration
func (a *App) Validate() error {
	if a.LeaderFollowup < 0 || a.ReportFollowup < 0 {
		return goerr.New("follow-up delays must not be negative",
			goerr.V("leader", a.LeaderFollowup),
			goerr.V("report", a.ReportFollowup))
	}
	if a.SessionTTL <= 0 {
		return goerr.New("session TTL must be positive", goerr.V("ttl", a.SessionTTL))
	}
	if a.SessionSweep < 0 {
		return goerr.New("session sweep interval must not be negative", goerr.V("sweep", a.SessionSweep))
	}
	return nil
}

// Renderer creates the configured map backend
func (a *App) Renderer() (interfaces.MapRenderer, error) {
	return mapview.NewRenderer(a.MapBackend)
}

// Options converts the settings into use case options
func (a *App) Options() []usecase.Option {
	return []usecase.Option{
		usecase.WithLeaderFollowupDelay(a.LeaderFollowup),
		usecase.WithReportFollowupDelay(a.ReportFollowup),
		usecase.WithSessionTTL(a.SessionTTL),
		usecase.WithSessionSweep(a.SessionSweep),
	}
}

// LogValue returns structured log value
func (a App) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("map_backend", a.MapBackend),
		slog.Bool("seed_samples", a.SeedSamples),
		slog.Duration("followup_delay_leader", a.LeaderFollowup),
		slog.Duration("followup_delay_report", a.ReportFollowup),
		slog.Duration("session_ttl", a.SessionTTL),
		slog.Duration("session_sweep", a.SessionSweep),
	)
}
