package config

import (
	"context"
	"log/slog"

	slackSvc "github.com/caucaconecta/caucaconecta/pkg/service/slack"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

// Slack holds the settings of the optional Slack notification forwarder
type Slack struct {
	OAuthToken string
	ChannelID  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack bot token used to forward notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("CAUCA_SLACK_OAUTH_TOKEN"),
			Destination: &s.OAuthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID that receives forwarded notifications",
			Category:    "Slack",
			Sources:     cli.EnvVars("CAUCA_SLACK_CHANNEL"),
			Destination: &s.ChannelID,
		},
	}
}

// IsConfigured checks if both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.OAuthToken != "" && s.ChannelID != ""
}

// ConfigureOptional creates the forwarder, or returns nil when Slack is not
// configured
func (s *Slack) ConfigureOptional(ctx context.Context) *slackSvc.Service {
	logger := ctxlog.From(ctx)
	if !s.IsConfigured() {
		if s.OAuthToken != "" || s.ChannelID != "" {
			logger.Warn("Slack forwarding needs both token and channel, disabled")
		}
		return nil
	}

	logger.Info("Forwarding notifications to Slack", "channel", s.ChannelID)
	return slackSvc.New(s.OAuthToken, s.ChannelID)
}

// LogValue returns structured log value
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("has_oauth_token", s.OAuthToken != ""),
		slog.String("channel", s.ChannelID),
	)
}
