package slack

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/utils/apperr"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Client is the subset of the Slack API used to forward notifications
type Client interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Service forwards notifications to a Slack channel
type Service struct {
	client    Client
	channelID string
	builder   *BlockBuilder
}

var _ interfaces.Notifier = (*Service)(nil)

// New creates a Slack forwarder using a bot token
func New(token, channelID string) *Service {
	return NewWithClient(slack.New(token), channelID)
}

// NewWithClient creates a Slack forwarder around an existing client
func NewWithClient(client Client, channelID string) *Service {
	return &Service{
		client:    client,
		channelID: channelID,
		builder:   NewBlockBuilder(),
	}
}

// ChannelID returns the destination channel
func (s *Service) ChannelID() string {
	return s.channelID
}

// PostMessage sends a message to the configured channel
func (s *Service) PostMessage(ctx context.Context, options ...slack.MsgOption) (string, string, error) {
	if s.channelID == "" {
		return "", "", goerr.New("slack channel ID is required")
	}

	channel, timestamp, err := s.client.PostMessageContext(ctx, s.channelID, options...)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to post message to Slack",
			goerr.V("channel", s.channelID))
	}
	return channel, timestamp, nil
}

// Notify posts n to the channel. Delivery failures are logged and dropped.
func (s *Service) Notify(ctx context.Context, n *model.Notification) {
	if n == nil {
		return
	}

	blocks := s.builder.BuildNotificationBlocks(n)
	_, ts, err := s.PostMessage(ctx,
		slack.MsgOptionText(FormatNotificationText(n), false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		apperr.Handle(ctx, goerr.Wrap(err, "failed to forward notification",
			goerr.V("title", n.Title)))
		return
	}

	ctxlog.From(ctx).Debug("Notification forwarded to Slack",
		"channel", s.channelID,
		"ts", ts,
		"title", n.Title,
	)
}
