package slack

import (
	"fmt"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/slack-go/slack"
)

// GetSeverityEmoji returns the emoji for a notification severity
func GetSeverityEmoji(severity types.NotificationSeverity) string {
	switch severity {
	case types.NotificationDestructive:
		return "🚨"
	case types.NotificationWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// FormatNotificationText is the plain-text fallback shown in push previews
func FormatNotificationText(n *model.Notification) string {
	return fmt.Sprintf("%s %s: %s", GetSeverityEmoji(n.Severity), n.Title, n.Message)
}

// BlockBuilder provides methods to build Slack message blocks
type BlockBuilder struct{}

// NewBlockBuilder creates a new BlockBuilder instance
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{}
}

// BuildNotificationBlocks builds the blocks for one forwarded notification
func (b *BlockBuilder) BuildNotificationBlocks(n *model.Notification) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(
				slack.MarkdownType,
				fmt.Sprintf("%s *%s*\n%s", GetSeverityEmoji(n.Severity), n.Title, n.Message),
				false,
				false,
			),
			nil,
			nil,
		),
	}

	if !n.CreatedAt.IsZero() {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(
				slack.MarkdownType,
				fmt.Sprintf("%s · %s", n.Severity, n.CreatedAt.Format("2006-01-02 15:04:05")),
				false,
				false,
			),
		))
	}

	return blocks
}
