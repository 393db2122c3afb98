package slack_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	slackSvc "github.com/caucaconecta/caucaconecta/pkg/service/slack"
	"github.com/m-mizutani/gt"
	"github.com/slack-go/slack"
)

type mockClient struct {
	mu       sync.Mutex
	channels []string
	err      error
}

func (m *mockClient) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", "", m.err
	}
	m.channels = append(m.channels, channelID)
	return channelID, "1700000000.000100", nil
}

func TestNotify(t *testing.T) {
	t.Run("posts to configured channel", func(t *testing.T) {
		client := &mockClient{}
		svc := slackSvc.NewWithClient(client, "C-ALERTS")

		svc.Notify(context.Background(), model.NewNotification("Incidente reportado", "Bloqueo de vía"))
		gt.A(t, client.channels).Length(1)
		gt.Equal(t, client.channels[0], "C-ALERTS")
	})

	t.Run("swallows slack errors", func(t *testing.T) {
		client := &mockClient{err: errors.New("channel_not_found")}
		svc := slackSvc.NewWithClient(client, "C-ALERTS")

		svc.Notify(context.Background(), model.NewNotification("t", "m"))
		gt.A(t, client.channels).Length(0)
	})

	t.Run("missing channel is an error on PostMessage", func(t *testing.T) {
		svc := slackSvc.NewWithClient(&mockClient{}, "")
		_, _, err := svc.PostMessage(context.Background())
		gt.Error(t, err)
	})

	t.Run("nil notification is ignored", func(t *testing.T) {
		client := &mockClient{}
		slackSvc.NewWithClient(client, "C-ALERTS").Notify(context.Background(), nil)
		gt.A(t, client.channels).Length(0)
	})
}

func TestFormatNotificationText(t *testing.T) {
	n := model.NewNotification("Ubicación", "No se pudo obtener tu ubicación").
		WithSeverity(types.NotificationWarning)
	gt.Equal(t, slackSvc.FormatNotificationText(n), "⚠️ Ubicación: No se pudo obtener tu ubicación")
}

func TestBuildNotificationBlocks(t *testing.T) {
	builder := slackSvc.NewBlockBuilder()

	blocks := builder.BuildNotificationBlocks(model.NewNotification("t", "m"))
	gt.A(t, blocks).Length(2)

	blocks = builder.BuildNotificationBlocks(&model.Notification{Title: "t", Message: "m"})
	gt.A(t, blocks).Length(1)
}
