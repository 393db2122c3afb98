package notify

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
)

// Multi fans a notification out to several sinks in order
type Multi []interfaces.Notifier

var _ interfaces.Notifier = Multi(nil)

// NewMulti creates a Multi, skipping nil sinks
func NewMulti(sinks ...interfaces.Notifier) Multi {
	m := make(Multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

// Notify implements interfaces.Notifier
func (m Multi) Notify(ctx context.Context, n *model.Notification) {
	for _, s := range m {
		s.Notify(ctx, n)
	}
}
