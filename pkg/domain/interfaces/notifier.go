package interfaces

import (
	"context"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
)

// Notifier is a fire-and-forget notification sink. Implementations never
// return errors to the caller; delivery problems are logged.
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification)
}
