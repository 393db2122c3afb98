package usecase

import (
	"context"
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/repository"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/m-mizutani/gt"
)

func TestNotifyAfterSessionEnded(t *testing.T) {
	uc := New(repository.NewMemory(), geo.Default(), WithSessionSweep(0))
	defer uc.Close()

	ctx := context.Background()
	session, _, err := uc.Session.Login(ctx, LoginInput{Name: "Ana", Email: "ana@example.com", Region: "Popayán"})
	gt.NoError(t, err).Required()

	// a delayed toast that passed its session check just before Logout
	uc.State.Clear(session.ID)
	uc.Session.notify(ctx, session.ID, model.NewNotification("Tarde", "m"))

	_, ok := uc.Toasts.Latest(session.ID)
	gt.False(t, ok)
}
