package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/repository"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/m-mizutani/gt"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []*model.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, n *model.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *n
	r.notifications = append(r.notifications, &copied)
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	titles := make([]string, 0, len(r.notifications))
	for _, n := range r.notifications {
		titles = append(titles, n.Title)
	}
	return titles
}

// blockingNotifier holds every notification until release is closed
type blockingNotifier struct {
	release   chan struct{}
	mu        sync.Mutex
	delivered int
}

func (b *blockingNotifier) Notify(ctx context.Context, n *model.Notification) {
	select {
	case <-b.release:
	case <-time.After(2 * time.Second):
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delivered++
}

func (b *blockingNotifier) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.delivered
}

func newUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	base := []usecase.Option{
		usecase.WithLeaderFollowupDelay(10 * time.Millisecond),
		usecase.WithReportFollowupDelay(10 * time.Millisecond),
	}
	uc := usecase.New(repository.NewMemory(), geo.Default(), append(base, opts...)...)
	t.Cleanup(uc.Close)
	return uc
}

func login(t *testing.T, uc *usecase.UseCases, role types.Role, region string) (*model.Session, *model.User) {
	t.Helper()
	session, user, err := uc.Session.Login(context.Background(), usecase.LoginInput{
		Name:   "María Dagua",
		Email:  "maria@example.com",
		Phone:  "+57 300 000 0000",
		Role:   role,
		Region: region,
	})
	gt.NoError(t, err).Required()
	return session, user
}

func latestTitle(t *testing.T, uc *usecase.UseCases, sessionID types.SessionID) string {
	t.Helper()
	n, err := uc.Session.LatestNotification(context.Background(), sessionID)
	gt.NoError(t, err).Required()
	if n == nil {
		return ""
	}
	return n.Title
}

// waitForTitle polls until the session's current toast has the given title
func waitForTitle(t *testing.T, uc *usecase.UseCases, sessionID types.SessionID, title string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if latestTitle(t, uc, sessionID) == title {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("notification %q did not arrive, latest is %q", title, latestTitle(t, uc, sessionID))
}

func validationFields(t *testing.T, err error) []string {
	t.Helper()
	gt.Error(t, err)
	ve, ok := model.AsValidationError(err)
	gt.True(t, ok)
	if ve == nil {
		return nil
	}
	return ve.Fields
}
