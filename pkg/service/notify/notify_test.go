package notify_test

import (
	"context"
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/service/notify"
	"github.com/m-mizutani/gt"
)

func sessionCtx(id types.SessionID) context.Context {
	return model.WithAuthContext(context.Background(), &model.AuthContext{SessionID: id})
}

func TestToastSinkMostRecentWins(t *testing.T) {
	sink := notify.NewToastSink()
	ctx := sessionCtx("s1")

	sink.Notify(ctx, model.NewNotification("Bienvenido", "first"))
	sink.Notify(ctx, model.NewNotification("Verificación pendiente", "second"))

	n, ok := sink.Latest("s1")
	gt.True(t, ok)
	gt.Equal(t, n.Title, "Verificación pendiente")
	gt.Equal(t, n.SessionID, types.SessionID("s1"))
}

func TestToastSinkIsolatesSessions(t *testing.T) {
	sink := notify.NewToastSink()

	sink.Notify(sessionCtx("s1"), model.NewNotification("one", "m"))
	sink.Notify(sessionCtx("s2"), model.NewNotification("two", "m"))

	n1, ok := sink.Latest("s1")
	gt.True(t, ok)
	gt.Equal(t, n1.Title, "one")

	n2, ok := sink.Latest("s2")
	gt.True(t, ok)
	gt.Equal(t, n2.Title, "two")

	_, ok = sink.Latest("s3")
	gt.False(t, ok)

	sink.Clear("s1")
	_, ok = sink.Latest("s1")
	gt.False(t, ok)
}

func TestToastSinkExplicitSession(t *testing.T) {
	sink := notify.NewToastSink()
	n := model.NewNotification("t", "m")
	n.SessionID = "explicit"

	sink.Notify(context.Background(), n)
	_, ok := sink.Latest("explicit")
	gt.True(t, ok)
}

func TestToastSinkSubscribe(t *testing.T) {
	sink := notify.NewToastSink()

	var received []string
	cancel := sink.Subscribe(func(n *model.Notification) {
		received = append(received, n.Title)
	})

	sink.Notify(sessionCtx("s1"), model.NewNotification("a", "m"))
	cancel()
	sink.Notify(sessionCtx("s1"), model.NewNotification("b", "m"))

	gt.A(t, received).Length(1)
	gt.Equal(t, received[0], "a")
}

type recorder struct {
	titles []string
}

func (r *recorder) Notify(ctx context.Context, n *model.Notification) {
	r.titles = append(r.titles, n.Title)
}

func TestMulti(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	var nilSink interfaces.Notifier
	m := notify.NewMulti(a, nilSink, b)
	gt.Equal(t, len(m), 2)

	m.Notify(context.Background(), model.NewNotification("x", "y"))
	gt.Equal(t, a.titles, []string{"x"})
	gt.Equal(t, b.titles, []string{"x"})
}
