package usecase_test

import (
	"testing"

	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestState(t *testing.T) {
	state := usecase.NewState()

	var events []usecase.StateEvent
	cancel := state.Subscribe(func(e usecase.StateEvent) {
		events = append(events, e)
	})

	user := model.NewUser("Ana", "ana@example.com", "", types.RoleCitizen, "Morales")

	// unknown sessions are ignored for everything but SetUser
	state.SetLocation("s1", &model.UserLocation{})
	state.SetNotification("s1", model.NewNotification("t", "m"))
	gt.A(t, events).Length(0)

	state.SetUser("s1", user)
	state.SetLocation("s1", &model.UserLocation{Coordinate: model.Coordinate{Lat: 3.1, Lng: -76.6}})
	state.SetNotification("s1", model.NewNotification("t", "m"))

	st, ok := state.Get("s1")
	gt.True(t, ok)
	gt.Equal(t, st.User.ID, user.ID)
	gt.Equal(t, st.Location.Lat, 3.1)
	gt.Equal(t, st.Notification.Title, "t")

	state.Clear("s1")
	state.Clear("s1")
	_, ok = state.Get("s1")
	gt.False(t, ok)

	gt.A(t, events).Length(4)
	gt.Equal(t, events[0].Kind, usecase.StateEventUser)
	gt.Equal(t, events[1].Kind, usecase.StateEventLocation)
	gt.Equal(t, events[1].State.User.ID, user.ID)
	gt.Equal(t, events[2].Kind, usecase.StateEventNotification)
	gt.Equal(t, events[3].Kind, usecase.StateEventCleared)
	gt.Equal(t, events[3].SessionID, types.SessionID("s1"))

	cancel()
	state.SetUser("s2", user)
	gt.A(t, events).Length(4)
}
