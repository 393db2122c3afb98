package usecase

import (
	"context"
	"time"

	"github.com/caucaconecta/caucaconecta/pkg/domain/interfaces"
	"github.com/caucaconecta/caucaconecta/pkg/domain/model"
	"github.com/caucaconecta/caucaconecta/pkg/domain/types"
	"github.com/caucaconecta/caucaconecta/pkg/service/geo"
	"github.com/caucaconecta/caucaconecta/pkg/service/mapview"
	"github.com/caucaconecta/caucaconecta/pkg/service/notify"
	"github.com/caucaconecta/caucaconecta/pkg/utils/apperr"
	"github.com/caucaconecta/caucaconecta/pkg/utils/async"
	"github.com/m-mizutani/goerr/v2"
)

// Default follow-up delays match the timing of the original web client
const (
	DefaultLeaderFollowupDelay = 2 * time.Second
	DefaultReportFollowupDelay = 3 * time.Second
	DefaultSessionTTL          = 24 * time.Hour
	DefaultSessionSweep        = 10 * time.Minute
)

type config struct {
	notifiers   []interfaces.Notifier
	geocoder    interfaces.Geocoder
	renderer    interfaces.MapRenderer
	leaderDelay time.Duration
	reportDelay time.Duration
	sessionTTL  time.Duration
	sweep       time.Duration
}

// Option configures UseCases
type Option func(*config)

// WithNotifier adds a notification sink next to the in-memory toasts, e.g.
// the Slack forwarder
func WithNotifier(n interfaces.Notifier) Option {
	return func(c *config) {
		c.notifiers = append(c.notifiers, n)
	}
}

// WithGeocoder enables address geocoding when an incident has no coordinate
func WithGeocoder(g interfaces.Geocoder) Option {
	return func(c *config) {
		c.geocoder = g
	}
}

// WithMapRenderer sets the map backend. The default is the static image.
func WithMapRenderer(r interfaces.MapRenderer) Option {
	return func(c *config) {
		c.renderer = r
	}
}

// WithLeaderFollowupDelay sets the delay of the leader verification toast
func WithLeaderFollowupDelay(d time.Duration) Option {
	return func(c *config) {
		c.leaderDelay = d
	}
}

// WithReportFollowupDelay sets the delay of the report review toast
func WithReportFollowupDelay(d time.Duration) Option {
	return func(c *config) {
		c.reportDelay = d
	}
}

// WithSessionTTL sets how long a session stays valid
func WithSessionTTL(d time.Duration) Option {
	return func(c *config) {
		c.sessionTTL = d
	}
}

// WithSessionSweep sets how often expired sessions are purged. Zero disables
// the periodic purge.
func WithSessionSweep(d time.Duration) Option {
	return func(c *config) {
		c.sweep = d
	}
}

// UseCases bundles every use case around one shared state owner
type UseCases struct {
	Session  *Session
	Location *Location
	Incident *Incident
	Support  *Support
	Map      *Map

	State  *State
	Toasts *notify.ToastSink

	dispatcher  *async.Dispatcher
	unsubscribe func()
	stopSweep   context.CancelFunc
	sweepDone   chan struct{}
}

// New creates the use cases. Close must be called to stop pending follow-up
// notifications.
func New(repo interfaces.Repository, geography *geo.Geography, opts ...Option) *UseCases {
	cfg := &config{
		leaderDelay: DefaultLeaderFollowupDelay,
		reportDelay: DefaultReportFollowupDelay,
		sessionTTL:  DefaultSessionTTL,
		sweep:       DefaultSessionSweep,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.renderer == nil {
		cfg.renderer = mapview.NewStatic(mapview.DefaultStaticURL)
	}

	state := NewState()
	toasts := notify.NewToastSink()
	unsubscribe := toasts.Subscribe(func(n *model.Notification) {
		state.SetNotification(n.SessionID, n)
	})

	d := &deps{
		repo:       repo,
		geography:  geography,
		state:      state,
		toasts:     toasts,
		external:   notify.NewMulti(cfg.notifiers...),
		dispatcher: async.NewDispatcher(),
		cfg:        cfg,
	}

	uc := &UseCases{
		Session:     &Session{deps: d},
		Location:    &Location{deps: d},
		Incident:    &Incident{deps: d},
		Support:     &Support{deps: d},
		Map:         &Map{deps: d, viewer: mapview.NewViewer(cfg.renderer, geography)},
		State:       state,
		Toasts:      toasts,
		dispatcher:  d.dispatcher,
		unsubscribe: unsubscribe,
	}
	if cfg.sweep > 0 {
		uc.startSweep(cfg.sweep)
	}
	return uc
}

// startSweep purges expired sessions every interval until Close
func (u *UseCases) startSweep(interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	u.stopSweep = cancel
	u.sweepDone = make(chan struct{})

	go func() {
		defer close(u.sweepDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := u.Session.PurgeExpired(ctx); err != nil {
					apperr.Handle(ctx, err)
				}
			}
		}
	}()
}

// Wait blocks until background notifications and pending follow-ups have run
func (u *UseCases) Wait() {
	u.dispatcher.Wait()
}

// Close drops pending follow-up notifications and waits for running ones
func (u *UseCases) Close() {
	if u.stopSweep != nil {
		u.stopSweep()
		<-u.sweepDone
	}
	u.dispatcher.Close()
	u.unsubscribe()
}

// deps is shared by all use cases
type deps struct {
	repo       interfaces.Repository
	geography  *geo.Geography
	state      *State
	toasts     *notify.ToastSink
	external   notify.Multi
	dispatcher *async.Dispatcher
	cfg        *config
}

// notify shows n as the session's toast and hands it to the external sinks
// in the background, so a slow sink never delays the caller.
func (d *deps) notify(ctx context.Context, sessionID types.SessionID, n *model.Notification) {
	n.SessionID = sessionID
	d.toasts.Notify(ctx, n)

	// Logout clears the state before the toast, so a toast written after
	// that must be dropped here.
	if _, ok := d.state.Get(sessionID); !ok {
		d.toasts.Clear(sessionID)
		return
	}

	if len(d.external) == 0 {
		return
	}
	copied := *n
	d.dispatcher.Dispatch(ctx, func(ctx context.Context) error {
		d.external.Notify(ctx, &copied)
		return nil
	})
}

// notifyLater sends n after delay unless the session has ended by then
func (d *deps) notifyLater(ctx context.Context, sessionID types.SessionID, delay time.Duration, n *model.Notification) {
	d.dispatcher.After(ctx, delay, func(ctx context.Context) error {
		if _, ok := d.state.Get(sessionID); !ok {
			return nil
		}
		d.notify(ctx, sessionID, n)
		return nil
	})
}

// currentState returns the signed-in state of a session
func (d *deps) currentState(sessionID types.SessionID) (AppState, error) {
	st, ok := d.state.Get(sessionID)
	if !ok || st.User == nil {
		return AppState{}, goerr.Wrap(model.ErrUnauthenticated, "no signed-in user for session",
			goerr.V("session_id", sessionID))
	}
	return st, nil
}

// withSession binds the session to ctx for logging and async follow-ups
func withSession(ctx context.Context, sessionID types.SessionID, userID types.UserID) context.Context {
	return model.WithAuthContext(ctx, &model.AuthContext{UserID: userID, SessionID: sessionID})
}
