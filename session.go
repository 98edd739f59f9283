package dompet

import (
	"context"
	"sync"
	"time"
)

// RemoteLogout is the best-effort server-side logout call the Controller
// performs on user-initiated logout. Failures are logged, never surfaced:
// local logout always succeeds from the user's perspective.
type RemoteLogout func(ctx context.Context) error

// Subscriber receives the authenticated flag whenever it changes.
type Subscriber func(authenticated bool)

// Controller owns the process-wide authenticated flag and mediates every
// transition: login, user logout, server-observed 401, and locally detected
// expiry. The flag is eventually consistent with server-side validity,
// bounded by the next revalidation or the next failing request.
//
// All transitions are idempotent. A slow in-flight request's 401 racing a
// user logout converges on the same signed-out state with a single redirect.
type Controller struct {
	mu        sync.Mutex
	store     TokenStore
	inspector *Inspector
	navigator Navigator
	logger    Logger
	remote    RemoteLogout

	authenticated bool
	subscribers   map[int]Subscriber
	nextSubID     int
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithNavigator sets the redirect target for signed-out transitions.
func WithNavigator(nav Navigator) ControllerOption {
	return func(c *Controller) {
		if nav != nil {
			c.navigator = nav
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(logger Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRemoteLogout wires the best-effort server logout call.
func WithRemoteLogout(fn RemoteLogout) ControllerOption {
	return func(c *Controller) {
		c.remote = fn
	}
}

// WithInspector replaces the default Inspector, mostly so tests can inject
// a clock.
func WithInspector(inspector *Inspector) ControllerOption {
	return func(c *Controller) {
		if inspector != nil {
			c.inspector = inspector
		}
	}
}

// NewController builds a Controller and derives the initial state from the
// stored token: signed in only when a decodable, unexpired token is present.
// A malformed or expired leftover is cleared on the spot by the Inspector.
func NewController(store TokenStore, opts ...ControllerOption) *Controller {
	c := &Controller{
		store:       store,
		navigator:   noopNavigator{},
		logger:      defLogger{},
		subscribers: map[int]Subscriber{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.inspector == nil {
		c.inspector = NewInspector(store, WithInspectorLogger(c.logger))
	}

	c.authenticated = !c.inspector.IsExpired()
	return c
}

// Authenticated reports the current flag. The value is not re-validated on
// read; it can be stale until the next Revalidate or failing request.
func (c *Controller) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

// Inspector exposes the controller's token inspector for display helpers.
func (c *Controller) Inspector() *Inspector {
	return c.inspector
}

// LoginSuccess transitions to signed in. The caller has already obtained and
// stored a valid token via a successful authentication call; no validation
// happens here.
func (c *Controller) LoginSuccess() {
	c.mu.Lock()
	changed := !c.authenticated
	c.authenticated = true
	subs := c.snapshotSubscribers()
	c.mu.Unlock()

	if changed {
		c.notify(subs, true)
	}
}

// Logout performs a user-initiated sign out. The server call is strictly best
// effort: whatever its outcome, the local token is cleared, the flag flips,
// and navigation lands on the sign-in view.
func (c *Controller) Logout(ctx context.Context) {
	if c.remote != nil {
		if token, err := c.store.Get(); err == nil && token != "" {
			if err := c.remote(ctx); err != nil {
				c.logger.Error("server logout failed, clearing local session anyway: %v", err)
			}
		}
	}
	c.terminate()
}

// HandleUnauthorized collapses the session after any request observed a 401.
// No server call, immediate token clear and redirect. The backend is the
// authority on validity; stale UI state must never outlive a 401.
func (c *Controller) HandleUnauthorized() {
	c.terminate()
}

// Revalidate re-runs the expiry check, the equivalent of the browser's
// window-focus re-check. An expired token while signed in collapses the
// session without any network call. A valid token that appeared while
// signed out, written by a login in another process, flips the session in.
// Returns the resulting flag.
func (c *Controller) Revalidate() bool {
	if c.inspector.IsExpired() {
		c.terminate()
		return false
	}
	c.LoginSuccess()
	return true
}

// StartRevalidating re-runs Revalidate on an interval until ctx is done.
// Long-running front ends use this to catch expiry while idle.
func (c *Controller) StartRevalidating(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Revalidate()
			}
		}
	}()
}

// Subscribe registers fn to run on every flag change and returns the
// matching unsubscribe. Multiple independent consumers can subscribe without
// overwriting each other.
func (c *Controller) Subscribe(fn Subscriber) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// terminate is the single signed-out transition. The token clear runs even
// when already signed out (clearing an absent token is a no-op), but
// subscribers and navigation fire only on an actual flag change, so double
// logout or a duplicate 401 never redirects twice.
func (c *Controller) terminate() {
	c.mu.Lock()
	if err := c.store.Clear(); err != nil {
		c.logger.Error("token clear failed: %v", err)
	}
	changed := c.authenticated
	c.authenticated = false
	subs := c.snapshotSubscribers()
	c.mu.Unlock()

	if changed {
		c.notify(subs, false)
		c.navigator.ReplaceTo(RouteSignIn)
	}
}

func (c *Controller) snapshotSubscribers() []Subscriber {
	subs := make([]Subscriber, 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return subs
}

func (c *Controller) notify(subs []Subscriber, authenticated bool) {
	for _, fn := range subs {
		fn(authenticated)
	}
}
