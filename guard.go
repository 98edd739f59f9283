package dompet

import "context"

// Handler is a protected unit of work: a page render, a CLI command, any
// view that requires a live session.
type Handler func(ctx context.Context) error

// Guard wraps protected handlers. Every invocation re-checks the session
// first, mirroring the browser guard that re-validated the token on each
// mount, so the decision is never a one-time snapshot.
type Guard struct {
	session   *Controller
	navigator Navigator
}

// GuardOption customizes a Guard.
type GuardOption func(*Guard)

// WithGuardNavigator overrides where the guard redirects signed-out callers.
func WithGuardNavigator(nav Navigator) GuardOption {
	return func(g *Guard) {
		if nav != nil {
			g.navigator = nav
		}
	}
}

// NewGuard creates a Guard over session. By default it redirects through the
// session controller's navigator.
func NewGuard(session *Controller, opts ...GuardOption) *Guard {
	g := &Guard{
		session:   session,
		navigator: session.navigator,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Protect returns h wrapped with the session check. Signed in, h runs
// unchanged. Signed out, the guard replace-navigates to the sign-in route
// and returns ErrNotAuthenticated without invoking h. When the check itself
// detects expiry, the resulting transition already redirected, and the
// guard does not navigate a second time.
func (g *Guard) Protect(h Handler) Handler {
	return func(ctx context.Context) error {
		wasAuthenticated := g.session.Authenticated()
		if g.session.Revalidate() {
			return h(ctx)
		}
		if !wasAuthenticated {
			g.navigator.ReplaceTo(RouteSignIn)
		}
		return ErrNotAuthenticated
	}
}
