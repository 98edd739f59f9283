package dompet

import "fmt"

// Logger is the minimal logging surface the session core needs. The CLI
// provides a logrus-backed implementation; tests usually pass nothing and
// get the default.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore wraps the single persisted bearer token. Implementations must
// make Clear idempotent: clearing an absent token is not an error.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// Navigator abstracts the redirect side of session transitions. ReplaceTo
// must behave like a replace-navigation: the previous view is not reachable
// again once the session collapses.
type Navigator interface {
	ReplaceTo(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

func (f NavigatorFunc) ReplaceTo(route string) { f(route) }

// RouteSignIn is where every signed-out redirect lands.
const RouteSignIn = "/signin"

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

type noopNavigator struct{}

func (noopNavigator) ReplaceTo(string) {}
