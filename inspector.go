package dompet

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Inspector reports whether the stored token's expiry claim has elapsed.
//
// The payload is decoded without verifying the signature: the backend is the
// only authority on token validity, the client only avoids sending requests
// with a token it already knows is stale. Do not add verification here.
type Inspector struct {
	store  TokenStore
	logger Logger
	now    func() time.Time
}

// InspectorOption customizes an Inspector.
type InspectorOption func(*Inspector)

// WithInspectorClock injects a custom clock (useful for tests).
func WithInspectorClock(clock func() time.Time) InspectorOption {
	return func(i *Inspector) {
		if clock != nil {
			i.now = clock
		}
	}
}

// WithInspectorLogger overrides the logger.
func WithInspectorLogger(logger Logger) InspectorOption {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInspector creates an Inspector bound to store.
func NewInspector(store TokenStore, opts ...InspectorOption) *Inspector {
	i := &Inspector{
		store:  store,
		logger: defLogger{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// IsExpired reports whether the stored token is absent, undecodable, or past
// its expiry claim. Undecodable and expired tokens are cleared from the
// store so corrupt state self-heals into signed-out; a valid token is left
// untouched. Absence fails closed.
func (i *Inspector) IsExpired() bool {
	token, err := i.store.Get()
	if err != nil {
		i.logger.Error("token store read failed: %v", err)
		return true
	}
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		i.logger.Debug("clearing undecodable token: %v", err)
		i.clear()
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		i.logger.Debug("clearing token without usable expiry claim")
		i.clear()
		return true
	}

	if exp.Time.Before(i.now()) {
		i.logger.Debug("clearing expired token")
		i.clear()
		return true
	}

	return false
}

// TokenClaims carries the subset of claims the client displays.
type TokenClaims struct {
	Subject   string
	ExpiresAt time.Time
}

// Claims decodes the stored token for display purposes. Unlike IsExpired it
// never mutates the store.
func (i *Inspector) Claims() (*TokenClaims, error) {
	token, err := i.store.Get()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrTokenMalformed
	}

	out := &TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

func (i *Inspector) clear() {
	if err := i.store.Clear(); err != nil {
		i.logger.Error("token clear failed: %v", err)
	}
}
