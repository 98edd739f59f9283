// Package dompet implements the client-side session core for the dompet
// personal-finance dashboard: token persistence, expiry inspection, the
// login/logout/unauthorized state machine, and route guarding for
// protected views.
//
// Session lifecycle:
//   - A Controller owns the authenticated flag. It is initialized from the
//     persisted token at startup, flipped by LoginSuccess and Logout, and
//     collapsed by HandleUnauthorized whenever any request observes a 401.
//     Consumers subscribe to flag changes instead of reading globals.
//   - An Inspector decodes the stored token's expiry claim without verifying
//     the signature. The client is not a security authority; the decode only
//     avoids sending requests with a known-stale token. Malformed or expired
//     tokens are cleared on sight so a corrupt store self-heals into the
//     signed-out state.
//   - A Guard wraps protected handlers. It revalidates the token before every
//     invocation and replace-navigates to the sign-in route when the session
//     is gone, so stale views never render.
//
// The REST client in package client drives the unauthorized transition
// through a single-slot handler registration; last registration wins.
package dompet
