// Package authsession owns the authentication session as a finite state
// machine driven by discrete events.
//
// A Store is the sole owner of session truth for the rest of the
// application. Conceptually the session moves between Anonymous,
// Authenticating, Authenticated and AuthenticationFailed; the concrete
// representation is a Session snapshot whose fields are recomputed by a
// single reducer, the only place state ever changes.
//
// Operations mirror the UI events that drive them:
//
//   - Login validates the form locally, calls the gateway, persists the
//     issued credential via the gateway, and rethrows the classified error so
//     the caller can distinguish an inline failure banner from a
//     second-factor re-prompt.
//   - Logout attempts remote invalidation best-effort and always resets the
//     local session; it is idempotent.
//   - Bootstrap hydrates the identity from the persisted credential exactly
//     once at process start; a rejected credential silently returns the
//     session to Anonymous with the slot cleared.
//   - RefreshUser is a background consistency check; any failure is treated
//     as session invalidation, never as a user-visible error.
//
// Consumers observe state through Subscribe, which delivers snapshots over a
// buffered channel with drop-on-full semantics, so a slow consumer can never
// stall a transition.
//
// Invariants: IsAuthenticated is never true without both user and credential
// present; IsLoading and a terminal error are mutually exclusive at rest;
// logout always produces a fresh zero-valued session.
package authsession
