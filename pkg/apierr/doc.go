// Package apierr defines the closed error taxonomy shared by every outbound
// FinWise API call.
//
// Every failure surfaced by the gateway client is an *apierr.Error carrying
// one of five kinds:
//
//   - KindValidation: the server rejected the request for malformed or
//     missing fields; field-level details are attached when available.
//   - KindAuthExpired: the server no longer honors the current credential.
//     The gateway client erases the persisted credential and resets the
//     session as a side effect before the call rejects.
//   - KindNetwork: the request never reached the server (timeout, DNS,
//     connection refused).
//   - KindServer: the server was reached but reported a failure unrelated to
//     the caller's auth state.
//   - KindClient: the failure occurred before the request was dispatched.
//
// Callers never inspect loosely-typed error shapes; they use the predicate
// helpers instead:
//
//	if apierr.IsAuthExpired(err) {
//	    // credential already cleared, session already reset
//	}
//	if apierr.IsMFARequired(err) {
//	    // re-prompt for a one-time code, not a hard failure
//	}
//
// Domain codes such as INVALID_CREDENTIALS, ACCOUNT_LOCKED and MFA_REQUIRED
// are recognized from well-formed server error envelopes and exposed via
// their own predicates.
package apierr
