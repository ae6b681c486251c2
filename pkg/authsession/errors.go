package authsession

import "errors"

var (
	// ErrNotAuthenticated indicates an operation that requires an
	// authenticated session was called while anonymous.
	ErrNotAuthenticated = errors.New("authsession.not_authenticated")

	// ErrOperationInFlight indicates another session operation is still
	// running. Callers disable their triggering controls while IsLoading is
	// true; this error backs that contract.
	ErrOperationInFlight = errors.New("authsession.operation_in_flight")
)
