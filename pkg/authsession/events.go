package authsession

import "github.com/finwise/finwise-go/pkg/apiclient"

// eventKind enumerates the discrete events driving the session machine.
// The reducer below is the exhaustive list of ways state may change.
type eventKind string

const (
	evBootstrapStart     eventKind = "bootstrap_start"
	evLoginStart         eventKind = "login_start"
	evLoginSuccess       eventKind = "login_success"
	evLoginFailure       eventKind = "login_failure"
	evSecondFactorNeeded eventKind = "second_factor_needed"
	evLogout             eventKind = "logout"
	evSetUser            eventKind = "set_user"
	evClearError         eventKind = "clear_error"
)

type event struct {
	kind    eventKind
	user    *apiclient.User
	token   string
	message string
}

// reduce computes the next session from the current one and an event. It is
// pure: all side effects (network, persistence, notification) live in the
// Store operations that dispatch the events.
func reduce(s Session, e event) Session {
	switch e.kind {
	case evBootstrapStart:
		return Session{Token: e.token, IsLoading: true}

	case evLoginStart:
		s.IsLoading = true
		s.Error = ""
		s.AwaitingSecondFactor = false
		return s

	case evLoginSuccess:
		return Session{
			User:            e.user,
			Token:           e.token,
			IsAuthenticated: true,
		}

	case evLoginFailure:
		return Session{Error: e.message}

	case evSecondFactorNeeded:
		return Session{AwaitingSecondFactor: true}

	case evLogout:
		// Recreated fresh: no residual identity fields survive logout.
		return Session{}

	case evSetUser:
		s.User = e.user
		s.IsAuthenticated = true
		s.IsLoading = false
		s.Error = ""
		return s

	case evClearError:
		s.Error = ""
		return s
	}
	return s
}
