package authsession

import (
	"github.com/finwise/finwise-go/pkg/apiclient"
	"github.com/finwise/finwise-go/pkg/validate"
)

// Session is a read-only snapshot of the current authentication state.
type Session struct {
	// User is the authenticated identity, absent while anonymous.
	User *apiclient.User

	// Token is the bearer credential, absent while anonymous.
	Token string

	// IsLoading is true only while an authentication operation is in flight.
	IsLoading bool

	// IsAuthenticated is true iff both User and Token are present.
	IsAuthenticated bool

	// AwaitingSecondFactor signals the server asked for a one-time code.
	// It is distinct from Error: the caller re-prompts and retries the same
	// login with the code attached.
	AwaitingSecondFactor bool

	// Error is the human-readable failure of the last attempt, cleared on
	// the next attempt or by ClearError.
	Error string
}

// Credentials is the login form input.
type Credentials struct {
	Email    string
	Password string

	// MFACode is the one-time second factor, attached on the retry after
	// the server signalled it is required.
	MFACode string
}

// Validate runs the local-only checks performed before any network call.
func (c Credentials) Validate() error {
	rules := []validate.Rule{
		validate.Required("email", c.Email),
		validate.Email("email", c.Email),
		validate.Required("password", c.Password),
	}
	if c.MFACode != "" {
		rules = append(rules, validate.Digits("mfaToken", c.MFACode, 6))
	}
	return validate.Apply(rules...)
}
