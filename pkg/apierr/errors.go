package apierr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a gateway failure. The set is closed: every error returned
// by the gateway client carries exactly one of these values.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindAuthExpired Kind = "auth_expired"
	KindNetwork     Kind = "network"
	KindServer      Kind = "server"
	KindClient      Kind = "client"
)

// Domain codes recognized from server error envelopes.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountLocked      = "ACCOUNT_LOCKED"
	CodeMFARequired        = "MFA_REQUIRED"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNetworkError       = "NETWORK_ERROR"
	CodeClientError        = "CLIENT_ERROR"
	CodeUnknown            = "UNKNOWN_ERROR"
)

// FieldError describes a single rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the classified failure returned by every gateway operation.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []FieldError
	Status  int // HTTP status when the server responded, zero otherwise

	cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Code != "" {
		fmt.Fprintf(&b, " [%s]", e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, "; "))
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Validation builds a KindValidation error from a server envelope.
func Validation(code, message string, fields []FieldError, status int) *Error {
	if code == "" {
		code = CodeValidationFailed
	}
	return &Error{Kind: KindValidation, Code: code, Message: message, Fields: fields, Status: status}
}

// AuthExpired builds the classification for an authentication-rejected
// response. The gateway client pairs it with the forced session reset.
func AuthExpired(message string, status int) *Error {
	if message == "" {
		message = "authentication expired"
	}
	return &Error{Kind: KindAuthExpired, Message: message, Status: status}
}

// Network builds the classification for a request that never reached the
// server. The transport detail is kept as the wrapped cause; the message
// stays generic so it is safe to surface to users.
func Network(cause error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Code:    CodeNetworkError,
		Message: "network error - please check your connection",
		cause:   cause,
	}
}

// Server builds a KindServer error from a well-formed server envelope.
func Server(code, message string, status int) *Error {
	if code == "" {
		code = CodeUnknown
	}
	if message == "" {
		message = "an error occurred"
	}
	return &Error{Kind: KindServer, Code: code, Message: message, Status: status}
}

// Client builds the classification for a failure before dispatch, such as an
// unencodable payload or a malformed base URL.
func Client(cause error) *Error {
	msg := "an unexpected error occurred"
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{Kind: KindClient, Code: CodeClientError, Message: msg, cause: cause}
}

// As extracts the classified error from an error chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func isKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

func isCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

func IsValidation(err error) bool  { return isKind(err, KindValidation) }
func IsAuthExpired(err error) bool { return isKind(err, KindAuthExpired) }
func IsNetwork(err error) bool     { return isKind(err, KindNetwork) }
func IsServer(err error) bool      { return isKind(err, KindServer) }
func IsClient(err error) bool      { return isKind(err, KindClient) }

// IsInvalidCredentials reports whether the server rejected the email/password
// pair.
func IsInvalidCredentials(err error) bool { return isCode(err, CodeInvalidCredentials) }

// IsAccountLocked reports whether the account is locked out after repeated
// failed attempts.
func IsAccountLocked(err error) bool { return isCode(err, CodeAccountLocked) }

// IsMFARequired reports whether the server asked for a second factor. This is
// a re-prompt signal, not a hard failure: the caller repeats the same login
// call with a one-time code attached.
func IsMFARequired(err error) bool { return isCode(err, CodeMFARequired) }
