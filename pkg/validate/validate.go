// Package validate provides the rule-based local checks run before any
// network call is made, so obviously malformed input never leaves the
// client.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
)

// FieldError is a single failed check on one input field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects every failed check of one Apply pass.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any check failed for the given field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Rule is a single check bound to a field.
type Rule struct {
	Check   func() bool
	Field   string
	Message string
}

// Apply runs all rules and returns the collected failures, or nil when every
// check passed.
func Apply(rules ...Rule) error {
	var errs Errors
	for _, r := range rules {
		if !r.Check() {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Required fails when the value is empty or whitespace.
func Required(field, value string) Rule {
	return Rule{
		Check:   func() bool { return strings.TrimSpace(value) != "" },
		Field:   field,
		Message: "is required",
	}
}

// Email fails unless the value is a plain RFC 5322 address with a dotted
// domain part.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			at := strings.LastIndex(value, "@")
			return at > 0 && strings.Contains(value[at+1:], ".")
		},
		Field:   field,
		Message: "must be a valid email address",
	}
}

// Digits fails unless the value is exactly n ASCII digits.
func Digits(field, value string, n int) Rule {
	return Rule{
		Check: func() bool {
			if len(value) != n {
				return false
			}
			for _, r := range value {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		},
		Field:   field,
		Message: fmt.Sprintf("must be exactly %d digits", n),
	}
}
