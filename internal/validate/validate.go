// Package validate evaluates request payloads against declarative schemas.
// A schema is pure data: an ordered list of field rules. The engine collects
// every violated-field message, not just the first.
package validate

import (
	"fmt"
	"net/mail"
	"unicode"
	"unicode/utf8"

	"github.com/dvanek/go-auth-api/internal/apperr"
)

// Field declares the constraints for one payload field
type Field struct {
	Name  string // payload key
	Label string // human-readable name used in messages

	Required       bool
	Email          bool
	MinLength      int
	StrongPassword bool
}

// Schema is the declarative rule set for one operation's payload
type Schema struct {
	Fields []Field
}

// ValidateAndCreateError evaluates values against the schema. It returns nil
// when every constraint passes, otherwise a ValidationError aggregating all
// violated fields. Pure function of its inputs.
func ValidateAndCreateError(schema Schema, values map[string]string) *apperr.Error {
	violations := map[string]string{}

	for _, f := range schema.Fields {
		value := values[f.Name]

		if value == "" {
			if f.Required {
				violations[f.Name] = fmt.Sprintf("%s is required.", f.Label)
			}
			continue
		}

		if f.Email {
			// Only bare addr-specs count: RFC 5322 display-name and
			// angle-bracket forms must not end up stored as the email.
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Name != "" || addr.Address != value {
				violations[f.Name] = "Invalid email address."
				continue
			}
		}

		if f.MinLength > 0 && utf8.RuneCountInString(value) < f.MinLength {
			violations[f.Name] = fmt.Sprintf("%s must be at least %d characters long.", f.Label, f.MinLength)
			continue
		}

		if f.StrongPassword && !isStrongPassword(value) {
			violations[f.Name] = fmt.Sprintf("%s should contain at least one lowercase, one uppercase, one number and one special character.", f.Label)
		}
	}

	if len(violations) == 0 {
		return nil
	}

	return apperr.Validation(violations)
}

// isStrongPassword requires at least one lowercase letter, one uppercase
// letter, one digit and one symbol. Length is a separate MinLength rule.
func isStrongPassword(s string) bool {
	var lower, upper, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return lower && upper && digit && special
}
