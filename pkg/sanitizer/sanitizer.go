// Package sanitizer provides input normalization for submitted form data.
//
// All functions are idempotent and never mutate their input; they are safe
// to apply both in the client pre-check and at the server boundary.
package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// TrimAndNormalize trims the string and collapses internal whitespace runs
// into single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}
	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeEmail lowercases after trimming. Emails are compared and stored
// lowercased, so this must run before any conflict check.
func NormalizeEmail(email string) string {
	p := Pipeline{strings.TrimSpace, strings.ToLower}
	return p.Apply(email)
}

func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

func NormalizeMessage(message string) string {
	return TrimAndNormalize(message)
}
