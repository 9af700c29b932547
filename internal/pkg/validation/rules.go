package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation rule patterns
var (
	EmailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

	// Digits with optional leading plus and the usual separators
	PhonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{4,19}$`)
)

// StringValidation checks one string value against optional rules
type StringValidation struct {
	Value    string
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// Optional starts a validation that accepts the empty string
func Optional(value string) *StringValidation {
	return &StringValidation{Value: strings.TrimSpace(value)}
}

// Required starts a validation that rejects the empty string
func Required(value string) *StringValidation {
	return &StringValidation{Value: strings.TrimSpace(value), Required: true}
}

// WithMaxLength limits the value to max runes
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}
	if v.MaxLen > 0 && utf8.RuneCountInString(v.Value) > v.MaxLen {
		return false
	}
	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}
	return true
}
