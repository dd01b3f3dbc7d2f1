package handler

import (
	"maps"
	"net/url"
	"slices"
	"strings"
)

// ValidationError maps a field name to its problems. It is rendered as 422
// with the fields listed under error.details.
type ValidationError url.Values

func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Error lists each field once, sorted, with its first message.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, field := range slices.Sorted(maps.Keys(e)) {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, field+": "+msgs[0])
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, message string) { url.Values(e).Add(field, message) }
func (e ValidationError) Get(field string) string   { return url.Values(e).Get(field) }
func (e ValidationError) Has(field string) bool     { return len(e[field]) > 0 }
func (e ValidationError) IsEmpty() bool             { return len(e) == 0 }
