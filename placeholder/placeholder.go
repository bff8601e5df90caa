// Package placeholder expands ${name} tokens against a flat string context.
package placeholder

import (
	"errors"
	"fmt"
	"strings"
)

const (
	openMark  = "${"
	closeMark = "}"
)

var (
	// ErrNoPlaceholder is returned for templates without any ${ marker.
	// Callers use the template unchanged.
	ErrNoPlaceholder = errors.New("no placeholder")
	// ErrMalformed is returned when a ${ marker is never closed.
	ErrMalformed = errors.New("malformed placeholder")
)

// MissingKeyError reports a placeholder whose key is absent from the context.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no value for placeholder %q", e.Key)
}

// Context maps placeholder names to their values.
type Context map[string]string

// Fill substitutes every placeholder in template. Each distinct key is
// replaced everywhere in one pass. On a missing key no partial result is
// returned.
//
// A value containing a placeholder for its own key never terminates.
func Fill(template string, ctx Context) (string, error) {
	if !strings.Contains(template, openMark) {
		return "", ErrNoPlaceholder
	}
	s := template
	for {
		start := strings.Index(s, openMark)
		if start < 0 {
			return s, nil
		}
		end := strings.Index(s[start+len(openMark):], closeMark)
		if end < 0 {
			return "", ErrMalformed
		}
		key := s[start+len(openMark) : start+len(openMark)+end]
		value, ok := ctx[key]
		if !ok {
			return "", &MissingKeyError{Key: key}
		}
		s = strings.ReplaceAll(s, openMark+key+closeMark, value)
	}
}

// FillSingle replaces ${key} with value without any error reporting.
func FillSingle(template, key, value string) string {
	return strings.ReplaceAll(template, openMark+key+closeMark, value)
}
