// Package normalization maps loosely written config strings onto typed enums.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Enum converts raw strings to values of T. Matching is case-insensitive and
// ignores surrounding whitespace.
type Enum[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	validKeys    []string
}

// NewEnum creates a normalizer named name (used in error messages).
func NewEnum[T comparable](name string, values map[string]T, defaultValue T) *Enum[T] {
	normalized := make(map[string]T, len(values))
	keys := make([]string, 0, len(values))
	for k, v := range values {
		nk := clean(k)
		normalized[nk] = v
		keys = append(keys, nk)
	}
	sort.Strings(keys)
	return &Enum[T]{name: name, values: normalized, defaultValue: defaultValue, validKeys: keys}
}

// Normalize returns the matching value, or the default when raw is unknown.
func (e *Enum[T]) Normalize(raw string) T {
	if v, ok := e.values[clean(raw)]; ok {
		return v
	}
	return e.defaultValue
}

// Parse returns the matching value or an error listing the valid options.
func (e *Enum[T]) Parse(raw string) (T, error) {
	if v, ok := e.values[clean(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", e.name, raw, e.validKeys)
}

// Valid reports whether value is one of the enum's values.
func (e *Enum[T]) Valid(value T) bool {
	for _, v := range e.values {
		if v == value {
			return true
		}
	}
	return false
}

// ValidKeys returns all accepted keys, sorted.
func (e *Enum[T]) ValidKeys() []string {
	out := make([]string, len(e.validKeys))
	copy(out, e.validKeys)
	return out
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
