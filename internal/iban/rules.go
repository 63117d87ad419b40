package iban

import (
	"fmt"
	"strings"
)

// Rules holds the per-country IBAN patterns. Immutable once built.
type Rules struct {
	patterns map[string]string
}

// ParseRules builds a rule set from [countryName, pattern] rows. Spaces in
// the pattern are presentation only and are stripped; the country key is the
// uppercased two-letter pattern prefix.
func ParseRules(rows [][]string) (*Rules, error) {
	patterns := make(map[string]string, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("iban rule row needs 2 fields, got %d", len(row))
		}
		pattern := strings.ReplaceAll(row[1], " ", "")
		if len(pattern) < 2 {
			return nil, fmt.Errorf("iban rule pattern too short: %q", row[1])
		}
		country := strings.ToUpper(pattern[:2])
		patterns[country] = pattern
	}
	return &Rules{patterns: patterns}, nil
}

// Lookup returns the pattern for a two-letter country code.
func (r *Rules) Lookup(country string) (string, bool) {
	pattern, ok := r.patterns[country]
	return pattern, ok
}

// Countries returns the number of loaded country rules.
func (r *Rules) Countries() int {
	return len(r.patterns)
}
