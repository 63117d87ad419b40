// Package iban parses International Bank Account Numbers using per-country
// structural rules. A rule is a positional pattern string of the same length
// as the IBAN it describes, where 'b' marks the bank-code digits and 'c' the
// account-number digits; every other character is ignored.
package iban

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// IBAN is a parsed account identifier. It is a value object: identity and
// equality derive solely from Raw.
type IBAN struct {
	Raw     string
	Country string
	BankCode int
	Number  *big.Int
}

func (i IBAN) String() string {
	return i.Raw
}

// Normalize strips all spaces and uppercases the input.
func Normalize(raw string) string {
	return strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
}

// Codec decodes raw IBAN strings against a rule set.
type Codec struct {
	rules *Rules
}

func NewCodec(rules *Rules) *Codec {
	return &Codec{rules: rules}
}

// Parse normalizes raw and decodes it into an IBAN, or reports why it is not
// a valid IBAN for any known country.
func (c *Codec) Parse(raw string) (IBAN, error) {
	normalized := Normalize(raw)
	if len(normalized) < 2 {
		return IBAN{}, &ParseError{
			Value: normalized,
			kind:  ErrCountryUnknown,
			msg:   fmt.Sprintf("IBAN country not found: %s", normalized),
		}
	}

	country := normalized[:2]
	pattern, ok := c.rules.Lookup(country)
	if !ok {
		return IBAN{}, &ParseError{
			Value: normalized,
			kind:  ErrCountryUnknown,
			msg:   fmt.Sprintf("IBAN country not found: %s", country),
		}
	}

	if len(pattern) != len(normalized) {
		return IBAN{}, &ParseError{
			Value:    normalized,
			Expected: len(pattern),
			Actual:   len(normalized),
			kind:     ErrLengthMismatch,
			msg: fmt.Sprintf("IBAN number length wrong: expected %d, got %d",
				len(pattern), len(normalized)),
		}
	}

	bankCode, err := strconv.Atoi(spanAt(normalized, pattern, 'b'))
	if err != nil {
		return IBAN{}, formatError(normalized)
	}

	number, ok := new(big.Int).SetString(spanAt(normalized, pattern, 'c'), 10)
	if !ok || number.Sign() < 0 {
		return IBAN{}, formatError(normalized)
	}

	return IBAN{
		Raw:      normalized,
		Country:  country,
		BankCode: bankCode,
		Number:   number,
	}, nil
}

// spanAt cuts the substring of value covered by marker in the pattern, from
// its first to its last occurrence.
func spanAt(value, pattern string, marker byte) string {
	first := strings.IndexByte(pattern, marker)
	last := strings.LastIndexByte(pattern, marker)
	if first < 0 {
		return ""
	}
	return value[first : last+1]
}

func formatError(normalized string) *ParseError {
	return &ParseError{
		Value: normalized,
		kind:  ErrFormatInvalid,
		msg:   fmt.Sprintf("IBAN format wrong: %s", normalized),
	}
}
