// Package core implements the shopping-list state engine: items, category
// classification, budget arithmetic, grouping and the list lifecycle.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and reais representations.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a currency amount in integer cents. Aggregates such as the
// remaining budget may be negative; unit prices never are.
type Money struct {
	Cents int64
}

var errMalformedDecimal = errors.New("malformed decimal amount")

// ParseDecimalToCents converts a decimal string to unit-price cents with
// proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. The result is always positive cents.
// Returns ErrInvalidPrice for invalid formats, negative values, or zero amounts.
//
// Examples:
//
//	ParseDecimalToCents("5.99") -> 599, nil
//	ParseDecimalToCents("5,99") -> 599, nil
//	ParseDecimalToCents("5.994") -> 599, nil (rounds down)
//	ParseDecimalToCents("5.995") -> 600, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	cents, err := parseCents(s)
	if err != nil || cents == 0 {
		return 0, ErrInvalidPrice
	}
	return cents, nil
}

// ParseBudgetToCents parses a budget amount with the same format rules as
// ParseDecimalToCents, except that zero is valid: a zero budget clears the
// ceiling, it is only unit prices that must be strictly positive.
func ParseBudgetToCents(s string) (int64, error) {
	return parseCents(s)
}

// parseCents parses a non-negative decimal into cents.
func parseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errMalformedDecimal
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only unsigned values allowed
		return 0, errMalformedDecimal
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, errMalformedDecimal
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, errMalformedDecimal
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, errMalformedDecimal
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, errMalformedDecimal
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, errMalformedDecimal
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64 = 0
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracCents++
				}
			}
		}
	}
	return iv*100 + fracCents, nil
}

// Reais returns the amount as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Reais() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with two decimals, e.g. "R$ 12.34". Negative
// amounts carry the sign in front of the currency marker.
func (m Money) String() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%sR$ %d.%02d", sign, c/100, c%100)
}

// Mul scales the amount by a quantity.
func (m Money) Mul(n int64) Money {
	return Money{Cents: m.Cents * n}
}
