// Package money centralizes monetary arithmetic. All amounts are
// shopspring decimals rounded to two places; floats never touch a sum.
package money

import "github.com/shopspring/decimal"

// Zero is the canonical zero amount.
func Zero() decimal.Decimal {
	return decimal.NewFromInt(0)
}

// Normalize rounds an amount to currency precision (two decimal places).
// Request payloads may carry amounts as JSON numbers or numeric strings;
// decimal.Decimal unmarshals both, and Normalize is applied before any
// value is stored or summed.
func Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum adds amounts with decimal arithmetic and returns a normalized total.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Normalize(total)
}
