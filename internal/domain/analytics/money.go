// Package analytics implements the derived-analytics transforms behind every
// SpaarBot chart and stats card: time-bucketed income/expense series, category
// breakdowns, rankings and running balances. Every function is a pure,
// single-pass transform over an already-materialized transaction list; the
// package performs no I/O, keeps no state and never reads the clock.
package analytics

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds a money value to 2 decimal places, half away from zero.
// It is applied once per aggregated total, never per addition, so rounding
// error cannot compound across a fold.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
