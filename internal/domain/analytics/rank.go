package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryShare is one slice of a pie/ranking chart.
type CategoryShare struct {
	Category   string
	Total      decimal.Decimal
	Percentage float64 // of the grand total, rounded to 1 decimal
}

// RankCategories turns per-category totals into a deterministic ranking:
// descending by total, ties broken ascending by case-insensitive label. The
// stable ordering is what lets the UI assign the same color to the same
// category on every render. Percentages are computed against the sum of all
// totals in the map; a zero grand total yields 0 for every entry, never
// NaN or Inf.
func RankCategories(totals map[string]decimal.Decimal) []CategoryShare {
	grandTotal := decimal.Zero
	for _, t := range totals {
		grandTotal = grandTotal.Add(t)
	}

	shares := make([]CategoryShare, 0, len(totals))
	for category, total := range totals {
		var percentage float64
		if !grandTotal.IsZero() {
			percentage, _ = total.Mul(decimal.NewFromInt(100)).Div(grandTotal).Round(1).Float64()
		}
		shares = append(shares, CategoryShare{
			Category:   category,
			Total:      Round2(total),
			Percentage: percentage,
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Total.Equal(shares[j].Total) {
			return shares[i].Total.GreaterThan(shares[j].Total)
		}
		li, lj := strings.ToLower(shares[i].Category), strings.ToLower(shares[j].Category)
		if li != lj {
			return li < lj
		}
		return shares[i].Category < shares[j].Category
	})

	return shares
}
