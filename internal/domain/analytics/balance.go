package analytics

import "github.com/shopspring/decimal"

// RunningBalance produces the cumulative net balance across chronologically
// ordered buckets. Output length always equals input length; an empty series
// yields an empty result.
func RunningBalance(buckets []Bucket) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(buckets))
	running := decimal.Zero
	for i, b := range buckets {
		running = running.Add(b.Balance)
		balances[i] = running
	}
	return balances
}
