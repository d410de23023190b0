package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spaarbot/backend/internal/domain/entity"
)

// Record is the aggregator's view of a transaction. Category is already a
// resolved display label (empty when the transaction is uncategorized);
// mapping category IDs to labels happens at the ingestion boundary, never
// inside the fold.
type Record struct {
	ID       string
	Date     time.Time
	Kind     entity.TransactionKind
	Amount   decimal.Decimal
	Category string
}

// Result holds the derived series every chart consumes.
type Result struct {
	ByBucket   []Bucket
	ByCategory []CategoryShare
}

// Aggregate folds records into per-bucket income/expense/balance totals and a
// ranked expense breakdown by category.
//
// Every supplied bucket appears in ByBucket even when its sums are zero. A
// record whose bucket key matches no supplied bucket is excluded from
// ByBucket but still counted in ByCategory: bucketing is a display concern
// bound to the reporting period, while category ranking always covers the
// full input set. Records with no category land under otherLabel.
//
// Aggregate is a total function: empty input, empty bucket lists and zero
// totals are valid states, not errors. It assumes pre-validated records (see
// ValidateRecords); a record with an unusable date simply matches no bucket.
func Aggregate(records []Record, buckets []Bucket, granularity Granularity, otherLabel string) Result {
	out := make([]Bucket, len(buckets))
	copy(out, buckets)

	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.Key] = i
	}

	// Raw sums per bucket; Round2 is applied once per bucket after the fold.
	income := make([]decimal.Decimal, len(out))
	expense := make([]decimal.Decimal, len(out))
	categoryTotals := make(map[string]decimal.Decimal)

	for _, r := range records {
		if r.Kind == entity.TransactionKindExpense {
			label := r.Category
			if label == "" {
				label = otherLabel
			}
			categoryTotals[label] = categoryTotals[label].Add(r.Amount)
		}

		i, ok := index[keyFor(r.Date, granularity)]
		if !ok {
			continue
		}
		switch r.Kind {
		case entity.TransactionKindIncome:
			income[i] = income[i].Add(r.Amount)
		case entity.TransactionKindExpense:
			expense[i] = expense[i].Add(r.Amount)
		}
	}

	for i := range out {
		out[i].IncomeTotal = Round2(income[i])
		out[i].ExpenseTotal = Round2(expense[i])
		out[i].Balance = out[i].IncomeTotal.Sub(out[i].ExpenseTotal)
	}

	return Result{
		ByBucket:   out,
		ByCategory: RankCategories(categoryTotals),
	}
}
