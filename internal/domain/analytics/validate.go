package analytics

import (
	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// RecordIssue reports why a single record was rejected during validation.
type RecordIssue struct {
	RecordID string
	Err      *domainerror.AnalyticsError
}

// ValidateRecords splits records into the subset safe to aggregate and the
// per-record issues for everything else. One malformed record must not blank
// out a whole chart, so validation collects and skips instead of aborting.
//
// Rejected: zero dates (would misattribute the period), negative amounts
// (direction belongs to Kind, never to sign) and amounts with more than two
// fractional digits (rounding at ingestion would fabricate money the user
// never entered).
func ValidateRecords(records []Record) ([]Record, []RecordIssue) {
	valid := make([]Record, 0, len(records))
	var issues []RecordIssue

	for _, r := range records {
		if r.Date.IsZero() {
			issues = append(issues, RecordIssue{
				RecordID: r.ID,
				Err: domainerror.NewAnalyticsError(
					domainerror.ErrCodeInvalidDate,
					"record has no usable date",
					domainerror.ErrInvalidDate,
				),
			})
			continue
		}

		if r.Amount.IsNegative() {
			issues = append(issues, RecordIssue{
				RecordID: r.ID,
				Err: domainerror.NewAnalyticsError(
					domainerror.ErrCodeInvalidAmount,
					"amount must not be negative",
					domainerror.ErrInvalidAmount,
				),
			})
			continue
		}

		if !r.Amount.Equal(r.Amount.Round(2)) {
			issues = append(issues, RecordIssue{
				RecordID: r.ID,
				Err: domainerror.NewAnalyticsError(
					domainerror.ErrCodeAmountPrecision,
					"amount has more than 2 decimal places",
					domainerror.ErrAmountPrecision,
				),
			})
			continue
		}

		valid = append(valid, r)
	}

	return valid, issues
}
