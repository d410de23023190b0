package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

// Granularity is the size of a time bucket.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityISOWeek Granularity = "isoWeek"
	GranularityMonth   Granularity = "month"
)

// Bucket is one fixed time slice of a trend chart. Key is canonical and
// sortable; Label is whatever the caller's formatter produced for display.
type Bucket struct {
	Key          string
	Label        string
	Date         time.Time // start of the bucket's period
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	Balance      decimal.Decimal
}

// LabelFunc renders a human-readable label for the bucket starting at the
// given date. Injected by the caller so the core stays free of locale concerns.
type LabelFunc func(date time.Time, granularity Granularity) string

// DefaultLabel is the English fallback formatter.
func DefaultLabel(date time.Time, granularity Granularity) string {
	switch granularity {
	case GranularityISOWeek:
		_, week := date.ISOWeek()
		return fmt.Sprintf("W%d %d", week, date.Year())
	case GranularityMonth:
		return date.Format("Jan 2006")
	default:
		return date.Format("2 Jan")
	}
}

// BucketKey maps a date into its canonical bucket key for the granularity:
// YYYY-MM-DD for days, GGGG-Www for ISO weeks (Monday start, week-numbering
// year), YYYY-MM for months. A zero date is rejected, never coerced to the
// current day.
func BucketKey(date time.Time, granularity Granularity) (string, error) {
	if date.IsZero() {
		return "", domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidDate,
			"cannot bucket a zero date",
			domainerror.ErrInvalidDate,
		)
	}

	switch granularity {
	case GranularityDay:
		return date.Format("2006-01-02"), nil
	case GranularityISOWeek:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week), nil
	case GranularityMonth:
		return date.Format("2006-01"), nil
	default:
		return "", domainerror.NewAnalyticsError(
			domainerror.ErrCodeUnknownGranularity,
			fmt.Sprintf("unknown granularity %q", granularity),
			domainerror.ErrUnknownGranularity,
		)
	}
}

// keyFor is BucketKey without the error path: invalid input yields a key that
// matches no bucket, which is exactly how the aggregator treats out-of-range
// records.
func keyFor(date time.Time, granularity Granularity) string {
	key, err := BucketKey(date, granularity)
	if err != nil {
		return ""
	}
	return key
}

// BucketSeries generates the full chronological bucket list covering
// [start, end] at the given granularity, with zeroed totals. Charts need a
// continuous axis, so the series never has gaps; the aggregator fills it but
// never invents or drops buckets. A nil label falls back to DefaultLabel.
func BucketSeries(start, end time.Time, granularity Granularity, label LabelFunc) ([]Bucket, error) {
	if start.IsZero() || end.IsZero() {
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeInvalidDate,
			"bucket series bounds must be non-zero dates",
			domainerror.ErrInvalidDate,
		)
	}
	if label == nil {
		label = DefaultLabel
	}

	var current time.Time
	var step func(time.Time) time.Time

	switch granularity {
	case GranularityDay:
		current = truncateToDay(start)
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	case GranularityISOWeek:
		current = weekStart(start)
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case GranularityMonth:
		current = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	default:
		return nil, domainerror.NewAnalyticsError(
			domainerror.ErrCodeUnknownGranularity,
			fmt.Sprintf("unknown granularity %q", granularity),
			domainerror.ErrUnknownGranularity,
		)
	}

	buckets := []Bucket{}
	for !current.After(end) {
		key, err := BucketKey(current, granularity)
		if err != nil {
			return nil, err
		}
		buckets = append(buckets, Bucket{
			Key:          key,
			Label:        label(current, granularity),
			Date:         current,
			IncomeTotal:  decimal.Zero,
			ExpenseTotal: decimal.Zero,
			Balance:      decimal.Zero,
		})
		current = step(current)
	}

	return buckets, nil
}

// truncateToDay drops the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday of the ISO week containing t.
func weekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return time.Date(t.Year(), t.Month(), t.Day()-(weekday-1), 0, 0, 0, 0, t.Location())
}
