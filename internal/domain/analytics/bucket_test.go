package analytics

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/spaarbot/backend/internal/domain/error"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketKey(t *testing.T) {
	cases := []struct {
		name        string
		date        time.Time
		granularity Granularity
		want        string
	}{
		{"day", date(2025, time.March, 7), GranularityDay, "2025-03-07"},
		{"day ignores time of day", time.Date(2025, time.March, 7, 23, 59, 0, 0, time.UTC), GranularityDay, "2025-03-07"},
		{"month", date(2025, time.March, 7), GranularityMonth, "2025-03"},
		{"iso week midyear", date(2025, time.March, 20), GranularityISOWeek, "2025-W12"},
		// 2021-01-01 is a Friday and belongs to week 53 of the ISO year 2020.
		{"iso week belongs to previous week-year", date(2021, time.January, 1), GranularityISOWeek, "2020-W53"},
		// 2024-12-30 is a Monday and belongs to week 1 of the ISO year 2025.
		{"iso week belongs to next week-year", date(2024, time.December, 30), GranularityISOWeek, "2025-W01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BucketKey(tc.date, tc.granularity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("BucketKey(%s, %s) = %q, want %q", tc.date, tc.granularity, got, tc.want)
			}
		})
	}

	t.Run("zero date is an error", func(t *testing.T) {
		_, err := BucketKey(time.Time{}, GranularityDay)
		if !errors.Is(err, domainerror.ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("unknown granularity is an error", func(t *testing.T) {
		_, err := BucketKey(date(2025, time.March, 7), Granularity("fortnight"))
		if !errors.Is(err, domainerror.ErrUnknownGranularity) {
			t.Errorf("expected ErrUnknownGranularity, got %v", err)
		}
	})
}

func TestBucketSeries(t *testing.T) {
	t.Run("daily series is continuous", func(t *testing.T) {
		buckets, err := BucketSeries(date(2025, time.March, 1), date(2025, time.March, 7), GranularityDay, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(buckets) != 7 {
			t.Fatalf("expected 7 buckets, got %d", len(buckets))
		}
		if buckets[0].Key != "2025-03-01" || buckets[6].Key != "2025-03-07" {
			t.Errorf("unexpected boundary keys %q .. %q", buckets[0].Key, buckets[6].Key)
		}
		for i := 1; i < len(buckets); i++ {
			if !buckets[i].Date.Equal(buckets[i-1].Date.AddDate(0, 0, 1)) {
				t.Errorf("gap between bucket %d and %d", i-1, i)
			}
		}
	})

	t.Run("weekly series starts on Monday", func(t *testing.T) {
		// 2025-03-05 is a Wednesday; its ISO week starts Monday 2025-03-03.
		buckets, err := BucketSeries(date(2025, time.March, 5), date(2025, time.March, 20), GranularityISOWeek, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(buckets) != 3 {
			t.Fatalf("expected 3 buckets, got %d", len(buckets))
		}
		if buckets[0].Date.Weekday() != time.Monday {
			t.Errorf("expected first bucket to start on Monday, got %s", buckets[0].Date.Weekday())
		}
		if buckets[0].Key != "2025-W10" {
			t.Errorf("expected first key 2025-W10, got %q", buckets[0].Key)
		}
	})

	t.Run("monthly series snaps to first of month", func(t *testing.T) {
		buckets, err := BucketSeries(date(2024, time.November, 15), date(2025, time.February, 3), GranularityMonth, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wantKeys := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
		if len(buckets) != len(wantKeys) {
			t.Fatalf("expected %d buckets, got %d", len(wantKeys), len(buckets))
		}
		for i, want := range wantKeys {
			if buckets[i].Key != want {
				t.Errorf("bucket %d key = %q, want %q", i, buckets[i].Key, want)
			}
			if buckets[i].Date.Day() != 1 {
				t.Errorf("bucket %d does not start on the 1st", i)
			}
		}
	})

	t.Run("start after end yields empty series", func(t *testing.T) {
		buckets, err := BucketSeries(date(2025, time.March, 7), date(2025, time.March, 1), GranularityDay, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(buckets) != 0 {
			t.Errorf("expected empty series, got %d buckets", len(buckets))
		}
	})

	t.Run("zero bounds are an error", func(t *testing.T) {
		_, err := BucketSeries(time.Time{}, date(2025, time.March, 1), GranularityDay, nil)
		if !errors.Is(err, domainerror.ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("labels come from the injected formatter", func(t *testing.T) {
		custom := func(d time.Time, _ Granularity) string { return "maand " + d.Format("01") }
		buckets, err := BucketSeries(date(2025, time.March, 1), date(2025, time.April, 1), GranularityMonth, custom)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buckets[0].Label != "maand 03" {
			t.Errorf("expected injected label, got %q", buckets[0].Label)
		}
	})

	t.Run("new buckets have zero totals", func(t *testing.T) {
		buckets, err := BucketSeries(date(2025, time.March, 1), date(2025, time.March, 2), GranularityDay, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, b := range buckets {
			if !b.IncomeTotal.IsZero() || !b.ExpenseTotal.IsZero() || !b.Balance.IsZero() {
				t.Errorf("bucket %s has non-zero totals", b.Key)
			}
		}
	})
}
