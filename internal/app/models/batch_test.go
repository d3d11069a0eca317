package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBatchStatusOn(t *testing.T) {
	start := date(2026, 3, 1)
	end := date(2026, 5, 31)

	cases := map[string]struct {
		today  time.Time
		expect BatchStatus
	}{
		"before start":       {date(2026, 2, 28), BatchYetToStart},
		"on start date":      {date(2026, 3, 1), BatchOngoing},
		"mid range":          {date(2026, 4, 15), BatchOngoing},
		"on end date":        {date(2026, 5, 31), BatchOngoing},
		"after end":          {date(2026, 6, 1), BatchCompleted},
		"late on start day":  {time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC), BatchOngoing},
		"early on day after": {time.Date(2026, 6, 1, 0, 0, 1, 0, time.UTC), BatchCompleted},
	}

	for name, tc := range cases {
		if got := BatchStatusOn(start, end, tc.today); got != tc.expect {
			t.Fatalf("%s: expected %s, got %s", name, tc.expect, got)
		}
	}
}

func TestBatchStatusMonotonic(t *testing.T) {
	start := date(2026, 3, 1)
	end := date(2026, 3, 10)

	rank := map[BatchStatus]int{BatchYetToStart: 0, BatchOngoing: 1, BatchCompleted: 2}

	prev := -1
	for day := date(2026, 2, 20); day.Before(date(2026, 3, 20)); day = day.AddDate(0, 0, 1) {
		status := BatchStatusOn(start, end, day)
		r, ok := rank[status]
		if !ok {
			t.Fatalf("unexpected status %s on %s", status, day)
		}
		if r < prev {
			t.Fatalf("status regressed to %s on %s", status, day)
		}
		prev = r
	}
}
