package helpers

import "time"

// ParseDate parses a calendar date in YYYY-MM-DD form
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}
