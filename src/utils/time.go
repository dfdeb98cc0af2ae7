package utils

import "time"

// DateKey formats a timestamp as the calendar-date grouping key used
// throughout the filter stages.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
