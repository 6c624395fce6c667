package repository

import (
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// SQLite DATETIME columns come back as strings, so every scan goes through here.
func ParseTime(str string) (time.Time, error) {
	layouts := []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if returnTime, err := time.Parse(layout, str); err == nil {
			return returnTime.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: %q", str)
}

// ParseMonth parses a "2006-01" month key into the first day of that month in UTC.
func ParseMonth(str string) (time.Time, error) {
	month, err := time.Parse("2006-01", str)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse month: %w", err)
	}
	return month.UTC(), nil
}

// MonthKey formats a date as its "2006-01" month key.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
