package utils

import (
	"fmt"
	"time"

	"ngoforum-backend/internal/domain"
)

const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd string into a UTC date
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected yyyy-mm-dd: %q", dateStr)
	}
	return t, nil
}

// ParseOptionalDate returns nil for an empty string
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}
	t, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DaysBetween counts whole calendar days from one date to another.
// Negative when to is before from.
func DaysBetween(from, to time.Time) int {
	return int(domain.TruncateDay(to).Sub(domain.TruncateDay(from)).Hours() / 24)
}
