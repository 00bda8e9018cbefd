package utils

import (
	"fmt"
	"time"
)

// timeRangeWindows maps the supported dashboard ranges to their lengths.
// "all" (and an absent parameter) means no cutoff.
var timeRangeWindows = map[string]time.Duration{
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// ParseTimeRange converts a range parameter into a creation-date cutoff
// relative to now. It returns nil for "all" or empty input and an error for
// anything else.
func ParseTimeRange(value string, now time.Time) (*time.Time, error) {
	if value == "" || value == "all" {
		return nil, nil
	}
	window, ok := timeRangeWindows[value]
	if !ok {
		return nil, fmt.Errorf("invalid time range %q (expected 7d, 30d, 90d or all)", value)
	}
	cutoff := now.Add(-window)
	return &cutoff, nil
}
