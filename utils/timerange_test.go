package utils

import (
	"testing"
	"time"
)

func TestParseTimeRange(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		value string
		days  int
	}{
		{"7d", 7},
		{"30d", 30},
		{"90d", 90},
	}
	for _, tc := range cases {
		cutoff, err := ParseTimeRange(tc.value, now)
		if err != nil {
			t.Errorf("ParseTimeRange(%q) returned error: %v", tc.value, err)
			continue
		}
		if cutoff == nil {
			t.Errorf("ParseTimeRange(%q) returned nil cutoff", tc.value)
			continue
		}
		want := now.Add(-time.Duration(tc.days) * 24 * time.Hour)
		if !cutoff.Equal(want) {
			t.Errorf("ParseTimeRange(%q) = %v, want %v", tc.value, cutoff, want)
		}
	}
}

func TestParseTimeRangeAll(t *testing.T) {
	now := time.Now()
	for _, value := range []string{"", "all"} {
		cutoff, err := ParseTimeRange(value, now)
		if err != nil {
			t.Errorf("ParseTimeRange(%q) returned error: %v", value, err)
		}
		if cutoff != nil {
			t.Errorf("ParseTimeRange(%q) = %v, want nil", value, cutoff)
		}
	}
}

func TestParseTimeRangeInvalid(t *testing.T) {
	for _, value := range []string{"1d", "7", "week", "365d"} {
		if _, err := ParseTimeRange(value, time.Now()); err == nil {
			t.Errorf("ParseTimeRange(%q) expected error, got nil", value)
		}
	}
}
