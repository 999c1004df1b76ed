package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// MinuteStamp formats t in UTC truncated to minute precision (YYYY-MM-DDTHH:mm).
func MinuteStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04")
}
