package services

import "time"

// storedTimeLayout is fixed-width UTC so lexicographic ordering on the
// created_at column matches chronological ordering at nanosecond
// resolution.
const storedTimeLayout = "2006-01-02 15:04:05.000000000"

func formatStoredTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func parseStoredTime(s string) (time.Time, error) {
	return time.ParseInLocation(storedTimeLayout, s, time.UTC)
}
