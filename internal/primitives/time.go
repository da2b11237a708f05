package primitives

import "time"

// NowISO returns the current instant in canonical UTC ISO-8601 form with
// microseconds dropped and an explicit "+00:00" offset, e.g.
// "2026-08-01T12:34:56+00:00".
func NowISO() string {
	return FormatISO(time.Now())
}

// FormatISO renders t in the same canonical form as NowISO.
func FormatISO(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05+00:00")
}
