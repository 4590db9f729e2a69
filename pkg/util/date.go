package util

import (
    "strconv"
    "time"
)

// legacyPostTimeLayout is the classic Twitter timestamp format still found in
// archived post exports.
const legacyPostTimeLayout = "Mon Jan 02 15:04:05 -0700 2006"

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// ParsePostTime parses social-post timestamps: ISO-8601 with or without a zone
// designator, or the legacy Twitter format. Returns (t, false) when nothing matches.
func ParsePostTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
        return t.UTC(), true
    }
    if t, err := time.Parse(legacyPostTimeLayout, s); err == nil {
        return t, true
    }
    return time.Time{}, false
}

// ParseDay parses a calendar date in YYYY-MM-DD form.
func ParseDay(s string) (time.Time, bool) {
    t, err := time.Parse("2006-01-02", s)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}

// Day formats a time as its YYYY-MM-DD calendar date.
func Day(t time.Time) string {
    return t.Format("2006-01-02")
}
