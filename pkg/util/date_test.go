package util

import (
    "strconv"
    "testing"
    "time"
)

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}

func TestParsePostTimeISO(t *testing.T) {
    got, ok := ParsePostTime("2024-10-10T10:10:10Z")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Hour() != 10 {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParsePostTimeNoZone(t *testing.T) {
    got, ok := ParsePostTime("2024-10-10T10:10:10")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Location() != time.UTC {
        t.Fatalf("expected UTC, got %v", got.Location())
    }
}

func TestParsePostTimeLegacy(t *testing.T) {
    got, ok := ParsePostTime("Tue Mar 05 14:30:00 +0000 2024")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format("2006-01-02") != "2024-03-05" {
        t.Fatalf("unexpected day %v", got)
    }
}

func TestParsePostTimeInvalid(t *testing.T) {
    if _, ok := ParsePostTime("yesterday"); ok {
        t.Fatalf("expected not ok")
    }
}

func TestClamp(t *testing.T) {
    if got := Clamp(150, -100, 100); got != 100 {
        t.Fatalf("expected 100, got %v", got)
    }
    if got := Clamp(-150, -100, 100); got != -100 {
        t.Fatalf("expected -100, got %v", got)
    }
    if got := Clamp(42, -100, 100); got != 42 {
        t.Fatalf("expected 42, got %v", got)
    }
}
