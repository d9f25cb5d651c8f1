package model

import (
	"fmt"
	"strings"
	"time"
)

// LocalTimeLayout is the ISO local date-time used on the wire. Fractional
// seconds are printed only when present.
const LocalTimeLayout = "2006-01-02T15:04:05.999999999"

// LocalTime is a wall-clock date-time with no zone.
type LocalTime struct {
	time.Time
}

// WallClock returns t's wall-clock reading placed in UTC, so it survives a
// round trip through storage without shifting hours.
func WallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func localTimeOf(t *time.Time) *LocalTime {
	if t == nil {
		return nil
	}
	return &LocalTime{Time: *t}
}

func (lt *LocalTime) timePtr() *time.Time {
	if lt == nil {
		return nil
	}
	t := lt.Time
	return &t
}

func (lt LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + lt.Time.Format(LocalTimeLayout) + `"`), nil
}

func (lt *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	t, err := time.Parse(LocalTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse local time %q: %w", s, err)
	}
	lt.Time = t
	return nil
}
