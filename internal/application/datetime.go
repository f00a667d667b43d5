package application

import (
	"fmt"
	"strconv"
	"time"
)

// DateTimeLayout is the wire format for booking periods: ISO-8601 local
// date-time without offset, interpreted as UTC.
const DateTimeLayout = "2006-01-02T15:04:05"

// DateTime renders and parses timestamps in DateTimeLayout. RFC 3339 input
// with an explicit offset is also accepted and converted to UTC.
type DateTime struct {
	time.Time
}

// NewDateTime wraps t, normalised to UTC.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.UTC()}
}

// ParseDateTime parses s as RFC 3339 or as DateTimeLayout (with optional
// fractional seconds) in UTC.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, time.UTC)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q, expected %s", s, DateTimeLayout)
	}
	return t, nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.UTC().Format(DateTimeLayout))), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
