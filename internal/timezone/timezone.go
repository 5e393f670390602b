package timezone

import (
	"strings"
	"time"
)

const DefaultTimezone = "UTC"

const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if strings.TrimSpace(tz) == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone when it is empty or unknown.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}

func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseDate accepts a calendar date (2006-01-02, midnight in loc) or an RFC 3339
// timestamp. Timestamps are cut to milliseconds, the finest precision every
// document store backend keeps (BSON dates are millisecond based).
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if d, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return d.Truncate(time.Millisecond), nil
}
