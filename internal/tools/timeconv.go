package tools

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/teambition/rrule-go"
)

// Inputs at or above this magnitude are read as milliseconds
const unixMillisThreshold = 100_000_000_000

// MaxOccurrences caps RRULE expansion
const MaxOccurrences = 100

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	time.RFC1123Z,
	time.RFC1123,
}

// TimeConversion shows one instant in several notations
type TimeConversion struct {
	Unix      int64  `json:"unix"`
	UnixMilli int64  `json:"unix_milli"`
	RFC3339   string `json:"rfc3339"`
	Local     string `json:"local"`
	UTC       string `json:"utc"`
	Weekday   string `json:"weekday"`
	Zone      string `json:"zone"`
	Relative  string `json:"relative"`
}

// LoadZone resolves an IANA zone name, defaulting to UTC
func LoadZone(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return nil, invalidf("unknown time zone %q", name)
	}
	return loc, nil
}

// ParseTime reads unix seconds, unix milliseconds or a date string.
// Date strings without an offset are interpreted in loc.
func ParseTime(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, invalidf("empty time input")
	}
	if n, err := strconv.ParseInt(input, 10, 64); err == nil {
		if n >= unixMillisThreshold || n <= -unixMillisThreshold {
			return time.UnixMilli(n).In(loc), nil
		}
		return time.Unix(n, 0).In(loc), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, invalidf("unrecognised time %q", input)
}

// ConvertTime renders t in loc, describing it relative to now
func ConvertTime(t time.Time, loc *time.Location, now time.Time) TimeConversion {
	local := t.In(loc)
	name, _ := local.Zone()
	return TimeConversion{
		Unix:      t.Unix(),
		UnixMilli: t.UnixMilli(),
		RFC3339:   local.Format(time.RFC3339),
		Local:     local.Format("2006-01-02 15:04:05"),
		UTC:       t.UTC().Format("2006-01-02 15:04:05"),
		Weekday:   local.Weekday().String(),
		Zone:      fmt.Sprintf("%s (%s)", loc.String(), name),
		Relative:  Relative(t, now),
	}
}

// Relative describes t relative to now in the largest whole unit
func Relative(t, now time.Time) string {
	d := t.Sub(now)
	future := d > 0
	if d < 0 {
		d = -d
	}
	if d < time.Second {
		return "now"
	}

	var amount int64
	var unit string
	switch {
	case d < time.Minute:
		amount, unit = int64(d/time.Second), "second"
	case d < time.Hour:
		amount, unit = int64(d/time.Minute), "minute"
	case d < 24*time.Hour:
		amount, unit = int64(d/time.Hour), "hour"
	case d < 365*24*time.Hour:
		amount, unit = int64(d/(24*time.Hour)), "day"
	default:
		amount, unit = int64(d/(365*24*time.Hour)), "year"
	}
	if amount != 1 {
		unit += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", amount, unit)
	}
	return fmt.Sprintf("%d %s ago", amount, unit)
}

// Occurrences expands an RFC 5545 RRULE starting at start and returns up to
// count instants strictly after after
func Occurrences(rule string, start, after time.Time, count int) ([]time.Time, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return nil, invalidf("empty RRULE")
	}
	if count <= 0 {
		count = 10
	}
	if count > MaxOccurrences {
		return nil, invalidf("at most %d occurrences per request", MaxOccurrences)
	}
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, invalidf("parse RRULE: %v", err)
	}
	r.DTStart(start)

	var out []time.Time
	cursor := after
	inclusive := false
	if cursor.Before(start) {
		cursor = start
		inclusive = true
	}
	for len(out) < count {
		next := r.After(cursor, inclusive)
		if next.IsZero() {
			break
		}
		out = append(out, next)
		cursor = next
		inclusive = false
	}
	return out, nil
}
