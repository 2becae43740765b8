// Package dates converts between scan timestamps and time.Time.
//
// Decoding accepts the ISO-8601 date-time family with or without an offset and an
// optional trailing zone id in brackets. Values without an offset are read as UTC;
// a zone id must name a known location but never shifts the value. Encoding
// always renders UTC with nanosecond precision, so Decode(Encode(t)) reports the
// same instant as t for every t between MinTime and MaxTime.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// ErrUnsupportedFormat is wrapped by every Decode failure.
var ErrUnsupportedFormat = errors.New("unsupported date format")

// Layout is the format produced by Encode.
const Layout = time.RFC3339Nano

// MinTime and MaxTime bound the instants Encode renders in a form Decode
// accepts. RFC 3339 has four digit years.
var (
	MinTime = time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	MaxTime = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)
)

// offsetLayouts carry an explicit offset and are tried first.
var offsetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
}

// localLayouts have no offset and are interpreted in UTC.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// Decode parses s using the first accepted layout that matches.
func Decode(s string) (time.Time, error) {
	text, zone := splitZoneID(strings.TrimSpace(s))
	if text == "" {
		return time.Time{}, unsupported(s)
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}

	if zone != "" {
		if _, err := time.LoadLocation(zone); err != nil {
			return time.Time{}, unsupported(s)
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, unsupported(s)
}

// Encode renders t as an RFC 3339 UTC timestamp with nanosecond precision.
// Instants outside MinTime..MaxTime render with a year Decode rejects.
func Encode(t time.Time) string {
	return t.UTC().Format(Layout)
}

// MustDecode is Decode for compile-time constants; it panics on malformed input.
func MustDecode(s string) time.Time {
	t, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return t
}

// splitZoneID separates "2017-04-18T23:31:42+02:00[Europe/Paris]" into the
// timestamp and the zone id.
func splitZoneID(s string) (string, string) {
	if !strings.HasSuffix(s, "]") {
		return s, ""
	}
	open := strings.LastIndexByte(s, '[')
	if open < 0 {
		return s, ""
	}
	return s[:open], s[open+1 : len(s)-1]
}

func unsupported(input string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, input)
}
