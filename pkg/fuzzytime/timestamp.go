package fuzzytime

import (
	"fmt"
	"time"
)

// rfc3339Layout always renders a numeric offset, so UTC becomes "+00:00".
const rfc3339Layout = "2006-01-02T15:04:05.999999999-07:00"

// Timestamp is a fully determined point in time with a fixed UTC offset.
// The zero value has month and day 0, which no resolution produces; its
// String normalizes them and renders -0001-11-30T00:00:00+00:00.
type Timestamp struct {
	Year       int
	Month      time.Month
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
	// Offset is in seconds east of UTC, in the open range (-24h, +24h).
	Offset int
}

// FromTime converts t into a Timestamp using t's own offset. It fails if
// that offset is not a whole number of minutes or the year has more than
// four digits, as neither survives an RFC 3339 round-trip.
func FromTime(t time.Time) (Timestamp, error) {
	_, offset := t.Zone()
	f := Fields{
		Year:       t.Year(),
		Month:      int(t.Month()),
		Day:        t.Day(),
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
		Offset:     offset,
	}
	ts, rerr := f.timestamp()
	if rerr != nil {
		return Timestamp{}, fmt.Errorf("fuzzytime: %s", rerr.reason)
	}
	return ts, nil
}

// Time returns ts as a time.Time in an unnamed fixed zone.
func (ts Timestamp) Time() time.Time {
	return time.Date(ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second, ts.Nanosecond,
		time.FixedZone("", ts.Offset))
}

// Weekday returns the day of the week of the calendar date.
func (ts Timestamp) Weekday() time.Weekday {
	return ts.Time().Weekday()
}

// String renders ts as RFC 3339 with a numeric offset, for example
// "1970-07-06T15:30:00-07:00". Trailing zero fractional digits are omitted.
func (ts Timestamp) String() string {
	return ts.Time().Format(rfc3339Layout)
}

// OffsetString returns the offset in "±hh:mm" form.
func (ts Timestamp) OffsetString() string {
	return FormatOffset(ts.Offset)
}

// Equal reports whether both timestamps denote the same instant.
// Use == to also compare the offset.
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts.Time().Equal(other.Time())
}

// MarshalText implements encoding.TextMarshaler.
func (ts Timestamp) MarshalText() ([]byte, error) {
	return []byte(ts.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by resolving the text
// with the default catalog, the wall clock, and the local offset.
func (ts *Timestamp) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
