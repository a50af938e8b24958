package fuzzytime

import (
	"fmt"
	"strings"
	"time"
)

// Field is a bit-set of the semantic fields a layout can populate.
type Field uint16

const (
	FieldYear Field = 1 << iota
	FieldMonth
	FieldDay
	FieldHour
	FieldMinute
	FieldSecond
	FieldFraction
	FieldOffset
	FieldWeekday
	FieldMeridiem
)

const (
	fieldDate  = FieldYear | FieldMonth | FieldDay
	fieldClock = FieldHour | FieldMinute | FieldSecond | FieldFraction
)

var fieldNames = []struct {
	field Field
	name  string
}{
	{FieldYear, "year"},
	{FieldMonth, "month"},
	{FieldDay, "day"},
	{FieldHour, "hour"},
	{FieldMinute, "minute"},
	{FieldSecond, "second"},
	{FieldFraction, "fraction"},
	{FieldOffset, "offset"},
	{FieldWeekday, "weekday"},
	{FieldMeridiem, "meridiem"},
}

func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range fieldNames {
		if f&fn.field != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// Fields holds the values extracted by one descriptor from one input.
// Only the fields reported by Has carry meaning; the rest are zero.
type Fields struct {
	Year       int
	Month      int
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
	// Offset is in seconds east of UTC.
	Offset int
	// Weekday is the stated weekday. It is never used to compute the date.
	Weekday time.Weekday
	PM      bool

	set Field
}

// Has reports whether every field in mask is populated.
func (f Fields) Has(mask Field) bool {
	return f.set&mask == mask
}

// Populated returns the set of populated fields.
func (f Fields) Populated() Field {
	return f.set
}

func (f *Fields) put(field Field, v int) {
	switch field {
	case FieldYear:
		f.Year = v
	case FieldMonth:
		f.Month = v
	case FieldDay:
		f.Day = v
	case FieldHour:
		f.Hour = v
	case FieldMinute:
		f.Minute = v
	case FieldSecond:
		f.Second = v
	case FieldFraction:
		f.Nanosecond = v
	case FieldOffset:
		f.Offset = v
	case FieldWeekday:
		f.Weekday = time.Weekday(v)
	case FieldMeridiem:
		f.PM = v != 0
	default:
		panic(fmt.Sprintf("fuzzytime: put of composite field %s", field))
	}
	f.set |= field
}

// rangeError names the first field of a Fields value that does not form a
// real calendar date or time.
type rangeError struct {
	field  Field
	reason string
}

func (e *rangeError) Error() string {
	return e.reason
}

func outOfRange(field Field, format string, args ...any) *rangeError {
	return &rangeError{field: field, reason: fmt.Sprintf(format, args...)}
}

// timestamp validates a fully defaulted Fields value and converts it.
func (f Fields) timestamp() (Timestamp, *rangeError) {
	if f.Year < 0 || f.Year > 9999 {
		return Timestamp{}, outOfRange(FieldYear, "year %d out of range", f.Year)
	}
	if f.Month < 1 || f.Month > 12 {
		return Timestamp{}, outOfRange(FieldMonth, "month %d out of range", f.Month)
	}
	month := time.Month(f.Month)
	if days := daysIn(month, f.Year); f.Day < 1 || f.Day > days {
		return Timestamp{}, outOfRange(FieldDay, "day %d out of range for %s %04d", f.Day, month, f.Year)
	}
	hour := f.Hour
	if f.Has(FieldMeridiem) {
		if hour < 1 || hour > 12 {
			return Timestamp{}, outOfRange(FieldHour, "hour %d out of range for a 12-hour clock", hour)
		}
		hour %= 12
		if f.PM {
			hour += 12
		}
	}
	if hour < 0 || hour > 23 {
		return Timestamp{}, outOfRange(FieldHour, "hour %d out of range", hour)
	}
	if f.Minute < 0 || f.Minute > 59 {
		return Timestamp{}, outOfRange(FieldMinute, "minute %d out of range", f.Minute)
	}
	// Leap seconds cannot be represented by time.Time.
	if f.Second < 0 || f.Second > 59 {
		return Timestamp{}, outOfRange(FieldSecond, "second %d out of range", f.Second)
	}
	if f.Nanosecond < 0 || f.Nanosecond > 999_999_999 {
		return Timestamp{}, outOfRange(FieldFraction, "fraction %dns out of range", f.Nanosecond)
	}
	if f.Offset <= -maxOffset || f.Offset >= maxOffset {
		return Timestamp{}, outOfRange(FieldOffset, "UTC offset %s out of range", formatOffsetSeconds(f.Offset))
	}
	if f.Offset%60 != 0 {
		return Timestamp{}, outOfRange(FieldOffset, "UTC offset %s is not a whole number of minutes", formatOffsetSeconds(f.Offset))
	}
	return Timestamp{
		Year:       f.Year,
		Month:      month,
		Day:        f.Day,
		Hour:       hour,
		Minute:     f.Minute,
		Second:     f.Second,
		Nanosecond: f.Nanosecond,
		Offset:     f.Offset,
	}, nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
