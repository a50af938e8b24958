package fuzzytime

import (
	"strconv"
	"time"
)

// epochScales maps the digit count of a Unix timestamp to its unit.
// Ten digits of seconds cover 2001-09-09 through 2286-11-20.
var epochScales = map[int]time.Duration{
	10: time.Second,
	13: time.Millisecond,
	16: time.Microsecond,
	19: time.Nanosecond,
}

// consumeEpoch reads a Unix timestamp. Seconds may carry a fraction. The
// instant is expressed in UTC, since that is what the epoch is defined
// against.
func consumeEpoch(s string, f Fields, yield yieldFunc) bool {
	n := leadingDigits(s, len(s))
	scale, ok := epochScales[n]
	if !ok {
		return false
	}
	v, err := strconv.ParseInt(s[:n], 10, 64)
	if err != nil {
		return false
	}
	var t time.Time
	switch scale {
	case time.Second:
		t = time.Unix(v, 0)
	case time.Millisecond:
		t = time.UnixMilli(v)
	case time.Microsecond:
		t = time.UnixMicro(v)
	default:
		t = time.Unix(0, v)
	}
	consumed := n
	if scale == time.Second {
		var frac Fields
		consumeFraction(s[n:], frac, func(fn int, ff Fields) bool {
			t = t.Add(time.Duration(ff.Nanosecond))
			consumed += fn
			return true
		})
	}
	t = t.UTC()
	f.put(FieldYear, t.Year())
	f.put(FieldMonth, int(t.Month()))
	f.put(FieldDay, t.Day())
	f.put(FieldHour, t.Hour())
	f.put(FieldMinute, t.Minute())
	f.put(FieldSecond, t.Second())
	f.put(FieldFraction, t.Nanosecond())
	f.put(FieldOffset, 0)
	yield(consumed, f)
	return true
}
