package fuzzytime

import (
	"fmt"
	"strings"
)

const (
	hour      = 3600
	maxOffset = 24 * hour
)

// zoneOffsets maps timezone abbreviations to fixed offsets in seconds.
// Ambiguous abbreviations resolve to their RFC 2822 / North American
// meaning (CST is US Central, not China). IST is left out as it has three
// common readings.
var zoneOffsets = map[string]int{
	"UT":   0,
	"UTC":  0,
	"GMT":  0,
	"Z":    0,
	"EST":  -5 * hour,
	"EDT":  -4 * hour,
	"CST":  -6 * hour,
	"CDT":  -5 * hour,
	"MST":  -7 * hour,
	"MDT":  -6 * hour,
	"PST":  -8 * hour,
	"PDT":  -7 * hour,
	"AKST": -9 * hour,
	"AKDT": -8 * hour,
	"HST":  -10 * hour,
	"WET":  0,
	"WEST": 1 * hour,
	"BST":  1 * hour,
	"CET":  1 * hour,
	"CEST": 2 * hour,
	"EET":  2 * hour,
	"EEST": 3 * hour,
	"MSK":  3 * hour,
	"SGT":  8 * hour,
	"HKT":  8 * hour,
	"AWST": 8 * hour,
	"JST":  9 * hour,
	"KST":  9 * hour,
	"ACST": 9*hour + 30*60,
	"ACDT": 10*hour + 30*60,
	"AEST": 10 * hour,
	"AEDT": 11 * hour,
	"NZST": 12 * hour,
	"NZDT": 13 * hour,
}

// zonesWithSuffix may be followed by a numeric offset, as in "GMT+2".
var zonesWithSuffix = map[string]bool{"UT": true, "UTC": true, "GMT": true}

// LookupZone returns the fixed offset in seconds of a timezone
// abbreviation. Matching is case-insensitive.
func LookupZone(abbr string) (int, bool) {
	offset, ok := zoneOffsets[strings.ToUpper(abbr)]
	return offset, ok
}

// ParseOffset parses a numeric UTC offset such as "-05:00", "+0530",
// "+02" or "Z", returning seconds east of UTC.
func ParseOffset(s string) (int, error) {
	n, offset, ok := scanOffset(s)
	if !ok || n != len(s) {
		return 0, fmt.Errorf("invalid UTC offset %q", s)
	}
	if offset <= -maxOffset || offset >= maxOffset {
		return 0, fmt.Errorf("UTC offset %q out of range", s)
	}
	return offset, nil
}

// FormatOffset renders seconds east of UTC as "±hh:mm".
func FormatOffset(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/hour, offset%hour/60)
}

func formatOffsetSeconds(offset int) string {
	if offset%60 == 0 {
		return FormatOffset(offset)
	}
	return fmt.Sprintf("%s:%02d", FormatOffset(offset), abs(offset)%60)
}

// scanOffset reads the longest numeric offset at the start of s.
func scanOffset(s string) (n, offset int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	if s[0] == 'Z' || s[0] == 'z' {
		return 1, 0, true
	}
	candidates := offsetCandidates(s)
	if len(candidates) == 0 {
		return 0, 0, false
	}
	best := candidates[0]
	return best.n, best.offset, true
}

type offsetCandidate struct {
	n      int
	offset int
}

// offsetCandidates lists every way a signed offset can be read from the
// start of s, longest first: ±hh:mm, ±hhmm, ±hh.
func offsetCandidates(s string) []offsetCandidate {
	if len(s) < 3 || (s[0] != '+' && s[0] != '-') || leadingDigits(s[1:], 2) != 2 {
		return nil
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	hh := atoi(s[1:3])
	var out []offsetCandidate
	if len(s) >= 6 && s[3] == ':' && leadingDigits(s[4:], 2) == 2 {
		if mm := atoi(s[4:6]); mm < 60 {
			out = append(out, offsetCandidate{6, sign * (hh*hour + mm*60)})
		}
	} else if leadingDigits(s[3:], 2) == 2 {
		if mm := atoi(s[3:5]); mm < 60 {
			out = append(out, offsetCandidate{5, sign * (hh*hour + mm*60)})
		}
	}
	return append(out, offsetCandidate{3, sign * hh * hour})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
