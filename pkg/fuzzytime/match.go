package fuzzytime

import (
	"strings"
	"time"
	"unicode"
)

type name struct {
	text  string
	value int
}

// monthNames and weekdayNames are ordered longest first so that "June"
// is preferred over "Jun" when both are prefixes.
var monthNames = []name{
	{"september", 9}, {"february", 2}, {"november", 11}, {"december", 12},
	{"january", 1}, {"october", 10}, {"august", 8}, {"april", 4},
	{"march", 3}, {"june", 6}, {"july", 7}, {"sept", 9},
	{"jan", 1}, {"feb", 2}, {"mar", 3}, {"apr", 4}, {"may", 5}, {"jun", 6},
	{"jul", 7}, {"aug", 8}, {"sep", 9}, {"oct", 10}, {"nov", 11}, {"dec", 12},
}

var weekdayNames = []name{
	{"wednesday", int(time.Wednesday)}, {"thursday", int(time.Thursday)},
	{"saturday", int(time.Saturday)}, {"tuesday", int(time.Tuesday)},
	{"monday", int(time.Monday)}, {"friday", int(time.Friday)}, {"sunday", int(time.Sunday)},
	{"thurs", int(time.Thursday)}, {"tues", int(time.Tuesday)}, {"thur", int(time.Thursday)},
	{"mon", int(time.Monday)}, {"tue", int(time.Tuesday)}, {"wed", int(time.Wednesday)},
	{"thu", int(time.Thursday)}, {"fri", int(time.Friday)}, {"sat", int(time.Saturday)},
	{"sun", int(time.Sunday)},
}

var ordinalSuffixes = []string{"st", "nd", "rd", "th"}

var meridiems = []name{{"a.m.", 0}, {"p.m.", 1}, {"am", 0}, {"pm", 1}}

// frame is an immutable continuation: the tokens left to match after the
// current optional group, followed by the enclosing continuation.
type frame struct {
	tokens []token
	next   *frame
}

// matcher runs one compiled pattern against one input with backtracking.
type matcher struct {
	input    string
	furthest int
}

// yieldFunc receives one way of consuming n bytes. Returning true stops
// the search.
type yieldFunc func(n int, f Fields) bool

func (m *matcher) run(toks []token, k *frame, pos int, f Fields) (Fields, bool) {
	for len(toks) == 0 {
		if k == nil {
			if pos == len(m.input) {
				return f, true
			}
			m.reach(pos)
			return Fields{}, false
		}
		toks, k = k.tokens, k.next
	}
	t, rest := toks[0], toks[1:]
	if t.kind == tokOptional {
		if out, ok := m.run(t.group, &frame{tokens: rest, next: k}, pos, f); ok {
			return out, true
		}
		return m.run(rest, k, pos, f)
	}
	var (
		out   Fields
		found bool
	)
	matched := consume(t, m.input[pos:], f, func(n int, next Fields) bool {
		out, found = m.run(rest, k, pos+n, next)
		return found
	})
	if !matched {
		m.reach(pos)
	}
	return out, found
}

func (m *matcher) reach(pos int) {
	if pos > m.furthest {
		m.furthest = pos
	}
}

// consume calls yield for every way t can match a prefix of s, in order
// of preference. It reports whether t matched at all.
func consume(t token, s string, f Fields, yield yieldFunc) bool {
	switch t.kind {
	case tokLiteral:
		if !hasFoldPrefix(s, t.text) {
			return false
		}
		yield(len(t.text), f)
		return true
	case tokSpace:
		n := spaces(s)
		if n == 0 {
			return false
		}
		yield(n, f)
		return true
	case tokSeparator:
		return consumeSeparator(s, f, yield)
	case tokYear:
		return consumeDigits(s, 4, 4, FieldYear, f, yield)
	case tokYear2:
		if leadingDigits(s, 2) != 2 {
			return false
		}
		yield(2, with(f, FieldYear, expandYear2(atoi(s[:2]))))
		return true
	case tokMonth:
		return consumeDigits(s, 1, 2, FieldMonth, f, yield)
	case tokMonth2:
		return consumeDigits(s, 2, 2, FieldMonth, f, yield)
	case tokMonthName:
		return consumeName(s, monthNames, FieldMonth, f, yield)
	case tokDay:
		return consumeDigits(s, 1, 2, FieldDay, f, yield)
	case tokDay2:
		return consumeDigits(s, 2, 2, FieldDay, f, yield)
	case tokOrdinal:
		for _, suffix := range ordinalSuffixes {
			if hasFoldPrefix(s, suffix) {
				yield(len(suffix), f)
				return true
			}
		}
		return false
	case tokWeekday:
		return consumeName(s, weekdayNames, FieldWeekday, f, yield)
	case tokHour, tokHour12:
		return consumeDigits(s, 1, 2, FieldHour, f, yield)
	case tokHour2:
		return consumeDigits(s, 2, 2, FieldHour, f, yield)
	case tokMinute:
		return consumeDigits(s, 2, 2, FieldMinute, f, yield)
	case tokSecond:
		return consumeDigits(s, 2, 2, FieldSecond, f, yield)
	case tokFraction:
		return consumeFraction(s, f, yield)
	case tokMeridiem:
		return consumeName(s, meridiems, FieldMeridiem, f, yield)
	case tokOffset:
		return consumeOffset(s, f, yield)
	case tokZone:
		return consumeZone(s, f, yield)
	case tokComment:
		if s == "" || s[0] != '(' {
			return false
		}
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return false
		}
		yield(end+1, f)
		return true
	case tokEpoch:
		return consumeEpoch(s, f, yield)
	default:
		panic("fuzzytime: unhandled token kind")
	}
}

func with(f Fields, field Field, v int) Fields {
	f.put(field, v)
	return f
}

// consumeDigits yields every digit run of min..max bytes, longest first.
func consumeDigits(s string, min, max int, field Field, f Fields, yield yieldFunc) bool {
	n := leadingDigits(s, max)
	if n < min {
		return false
	}
	for w := n; w >= min; w-- {
		if yield(w, with(f, field, atoi(s[:w]))) {
			break
		}
	}
	return true
}

func consumeName(s string, names []name, field Field, f Fields, yield yieldFunc) bool {
	matched := false
	for _, nm := range names {
		if !hasFoldPrefix(s, nm.text) {
			continue
		}
		matched = true
		if yield(len(nm.text), with(f, field, nm.value)) {
			break
		}
	}
	return matched
}

// consumeSeparator matches what sits between a date and a time: a "T",
// whitespace, a comma or semicolon with optional whitespace, or " at ".
func consumeSeparator(s string, f Fields, yield yieldFunc) bool {
	if s != "" && (s[0] == 'T' || s[0] == 't') {
		yield(1, f)
		return true
	}
	lead := spaces(s)
	rest := s[lead:]
	switch {
	case rest != "" && (rest[0] == ',' || rest[0] == ';'):
		n := lead + 1
		yield(n+spaces(s[n:]), f)
		return true
	case lead > 0 && hasFoldPrefix(rest, "at") && spaces(rest[2:]) > 0:
		if yield(lead+2+spaces(rest[2:]), f) {
			return true
		}
	}
	if lead == 0 {
		return false
	}
	yield(lead, f)
	return true
}

// consumeFraction reads "." or "," followed by digits. Digits beyond
// nanosecond precision are consumed and dropped.
func consumeFraction(s string, f Fields, yield yieldFunc) bool {
	if len(s) < 2 || (s[0] != '.' && s[0] != ',') {
		return false
	}
	n := leadingDigits(s[1:], len(s)-1)
	if n == 0 {
		return false
	}
	digits := s[1 : 1+n]
	if len(digits) > 9 {
		digits = digits[:9]
	}
	ns := atoi(digits)
	for i := len(digits); i < 9; i++ {
		ns *= 10
	}
	yield(1+n, with(f, FieldFraction, ns))
	return true
}

func consumeOffset(s string, f Fields, yield yieldFunc) bool {
	if s != "" && (s[0] == 'Z' || s[0] == 'z') {
		if letters(s) > 1 {
			return false
		}
		yield(1, with(f, FieldOffset, 0))
		return true
	}
	candidates := offsetCandidates(s)
	for _, c := range candidates {
		if yield(c.n, with(f, FieldOffset, c.offset)) {
			break
		}
	}
	return len(candidates) > 0
}

// consumeZone reads an alphabetic abbreviation from the fixed table.
// Unknown abbreviations do not match.
func consumeZone(s string, f Fields, yield yieldFunc) bool {
	n := letters(s)
	if n == 0 {
		return false
	}
	base, ok := LookupZone(s[:n])
	if !ok {
		return false
	}
	if zonesWithSuffix[strings.ToUpper(s[:n])] {
		suffix := s[n:]
		candidates := offsetCandidates(suffix)
		// "GMT+2" is common enough to allow a single hour digit.
		if candidates == nil && len(suffix) >= 2 && (suffix[0] == '+' || suffix[0] == '-') && leadingDigits(suffix[1:], 2) == 1 {
			h := atoi(suffix[1:2]) * hour
			if suffix[0] == '-' {
				h = -h
			}
			candidates = []offsetCandidate{{2, h}}
		}
		for _, c := range candidates {
			if yield(n+c.n, with(f, FieldOffset, base+c.offset)) {
				return true
			}
		}
	}
	yield(n, with(f, FieldOffset, base))
	return true
}

// expandYear2 applies the RFC 5322 rule: 00-49 is 20xx, 50-99 is 19xx.
func expandYear2(yy int) int {
	if yy < 50 {
		return 2000 + yy
	}
	return 1900 + yy
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func spaces(s string) int {
	return len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
}

func letters(s string) int {
	n := 0
	for n < len(s) && (s[n] >= 'a' && s[n] <= 'z' || s[n] >= 'A' && s[n] <= 'Z') {
		n++
	}
	return n
}

// leadingDigits counts ASCII digits at the start of s, up to max.
func leadingDigits(s string, max int) int {
	n := 0
	for n < len(s) && n < max && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// atoi converts a short run of ASCII digits.
func atoi(s string) int {
	v := 0
	for i := 0; i < len(s); i++ {
		v = v*10 + int(s[i]-'0')
	}
	return v
}
