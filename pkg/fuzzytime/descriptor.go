package fuzzytime

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Family is the shape of a descriptor's layout.
type Family uint8

const (
	// FamilyISO covers ISO 8601 / RFC 3339 style year-first layouts.
	FamilyISO Family = iota
	// FamilyRFC2822 covers mail and HTTP style layouts: day, month name,
	// year, optionally led by a weekday.
	FamilyRFC2822
	// FamilyNumeric covers all-numeric delimited dates such as 7/6/1970.
	FamilyNumeric
	// FamilyNamedMonth covers prose layouts led by a month name.
	FamilyNamedMonth
	// FamilyTimeOnly covers bare times of day.
	FamilyTimeOnly
	// FamilyEpoch covers Unix timestamps.
	FamilyEpoch
)

var familyNames = []string{
	FamilyISO:        "iso",
	FamilyRFC2822:    "rfc2822",
	FamilyNumeric:    "numeric",
	FamilyNamedMonth: "named-month",
	FamilyTimeOnly:   "time-only",
	FamilyEpoch:      "epoch",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("family(%d)", f)
}

// ParseFamily parses the name returned by Family.String.
func ParseFamily(s string) (Family, error) {
	for i, n := range familyNames {
		if strings.EqualFold(s, n) {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("unknown descriptor family %q", s)
}

// required returns the fields every layout of the family must supply.
func (f Family) required() Field {
	switch f {
	case FamilyISO, FamilyRFC2822, FamilyNumeric, FamilyNamedMonth:
		return FieldMonth | FieldDay
	case FamilyTimeOnly:
		return FieldHour
	case FamilyEpoch:
		return fieldDate | fieldClock | FieldOffset
	default:
		panic(fmt.Sprintf("fuzzytime: unknown family %d", f))
	}
}

// Descriptor describes one recognizable layout. Descriptors are immutable
// and safe for concurrent use.
type Descriptor struct {
	id       string
	family   Family
	priority int
	pattern  string
	tokens   []token
	supplies Field
	mentions Field
}

// NewDescriptor compiles pattern into a descriptor. See the package
// documentation for the pattern syntax.
func NewDescriptor(id string, family Family, priority int, pattern string) (*Descriptor, error) {
	if id == "" {
		return nil, fmt.Errorf("descriptor has no id")
	}
	if int(family) >= len(familyNames) {
		return nil, fmt.Errorf("descriptor %s: unknown family %d", id, family)
	}
	c, err := compilePattern(pattern)
	if err != nil {
		return nil, fmt.Errorf("descriptor %s: %w", id, err)
	}
	if missing := family.required() &^ c.supplies; missing != 0 {
		return nil, fmt.Errorf("descriptor %s: %s layout must always supply %s", id, family, missing)
	}
	if c.kinds[tokHour12] != c.kinds[tokMeridiem] {
		return nil, fmt.Errorf("descriptor %s: {hour12} and {ampm} must be used together", id)
	}
	if c.kinds[tokHour12] && c.supplies&FieldMeridiem == 0 {
		return nil, fmt.Errorf("descriptor %s: {ampm} must not be optional", id)
	}
	switch family {
	case FamilyTimeOnly:
		if c.mentions&fieldDate != 0 {
			return nil, fmt.Errorf("descriptor %s: time-only layout mentions %s", id, c.mentions&fieldDate)
		}
	case FamilyEpoch:
		if !c.kinds[tokEpoch] {
			return nil, fmt.Errorf("descriptor %s: epoch layout must use {epoch}", id)
		}
	default:
		if c.kinds[tokEpoch] {
			return nil, fmt.Errorf("descriptor %s: {epoch} is only valid in epoch layouts", id)
		}
	}
	return &Descriptor{
		id:       id,
		family:   family,
		priority: priority,
		pattern:  pattern,
		tokens:   c.tokens,
		supplies: c.supplies,
		mentions: c.mentions,
	}, nil
}

// MustDescriptor is like NewDescriptor but panics on error.
func MustDescriptor(id string, family Family, priority int, pattern string) *Descriptor {
	d, err := NewDescriptor(id, family, priority, pattern)
	if err != nil {
		panic("fuzzytime: " + err.Error())
	}
	return d
}

func (d *Descriptor) ID() string { return d.id }
func (d *Descriptor) Family() Family { return d.family }
func (d *Descriptor) Priority() int { return d.priority }
func (d *Descriptor) Pattern() string { return d.pattern }
func (d *Descriptor) Supplies() Field { return d.supplies }
func (d *Descriptor) Mentions() Field { return d.mentions }
func (d *Descriptor) String() string { return d.id }

// Match extracts fields from input if the layout consumes all of it after
// trimming surrounding whitespace. Values are not range checked.
func (d *Descriptor) Match(input string) (Fields, bool) {
	f, _, ok := d.match(strings.TrimSpace(input))
	return f, ok
}

// match runs on already trimmed input and explains a failure.
func (d *Descriptor) match(s string) (Fields, string, bool) {
	m := matcher{input: s}
	f, ok := m.run(d.tokens, nil, 0, Fields{})
	if ok {
		return f, "", true
	}
	if m.furthest >= len(s) {
		return Fields{}, "input ended early", false
	}
	return Fields{}, fmt.Sprintf("unexpected %q at position %d", snippet(s[m.furthest:]), m.furthest), false
}

func snippet(s string) string {
	return truncate(s, 12)
}

// truncate cuts s to at most max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
