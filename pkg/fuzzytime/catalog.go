package fuzzytime

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DateOrder decides how all-numeric dates with the year last, such as
// 07/06/1970, are read. It is fixed per catalog and never inferred from
// the input, so a day-first input resolved with a month-first catalog is
// silently read as a different date when both readings are valid.
type DateOrder uint8

const (
	// MonthFirst reads 07/06/1970 as July 6th.
	MonthFirst DateOrder = iota
	// DayFirst reads 07/06/1970 as June 7th.
	DayFirst
)

// DefaultDateOrder is the convention of the default catalog.
const DefaultDateOrder = MonthFirst

func (o DateOrder) String() string {
	switch o {
	case MonthFirst:
		return "month-first"
	case DayFirst:
		return "day-first"
	default:
		return fmt.Sprintf("order(%d)", o)
	}
}

// ParseDateOrder parses "month-first" or "day-first".
func ParseDateOrder(s string) (DateOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "month-first", "mdy":
		return MonthFirst, nil
	case "day-first", "dmy":
		return DayFirst, nil
	default:
		return 0, fmt.Errorf("unknown date order %q", s)
	}
}

// Catalog is an ordered, immutable set of descriptors: descending
// priority, then insertion order.
type Catalog struct {
	descriptors []*Descriptor
	byID        map[string]*Descriptor
}

// NewCatalog orders descriptors by priority. IDs must be unique.
func NewCatalog(descriptors ...*Descriptor) (*Catalog, error) {
	c := &Catalog{
		descriptors: make([]*Descriptor, 0, len(descriptors)),
		byID:        make(map[string]*Descriptor, len(descriptors)),
	}
	for i, d := range descriptors {
		if d == nil {
			return nil, fmt.Errorf("descriptor %d is nil", i)
		}
		if _, dup := c.byID[d.id]; dup {
			return nil, fmt.Errorf("duplicate descriptor id %q", d.id)
		}
		c.byID[d.id] = d
		c.descriptors = append(c.descriptors, d)
	}
	sort.SliceStable(c.descriptors, func(i, j int) bool {
		return c.descriptors[i].priority > c.descriptors[j].priority
	})
	return c, nil
}

// With returns a new catalog holding c's descriptors and extra.
func (c *Catalog) With(extra ...*Descriptor) (*Catalog, error) {
	all := make([]*Descriptor, 0, len(c.descriptors)+len(extra))
	all = append(all, c.descriptors...)
	all = append(all, extra...)
	return NewCatalog(all...)
}

// Descriptors returns the descriptors in match order.
func (c *Catalog) Descriptors() []*Descriptor {
	out := make([]*Descriptor, len(c.descriptors))
	copy(out, c.descriptors)
	return out
}

// Lookup finds a descriptor by ID.
func (c *Catalog) Lookup(id string) (*Descriptor, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// Len returns the number of descriptors.
func (c *Catalog) Len() int {
	return len(c.descriptors)
}

var builtinCatalogs [2]struct {
	once    sync.Once
	catalog *Catalog
}

// BuiltinCatalog returns the built-in catalog for order. It is built once
// per order and shared.
func BuiltinCatalog(order DateOrder) *Catalog {
	if int(order) >= len(builtinCatalogs) {
		panic(fmt.Sprintf("fuzzytime: unknown date order %d", order))
	}
	b := &builtinCatalogs[order]
	b.once.Do(func() {
		c, err := NewCatalog(BuiltinDescriptors(order)...)
		if err != nil {
			panic("fuzzytime: " + err.Error())
		}
		b.catalog = c
	})
	return b.catalog
}

// DefaultCatalog returns BuiltinCatalog(DefaultDateOrder).
func DefaultCatalog() *Catalog {
	return BuiltinCatalog(DefaultDateOrder)
}

type dateForm struct {
	id       string
	family   Family
	priority int
	pattern  string
}

type timeTail struct {
	id      string
	bonus   int
	pattern string
}

// timeTails are appended to every date form. They are mutually exclusive
// in what they accept except for the empty tail, and the bonus orders the
// more specific ones first.
var timeTails = []timeTail{
	{"offset", 4, "{sep}{hour}:{minute}[:{second}[{frac}]][ ]{offset}[ {comment}]"},
	{"zone", 3, "{sep}{hour}:{minute}[:{second}[{frac}]] {zone}"},
	{"meridiem", 2, "{sep}{hour12}:{minute}[:{second}][ ]{ampm}[ {zone}]"},
	{"clock", 1, "{sep}{hour}:{minute}[:{second}[{frac}]]"},
	{"", 0, ""},
}

const weekdayPrefix = "[{weekday}[,] ]"

// dateForms lists the date layouts that take a time tail. Priorities
// place specific layouts above looser ones: four-digit years above two,
// dates with years above year-less ones.
func dateForms(order DateOrder) []dateForm {
	ambiguous, first, second := "mdy", "{month}", "{day}"
	if order == DayFirst {
		ambiguous, first, second = "dmy", "{day}", "{month}"
	}
	return []dateForm{
		{"iso", FamilyISO, 90, "{year}-{month}-{day}"},
		{"ymd-slash", FamilyNumeric, 85, "{year}/{month}/{day}"},
		{"ymd-dot", FamilyNumeric, 85, "{year}.{month}.{day}"},
		{ambiguous + "-slash", FamilyNumeric, 70, first + "/" + second + "/{year}"},
		{ambiguous + "-dash", FamilyNumeric, 70, first + "-" + second + "-{year}"},
		{ambiguous + "-dot", FamilyNumeric, 70, first + "." + second + ".{year}"},
		{ambiguous + "-space", FamilyNumeric, 68, weekdayPrefix + first + " " + second + " {year}"},
		{ambiguous + "-slash-short", FamilyNumeric, 65, first + "/" + second + "/{year2}"},
		{ambiguous + "-dash-short", FamilyNumeric, 65, first + "-" + second + "-{year2}"},
		{"day-monthname-year", FamilyRFC2822, 60, weekdayPrefix + "{day}[{ord}] {monthname}[,] {year}"},
		{"day-monthname-year2", FamilyRFC2822, 55, weekdayPrefix + "{day} {monthname} {year2}"},
		{"day-monthname-year-dash", FamilyRFC2822, 58, "{day}-{monthname}-{year}"},
		{"monthname-day-year", FamilyNamedMonth, 60, weekdayPrefix + "{monthname}[.] {day}[{ord}][,] {year}"},
		{"monthname-comma-day-year", FamilyNamedMonth, 58, "{monthname}, {day} {year}"},
		{"year-monthname-day", FamilyNamedMonth, 58, "{year} {monthname} {day}"},
		{"day-monthname", FamilyRFC2822, 40, weekdayPrefix + "{day}[{ord}] {monthname}"},
		{"monthname-day", FamilyNamedMonth, 40, weekdayPrefix + "{monthname}[.] {day}[{ord}]"},
	}
}

// standalone lists layouts that do not follow the date plus tail shape.
var standalone = []dateForm{
	{"clf", FamilyNamedMonth, 88, "{day}/{monthname}/{year}:{hour2}:{minute}:{second}[ ]{offset}"},
	{"ansic", FamilyRFC2822, 87, "{weekday} {monthname} {day} {hour}:{minute}:{second}[{frac}][ {zone}] {year}"},
	{"rubydate", FamilyRFC2822, 87, "{weekday} {monthname} {day} {hour}:{minute}:{second}[{frac}] {offset} {year}"},
	{"iso-basic", FamilyISO, 75, "{year}{month2}{day2}[T{hour2}{minute}[{second}[{frac}]][{offset}]]"},
	{"klog", FamilyNumeric, 50, "{month2}{day2} {hour2}:{minute}:{second}[{frac}]"},
	{"time+offset", FamilyTimeOnly, 34, "{hour}:{minute}[:{second}[{frac}]][ ]{offset}"},
	{"time+zone", FamilyTimeOnly, 33, "{hour}:{minute}[:{second}[{frac}]] {zone}"},
	{"time+meridiem", FamilyTimeOnly, 32, "{hour12}[:{minute}[:{second}]][ ]{ampm}[ {zone}]"},
	{"time", FamilyTimeOnly, 31, "{hour}:{minute}[:{second}[{frac}]]"},
	{"epoch", FamilyEpoch, 10, "[@]{epoch}"},
}

// BuiltinDescriptors returns a fresh copy of the built-in descriptor table
// for order, in registration order. It panics if the table is malformed.
func BuiltinDescriptors(order DateOrder) []*Descriptor {
	forms := dateForms(order)
	out := make([]*Descriptor, 0, len(forms)*len(timeTails)+len(standalone))
	for _, form := range forms {
		for _, tail := range timeTails {
			id := form.id
			if tail.id != "" {
				id += "+" + tail.id
			}
			out = append(out, MustDescriptor(id, form.family, form.priority+tail.bonus, form.pattern+tail.pattern))
		}
	}
	for _, form := range standalone {
		out = append(out, MustDescriptor(form.id, form.family, form.priority, form.pattern))
	}
	return out
}
