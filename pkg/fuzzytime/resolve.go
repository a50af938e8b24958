package fuzzytime

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Annotation flags something worth knowing about a successful result.
type Annotation string

const (
	// AnnotationWeekdayMismatch means the input named a weekday that does
	// not fall on the resolved date. The date wins.
	AnnotationWeekdayMismatch Annotation = "weekday-mismatch"
	// AnnotationYearDefaulted means the year was taken from now.
	AnnotationYearDefaulted Annotation = "year-defaulted"
	// AnnotationDateDefaulted means a time-only input took its date from now.
	AnnotationDateDefaulted Annotation = "date-defaulted"
	// AnnotationOffsetDefaulted means the local offset was applied.
	AnnotationOffsetDefaulted Annotation = "offset-defaulted"
)

// Result is a successful resolution.
type Result struct {
	Timestamp Timestamp
	// Descriptor is the ID of the descriptor that matched.
	Descriptor string
	Family     Family
	// Annotations are in the order the conditions were detected.
	Annotations []Annotation
}

// HasAnnotation reports whether a was raised.
func (r Result) HasAnnotation(a Annotation) bool {
	for _, have := range r.Annotations {
		if have == a {
			return true
		}
	}
	return false
}

// WeekdayMismatch reports whether the stated weekday contradicted the date.
func (r Result) WeekdayMismatch() bool {
	return r.HasAnnotation(AnnotationWeekdayMismatch)
}

// Resolver resolves text against one catalog. It holds no per-call state
// and is safe for concurrent use.
type Resolver struct {
	catalog *Catalog
	logger  zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger makes the resolver log each attempt at trace level and the
// outcome at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver returns a resolver over catalog, or the default catalog
// when catalog is nil.
func NewResolver(catalog *Catalog, opts ...Option) *Resolver {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	r := &Resolver{
		catalog: catalog,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog the resolver scans.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve normalizes input into a Timestamp. Omitted fields are filled
// from now and localOffset (seconds east of UTC):
//
//   - no year: now's year
//   - no date (time-only layouts): now's date, in now's location
//   - no time (date-only layouts): midnight
//   - no minute, second or fraction: zero
//   - no offset: localOffset
//
// The first descriptor in catalog order that consumes the whole input
// wins. If its fields do not form a real date or time, resolution fails
// without trying any other descriptor.
func (r *Resolver) Resolve(input string, now time.Time, localOffset int) (Result, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Result{}, newEmptyInputError(input)
	}

	var attempts []Attempt
	for _, d := range r.catalog.descriptors {
		fields, reason, ok := d.match(s)
		if !ok {
			r.logger.Trace().Str("descriptor", d.id).Str("reason", reason).Msg("No match.")
			attempts = append(attempts, Attempt{Descriptor: d.id, Reason: reason})
			continue
		}
		if missing := d.supplies &^ fields.Populated(); missing != 0 {
			err := newContractError(input, d, missing)
			r.logger.Error().Err(err).Msg("Descriptor broke its contract.")
			return Result{}, err
		}
		result, err := r.complete(input, d, fields, now, localOffset)
		if err != nil {
			r.logger.Debug().Str("descriptor", d.id).Err(err).Msg("Matched an invalid value.")
			return Result{}, err
		}
		r.logger.Debug().
			Str("descriptor", d.id).
			Stringer("timestamp", result.Timestamp).
			Int("skipped", len(attempts)).
			Msg("Resolved.")
		return result, nil
	}

	err := newNoFormatMatchedError(input, attempts)
	r.logger.Debug().Str("input", s).Int("attempts", len(attempts)).Msg("No format matched.")
	return Result{}, err
}

// complete applies defaults, validates and annotates a match.
func (r *Resolver) complete(input string, d *Descriptor, f Fields, now time.Time, localOffset int) (Result, error) {
	var annotations []Annotation
	switch {
	case !f.Has(FieldMonth | FieldDay):
		f.Year, f.Month, f.Day = now.Year(), int(now.Month()), now.Day()
		annotations = append(annotations, AnnotationDateDefaulted)
	case !f.Has(FieldYear):
		f.Year = now.Year()
		annotations = append(annotations, AnnotationYearDefaulted)
	}
	if !f.Has(FieldOffset) {
		f.Offset = localOffset
		annotations = append(annotations, AnnotationOffsetDefaulted)
	}
	// Unset clock fields are already zero.

	ts, rerr := f.timestamp()
	if rerr != nil {
		return Result{}, newInvalidCalendarValueError(input, d, rerr)
	}
	if f.Has(FieldWeekday) && f.Weekday != ts.Weekday() {
		annotations = append(annotations, AnnotationWeekdayMismatch)
	}
	return Result{
		Timestamp:   ts,
		Descriptor:  d.id,
		Family:      d.family,
		Annotations: annotations,
	}, nil
}

// Resolve resolves input with the default catalog.
func Resolve(input string, now time.Time, localOffset int) (Result, error) {
	return defaultResolver().Resolve(input, now, localOffset)
}

// Parse resolves input with the default catalog, the wall clock and the
// offset of the local zone at this moment.
func Parse(input string) (Timestamp, error) {
	now := time.Now()
	_, offset := now.Zone()
	res, err := Resolve(input, now, offset)
	if err != nil {
		return Timestamp{}, err
	}
	return res.Timestamp, nil
}

func defaultResolver() *Resolver {
	return &Resolver{catalog: DefaultCatalog(), logger: zerolog.Nop()}
}
