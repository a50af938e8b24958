// Package fuzzytime turns loosely formatted date and time text into a
// fully determined timestamp with an explicit UTC offset.
//
// Text is matched against an ordered catalog of layout descriptors. The
// first descriptor, in descending priority, that consumes the whole input
// wins; omitted fields are then filled in from a reference "now" and a
// local offset, and the result is validated as a real calendar value.
//
//	res, err := fuzzytime.Resolve("Wed, 6 Jul 1970 15:30:00 PDT", time.Now(), 0)
//	fmt.Println(res.Timestamp) // 1970-07-06T15:30:00-07:00
//
// # Patterns
//
// Descriptor layouts are written in a small pattern language:
//
//	{year}       four-digit year
//	{year2}      two-digit year, 00-49 is 20xx and 50-99 is 19xx
//	{month}      month number, one or two digits ({month2}: exactly two)
//	{monthname}  month name or abbreviation, such as "Jul" or "July"
//	{day}        day of month, one or two digits ({day2}: exactly two)
//	{ord}        ordinal suffix: st, nd, rd or th
//	{weekday}    weekday name, only cross-checked against the date
//	{hour}       hour 0-23, one or two digits ({hour2}: exactly two)
//	{hour12}     hour 1-12, must be paired with {ampm}
//	{ampm}       am, pm, a.m. or p.m.
//	{minute}     two-digit minute
//	{second}     two-digit second
//	{frac}       "." or "," followed by fractional second digits
//	{offset}     Z, ±hh, ±hhmm or ±hh:mm
//	{zone}       timezone abbreviation, such as PDT or GMT+2
//	{comment}    parenthesized text, ignored
//	{sep}        date and time separator: T, whitespace, comma, semicolon or " at "
//	{epoch}      Unix time of 10, 13, 16 or 19 digits (s, ms, µs, ns)
//
// A space matches one or more whitespace characters, "[...]" encloses an
// optional group, and any other character matches itself ignoring case.
//
// # Date order
//
// All-numeric dates with the year last, such as 07/06/1970, are read in
// one fixed order per catalog, DefaultDateOrder (month first) unless a
// catalog is built with BuiltinCatalog(DayFirst). The order is never
// guessed from the input: with the default catalog, 07/06/1970 is always
// July 6th even if the writer meant June 7th.
//
// # Timezone abbreviations
//
// Only the abbreviations known to LookupZone are recognized. An unknown
// abbreviation makes the descriptor fail, so the input is reported as
// unmatched rather than silently given the wrong offset.
package fuzzytime
