package fuzzytime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDescriptor_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      string
		family  Family
		pattern string
		wantErr string
	}{
		{"no id", "", FamilyISO, "{year}-{month}-{day}", "descriptor has no id"},
		{"unknown family", "x", Family(42), "{year}-{month}-{day}", "unknown family"},
		{"empty pattern", "x", FamilyISO, "", "empty pattern"},
		{"unknown directive", "x", FamilyISO, "{year}-{mon}-{day}", "unknown directive {mon}"},
		{"unclosed brace", "x", FamilyISO, "{year}-{month}-{day", "unclosed '{'"},
		{"stray brace", "x", FamilyISO, "{year}}-{month}-{day}", "unexpected '}'"},
		{"unclosed group", "x", FamilyISO, "{year}-{month}-{day}[T{hour}", "unclosed '['"},
		{"stray bracket", "x", FamilyISO, "{year}-{month}-{day}]", "unexpected ']'"},
		{"empty group", "x", FamilyISO, "{year}-{month}-{day}[]", "empty optional group"},
		{"duplicate field", "x", FamilyISO, "{year}-{month}-{day} {monthname}", "field month appears more than once"},
		{"missing day", "x", FamilyNumeric, "{month}/{year}", "must always supply day"},
		{"optional month", "x", FamilyNumeric, "[{month}/]{day}", "must always supply month"},
		{"hour12 without ampm", "x", FamilyTimeOnly, "{hour12}:{minute}", "{hour12} and {ampm} must be used together"},
		{"ampm without hour12", "x", FamilyTimeOnly, "{hour}:{minute} {ampm}", "{hour12} and {ampm} must be used together"},
		{"optional ampm", "x", FamilyTimeOnly, "{hour12}:{minute}[ {ampm}]", "{ampm} must not be optional"},
		{"time with date", "x", FamilyTimeOnly, "{hour}:{minute} [{day}]", "time-only layout mentions day"},
		{"epoch without epoch", "x", FamilyEpoch, "{year}-{month}-{day}", "must always supply"},
		{"epoch elsewhere", "x", FamilyISO, "{month}{day}{epoch}", "field month|day appears more than once"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, err := NewDescriptor(tt.id, tt.family, 1, tt.pattern)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMustDescriptor_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		MustDescriptor("bad", FamilyISO, 1, "{nope}")
	})
}

func TestDescriptor_Accessors(t *testing.T) {
	t.Parallel()

	d := MustDescriptor("iso-ish", FamilyISO, 7, "{year}-{month}-{day}[T{hour}:{minute}]")
	assert.Equal(t, "iso-ish", d.ID())
	assert.Equal(t, "iso-ish", d.String())
	assert.Equal(t, FamilyISO, d.Family())
	assert.Equal(t, 7, d.Priority())
	assert.Equal(t, "{year}-{month}-{day}[T{hour}:{minute}]", d.Pattern())
	assert.Equal(t, fieldDate, d.Supplies())
	assert.Equal(t, fieldDate|FieldHour|FieldMinute, d.Mentions())
}

func TestDescriptor_Match(t *testing.T) {
	t.Parallel()

	d := MustDescriptor("test", FamilyRFC2822, 1, "[{weekday}[,] ]{day}[{ord}] {monthname} {year}[{sep}{hour}:{minute}[:{second}[{frac}]]]")

	tests := []struct {
		name   string
		input  string
		wantOk bool
		want   Fields
	}{
		{
			name:   "date only",
			input:  "6 July 1970",
			wantOk: true,
			want:   Fields{Year: 1970, Month: 7, Day: 6, set: FieldYear | FieldMonth | FieldDay},
		},
		{
			name:   "weekday and ordinal",
			input:  "Monday, 6th JUL 1970",
			wantOk: true,
			want:   Fields{Year: 1970, Month: 7, Day: 6, Weekday: 1, set: FieldYear | FieldMonth | FieldDay | FieldWeekday},
		},
		{
			name:   "with time and fraction",
			input:  "6 Jul 1970 at 15:30:00,25",
			wantOk: true,
			want: Fields{
				Year: 1970, Month: 7, Day: 6, Hour: 15, Minute: 30, Nanosecond: 250_000_000,
				set: fieldDate | FieldHour | FieldMinute | FieldSecond | FieldFraction,
			},
		},
		{
			name:   "collapsed whitespace",
			input:  "  6   Jul\t1970  ",
			wantOk: true,
			want:   Fields{Year: 1970, Month: 7, Day: 6, set: fieldDate},
		},
		{name: "trailing garbage", input: "6 Jul 1970 x", wantOk: false},
		{name: "unknown month", input: "6 Jux 1970", wantOk: false},
		{name: "truncated", input: "6 Jul", wantOk: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := d.Match(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Zero(t, got)
			}
		})
	}
}

func TestDescriptor_MatchReason(t *testing.T) {
	t.Parallel()

	d := MustDescriptor("test", FamilyISO, 1, "{year}-{month}-{day}")

	_, reason, ok := d.match("2023-07-")
	assert.False(t, ok)
	assert.Equal(t, "input ended early", reason)

	_, reason, ok = d.match("2023-07-xx")
	assert.False(t, ok)
	assert.Equal(t, `unexpected "xx" at position 8`, reason)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abc", 2))
	assert.Equal(t, "éé…", truncate("ééé", 2))
	assert.Equal(t, "mañana por l…", snippet("mañana por la tarde"))
}

func TestDescriptor_BacktracksDigitWidths(t *testing.T) {
	t.Parallel()

	// The first {month} must give up its second digit for the match to succeed.
	d := MustDescriptor("packed", FamilyNumeric, 1, "{month}{day2}")
	f, ok := d.Match("105")
	require.True(t, ok)
	assert.Equal(t, 1, f.Month)
	assert.Equal(t, 5, f.Day)
}

func TestDescriptor_Meridiem(t *testing.T) {
	t.Parallel()

	d := MustDescriptor("t", FamilyTimeOnly, 1, "{hour12}[:{minute}][ ]{ampm}")
	f, ok := d.Match("7:45 P.M.")
	require.True(t, ok)
	assert.True(t, f.PM)
	assert.Equal(t, 7, f.Hour)
	assert.True(t, f.Has(FieldMeridiem|FieldMinute))
}

func TestFamily_String(t *testing.T) {
	t.Parallel()

	for _, f := range []Family{FamilyISO, FamilyRFC2822, FamilyNumeric, FamilyNamedMonth, FamilyTimeOnly, FamilyEpoch} {
		parsed, err := ParseFamily(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	assert.Equal(t, "family(9)", Family(9).String())

	_, err := ParseFamily("julian")
	assert.Error(t, err)
}

func TestField_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", Field(0).String())
	assert.Equal(t, "year|month|day", fieldDate.String())
	assert.Equal(t, "offset", FieldOffset.String())
}
