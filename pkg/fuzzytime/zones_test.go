package fuzzytime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupZone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		abbr   string
		want   int
		wantOk bool
	}{
		{"UTC", 0, true},
		{"gmt", 0, true},
		{"PDT", -7 * hour, true},
		{"CST", -6 * hour, true},
		{"ACST", 9*hour + 30*60, true},
		{"NZDT", 13 * hour, true},
		{"IST", 0, false},
		{"XYZ", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.abbr, func(t *testing.T) {
			t.Parallel()

			got, ok := LookupZone(tt.abbr)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    int
		wantErr string
	}{
		{input: "Z", want: 0},
		{input: "+00:00", want: 0},
		{input: "-05:00", want: -5 * hour},
		{input: "+0530", want: 5*hour + 30*60},
		{input: "+02", want: 2 * hour},
		{input: "-23:59", want: -(23*hour + 59*60)},
		{input: "+24:00", wantErr: "out of range"},
		{input: "+05:60", wantErr: "invalid UTC offset"},
		{input: "5", wantErr: "invalid UTC offset"},
		{input: "+05:00 ", wantErr: "invalid UTC offset"},
		{input: "", wantErr: "invalid UTC offset"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOffset(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+00:00", FormatOffset(0))
	assert.Equal(t, "-05:00", FormatOffset(-5*hour))
	assert.Equal(t, "+05:30", FormatOffset(5*hour+30*60))
	assert.Equal(t, "-09:30", FormatOffset(-(9*hour + 30*60)))
	assert.Equal(t, "+05:30:15", formatOffsetSeconds(5*hour+30*60+15))
}

func TestZoneSuffix(t *testing.T) {
	t.Parallel()

	d := MustDescriptor("z", FamilyTimeOnly, 1, "{hour}:{minute} {zone}")

	tests := []struct {
		input  string
		want   int
		wantOk bool
	}{
		{"10:00 GMT", 0, true},
		{"10:00 GMT+2", 2 * hour, true},
		{"10:00 UTC-03:30", -(3*hour + 30*60), true},
		{"10:00 UT+0100", hour, true},
		{"10:00 PST+2", 0, false},
		{"10:00 FOO", 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			f, ok := d.Match(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, f.Offset)
		})
	}
}
