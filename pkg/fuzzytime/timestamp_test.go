package fuzzytime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ts   Timestamp
		want string
	}{
		{
			name: "utc is numeric",
			ts:   Timestamp{Year: 2023, Month: time.January, Day: 5, Hour: 7, Minute: 27, Second: 19},
			want: "2023-01-05T07:27:19+00:00",
		},
		{
			name: "negative offset",
			ts:   Timestamp{Year: 1970, Month: time.July, Day: 6, Hour: 15, Minute: 30, Offset: -7 * hour},
			want: "1970-07-06T15:30:00-07:00",
		},
		{
			name: "trailing zeros trimmed",
			ts:   Timestamp{Year: 2000, Month: time.February, Day: 29, Nanosecond: 120_000_000, Offset: 5*hour + 45*60},
			want: "2000-02-29T00:00:00.12+05:45",
		},
		{
			name: "year zero",
			ts:   Timestamp{Year: 0, Month: time.January, Day: 1},
			want: "0000-01-01T00:00:00+00:00",
		},
		{
			name: "zero value normalizes month and day",
			ts:   Timestamp{},
			want: "-0001-11-30T00:00:00+00:00",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.ts.String())
		})
	}
}

func TestTimestamp_Time(t *testing.T) {
	t.Parallel()

	ts := Timestamp{Year: 1970, Month: time.July, Day: 6, Hour: 15, Minute: 30, Offset: -7 * hour}
	tm := ts.Time()
	_, offset := tm.Zone()
	assert.Equal(t, -7*hour, offset)
	assert.Equal(t, time.Date(1970, time.July, 6, 22, 30, 0, 0, time.UTC), tm.UTC())
	assert.Equal(t, "-07:00", ts.OffsetString())
	assert.Equal(t, time.Monday, ts.Weekday())
}

func TestTimestamp_Equal(t *testing.T) {
	t.Parallel()

	a := Timestamp{Year: 2023, Month: time.July, Day: 6, Hour: 15, Offset: 2 * hour}
	b := Timestamp{Year: 2023, Month: time.July, Day: 6, Hour: 13}
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, a, b)
}

func TestFromTime(t *testing.T) {
	t.Parallel()

	tm := time.Date(2023, time.July, 6, 15, 30, 0, 5, time.FixedZone("X", 9*hour+30*60))
	ts, err := FromTime(tm)
	require.NoError(t, err)
	assert.Equal(t, "2023-07-06T15:30:00.000000005+09:30", ts.String())
	assert.True(t, ts.Time().Equal(tm))

	_, err = FromTime(time.Date(2023, time.July, 6, 0, 0, 0, 0, time.FixedZone("LMT", 17)))
	assert.ErrorContains(t, err, "whole number of minutes")

	_, err = FromTime(time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorContains(t, err, "year 10000 out of range")
}

func TestTimestamp_Text(t *testing.T) {
	t.Parallel()

	type event struct {
		At Timestamp `json:"at"`
	}

	in := event{At: Timestamp{Year: 1970, Month: time.July, Day: 6, Hour: 15, Minute: 30, Offset: -7 * hour}}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"1970-07-06T15:30:00-07:00"}`, string(b))

	var out event
	require.NoError(t, json.Unmarshal([]byte(`{"at":"Mon, 6 Jul 1970 15:30:00 PDT"}`), &out))
	assert.Equal(t, in, out)

	assert.Error(t, json.Unmarshal([]byte(`{"at":"nonsense"}`), &out))
}
