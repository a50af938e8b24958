package main

import "testing"

func TestColumnPad(t *testing.T) {
	c := newColumn(3)

	assertEqualString(t, "foo", c.Pad("foo"), "1st: expect no padding")
	assertEqualString(t, "bar", c.Pad("bar"), "2nd: expect no padding")
	assertEqualString(t, "lorem", c.Pad("lorem"), "3rd: expect no padding")
	assertEqualString(t, "moo  ", c.Pad("moo"), "4th: expect some padding")
	assertEqualString(t, "f    ", c.Pad("f"), "5th: expect some padding")
	assertEqualString(t, "f  ", c.Pad("f"), "6th: expect less padding")
	assertEqualString(t, "f", c.Pad("f"), "7th: expect no padding")
}

func TestColumnObserve(t *testing.T) {
	values := []string{"iso", "day-monthname-year", "epoch"}
	c := newColumn(len(values))
	for _, v := range values {
		c.Observe(v)
	}

	for _, v := range values {
		got := c.Pad(v)
		if len(got) != len("day-monthname-year") {
			t.Errorf("want every value padded to %d, got %q (len=%d)", len("day-monthname-year"), got, len(got))
		}
	}
}

func TestColumnPadCountsRunes(t *testing.T) {
	c := newColumn(2)
	c.Observe("µs")
	assertEqualString(t, "s ", c.Pad("s"), "expect width in runes")
}

func assertEqualString(t *testing.T, want, got, msg string) {
	t.Helper()
	if got != want {
		t.Errorf("got != want: %s\nwant: %q (len=%d)\ngot:  %q (len=%d)", msg, want, len(want), got, len(got))
	}
}
