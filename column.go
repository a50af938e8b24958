package main

import (
	"strings"
	"unicode/utf8"
)

// column pads values to the widest of the last n values seen, so that
// a streamed table stays aligned without buffering it.
type column struct {
	widths []int
	next   int
	max    int
}

func newColumn(window int) *column {
	if window <= 0 {
		panic("newColumn: window must be positive")
	}
	return &column{widths: make([]int, window)}
}

// Observe records the width of value without padding it.
func (c *column) Observe(value string) {
	w := utf8.RuneCountInString(value)
	evicted := c.widths[c.next]
	c.widths[c.next] = w
	c.next = (c.next + 1) % len(c.widths)
	switch {
	case w >= c.max:
		c.max = w
	case evicted == c.max:
		c.recalcMax()
	}
}

// Pad observes value and right-pads it with spaces to the column width.
func (c *column) Pad(value string) string {
	c.Observe(value)
	return value + strings.Repeat(" ", c.max-utf8.RuneCountInString(value))
}

func (c *column) recalcMax() {
	c.max = 0
	for _, w := range c.widths {
		if w > c.max {
			c.max = w
		}
	}
}
