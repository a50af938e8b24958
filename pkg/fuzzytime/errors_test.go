package fuzzytime

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrorTypeUnknown, "unknown"},
		{ErrorTypeEmptyInput, "empty_input"},
		{ErrorTypeNoFormatMatched, "no_format_matched"},
		{ErrorTypeInvalidCalendarValue, "invalid_calendar_value"},
		{ErrorTypeInternal, "internal"},
		{ErrorType(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errType.String())
		})
	}
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := newNoFormatMatchedError("x", nil)
	wrapped := fmt.Errorf("resolving header: %w", err)

	assert.ErrorIs(t, wrapped, ErrNoFormatMatched)
	assert.NotErrorIs(t, wrapped, ErrEmptyInput)
	assert.True(t, IsNoFormatMatched(wrapped))
	assert.False(t, IsInvalidCalendarValue(wrapped))
	assert.Equal(t, ErrorTypeNoFormatMatched, GetType(wrapped))

	otherCode := &Error{Type: ErrorTypeNoFormatMatched, Code: "other"}
	assert.False(t, errors.Is(err, otherCode))
	assert.True(t, errors.Is(err, &Error{Type: ErrorTypeNoFormatMatched}))
}

func TestGetTypeForeignError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrorTypeUnknown, GetType(errors.New("plain")))
	assert.Equal(t, ErrorTypeUnknown, GetType(nil))
	assert.False(t, IsEmptyInput(nil))
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := newNoFormatMatchedError(" next tuesday ", []Attempt{{"a", "input ended early"}, {"b", `unexpected "n" at position 0`}})
	assert.EqualError(t, err, `no known date format matched "next tuesday" (tried 2 formats)`)
	assert.Equal(t, []string{"a", "b"}, err.AttemptedDescriptors())
	assert.Equal(t, "a: input ended early\nb: unexpected \"n\" at position 0\n", err.Diagnostics())

	long := newNoFormatMatchedError(strings.Repeat("x", 100_000), nil)
	assert.Equal(t, `no known date format matched "`+strings.Repeat("x", maxQuotedInput)+`…" (tried 0 formats)`, long.Error())
	assert.Len(t, long.Input, 100_000)

	withCause := &Error{Message: "reading config", Cause: errors.New("boom")}
	assert.EqualError(t, withCause, "reading config: boom")
	assert.ErrorIs(t, withCause, withCause.Cause)
}
