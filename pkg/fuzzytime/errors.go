package fuzzytime

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes resolution failures.
type ErrorType int

const (
	// ErrorTypeUnknown is reported by GetType for errors not from this package.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeEmptyInput means the input was empty after trimming.
	ErrorTypeEmptyInput
	// ErrorTypeNoFormatMatched means no descriptor consumed the whole input.
	ErrorTypeNoFormatMatched
	// ErrorTypeInvalidCalendarValue means a descriptor matched but the
	// extracted fields are not a real date or time.
	ErrorTypeInvalidCalendarValue
	// ErrorTypeInternal means a descriptor broke its own contract. It is a
	// catalog bug, not bad input.
	ErrorTypeInternal
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:              "unknown",
	ErrorTypeEmptyInput:           "empty_input",
	ErrorTypeNoFormatMatched:      "no_format_matched",
	ErrorTypeInvalidCalendarValue: "invalid_calendar_value",
	ErrorTypeInternal:             "internal",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Machine-readable error codes.
const (
	CodeEmptyInput           = "empty_input"
	CodeNoFormatMatched      = "no_format_matched"
	CodeInvalidCalendarValue = "invalid_calendar_value"
	CodeDescriptorContract   = "descriptor_contract"
)

// Attempt records why one descriptor did not match.
type Attempt struct {
	Descriptor string
	Reason     string
}

// Error is the failure value returned by the resolver.
type Error struct {
	// Type is the category of the error.
	Type ErrorType
	// Code is a machine-readable error code.
	Code string
	// Message is the human-readable description.
	Message string
	// Input is the text that was resolved, untrimmed.
	Input string
	// Descriptor is the ID of the matching descriptor, if any matched.
	Descriptor string
	// Field is the offending field of an invalid calendar value or a
	// broken descriptor contract.
	Field Field
	// Attempts lists every descriptor tried, in catalog order, when no
	// format matched.
	Attempts []Attempt
	// Cause is the underlying error, if any.
	Cause error
}

// Sentinels for errors.Is. They match any *Error of the same Type.
var (
	ErrEmptyInput           = &Error{Type: ErrorTypeEmptyInput, Code: CodeEmptyInput, Message: "empty input"}
	ErrNoFormatMatched      = &Error{Type: ErrorTypeNoFormatMatched, Code: CodeNoFormatMatched, Message: "no known date format matched"}
	ErrInvalidCalendarValue = &Error{Type: ErrorTypeInvalidCalendarValue, Code: CodeInvalidCalendarValue, Message: "invalid calendar value"}
	ErrInternal             = &Error{Type: ErrorTypeInternal, Code: CodeDescriptorContract, Message: "internal error"}
)

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches a target *Error with the same Type, and the same Code when
// both carry one.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if !errors.As(target, &targetErr) {
		return false
	}
	if e.Type != targetErr.Type {
		return false
	}
	if e.Code != "" && targetErr.Code != "" {
		return e.Code == targetErr.Code
	}
	return true
}

// AttemptedDescriptors returns the IDs of the descriptors that were tried.
func (e *Error) AttemptedDescriptors() []string {
	ids := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		ids[i] = a.Descriptor
	}
	return ids
}

// Diagnostics renders one line per attempted descriptor.
func (e *Error) Diagnostics() string {
	var sb strings.Builder
	for _, a := range e.Attempts {
		fmt.Fprintf(&sb, "%s: %s\n", a.Descriptor, a.Reason)
	}
	return sb.String()
}

// GetType returns the ErrorType of err, or ErrorTypeUnknown.
func GetType(err error) ErrorType {
	var typedErr *Error
	if errors.As(err, &typedErr) {
		return typedErr.Type
	}
	return ErrorTypeUnknown
}

// IsEmptyInput reports whether err is an empty input failure.
func IsEmptyInput(err error) bool {
	return GetType(err) == ErrorTypeEmptyInput
}

// IsNoFormatMatched reports whether err is a no-match failure.
func IsNoFormatMatched(err error) bool {
	return GetType(err) == ErrorTypeNoFormatMatched
}

// IsInvalidCalendarValue reports whether err is a calendar validation failure.
func IsInvalidCalendarValue(err error) bool {
	return GetType(err) == ErrorTypeInvalidCalendarValue
}

// maxQuotedInput is how much of the input an error message repeats.
const maxQuotedInput = 64

func quoteInput(input string) string {
	return truncate(strings.TrimSpace(input), maxQuotedInput)
}

// IsInternal reports whether err is a descriptor contract violation.
func IsInternal(err error) bool {
	return GetType(err) == ErrorTypeInternal
}

func newEmptyInputError(input string) *Error {
	return &Error{
		Type:    ErrorTypeEmptyInput,
		Code:    CodeEmptyInput,
		Message: "empty input",
		Input:   input,
	}
}

func newNoFormatMatchedError(input string, attempts []Attempt) *Error {
	return &Error{
		Type:     ErrorTypeNoFormatMatched,
		Code:     CodeNoFormatMatched,
		Message:  fmt.Sprintf("no known date format matched %q (tried %d formats)", quoteInput(input), len(attempts)),
		Input:    input,
		Attempts: attempts,
	}
}

func newInvalidCalendarValueError(input string, d *Descriptor, rerr *rangeError) *Error {
	return &Error{
		Type:       ErrorTypeInvalidCalendarValue,
		Code:       CodeInvalidCalendarValue,
		Message:    fmt.Sprintf("invalid calendar value in %q (format %s): %s", quoteInput(input), d.ID(), rerr.reason),
		Input:      input,
		Descriptor: d.ID(),
		Field:      rerr.field,
	}
}

func newContractError(input string, d *Descriptor, missing Field) *Error {
	return &Error{
		Type:       ErrorTypeInternal,
		Code:       CodeDescriptorContract,
		Message:    fmt.Sprintf("internal error: format %s matched %q without supplying %s", d.ID(), quoteInput(input), missing),
		Input:      input,
		Descriptor: d.ID(),
		Field:      missing,
	}
}
