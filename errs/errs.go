// Package errs collects the sentinel errors shared across the binlog
// packages, so callers can compare with errors.Is instead of parsing
// messages.
package errs

import "errors"

var (
	// ErrRecordTooLarge is returned when a record's encoded payload exceeds
	// the 1024-byte payload cap, or when the full frame would not fit in an
	// empty buffer.
	ErrRecordTooLarge = errors.New("binlog: record too large")

	// ErrTooManyArgs is returned when a call site passes more than 255
	// arguments to a single record.
	ErrTooManyArgs = errors.New("binlog: too many arguments")

	// ErrMalformedStream is returned by the decoder when a frame has an
	// unknown record_type or is truncated before its declared fields end.
	ErrMalformedStream = errors.New("binlog: malformed record stream")

	// ErrUnknownFormat names the condition of a frame's format_id not being
	// present in the registry. The decoder does not return it: such an entry
	// is returned with FormatKnown = false and Render prints a diagnostic
	// string naming the ID and arguments.
	ErrUnknownFormat = errors.New("binlog: unknown format id")

	// ErrInvalidCapacity is returned by producer construction when CAP is
	// smaller than the minimum buffer size.
	ErrInvalidCapacity = errors.New("binlog: invalid buffer capacity")

	// ErrNilSink is returned by producer construction when no sink is
	// supplied.
	ErrNilSink = errors.New("binlog: sink must not be nil")

	// ErrClosed is returned by Append/Flush when called after Close.
	ErrClosed = errors.New("binlog: producer is closed")
)
