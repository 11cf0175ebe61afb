// Package decoder reconstructs timestamped, human-readable entries from a
// byte stream produced by package producer: zero or more concatenated
// buffer images, each an 8-byte length-prefixed run of record frames (spec
// §4.7).
package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Shai-Koffman/binary-logger/format"
)

// ArgKind classifies a decoded argument by the size-based heuristic in
// spec §4.7 step 7. The heuristic is lossy by construction: a 4-byte
// float32 is indistinguishable from a 32-bit integer, and an 8-byte int64
// is indistinguishable from a float64. See DESIGN.md for why this
// ambiguity is preserved rather than resolved.
type ArgKind uint8

const (
	// KindBool is a 1-byte argument.
	KindBool ArgKind = iota
	// KindInt32 is a 4-byte argument, rendered as an int32 in host byte order.
	KindInt32
	// KindFloat64 is an 8-byte argument, rendered as a float64 bit pattern in host byte order.
	KindFloat64
	// KindString is a non-{1,4,8}-byte argument that is valid UTF-8.
	KindString
	// KindBytes is a non-{1,4,8}-byte argument that is not valid UTF-8.
	KindBytes
)

// Arg is one decoded, classified argument.
type Arg struct {
	Kind  ArgKind
	Bool  bool
	Int32 int32
	Float float64
	Str   string
	Bytes []byte
}

// String renders a per the stringification rules used when substituting a
// {} placeholder (spec §4.7 step 8).
func (a Arg) String() string {
	switch a.Kind {
	case KindBool:
		return strconv.FormatBool(a.Bool)
	case KindInt32:
		return strconv.FormatInt(int64(a.Int32), 10)
	case KindFloat64:
		return strconv.FormatFloat(a.Float, 'g', -1, 64)
	case KindString:
		return a.Str
	case KindBytes:
		return fmt.Sprintf("% x", a.Bytes)
	default:
		return format.MissingArgSentinel
	}
}

// Entry is one decoded record: its reconstructed absolute timestamp, its
// format ID, the format string resolved from the registry (if known), and
// its classified arguments.
type Entry struct {
	Timestamp    uint64
	FormatID     uint16
	FormatString string
	FormatKnown  bool
	Args         []Arg
}

// Render substitutes each {} placeholder in the entry's format string with
// its corresponding stringified argument, in order. A placeholder with no
// matching argument renders as format.MissingArgSentinel. If the format
// string is unknown (UnknownFormat, spec §7), Render falls back to a
// diagnostic string naming the format ID and raw argument values.
func (e Entry) Render() string {
	if !e.FormatKnown {
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = a.String()
		}

		return fmt.Sprintf("<unknown format %d>(%s)", e.FormatID, strings.Join(parts, ", "))
	}

	var b strings.Builder
	s := e.FormatString
	argIdx := 0

	for {
		i := strings.Index(s, "{}")
		if i < 0 {
			b.WriteString(s)
			break
		}

		b.WriteString(s[:i])

		if argIdx < len(e.Args) {
			b.WriteString(e.Args[argIdx].String())
		} else {
			b.WriteString(format.MissingArgSentinel)
		}
		argIdx++

		s = s[i+2:]
	}

	return b.String()
}
