// Package binlog is a binary, deferred-formatting logging engine: its hot
// path appends a compact binary record (format-string ID, raw argument
// bytes, and a compressed timestamp) into a private buffer in tens of
// nanoseconds without heap allocation or I/O. A sink later drains full
// buffers to durable storage, and a decoder reconstructs human-readable
// text from the captured bytes offline.
//
// # Basic usage
//
// Logging from one goroutine, with the active buffer periodically handed
// off to a sink:
//
//	file, _ := os.Create("app.binlog")
//	p, _ := binlog.NewProducer(64*1024, sink.NewFileSink(file))
//	defer p.Close()
//
//	id := binlog.Intern("request {} took {} ms")
//	p.Append(id, record.String(reqID), record.Int32(elapsedMs))
//
// Decoding a captured stream back into text:
//
//	data, _ := os.ReadFile("app.binlog")
//	dec := binlog.NewDecoder(data)
//	for {
//	    entry, err := dec.ReadEntry()
//	    if err != nil {
//	        // decoder.IsExhausted(err) tells a clean end from a malformed frame.
//	        break
//	    }
//	    fmt.Println(entry.Render())
//	}
//
// # Package structure
//
// This file provides convenience wrappers around the lower-level
// tick, clock, registry, record, producer, sink, and decoder packages.
// Advanced callers — multiple producers with distinct sinks, a custom
// Compressor, a registry scoped to a single test — should use those
// packages directly.
package binlog

import (
	"github.com/Shai-Koffman/binary-logger/decoder"
	"github.com/Shai-Koffman/binary-logger/producer"
	"github.com/Shai-Koffman/binary-logger/record"
	"github.com/Shai-Koffman/binary-logger/registry"
	"github.com/Shai-Koffman/binary-logger/sink"
)

// Arg is a logging call-site argument. See the record package for its
// constructors (record.Int32, record.String, and so on).
type Arg = record.Arg

// Producer appends records into a double-buffered, per-goroutine log
// stream. See the producer package for the full API.
type Producer = producer.Producer

// Entry is one decoded, timestamped log record.
type Entry = decoder.Entry

// Sink receives filled buffer images from a Producer.
type Sink = sink.Sink

// Intern registers fmtString in the process-wide format registry,
// returning its stable, non-zero ID. Call sites should intern their format
// string once (typically via a package-level var) rather than on every log
// call.
func Intern(fmtString string) uint16 {
	return registry.Intern(fmtString)
}

// NewProducer constructs a Producer with the given buffer capacity and
// sink. The Producer does not consult any registry; the format IDs passed
// to its Append come from Intern.
func NewProducer(capacity int, snk Sink, opts ...producer.Option) (*Producer, error) {
	return producer.New(capacity, snk, opts...)
}

// NewDecoder constructs a Decoder over a captured byte stream, resolving
// format IDs against the process-wide registry.
func NewDecoder(data []byte) *decoder.Decoder {
	return decoder.New(data, registry.Global())
}
