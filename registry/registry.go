// Package registry implements the process-wide, deduplicating table that
// maps format-string literals to stable 16-bit IDs.
//
// A call site interns its format string at most once per process (spec §4.3
// "Design Notes": compile-time resolution means the registry is consulted
// lazily on first use, not on every log call). Steady-state traffic is all
// on the producer's hot path, which never touches the registry. The table is
// sharded by hash.ID(s) to keep the exclusive lock narrow during warm-up,
// when many goroutines may intern distinct literals concurrently; a single
// global atomic counter still hands out IDs so they remain sequential and
// collision-free across shards.
package registry

import (
	"sync"
	"sync/atomic"

	"github.com/Shai-Koffman/binary-logger/internal/hash"
)

const numShards = 16

type shard struct {
	mu sync.RWMutex
	m  map[string]uint16
}

// Registry interns format-string literals into sequential, non-zero 16-bit
// IDs and resolves IDs back to strings. The zero value is not usable; use
// New. A Registry is safe for concurrent use from any number of goroutines.
type Registry struct {
	shards  [numShards]*shard
	nextID  uint32 // atomic; next ID to hand out, starting at 1
	revMu   sync.RWMutex
	reverse []string // reverse[i] holds the string for ID i+1
}

// New creates an empty Registry. ID 0 is reserved and never assigned.
func New() *Registry {
	r := &Registry{nextID: 1}
	for i := range r.shards {
		r.shards[i] = &shard{m: make(map[string]uint16)}
	}

	return r
}

func (r *Registry) shardFor(s string) *shard {
	return r.shards[hash.ID(s)%numShards]
}

// Intern returns s's ID, assigning the next sequential ID if s has not been
// seen before. Concurrent calls interning the same string all observe the
// same ID (spec P1); distinct strings receive distinct, monotonically
// increasing IDs in first-registration order (spec P2). The empty string is
// a valid input and receives a normal, non-zero ID.
func (r *Registry) Intern(s string) uint16 {
	sh := r.shardFor(s)

	sh.mu.RLock()
	if id, ok := sh.m[s]; ok {
		sh.mu.RUnlock()
		return id
	}
	sh.mu.RUnlock()

	sh.mu.Lock()
	defer sh.mu.Unlock()

	// Re-check under the exclusive lock: another goroutine may have
	// interned s while we waited.
	if id, ok := sh.m[s]; ok {
		return id
	}

	id := uint16(atomic.AddUint32(&r.nextID, 1) - 1)
	sh.m[s] = id
	r.storeReverse(id, s)

	return id
}

func (r *Registry) storeReverse(id uint16, s string) {
	r.revMu.Lock()
	defer r.revMu.Unlock()

	idx := int(id) - 1
	for len(r.reverse) <= idx {
		r.reverse = append(r.reverse, "")
	}
	r.reverse[idx] = s
}

// Resolve returns the format string for id, or "", false if id is 0 or has
// not been assigned.
func (r *Registry) Resolve(id uint16) (string, bool) {
	if id == 0 {
		return "", false
	}

	r.revMu.RLock()
	defer r.revMu.RUnlock()

	idx := int(id) - 1
	if idx >= len(r.reverse) {
		return "", false
	}

	return r.reverse[idx], true
}

// Len returns the number of distinct strings interned so far.
func (r *Registry) Len() int {
	return int(atomic.LoadUint32(&r.nextID)) - 1
}

// global is the process-wide registry backing the package-level Intern and
// Resolve helpers, mirroring the source's process-global string_registry.
var global = New()

// Global returns the process-wide Registry shared by default producers and
// decoders.
func Global() *Registry {
	return global
}

// Intern interns s in the process-wide registry.
func Intern(s string) uint16 {
	return global.Intern(s)
}

// Resolve resolves id in the process-wide registry.
func Resolve(id uint16) (string, bool) {
	return global.Resolve(id)
}
