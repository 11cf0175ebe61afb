// Package pool provides the fixed-capacity byte buffer used by the
// double-buffered producer.
//
// Unlike mebo's ByteBuffer, a FixedBuffer never grows: its capacity is fixed
// at construction and the producer's hot path must never allocate. Pooling
// still pays off because producers are created and destroyed with thread
// lifetimes (spec §3 "Lifecycle"); reusing same-capacity buffers across
// short-lived producers avoids repeated large allocations.
package pool

import "sync"

// FixedBuffer is a byte array of fixed capacity. B always has len(B) ==
// cap(B); callers track their own write position, by convention starting at
// offset 8 to leave room for the buffer container header (spec §6).
type FixedBuffer struct {
	B []byte
}

// NewFixedBuffer allocates a FixedBuffer of exactly capacity bytes.
func NewFixedBuffer(capacity int) *FixedBuffer {
	return &FixedBuffer{B: make([]byte, capacity)}
}

// Cap returns the buffer's fixed capacity.
func (b *FixedBuffer) Cap() int {
	return len(b.B)
}

// FixedBufferPool pools FixedBuffers of one fixed capacity.
type FixedBufferPool struct {
	pool     sync.Pool
	capacity int
}

// NewFixedBufferPool creates a pool of FixedBuffers of the given capacity.
func NewFixedBufferPool(capacity int) *FixedBufferPool {
	return &FixedBufferPool{
		capacity: capacity,
		pool: sync.Pool{
			New: func() any { return NewFixedBuffer(capacity) },
		},
	}
}

// Get retrieves a FixedBuffer from the pool, allocating a new one if empty.
func (p *FixedBufferPool) Get() *FixedBuffer {
	fb, _ := p.pool.Get().(*FixedBuffer)
	return fb
}

// Put returns a FixedBuffer to the pool. Buffers of the wrong capacity are
// discarded rather than risk handing out a mis-sized buffer later.
func (p *FixedBufferPool) Put(fb *FixedBuffer) {
	if fb == nil || len(fb.B) != p.capacity {
		return
	}

	p.pool.Put(fb)
}

var (
	poolsMu    sync.Mutex
	poolsByCap = map[int]*FixedBufferPool{}
)

// ForCapacity returns the process-wide FixedBufferPool for the given
// capacity, creating it on first use.
func ForCapacity(capacity int) *FixedBufferPool {
	poolsMu.Lock()
	defer poolsMu.Unlock()

	p, ok := poolsByCap[capacity]
	if !ok {
		p = NewFixedBufferPool(capacity)
		poolsByCap[capacity] = p
	}

	return p
}
