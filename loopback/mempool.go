package loopback

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

// Mempool is a registered memory region split into fixed-size buffers.
//
// Any slice pointing into the region can be transmitted without a copy.
// Buffers are reference counted: a buffer returns to the free list when the
// last holder releases it, so a received segment can alias the memory of
// the buffer it was sent from.
type Mempool struct {
	slab    []byte
	size    int
	refs    []atomic.Int32
	buffers []Buffer

	mu   sync.Mutex
	free []int
}

// NewMempool allocates a pool of count buffers of size bytes.
func NewMempool(count, size int) *Mempool {
	p := &Mempool{
		slab:    make([]byte, count*size),
		size:    size,
		refs:    make([]atomic.Int32, count),
		buffers: make([]Buffer, count),
		free:    make([]int, count),
	}
	for i := range p.buffers {
		p.buffers[i] = Buffer{pool: p, index: i, data: p.slab[i*size : (i+1)*size : (i+1)*size]}
		p.free[i] = count - 1 - i
	}
	return p
}

// BufferSize returns the size of the buffers of p.
func (p *Mempool) BufferSize() int { return p.size }

// NumFree returns the number of buffers available for allocation.
func (p *Mempool) NumFree() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Alloc returns a buffer with a reference count of one.
func (p *Mempool) Alloc() (*Buffer, error) {
	p.mu.Lock()
	n := len(p.free)
	if n == 0 {
		p.mu.Unlock()
		return nil, ErrMempoolExhausted.New()
	}
	i := p.free[n-1]
	p.free = p.free[:n-1]
	p.mu.Unlock()

	p.refs[i].Store(1)
	return &p.buffers[i], nil
}

// Copy allocates a buffer holding a copy of b and returns the buffer along
// with the registered slice of its first len(b) bytes.
func (p *Mempool) Copy(b []byte) (*Buffer, []byte, error) {
	if len(b) > p.size {
		return nil, nil, ErrPacketTooLarge.New(len(b), p.size)
	}
	buf, err := p.Alloc()
	if err != nil {
		return nil, nil, err
	}
	n := copy(buf.data, b)
	return buf, buf.data[:n:n], nil
}

// IsRegistered reports whether b lies entirely within one buffer of p.
func (p *Mempool) IsRegistered(b []byte) bool {
	_, ok := p.index(b)
	return ok
}

func (p *Mempool) index(b []byte) (int, bool) {
	if len(b) == 0 || len(p.slab) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.slab)))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if addr < base || addr-base >= uintptr(len(p.slab)) {
		return 0, false
	}
	off := int(addr - base)
	i := off / p.size
	if off+len(b) > (i+1)*p.size {
		return 0, false
	}
	return i, true
}

func (p *Mempool) retain(i int) {
	if p.refs[i].Add(1) <= 1 {
		panic("loopback: retained a free buffer")
	}
}

func (p *Mempool) release(i int) {
	switch n := p.refs[i].Add(-1); {
	case n > 0:
	case n == 0:
		p.mu.Lock()
		p.free = append(p.free, i)
		p.mu.Unlock()
	default:
		panic("loopback: buffer released too many times")
	}
}

// Buffer is a buffer of a Mempool.
type Buffer struct {
	pool  *Mempool
	index int
	data  []byte
}

// Bytes returns the whole buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Retain increments the reference count of b.
func (b *Buffer) Retain() { b.pool.retain(b.index) }

// Release decrements the reference count of b, returning it to its pool
// when it reaches zero.
func (b *Buffer) Release() { b.pool.release(b.index) }

// RefCount returns the current reference count of b.
func (b *Buffer) RefCount() int { return int(b.pool.refs[b.index].Load()) }

func (p *Mempool) count() int { return len(p.buffers) }
