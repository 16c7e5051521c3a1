// Package arena implements batch-scoped allocation for serialization
// contexts.
//
// A server processes requests in batches. Everything allocated while
// handling a batch (header buffers, scatter-gather arrays, copies of
// response data) lives exactly until the batch has been transmitted, at which
// point the arena is reset and its memory is reused for the next batch.
// Nothing is freed individually.
//
// Buffers received from the datapath may be aliased by responses without
// being copied: the arena retains them and releases them on Reset, once the
// responses referencing them are gone.
package arena

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/stealthrocket/cornflakes"
)

// DefaultChunkSize is the size of the byte chunks of an arena created with
// a non-positive chunk size.
const DefaultChunkSize = 64 << 10

const defaultSgeCount = 256

// Releaser is implemented by reference-counted buffers, such as
// *cornflakes.ReceivedPkt.
type Releaser interface {
	Release()
}

// Arena is a bump allocator reset once per batch.
//
// Arenas are not safe for concurrent use. Each processing queue owns its
// own arena.
type Arena struct {
	chunkSize int
	chunks    [][]byte
	chunk     int
	off       int

	sges    []cornflakes.Sge
	sgeOff  int
	offsets []int
	offOff  int

	retained   []Releaser
	generation uint64
	allocated  int
}

var _ cornflakes.Allocator = (*Arena)(nil)

// New returns an arena allocating memory in chunks of chunkSize bytes.
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{chunkSize: chunkSize}
}

// Alloc returns n zeroed bytes valid until the next Reset. The returned
// slice cannot grow into memory handed out by later allocations.
func (a *Arena) Alloc(n int) []byte {
	if n < 0 {
		panic("arena: negative allocation size")
	}
	a.allocated += n
	if n > a.chunkSize {
		return make([]byte, n)
	}
	if a.chunk == len(a.chunks) || a.off+n > a.chunkSize {
		a.nextChunk()
	}
	b := a.chunks[a.chunk][a.off : a.off+n : a.off+n]
	a.off += n
	clear(b)
	return b
}

func (a *Arena) nextChunk() {
	if a.chunk < len(a.chunks) && a.off > 0 {
		a.chunk++
	}
	if a.chunk == len(a.chunks) {
		a.chunks = append(a.chunks, make([]byte, a.chunkSize))
	}
	a.off = 0
}

// Copy returns a copy of b allocated in the arena.
func (a *Arena) Copy(b []byte) []byte {
	c := a.Alloc(len(b))
	copy(c, b)
	return c
}

// AllocSges returns n zeroed scatter-gather entries valid until the next
// Reset.
func (a *Arena) AllocSges(n int) []cornflakes.Sge {
	if a.sgeOff+n > len(a.sges) {
		a.sges = make([]cornflakes.Sge, max(2*len(a.sges), n, defaultSgeCount))
		a.sgeOff = 0
	}
	s := a.sges[a.sgeOff : a.sgeOff+n : a.sgeOff+n]
	a.sgeOff += n
	clear(s)
	return s
}

// AllocOffsets returns n zeroed header offsets valid until the next Reset.
func (a *Arena) AllocOffsets(n int) []int {
	if a.offOff+n > len(a.offsets) {
		a.offsets = make([]int, max(2*len(a.offsets), n, defaultSgeCount))
		a.offOff = 0
	}
	s := a.offsets[a.offOff : a.offOff+n : a.offOff+n]
	a.offOff += n
	clear(s)
	return s
}

// Retain keeps r alive until the next Reset, which releases it.
func (a *Arena) Retain(r Releaser) {
	a.retained = append(a.retained, r)
}

// Reset releases every retained buffer and makes the memory of the arena
// available again. Memory obtained before the call must not be used after
// it; Slice handles detect such uses.
func (a *Arena) Reset() {
	for i, r := range a.retained {
		r.Release()
		a.retained[i] = nil
	}
	a.retained = a.retained[:0]
	a.chunk, a.off = 0, 0
	a.sgeOff, a.offOff = 0, 0
	a.allocated = 0
	a.generation++
}

// Generation returns the number of times the arena was reset.
func (a *Arena) Generation() uint64 { return a.generation }

// Allocated returns the number of bytes allocated since the last Reset.
func (a *Arena) Allocated() int { return a.allocated }

// NumRetained returns the number of buffers waiting for the next Reset.
func (a *Arena) NumRetained() int { return len(a.retained) }

func (a *Arena) String() string {
	return fmt.Sprintf("arena(generation=%d allocated=%s chunks=%d retained=%d)",
		a.generation, humanize.Bytes(uint64(a.allocated)), len(a.chunks), len(a.retained))
}

// AllocContext returns a header buffer and a scatter-gather array for
// serializing v, both allocated in a.
func AllocContext(a *Arena, v cornflakes.HeaderRepr) ([]byte, *cornflakes.OrderedSga) {
	return cornflakes.AllocContextIn(v, a)
}
