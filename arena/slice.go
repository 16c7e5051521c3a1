package arena

// Slice is a handle to bytes allocated in an arena. Unlike the slices
// returned by Alloc, it panics when used after the arena was reset.
type Slice struct {
	arena      *Arena
	generation uint64
	buf        []byte
}

// AllocSlice is like Alloc but returns a checked handle.
func (a *Arena) AllocSlice(n int) Slice {
	return Slice{arena: a, generation: a.generation, buf: a.Alloc(n)}
}

// CopySlice is like Copy but returns a checked handle.
func (a *Arena) CopySlice(b []byte) Slice {
	return Slice{arena: a, generation: a.generation, buf: a.Copy(b)}
}

// Valid reports whether the arena was not reset since s was allocated.
func (s Slice) Valid() bool {
	return s.arena != nil && s.arena.generation == s.generation
}

// Bytes returns the bytes of s.
func (s Slice) Bytes() []byte {
	if !s.Valid() {
		panic("arena: slice used after reset")
	}
	return s.buf
}

func (s Slice) Len() int { return len(s.buf) }
