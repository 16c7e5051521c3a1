package cornflakes

import "fmt"

// OwnedList is a list of scalars backed by memory the message owns.
type OwnedList[T Scalar] struct {
	buf    []byte
	numSet int
}

// NewOwnedList returns an empty list with room for n elements.
func NewOwnedList[T Scalar](n int) OwnedList[T] {
	return OwnedList[T]{buf: make([]byte, n*ScalarSize[T]())}
}

func (l *OwnedList[T]) Len() int { return l.numSet }
func (l *OwnedList[T]) Cap() int { return len(l.buf) / ScalarSize[T]() }

// Append adds v at the end of the list. It panics if the list is full.
func (l *OwnedList[T]) Append(v T) {
	if l.numSet >= l.Cap() {
		panic(fmt.Sprintf("cornflakes: append to a full list of capacity %d", l.Cap()))
	}
	w := ScalarSize[T]()
	PutScalar(l.buf[l.numSet*w:], v)
	l.numSet++
}

// Replace overwrites element i, which must have been appended already.
func (l *OwnedList[T]) Replace(i int, v T) {
	if i < 0 || i >= l.numSet {
		panic(fmt.Sprintf("cornflakes: replace index %d out of range [0:%d]", i, l.numSet))
	}
	PutScalar(l.buf[i*ScalarSize[T]():], v)
}

func (l *OwnedList[T]) Get(i int) T {
	if i < 0 || i >= l.numSet {
		panic(fmt.Sprintf("cornflakes: index %d out of range [0:%d]", i, l.numSet))
	}
	return GetScalar[T](l.buf[i*ScalarSize[T]():])
}

func (l *OwnedList[T]) bytes() []byte { return l.buf[:l.numSet*ScalarSize[T]()] }

// RefList is a read-only list of scalars borrowed from a received buffer.
// It has no mutators: call List.ToOwned to get a modifiable copy.
type RefList[T Scalar] struct {
	buf []byte
}

func (l RefList[T]) Len() int { return len(l.buf) / ScalarSize[T]() }

func (l RefList[T]) Get(i int) T {
	if i < 0 || i >= l.Len() {
		panic(fmt.Sprintf("cornflakes: index %d out of range [0:%d]", i, l.Len()))
	}
	return GetScalar[T](l.buf[i*ScalarSize[T]():])
}

// List is a repeated scalar field. It holds either an OwnedList, when built
// by the application, or a RefList, when decoded from a received buffer.
// Elements are packed little-endian in the dynamic region of the enclosing
// message.
type List[T Scalar] struct {
	owned OwnedList[T]
	ref   RefList[T]
	isRef bool
}

// Init discards the content of the list and makes room for n elements.
func (l *List[T]) Init(n int) {
	*l = List[T]{owned: NewOwnedList[T](n)}
}

// IsRef reports whether the list borrows a received buffer.
func (l *List[T]) IsRef() bool { return l.isRef }

// Owned returns the owned variant of the list. It panics if the list was
// decoded from a received buffer.
func (l *List[T]) Owned() *OwnedList[T] {
	if l.isRef {
		panic("cornflakes: mutation of a list borrowed from a received buffer")
	}
	return &l.owned
}

// Ref returns a read-only view of the list.
func (l *List[T]) Ref() RefList[T] {
	if l.isRef {
		return l.ref
	}
	return RefList[T]{buf: l.owned.bytes()}
}

func (l *List[T]) Append(v T)         { l.Owned().Append(v) }
func (l *List[T]) Replace(i int, v T) { l.Owned().Replace(i, v) }

func (l *List[T]) Get(i int) T { return l.Ref().Get(i) }
func (l *List[T]) Len() int    { return l.Ref().Len() }

// ToOwned copies the list into memory owned by the returned list.
func (l *List[T]) ToOwned() List[T] {
	src := l.Ref()
	owned := OwnedList[T]{buf: make([]byte, len(src.buf))}
	copy(owned.buf, src.buf)
	owned.numSet = src.Len()
	return List[T]{owned: owned}
}

// Values copies the elements of the list into a slice.
func (l *List[T]) Values() []T {
	r := l.Ref()
	values := make([]T, r.Len())
	for i := range values {
		values[i] = r.Get(i)
	}
	return values
}

func (l *List[T]) CheckDeepEquality(other *List[T]) bool {
	a, b := l.Ref(), other.Ref()
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !ScalarEqual(a.Get(i), b.Get(i)) {
			return false
		}
	}
	return true
}

func (*List[T]) NumFields() int               { return 1 }
func (*List[T]) ConstantHeaderSize() int      { return ForwardPointerSize }
func (*List[T]) DynamicHeaderStart() int      { return 0 }
func (*List[T]) NumScatterGatherEntries() int { return 0 }
func (*List[T]) IsList() bool                 { return true }

func (l *List[T]) DynamicHeaderSize() int { return len(l.Ref().buf) }

func (l *List[T]) InnerSerialize(header []byte, constantOffset, dynamicOffset int, _ []Sge, _ []int) error {
	data := l.Ref().buf
	if err := CheckHeader(header, constantOffset, ForwardPointerSize); err != nil {
		return err
	}
	if err := CheckHeader(header, dynamicOffset, len(data)); err != nil {
		return err
	}
	MutForwardPointerAt(header, constantOffset).Write(l.Len(), dynamicOffset)
	copy(header[dynamicOffset:], data)
	return nil
}

func (l *List[T]) InnerDeserialize(buf Buffer, headerOffset int) error {
	ptr, err := ReadForwardPointer(buf, headerOffset)
	if err != nil {
		return err
	}
	data, err := buf.ContiguousSlice(ptr.Offset(), ptr.Size()*ScalarSize[T]())
	if err != nil {
		return err
	}
	*l = List[T]{ref: RefList[T]{buf: data}, isRef: true}
	return nil
}
