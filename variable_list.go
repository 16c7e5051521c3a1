package cornflakes

import "fmt"

// Elem is the constraint on the elements of a VariableList: T must be a
// serializable type whose methods are defined on *T.
type Elem[T any] interface {
	*T
	HeaderRepr
	CheckDeepEquality(*T) bool
}

// VariableList is a repeated field of bytes, strings or messages.
//
// Its slot holds a forward pointer whose size is the element count. The
// pointer leads to one 8-byte slot per element, followed by the out-of-line
// data of the elements, back to back.
type VariableList[T any, P Elem[T]] struct {
	elems    []T
	numSpace int
}

// Init discards the content of the list and makes room for n elements.
func (l *VariableList[T, P]) Init(n int) {
	l.elems = make([]T, 0, n)
	l.numSpace = n
}

func (l *VariableList[T, P]) Len() int { return len(l.elems) }
func (l *VariableList[T, P]) Cap() int { return l.numSpace }

// Append adds v at the end of the list. It panics if the list is full.
func (l *VariableList[T, P]) Append(v T) {
	if len(l.elems) >= l.numSpace {
		panic(fmt.Sprintf("cornflakes: append to a full list of capacity %d", l.numSpace))
	}
	l.elems = append(l.elems, v)
}

func (l *VariableList[T, P]) Replace(i int, v T) {
	if i < 0 || i >= len(l.elems) {
		panic(fmt.Sprintf("cornflakes: replace index %d out of range [0:%d]", i, len(l.elems)))
	}
	l.elems[i] = v
}

// Get returns a pointer to element i.
func (l *VariableList[T, P]) Get(i int) P { return &l.elems[i] }

// Elems returns the elements of the list.
func (l *VariableList[T, P]) Elems() []T { return l.elems }

func (l *VariableList[T, P]) CheckDeepEquality(other *VariableList[T, P]) bool {
	if len(l.elems) != len(other.elems) {
		return false
	}
	for i := range l.elems {
		if !P(&l.elems[i]).CheckDeepEquality(&other.elems[i]) {
			return false
		}
	}
	return true
}

func (*VariableList[T, P]) NumFields() int          { return 1 }
func (*VariableList[T, P]) ConstantHeaderSize() int { return ForwardPointerSize }
func (*VariableList[T, P]) DynamicHeaderStart() int { return 0 }
func (*VariableList[T, P]) IsList() bool            { return true }

func (l *VariableList[T, P]) DynamicHeaderSize() int {
	n := len(l.elems) * ForwardPointerSize
	for i := range l.elems {
		n += P(&l.elems[i]).DynamicHeaderSize()
	}
	return n
}

func (l *VariableList[T, P]) NumScatterGatherEntries() int {
	n := 0
	for i := range l.elems {
		n += P(&l.elems[i]).NumScatterGatherEntries()
	}
	return n
}

// elemWithRef reports whether elements are reached through a forward
// pointer. Lists already encode their own indirection and leaves have no
// out-of-line header, so only messages are.
func elemWithRef(p HeaderRepr) bool {
	return p.DynamicHeaderSize() != 0 && !p.IsList()
}

func (l *VariableList[T, P]) InnerSerialize(header []byte, constantOffset, dynamicOffset int, sges []Sge, offsets []int) error {
	count := len(l.elems)
	if err := CheckHeader(header, constantOffset, ForwardPointerSize); err != nil {
		return err
	}
	if err := CheckHeader(header, dynamicOffset, count*ForwardPointerSize); err != nil {
		return err
	}
	MutForwardPointerAt(header, constantOffset).Write(count, dynamicOffset)

	cursor := dynamicOffset + count*ForwardPointerSize
	for i := range l.elems {
		p := P(&l.elems[i])
		n := p.NumScatterGatherEntries()
		if len(sges) < n || len(offsets) < n {
			return ErrCapacity.New(fmt.Sprintf("list element %d needs %d scatter-gather entries, %d left", i, n, len(sges)))
		}
		slot := dynamicOffset + i*ForwardPointerSize
		if err := InnerSerializeWithRef(p, header, slot, cursor, sges[:n], offsets[:n], elemWithRef(p)); err != nil {
			return err
		}
		cursor += p.DynamicHeaderSize()
		sges, offsets = sges[n:], offsets[n:]
	}
	return nil
}

func (l *VariableList[T, P]) InnerDeserialize(buf Buffer, headerOffset int) error {
	ptr, err := ReadForwardPointer(buf, headerOffset)
	if err != nil {
		return err
	}
	count, dynamicOffset := ptr.Size(), ptr.Offset()
	if count > 0 {
		if err := checkForward("list", headerOffset, dynamicOffset); err != nil {
			return err
		}
	}
	if err := checkBounds("list", buf.Len(), dynamicOffset, count*ForwardPointerSize); err != nil {
		return err
	}
	if cap(l.elems) < count {
		l.elems = make([]T, count)
	} else {
		l.elems = l.elems[:count]
		clear(l.elems)
	}
	l.numSpace = count
	for i := range l.elems {
		p := P(&l.elems[i])
		slot := dynamicOffset + i*ForwardPointerSize
		if err := InnerDeserializeWithRef(p, buf, slot, elemWithRef(p)); err != nil {
			return err
		}
	}
	return nil
}
