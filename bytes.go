package cornflakes

import (
	"bytes"
	"unsafe"
)

// CFBytes is a bytes field. Its content is never copied into the header:
// serialization records it as a scatter-gather entry and deserialization
// borrows it from the received buffer.
type CFBytes struct {
	ptr []byte
}

// NewCFBytes wraps b without copying it. b must not be modified until the
// message it is part of has been sent.
func NewCFBytes(b []byte) CFBytes { return CFBytes{ptr: b} }

func (b CFBytes) Bytes() []byte { return b.ptr }
func (b CFBytes) Len() int      { return len(b.ptr) }

func (b *CFBytes) CheckDeepEquality(other *CFBytes) bool { return bytes.Equal(b.ptr, other.ptr) }

func (*CFBytes) NumFields() int               { return 1 }
func (*CFBytes) ConstantHeaderSize() int      { return ForwardPointerSize }
func (*CFBytes) DynamicHeaderStart() int      { return 0 }
func (*CFBytes) DynamicHeaderSize() int       { return 0 }
func (*CFBytes) NumScatterGatherEntries() int { return 1 }
func (*CFBytes) IsList() bool                 { return false }

func (b *CFBytes) InnerSerialize(header []byte, constantOffset, _ int, sges []Sge, offsets []int) error {
	return serializeLeaf(b.ptr, header, constantOffset, sges, offsets)
}

func (b *CFBytes) InnerDeserialize(buf Buffer, headerOffset int) (err error) {
	b.ptr, err = deserializeLeaf(buf, headerOffset)
	return err
}

// CFString is a string field, laid out exactly like CFBytes.
type CFString struct {
	ptr []byte
}

// NewCFString wraps s without copying it.
func NewCFString(s string) CFString {
	return CFString{ptr: unsafe.Slice(unsafe.StringData(s), len(s))}
}

// String returns a copy of the string, safe to keep after the buffer it was
// decoded from is released.
func (s CFString) String() string { return string(s.ptr) }

// Bytes returns the borrowed bytes of the string. They must not be modified.
func (s CFString) Bytes() []byte { return s.ptr }
func (s CFString) Len() int      { return len(s.ptr) }

func (s *CFString) CheckDeepEquality(other *CFString) bool { return bytes.Equal(s.ptr, other.ptr) }

func (*CFString) NumFields() int               { return 1 }
func (*CFString) ConstantHeaderSize() int      { return ForwardPointerSize }
func (*CFString) DynamicHeaderStart() int      { return 0 }
func (*CFString) DynamicHeaderSize() int       { return 0 }
func (*CFString) NumScatterGatherEntries() int { return 1 }
func (*CFString) IsList() bool                 { return false }

func (s *CFString) InnerSerialize(header []byte, constantOffset, _ int, sges []Sge, offsets []int) error {
	return serializeLeaf(s.ptr, header, constantOffset, sges, offsets)
}

func (s *CFString) InnerDeserialize(buf Buffer, headerOffset int) (err error) {
	s.ptr, err = deserializeLeaf(buf, headerOffset)
	return err
}

// serializeLeaf records b as one scatter-gather entry. Only the size of the
// forward pointer is known at this point; SerializeIntoSga writes the
// offset once entries have been reordered.
func serializeLeaf(b []byte, header []byte, constantOffset int, sges []Sge, offsets []int) error {
	if err := CheckHeader(header, constantOffset, ForwardPointerSize); err != nil {
		return err
	}
	if len(sges) < 1 || len(offsets) < 1 {
		return ErrCapacity.New("no scatter-gather entry left for bytes field")
	}
	MutForwardPointerAt(header, constantOffset).WriteSize(len(b))
	sges[0] = NewSge(b)
	offsets[0] = constantOffset
	return nil
}

func deserializeLeaf(buf Buffer, headerOffset int) ([]byte, error) {
	ptr, err := ReadForwardPointer(buf, headerOffset)
	if err != nil {
		return nil, err
	}
	return buf.ContiguousSlice(ptr.Offset(), ptr.Size())
}
