package cornflakes

import "fmt"

// HeaderRepr is implemented by every type that can be laid out in a
// serialized header: leaves, lists and generated messages.
//
// A message header starts with a length-prefixed bitmap followed by the
// constant header, one fixed-size slot per field whether the field is
// present or not. Scalars are stored inline in their slot; every other
// field stores a forward pointer to data placed in the dynamic region that
// follows, or to a scatter-gather entry for raw bytes.
type HeaderRepr interface {
	// NumFields returns the number of fields of the schema type.
	NumFields() int
	// ConstantHeaderSize returns the size of the field slots, excluding the
	// bitmap.
	ConstantHeaderSize() int
	// DynamicHeaderStart returns the offset, relative to the start of the
	// object, of its dynamic region.
	DynamicHeaderStart() int
	// DynamicHeaderSize returns the number of header bytes the object
	// occupies out of line, in the dynamic region of its container.
	DynamicHeaderSize() int
	// NumScatterGatherEntries returns the number of entries InnerSerialize
	// produces.
	NumScatterGatherEntries() int
	// IsList reports whether the type encodes its own indirection as a list.
	IsList() bool
	// InnerSerialize writes the object at header[constantOffset:], and its
	// out-of-line data from header[dynamicOffset:]. Every scatter-gather
	// entry produced is appended to sges in traversal order, together with
	// the header offset of the forward pointer to back-patch once the
	// entry's final position is known.
	InnerSerialize(header []byte, constantOffset, dynamicOffset int, sges []Sge, offsets []int) error
	// InnerDeserialize decodes the object stored at buf[headerOffset:].
	// Variable-length data is borrowed from buf.
	InnerDeserialize(buf Buffer, headerOffset int) error
}

// TotalHeaderSize returns the number of header bytes needed to serialize v,
// plus one forward pointer when v is referenced from a parent slot.
func TotalHeaderSize(v HeaderRepr, withRef bool) int {
	n := v.DynamicHeaderSize()
	if withRef {
		n += ForwardPointerSize
	}
	return n
}

// InnerSerializeWithRef serializes v for a field slot at constantOffset. When
// withRef is true, the slot receives a forward pointer and v is laid out at
// dynamicOffset; otherwise v is written at the slot directly.
func InnerSerializeWithRef(v HeaderRepr, header []byte, constantOffset, dynamicOffset int, sges []Sge, offsets []int, withRef bool) error {
	if !withRef {
		return v.InnerSerialize(header, constantOffset, dynamicOffset, sges, offsets)
	}
	if err := CheckHeader(header, constantOffset, ForwardPointerSize); err != nil {
		return err
	}
	MutForwardPointerAt(header, constantOffset).Write(v.DynamicHeaderSize(), dynamicOffset)
	return v.InnerSerialize(header, dynamicOffset, dynamicOffset+v.DynamicHeaderStart(), sges, offsets)
}

// InnerDeserializeWithRef is the inverse of InnerSerializeWithRef.
func InnerDeserializeWithRef(v HeaderRepr, buf Buffer, headerOffset int, withRef bool) error {
	if !withRef {
		return v.InnerDeserialize(buf, headerOffset)
	}
	ptr, err := ReadForwardPointer(buf, headerOffset)
	if err != nil {
		return err
	}
	if err := checkForward("object", headerOffset, ptr.Offset()); err != nil {
		return err
	}
	if err := checkBounds("object", buf.Len(), ptr.Offset(), ptr.Size()); err != nil {
		return err
	}
	return v.InnerDeserialize(buf, ptr.Offset())
}

// Allocator provides the memory backing serialization contexts. It is
// implemented by arena.Arena.
type Allocator interface {
	Alloc(n int) []byte
	AllocSges(n int) []Sge
	AllocOffsets(n int) []int
}

// AllocContext returns a zeroed header buffer and a scatter-gather array
// sized for serializing v.
func AllocContext(v HeaderRepr) ([]byte, *OrderedSga) {
	n := v.NumScatterGatherEntries()
	return make([]byte, TotalHeaderSize(v, false)), AllocateOrderedSga(n)
}

// AllocContextIn is like AllocContext but obtains memory from a.
func AllocContextIn(v HeaderRepr, a Allocator) ([]byte, *OrderedSga) {
	n := v.NumScatterGatherEntries()
	return a.Alloc(TotalHeaderSize(v, false)), NewOrderedSga(a.AllocSges(n+1), a.AllocOffsets(n))
}

// SerializeIntoSga serializes v into header and sga.
//
// Once the fields are written, the payload entries are reordered for the
// datapath and every forward pointer to a payload entry is back-patched with
// the entry's final size and absolute offset. Slot 0 of sga is then set to
// the used part of header.
func SerializeIntoSga(v HeaderRepr, header []byte, sga *OrderedSga, dp Datapath) error {
	size := TotalHeaderSize(v, false)
	if len(header) < size {
		return ErrCapacity.New(fmt.Sprintf("header buffer holds %d bytes, %d required", len(header), size))
	}
	n := v.NumScatterGatherEntries()
	if err := sga.SetLength(n); err != nil {
		return err
	}
	header = header[:size]
	offsets := sga.offsets[:n]
	if err := v.InnerSerialize(header, 0, v.DynamicHeaderStart(), sga.PayloadEntries(), offsets); err != nil {
		return err
	}
	if err := sga.ReorderBySizeAndRegistration(dp, offsets); err != nil {
		return err
	}
	if err := sga.ReorderByMaxSegs(dp, offsets); err != nil {
		return err
	}
	cursor := size
	for i, e := range sga.PayloadEntries() {
		MutForwardPointerAt(header, offsets[i]).Write(e.Len(), cursor)
		cursor += e.Len()
	}
	sga.SetHeader(NewSge(header))
	return nil
}

// Deserialize decodes v from a contiguous buffer.
func Deserialize(v HeaderRepr, buf []byte) error {
	return v.InnerDeserialize(Bytes(buf), 0)
}

// DeserializeFrom decodes v from a buffer that may span several segments,
// such as a *ReceivedPkt.
func DeserializeFrom(v HeaderRepr, buf Buffer) error {
	return v.InnerDeserialize(buf, 0)
}
