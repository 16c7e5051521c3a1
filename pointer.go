package cornflakes

import "encoding/binary"

const (
	SizeField   = 4
	OffsetField = 4

	// ForwardPointerSize is the width of the header slot of every field
	// whose data lives out of line.
	ForwardPointerSize = SizeField + OffsetField
)

// A forward pointer is stored as the size followed by the offset, both
// little-endian 32-bit integers. The offset is absolute: it counts bytes
// from the first byte of the top-level message, header included. The size
// is a byte length, except for lists where it is an element count.

// ForwardPointer is a read-only view of a forward pointer.
type ForwardPointer []byte

// ReadForwardPointer returns the forward pointer stored at buf[offset:].
func ReadForwardPointer(buf Buffer, offset int) (ForwardPointer, error) {
	b, err := buf.ContiguousSlice(offset, ForwardPointerSize)
	if err != nil {
		return nil, err
	}
	return ForwardPointer(b), nil
}

func (p ForwardPointer) Size() int   { return int(binary.LittleEndian.Uint32(p[0:])) }
func (p ForwardPointer) Offset() int { return int(binary.LittleEndian.Uint32(p[SizeField:])) }

// MutForwardPointer is a writable forward pointer slot inside a header
// buffer being serialized.
type MutForwardPointer []byte

// MutForwardPointerAt returns the slot at header[offset:]. The caller must
// have checked that the slot fits.
func MutForwardPointerAt(header []byte, offset int) MutForwardPointer {
	return MutForwardPointer(header[offset : offset+ForwardPointerSize])
}

func (p MutForwardPointer) WriteSize(size int) {
	binary.LittleEndian.PutUint32(p[0:], uint32(size))
}

func (p MutForwardPointer) WriteOffset(offset int) {
	binary.LittleEndian.PutUint32(p[SizeField:], uint32(offset))
}

func (p MutForwardPointer) Write(size, offset int) {
	p.WriteSize(size)
	p.WriteOffset(offset)
}
