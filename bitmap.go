package cornflakes

import (
	"encoding/binary"
	"fmt"
)

// BitmapLengthField is the size of the little-endian length prefix written
// in front of every serialized bitmap.
const BitmapLengthField = 4

// BitmapLength returns the number of bitmap bytes for a message with the
// given number of fields.
func BitmapLength(numFields int) int { return alignUp(numFields, 4) }

func alignUp(n, a int) int { return (n + a - 1) &^ (a - 1) }

// Bitmap records which fields of a message are present.
//
// The bitmap is a value: assigning a message copies its presence state, and
// setting a field on one copy never shows through in another. Fields below
// 64 are held in a word, higher fields in words that are replaced rather
// than written to. A bitmap decoded from the wire borrows the received bytes
// until the first bit is set. The zero value is an empty bitmap in which
// every field is absent.
type Bitmap struct {
	low      uint64
	high     []uint64
	wire     []byte
	borrowed bool
	size     int
}

// NewBitmap returns a bitmap for a message with numFields fields.
func NewBitmap(numFields int) Bitmap {
	return Bitmap{size: BitmapLength(numFields)}
}

// Len returns the number of bytes the bitmap spans. For a decoded bitmap it
// is the length found on the wire.
func (b *Bitmap) Len() int { return b.size }

// Get reports whether field i is present. Fields past the end of the bitmap
// are absent, which is what happens when a peer runs an older schema.
func (b *Bitmap) Get(i int) bool {
	switch {
	case i < 0:
		return false
	case b.borrowed:
		return i < len(b.wire) && b.wire[i] != 0
	case i < 64:
		return b.low&(1<<i) != 0
	}
	w := (i - 64) / 64
	return w < len(b.high) && b.high[w]&(1<<((i-64)%64)) != 0
}

// Set marks field i as present. There is no way to clear a bit.
func (b *Bitmap) Set(i int) {
	if i < 0 {
		panic(fmt.Sprintf("cornflakes: bitmap index %d out of range", i))
	}
	if b.borrowed {
		wire := b.wire
		b.wire, b.borrowed = nil, false
		for j, v := range wire {
			if v != 0 {
				b.set(j)
			}
		}
	}
	if !b.Get(i) {
		b.set(i)
	}
	b.size = max(b.size, BitmapLength(i+1))
}

func (b *Bitmap) set(i int) {
	if i < 64 {
		b.low |= 1 << i
		return
	}
	w := (i - 64) / 64
	high := make([]uint64, max(len(b.high), w+1))
	copy(high, b.high)
	high[w] |= 1 << ((i - 64) % 64)
	b.high = high
}

// Reset marks every field absent and drops any borrowed bytes.
func (b *Bitmap) Reset() {
	if b.borrowed {
		*b = Bitmap{}
		return
	}
	*b = Bitmap{size: b.size}
}

// Equal reports whether the two bitmaps have the same fields present.
func (b *Bitmap) Equal(other *Bitmap) bool {
	n := max(b.size, other.size)
	for i := 0; i < n; i++ {
		if b.Get(i) != other.Get(i) {
			return false
		}
	}
	return true
}

// Serialize writes the length prefix and the bitmap of a message with
// numFields fields at header[offset:]. Bytes past numFields are zero on the
// wire whatever the in-memory bitmap holds.
func (b *Bitmap) Serialize(header []byte, offset, numFields int) error {
	n := BitmapLength(numFields)
	if err := CheckHeader(header, offset, BitmapLengthField+n); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(header[offset:], uint32(n))
	out := header[offset+BitmapLengthField : offset+BitmapLengthField+n]
	for i := range out {
		out[i] = 0
		if i < numFields && b.Get(i) {
			out[i] = 1
		}
	}
	return nil
}

// DeserializeBitmap reads a length-prefixed bitmap at offset. The returned
// bitmap borrows buf.
func DeserializeBitmap(buf Buffer, offset int) (Bitmap, error) {
	prefix, err := buf.ContiguousSlice(offset, BitmapLengthField)
	if err != nil {
		return Bitmap{}, err
	}
	n := int(binary.LittleEndian.Uint32(prefix))
	if n%4 != 0 {
		return Bitmap{}, ErrMalformed.New(fmt.Sprintf("bitmap length %d is not 4-byte aligned", n))
	}
	bits, err := buf.ContiguousSlice(offset+BitmapLengthField, n)
	if err != nil {
		return Bitmap{}, err
	}
	return Bitmap{wire: bits, borrowed: true, size: n}, nil
}
