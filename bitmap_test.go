package cornflakes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitmapLength(t *testing.T) {
	for numFields, want := range map[int]int{0: 0, 1: 4, 4: 4, 5: 8, 14: 16} {
		assert.Equal(t, want, BitmapLength(numFields), "%d fields", numFields)
	}
}

func TestBitmapSetGet(t *testing.T) {
	b := NewBitmap(3)
	assert.False(t, b.Get(0))
	assert.False(t, b.Get(100))
	assert.False(t, b.Get(-1))

	b.Set(1)
	b.Set(1)
	assert.True(t, b.Get(1))
	assert.False(t, b.Get(0))

	var zero Bitmap
	zero.Set(9)
	assert.True(t, zero.Get(9))
	assert.Equal(t, 12, zero.Len())
}

func TestBitmapCopiesAreIndependent(t *testing.T) {
	for _, field := range []int{1, 70, 200} {
		t.Run(fmt.Sprint(field), func(t *testing.T) {
			a := NewBitmap(field + 1)
			a.Set(0)
			a.Set(130)
			b := a

			a.Set(field)
			assert.True(t, a.Get(field))
			assert.False(t, b.Get(field))
			assert.True(t, b.Get(0))
			assert.True(t, b.Get(130))

			b.Set(field + 1)
			assert.False(t, a.Get(field+1))
		})
	}

	decoded, err := DeserializeBitmap(Bytes([]byte{4, 0, 0, 0, 1, 0, 0, 0}), 0)
	require.NoError(t, err)
	copied := decoded
	decoded.Set(1)
	assert.False(t, copied.Get(1))
	assert.True(t, copied.Get(0))
	assert.Equal(t, 4, copied.Len())
}

func TestBitmapRoundTrip(t *testing.T) {
	b := NewBitmap(5)
	b.Set(0)
	b.Set(4)

	header := make([]byte, 16)
	require.NoError(t, b.Serialize(header, 4, 5))
	assert.Equal(t, []byte{
		0, 0, 0, 0,
		8, 0, 0, 0,
		1, 0, 0, 0, 1, 0, 0, 0,
	}, header)

	decoded, err := DeserializeBitmap(Bytes(header), 4)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(&b))
	assert.True(t, decoded.Get(4))
	assert.False(t, decoded.Get(3))
}

func TestBitmapSerializeMasksUnknownFields(t *testing.T) {
	var b Bitmap
	b.Set(6)
	b.Set(1)

	header := make([]byte, 8)
	require.NoError(t, b.Serialize(header, 0, 2))
	assert.Equal(t, []byte{4, 0, 0, 0, 0, 1, 0, 0}, header)
}

func TestBitmapSerializeTooShort(t *testing.T) {
	b := NewBitmap(1)
	err := b.Serialize(make([]byte, 7), 0, 1)
	assert.True(t, ErrCapacity.Is(err))
}

func TestBitmapDeserializeBorrows(t *testing.T) {
	wire := []byte{4, 0, 0, 0, 1, 0, 0, 0}
	b, err := DeserializeBitmap(Bytes(wire), 0)
	require.NoError(t, err)
	assert.True(t, b.Get(0))

	b.Set(2)
	assert.True(t, b.Get(2))
	assert.Equal(t, []byte{4, 0, 0, 0, 1, 0, 0, 0}, wire, "received bytes must not be written")
}

func TestBitmapDeserializeMalformed(t *testing.T) {
	tests := []struct {
		scenario string
		wire     []byte
	}{
		{"truncated prefix", []byte{4, 0}},
		{"truncated bitmap", []byte{8, 0, 0, 0, 1, 0, 0, 0}},
		{"unaligned length", []byte{3, 0, 0, 0, 1, 0, 0}},
	}
	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			_, err := DeserializeBitmap(Bytes(test.wire), 0)
			assert.True(t, ErrMalformed.Is(err), "unexpected error: %v", err)
		})
	}
}

func TestForwardPointer(t *testing.T) {
	header := make([]byte, 12)
	MutForwardPointerAt(header, 4).Write(5, 300)
	assert.Equal(t, []byte{0, 0, 0, 0, 5, 0, 0, 0, 44, 1, 0, 0}, header)

	ptr, err := ReadForwardPointer(Bytes(header), 4)
	require.NoError(t, err)
	assert.Equal(t, 5, ptr.Size())
	assert.Equal(t, 300, ptr.Offset())

	_, err = ReadForwardPointer(Bytes(header), 5)
	assert.True(t, ErrMalformed.Is(err))
}

func TestScalarCodec(t *testing.T) {
	b := make([]byte, 8)

	PutScalar(b, int32(-2))
	assert.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff}, b[:4])
	assert.Equal(t, int32(-2), GetScalar[int32](b))

	PutScalar(b, 1.5)
	assert.Equal(t, 1.5, GetScalar[float64](b))

	PutScalar(b, float32(0.25))
	assert.Equal(t, float32(0.25), GetScalar[float32](b))

	PutScalar(b, uint64(1)<<40)
	v, err := ReadScalar[uint64](Bytes(b), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<40, v)

	_, err = ReadScalar[uint32](Bytes(b), 6)
	assert.True(t, ErrMalformed.Is(err))

	assert.Equal(t, 4, ScalarSize[float32]())
	assert.Equal(t, 8, ScalarSize[int64]())
}
