package cornflakes

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record is written the way cfgen lays out a message with an uint32, a bytes
// and a repeated int32 field.
type record struct {
	bitmap Bitmap
	id     uint32
	key    CFBytes
	vals   List[int32]
}

func (*record) NumFields() int          { return 3 }
func (*record) ConstantHeaderSize() int { return 20 }
func (*record) DynamicHeaderStart() int { return 28 }
func (*record) IsList() bool            { return false }

func (r *record) DynamicHeaderSize() int {
	n := 28
	if r.bitmap.Get(2) {
		n += r.vals.DynamicHeaderSize()
	}
	return n
}

func (r *record) NumScatterGatherEntries() int {
	if r.bitmap.Get(1) {
		return 1
	}
	return 0
}

func (r *record) InnerSerialize(header []byte, constantOffset, dynamicOffset int, sges []Sge, offsets []int) error {
	if err := CheckHeader(header, constantOffset, 28); err != nil {
		return err
	}
	if err := r.bitmap.Serialize(header, constantOffset, 3); err != nil {
		return err
	}
	base := constantOffset + 8
	if r.bitmap.Get(0) {
		PutScalar(header[base:], r.id)
	}
	if r.bitmap.Get(1) {
		if err := r.key.InnerSerialize(header, base+4, dynamicOffset, sges, offsets); err != nil {
			return err
		}
	}
	if r.bitmap.Get(2) {
		if err := r.vals.InnerSerialize(header, base+12, dynamicOffset, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

func (r *record) InnerDeserialize(buf Buffer, headerOffset int) error {
	bitmap, err := DeserializeBitmap(buf, headerOffset)
	if err != nil {
		return err
	}
	*r = record{bitmap: bitmap}
	base := headerOffset + BitmapLengthField + bitmap.Len()
	if r.bitmap.Get(0) {
		if r.id, err = ReadScalar[uint32](buf, base); err != nil {
			return err
		}
	}
	if r.bitmap.Get(1) {
		if err := r.key.InnerDeserialize(buf, base+4); err != nil {
			return err
		}
	}
	if r.bitmap.Get(2) {
		if err := r.vals.InnerDeserialize(buf, base+12); err != nil {
			return err
		}
	}
	return nil
}

func (r *record) CheckDeepEquality(other *record) bool {
	return r.bitmap.Equal(&other.bitmap) &&
		(!r.bitmap.Get(0) || r.id == other.id) &&
		(!r.bitmap.Get(1) || r.key.CheckDeepEquality(&other.key)) &&
		(!r.bitmap.Get(2) || r.vals.CheckDeepEquality(&other.vals))
}

func newRecord(key string, vals ...int32) *record {
	r := &record{bitmap: NewBitmap(3)}
	r.bitmap.Set(0)
	r.id = 7
	r.bitmap.Set(1)
	r.key = NewCFBytes([]byte(key))
	if vals != nil {
		r.bitmap.Set(2)
		r.vals.Init(len(vals))
		for _, v := range vals {
			r.vals.Append(v)
		}
	}
	return r
}

func TestSerializeIntoSga(t *testing.T) {
	dp := testDatapath{threshold: 4, maxSegs: 8}
	r := newRecord("R-key-bytes", 1, 2)

	header, sga := AllocContext(r)
	assert.Len(t, header, 36)
	require.NoError(t, SerializeIntoSga(r, header, sga, dp))

	assert.Equal(t, 1, sga.NumZeroCopyEntries())
	assert.Equal(t, 36, sga.Header().Len())
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(header[0:]), "bitmap length")
	assert.Equal(t, []byte{1, 1, 1, 0}, header[4:8])
	assert.Equal(t, uint32(7), binary.LittleEndian.Uint32(header[8:]))

	key := ForwardPointer(header[12:20])
	assert.Equal(t, 11, key.Size())
	assert.Equal(t, 36, key.Offset())

	vals := ForwardPointer(header[20:28])
	assert.Equal(t, 2, vals.Size())
	assert.Equal(t, 28, vals.Offset())

	var decoded record
	require.NoError(t, Deserialize(&decoded, sga.Flatten()))
	assert.True(t, r.CheckDeepEquality(&decoded))
	assert.Equal(t, "R-key-bytes", string(decoded.key.Bytes()))
	assert.Equal(t, []int32{1, 2}, decoded.vals.Values())
}

func TestSerializeIntoSgaAbsentFields(t *testing.T) {
	dp := testDatapath{threshold: 4, maxSegs: 8}
	r := &record{}
	r.bitmap.Set(0)
	r.id = 1

	header, sga := AllocContext(r)
	require.NoError(t, SerializeIntoSga(r, header, sga, dp))
	assert.Equal(t, 0, sga.Len())
	assert.Equal(t, 28, sga.DataLen())

	var decoded record
	require.NoError(t, Deserialize(&decoded, sga.Flatten()))
	assert.True(t, r.CheckDeepEquality(&decoded))
	assert.False(t, decoded.bitmap.Get(1))
	assert.Equal(t, 0, decoded.key.Len())
}

func TestSerializeIntoSgaCapacity(t *testing.T) {
	dp := testDatapath{threshold: 4, maxSegs: 8}
	r := newRecord("R-key-bytes")

	header := make([]byte, 27)
	err := SerializeIntoSga(r, header, AllocateOrderedSga(1), dp)
	assert.True(t, ErrCapacity.Is(err))
	assert.Equal(t, make([]byte, 27), header, "nothing is written on capacity errors")

	header = make([]byte, 28)
	err = SerializeIntoSga(r, header, AllocateOrderedSga(0), dp)
	assert.True(t, ErrCapacity.Is(err))
	assert.Equal(t, make([]byte, 28), header)
}

func TestDeserializeMalformed(t *testing.T) {
	dp := testDatapath{threshold: 4, maxSegs: 8}
	r := newRecord("R-key-bytes", 1, 2, 3)
	header, sga := AllocContext(r)
	require.NoError(t, SerializeIntoSga(r, header, sga, dp))
	wire := sga.Flatten()

	for n := 0; n < len(wire); n++ {
		var decoded record
		err := Deserialize(&decoded, wire[:n])
		assert.True(t, ErrMalformed.Is(err), "truncated at %d: %v", n, err)
	}
}

func TestDeserializeFromSegments(t *testing.T) {
	dp := testDatapath{threshold: 4, maxSegs: 8}
	r := newRecord("R-key-bytes", 4)
	header, sga := AllocContext(r)
	require.NoError(t, SerializeIntoSga(r, header, sga, dp))

	released := 0
	var segments [][]byte
	for _, e := range sga.Entries() {
		segments = append(segments, e.Bytes())
	}
	pkt := NewReceivedPkt(1, 2, segments, func() { released++ })
	assert.Equal(t, 2, pkt.NumSegments())
	assert.Equal(t, sga.DataLen(), pkt.Len())

	var decoded record
	require.NoError(t, DeserializeFrom(&decoded, pkt))
	assert.True(t, r.CheckDeepEquality(&decoded))

	pkt.Release()
	pkt.Release()
	assert.Equal(t, 1, released)
}

func TestInnerSerializeWithRef(t *testing.T) {
	r := newRecord("k")
	header := make([]byte, ForwardPointerSize+TotalHeaderSize(r, true))
	sges := make([]Sge, 1)
	offsets := make([]int, 1)
	require.NoError(t, InnerSerializeWithRef(r, header, 0, 16, sges, offsets, true))

	ptr := ForwardPointer(header)
	assert.Equal(t, r.DynamicHeaderSize(), ptr.Size())
	assert.Equal(t, 16, ptr.Offset())
	assert.Equal(t, []int{16 + 12}, offsets)

	var decoded record
	require.NoError(t, InnerDeserializeWithRef(&decoded, Bytes(header), 0, true))
	assert.Equal(t, uint32(7), decoded.id)
}

// node is laid out the way cfgen lays out a message with a single repeated
// field of its own type.
type node struct {
	bitmap Bitmap
	kids   VariableList[node, *node]
}

func (*node) NumFields() int          { return 1 }
func (*node) ConstantHeaderSize() int { return 8 }
func (*node) DynamicHeaderStart() int { return 16 }
func (*node) IsList() bool            { return false }

func (n *node) DynamicHeaderSize() int {
	size := 16
	if n.bitmap.Get(0) {
		size += n.kids.DynamicHeaderSize()
	}
	return size
}

func (n *node) NumScatterGatherEntries() int { return 0 }

func (n *node) InnerSerialize(header []byte, constantOffset, dynamicOffset int, sges []Sge, offsets []int) error {
	if err := CheckHeader(header, constantOffset, 16); err != nil {
		return err
	}
	if err := n.bitmap.Serialize(header, constantOffset, 1); err != nil {
		return err
	}
	if n.bitmap.Get(0) {
		return n.kids.InnerSerialize(header, constantOffset+8, dynamicOffset, sges, offsets)
	}
	return nil
}

func (n *node) InnerDeserialize(buf Buffer, headerOffset int) error {
	bitmap, err := DeserializeBitmap(buf, headerOffset)
	if err != nil {
		return err
	}
	*n = node{bitmap: bitmap}
	if n.bitmap.Get(0) {
		return n.kids.InnerDeserialize(buf, headerOffset+BitmapLengthField+bitmap.Len())
	}
	return nil
}

func (n *node) CheckDeepEquality(other *node) bool {
	return n.bitmap.Equal(&other.bitmap) && (!n.bitmap.Get(0) || n.kids.CheckDeepEquality(&other.kids))
}

func newNode(kids ...node) node {
	n := node{bitmap: NewBitmap(1)}
	if kids != nil {
		n.bitmap.Set(0)
		n.kids.Init(len(kids))
		for _, k := range kids {
			n.kids.Append(k)
		}
	}
	return n
}

func TestDeserializeBackwardPointers(t *testing.T) {
	dp := testDatapath{threshold: 4, maxSegs: 8}
	root := newNode(newNode())
	header, sga := AllocContext(&root)
	require.NoError(t, SerializeIntoSga(&root, header, sga, dp))
	wire := sga.Flatten()
	require.Len(t, wire, 40)

	var decoded node
	require.NoError(t, Deserialize(&decoded, wire))
	assert.True(t, root.CheckDeepEquality(&decoded))

	tests := []struct {
		scenario string
		slot     int
		size     int
		offset   int
	}{
		{scenario: "kid pointing at the root", slot: 16, size: len(wire), offset: 0},
		{scenario: "kid pointing at its own slot", slot: 16, size: 16, offset: 16},
		{scenario: "list pointing at the root", slot: 8, size: 1, offset: 0},
		{scenario: "list pointing at its own slot", slot: 8, size: 1, offset: 8},
	}

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			corrupt := append([]byte(nil), wire...)
			MutForwardPointerAt(corrupt, test.slot).Write(test.size, test.offset)

			var decoded node
			err := Deserialize(&decoded, corrupt)
			assert.True(t, ErrMalformed.Is(err), "%v", err)
		})
	}
}
