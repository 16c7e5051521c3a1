package echomsg

import (
	"fmt"
	"math"
	"testing"

	"github.com/stealthrocket/cornflakes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// datapath treats every buffer as registered.
type datapath struct {
	threshold int
	maxSegs   int
}

func (datapath) IsRegistered([]byte) bool        { return true }
func (dp datapath) CopyingThreshold() int        { return dp.threshold }
func (dp datapath) MaxScatterGatherEntries() int { return dp.maxSegs }

var zeroCopy = datapath{threshold: 0, maxSegs: 64}

type message interface {
	cornflakes.HeaderRepr
	AllocContext() ([]byte, *cornflakes.OrderedSga)
	SerializeIntoSga([]byte, *cornflakes.OrderedSga, cornflakes.Datapath) error
}

func serialize(t *testing.T, m message, dp cornflakes.Datapath) *cornflakes.OrderedSga {
	t.Helper()
	n := m.NumScatterGatherEntries()
	header, sga := m.AllocContext()
	require.NoError(t, m.SerializeIntoSga(header, sga, dp))
	require.Equal(t, n, sga.Len(), "scatter-gather entries produced")
	return sga
}

func TestSingleBufferCF(t *testing.T) {
	m := NewSingleBufferCF()
	m.SetMessage(cornflakes.NewCFBytes([]byte("hello")))
	assert.True(t, m.HasMessage())

	sga := serialize(t, m, zeroCopy)
	header := sga.Header().Bytes()
	assert.Len(t, header, 16)
	assert.Equal(t, byte(1), header[cornflakes.BitmapLengthField])

	ptr := cornflakes.ForwardPointer(header[8:16])
	assert.Equal(t, 5, ptr.Size())
	assert.Equal(t, 16, ptr.Offset())

	require.Equal(t, 1, sga.Len())
	assert.Equal(t, 5, sga.PayloadEntries()[0].Len())

	var decoded SingleBufferCF
	require.NoError(t, decoded.Deserialize(sga.Flatten()))
	assert.Equal(t, "hello", string(decoded.GetMessage().Bytes()))
	assert.True(t, m.CheckDeepEquality(&decoded))
}

func TestListCF(t *testing.T) {
	m := NewListCF()
	m.InitMessages(3)
	for _, s := range []string{"ab", "cde", "fghi"} {
		m.GetMutMessages().Append(cornflakes.NewCFBytes([]byte(s)))
	}

	sga := serialize(t, m, zeroCopy)
	assert.Equal(t, 3, sga.Len())

	ptr := cornflakes.ForwardPointer(sga.Header().Bytes()[8:16])
	assert.Equal(t, 3, ptr.Size())
	assert.Equal(t, 16, ptr.Offset())

	var decoded ListCF
	require.NoError(t, decoded.Deserialize(sga.Flatten()))
	require.Equal(t, 3, decoded.GetMessages().Len())
	for i, want := range []string{"ab", "cde", "fghi"} {
		assert.Equal(t, want, string(decoded.GetMessages().Get(i).Bytes()))
	}
	assert.True(t, m.CheckDeepEquality(&decoded))
}

func newTree2(prefix string) *Tree2LCF {
	leaf := func(s string) SingleBufferCF {
		l := NewSingleBufferCF()
		l.SetMessage(cornflakes.NewCFBytes([]byte(prefix + s)))
		return *l
	}
	tree1 := func(a, b string) Tree1LCF {
		t := NewTree1LCF()
		t.SetLeft(leaf(a))
		t.SetRight(leaf(b))
		return *t
	}
	m := NewTree2LCF()
	m.SetLeft(tree1("ll", "lr"))
	m.SetRight(tree1("rl", "rr"))
	return m
}

func TestTree2LCF(t *testing.T) {
	m := newTree2("leaf-")
	assert.Equal(t, 4, m.NumScatterGatherEntries())

	sga := serialize(t, m, zeroCopy)
	assert.Equal(t, 4, sga.Len())
	assert.Equal(t, m.DynamicHeaderSize(), sga.Header().Len())

	var decoded Tree2LCF
	require.NoError(t, decoded.Deserialize(sga.Flatten()))
	assert.True(t, m.CheckDeepEquality(&decoded))
	assert.Equal(t, "leaf-rl", string(decoded.GetRight().GetLeft().GetMessage().Bytes()))

	other := newTree2("leaf-")
	other.GetMutRight().GetMutLeft().SetMessage(cornflakes.NewCFBytes([]byte("changed")))
	assert.False(t, m.CheckDeepEquality(other))
}

func newTestObject(present func(int) bool) *TestObject {
	m := NewTestObject()
	if present(0) {
		m.SetIntField(-12)
	}
	if present(1) {
		m.SetLongField(-1 << 40)
	}
	if present(2) {
		m.SetUintField(12)
	}
	if present(3) {
		m.SetUlongField(1 << 60)
	}
	if present(4) {
		m.SetFloatField(0.5)
	}
	if present(5) {
		m.SetDoubleField(-2.25)
	}
	if present(6) {
		m.SetStringField(cornflakes.NewCFString("a string"))
	}
	if present(7) {
		m.SetBytesField(cornflakes.NewCFBytes([]byte("some bytes, long enough to be sent without a copy")))
	}
	if present(8) {
		m.InitIntList(3)
		for _, v := range []int32{1, -2, 3} {
			m.GetMutIntList().Append(v)
		}
	}
	if present(9) {
		m.InitUlongList(1)
		m.GetMutUlongList().Append(99)
	}
	if present(10) {
		m.InitStringList(2)
		m.GetMutStringList().Append(cornflakes.NewCFString("x"))
		m.GetMutStringList().Append(cornflakes.NewCFString("yz"))
	}
	if present(11) {
		m.InitBytesList(1)
		m.GetMutBytesList().Append(cornflakes.NewCFBytes(make([]byte, 300)))
	}
	if present(12) {
		m.GetMutNested().SetMessage(cornflakes.NewCFBytes([]byte("nested")))
	}
	if present(13) {
		m.InitNestedList(2)
		for _, n := range []int{2, 0} {
			var l ListCF
			l.InitMessages(n)
			for i := 0; i < n; i++ {
				l.GetMutMessages().Append(cornflakes.NewCFBytes([]byte(fmt.Sprint("element ", i))))
			}
			m.GetMutNestedList().Append(l)
		}
	}
	return m
}

func TestTestObjectRoundTrip(t *testing.T) {
	const numFields = 14
	datapaths := []datapath{
		{threshold: 0, maxSegs: 64},
		{threshold: 32, maxSegs: 64},
		{threshold: 0, maxSegs: 2},
		{threshold: 1 << 20, maxSegs: 1},
	}

	masks := []uint32{0, 1<<numFields - 1}
	for i := 0; i < numFields; i++ {
		masks = append(masks, 1<<i, (1<<numFields-1)&^(1<<i))
	}

	for _, mask := range masks {
		for _, dp := range datapaths {
			mask, dp := mask, dp
			t.Run(fmt.Sprintf("fields=%014b/threshold=%d/segs=%d", mask, dp.threshold, dp.maxSegs), func(t *testing.T) {
				m := newTestObject(func(i int) bool { return mask&(1<<i) != 0 })
				sga := serialize(t, m, dp)
				assert.LessOrEqual(t, sga.NumZeroCopyEntries(), max(dp.maxSegs-1, 0))

				var decoded TestObject
				require.NoError(t, decoded.Deserialize(sga.Flatten()))
				assert.True(t, m.CheckDeepEquality(&decoded))
				assert.True(t, decoded.CheckDeepEquality(m))

				for i := 0; i < numFields; i++ {
					assert.Equal(t, mask&(1<<i) != 0, decoded.bitmap.Get(i), "field %d", i)
				}
			})
		}
	}
}

func TestTestObjectAccessors(t *testing.T) {
	m := newTestObject(func(int) bool { return true })
	sga := serialize(t, m, zeroCopy)

	var decoded TestObject
	require.NoError(t, decoded.DeserializeFrom(cornflakes.Bytes(sga.Flatten())))

	assert.Equal(t, int32(-12), decoded.GetIntField())
	assert.Equal(t, int64(-1<<40), decoded.GetLongField())
	assert.Equal(t, uint32(12), decoded.GetUintField())
	assert.Equal(t, uint64(1<<60), decoded.GetUlongField())
	assert.Equal(t, float32(0.5), decoded.GetFloatField())
	assert.Equal(t, -2.25, decoded.GetDoubleField())
	assert.Equal(t, "a string", decoded.GetStringField().String())
	assert.Equal(t, 3, decoded.GetIntList().Len())
	assert.Equal(t, int32(-2), decoded.GetIntList().Get(1))
	assert.Equal(t, uint64(99), decoded.GetUlongList().Get(0))
	assert.Equal(t, "yz", decoded.GetStringList().Get(1).String())
	assert.Equal(t, 300, decoded.GetBytesList().Get(0).Len())
	assert.Equal(t, "nested", string(decoded.GetNested().GetMessage().Bytes()))
	assert.Equal(t, 2, decoded.GetNestedList().Len())
	assert.Equal(t, "element 1", string(decoded.GetNestedList().Get(0).GetMessages().Get(1).Bytes()))
	assert.Equal(t, 0, decoded.GetNestedList().Get(1).GetMessages().Len())

	assert.Panics(t, func() { decoded.GetMutIntList().Append(4) }, "received lists are read-only")
}

func TestPresenceIsSticky(t *testing.T) {
	m := NewGetReq()
	assert.False(t, m.HasId())
	m.SetId(0)
	assert.True(t, m.HasId())
	m.SetId(5)
	m.SetId(0)
	assert.True(t, m.HasId())

	empty := NewGetReq()
	assert.False(t, m.CheckDeepEquality(empty), "presence differs even though values are zero")
}

func TestDeserializeIntoReusedMessage(t *testing.T) {
	full := NewGetResp()
	full.SetId(1)
	full.SetVal(cornflakes.NewCFBytes([]byte("value")))
	partial := NewGetResp()
	partial.SetId(2)

	var decoded GetResp
	require.NoError(t, decoded.Deserialize(serialize(t, full, zeroCopy).Flatten()))
	require.NoError(t, decoded.Deserialize(serialize(t, partial, zeroCopy).Flatten()))
	assert.False(t, decoded.HasVal())
	assert.Equal(t, 0, decoded.GetVal().Len())
	assert.True(t, partial.CheckDeepEquality(&decoded))
}

func TestSetStoresACopy(t *testing.T) {
	leaf := NewSingleBufferCF()
	tree := NewTree1LCF()
	tree.SetLeft(*leaf)
	leaf.SetMessage(cornflakes.NewCFBytes([]byte("late")))
	assert.True(t, tree.HasLeft())
	assert.False(t, tree.GetLeft().HasMessage())

	var decoded Tree1LCF
	require.NoError(t, decoded.Deserialize(serialize(t, tree, zeroCopy).Flatten()))
	assert.True(t, tree.CheckDeepEquality(&decoded))

	inner := NewTree1LCF()
	outer := NewTree2LCF()
	outer.SetLeft(*inner)
	inner.GetMutLeft().SetMessage(cornflakes.NewCFBytes([]byte("late")))
	assert.False(t, outer.GetLeft().HasLeft())
	assert.False(t, outer.GetLeft().GetLeft().HasMessage())

	template := NewListCF()
	obj := NewTestObject()
	obj.InitNestedList(1)
	obj.GetMutNestedList().Append(*template)
	template.InitMessages(1)
	assert.False(t, obj.GetNestedList().Get(0).HasMessages())
}

func TestReceivedCopyIsIndependent(t *testing.T) {
	m := NewGetReq()
	m.SetId(3)
	wire := serialize(t, m, zeroCopy).Flatten()

	var decoded GetReq
	require.NoError(t, decoded.Deserialize(wire))
	copied := decoded
	decoded.SetKey(cornflakes.NewCFString("k"))
	assert.True(t, decoded.HasKey())
	assert.False(t, copied.HasKey())
	assert.True(t, copied.HasId())
}

func TestNaNRoundTrip(t *testing.T) {
	m := NewTestObject()
	m.SetFloatField(float32(math.NaN()))
	m.SetDoubleField(math.NaN())

	var decoded TestObject
	require.NoError(t, decoded.Deserialize(serialize(t, m, zeroCopy).Flatten()))
	assert.True(t, math.IsNaN(decoded.GetDoubleField()))
	assert.True(t, m.CheckDeepEquality(&decoded))
}
