package arena

import (
	"testing"

	"github.com/stealthrocket/cornflakes"
	"github.com/stealthrocket/cornflakes/internal/echomsg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type releaser struct{ released int }

func (r *releaser) Release() { r.released++ }

type datapath struct{}

func (datapath) IsRegistered([]byte) bool     { return true }
func (datapath) CopyingThreshold() int        { return 0 }
func (datapath) MaxScatterGatherEntries() int { return 32 }

func TestAllocIsZeroedAfterReset(t *testing.T) {
	a := New(64)
	b := a.Alloc(16)
	for i := range b {
		b[i] = 0xff
	}
	a.Reset()

	c := a.Alloc(16)
	assert.Equal(t, make([]byte, 16), c)
	assert.Equal(t, &b[0], &c[0], "memory is reused")
}

func TestAllocDoesNotOverlap(t *testing.T) {
	a := New(32)
	x := a.Alloc(20)
	y := a.Alloc(20)
	z := a.Alloc(10)
	assert.Equal(t, 20, cap(x))

	x = append(x, 1)
	assert.Equal(t, make([]byte, 20), y, "append cannot spill into the next allocation")
	assert.Equal(t, make([]byte, 10), z)

	big := a.Alloc(100)
	assert.Len(t, big, 100)
	assert.Equal(t, 150, a.Allocated())
}

func TestCopy(t *testing.T) {
	a := New(0)
	src := []byte("hello")
	b := a.Copy(src)
	src[0] = 'j'
	assert.Equal(t, "hello", string(b))
}

func TestSliceAfterReset(t *testing.T) {
	a := New(0)
	s := a.CopySlice([]byte("payload"))
	assert.True(t, s.Valid())
	assert.Equal(t, "payload", string(s.Bytes()))
	assert.Equal(t, 7, s.Len())

	a.Reset()
	assert.False(t, s.Valid())
	assert.Panics(t, func() { s.Bytes() })

	var zero Slice
	assert.False(t, zero.Valid())
}

func TestRetain(t *testing.T) {
	a := New(0)
	r1, r2 := &releaser{}, &releaser{}
	a.Retain(r1)
	a.Retain(r2)
	assert.Equal(t, 2, a.NumRetained())
	assert.Zero(t, r1.released)

	a.Reset()
	assert.Equal(t, 1, r1.released)
	assert.Equal(t, 1, r2.released)
	assert.Zero(t, a.NumRetained())
	assert.Equal(t, uint64(1), a.Generation())

	a.Reset()
	assert.Equal(t, 1, r1.released, "buffers are released once")
}

func TestRetainReceivedPkt(t *testing.T) {
	a := New(0)
	released := 0
	pkt := cornflakes.NewReceivedPkt(1, 1, [][]byte{[]byte("request")}, func() { released++ })
	a.Retain(pkt)
	a.Reset()
	assert.Equal(t, 1, released)
}

func TestAllocContext(t *testing.T) {
	a := New(0)
	for i := 0; i < 3; i++ {
		m := echomsg.NewTree2LCF()
		m.GetMutLeft().GetMutLeft().SetMessage(cornflakes.NewCFBytes([]byte("left")))
		m.GetMutRight().GetMutRight().SetMessage(cornflakes.NewCFBytes([]byte("right")))

		header, sga := AllocContext(a, m)
		require.Len(t, header, m.DynamicHeaderSize())
		require.NoError(t, m.SerializeIntoSga(header, sga, datapath{}))
		assert.Equal(t, 2, sga.NumZeroCopyEntries())

		var decoded echomsg.Tree2LCF
		require.NoError(t, decoded.Deserialize(sga.Flatten()))
		assert.True(t, m.CheckDeepEquality(&decoded))
		a.Reset()
	}
}

func TestString(t *testing.T) {
	a := New(0)
	a.Alloc(1000)
	assert.Equal(t, "arena(generation=0 allocated=1.0 kB chunks=1 retained=0)", a.String())
}
