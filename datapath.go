package cornflakes

import "fmt"

// MsgID identifies a request/response pair on a connection.
type MsgID uint32

// ConnID identifies a connection (or queue pair) of a datapath.
type ConnID uint64

// Datapath is the part of a network datapath that serialization needs to
// know about: which memory the NIC can transmit from directly, below which
// size copying a buffer is cheaper than an extra segment, and how many
// segments a single packet may be made of.
type Datapath interface {
	IsRegistered(buf []byte) bool
	CopyingThreshold() int
	MaxScatterGatherEntries() int
}

// Outgoing is a serialized message ready to be pushed by a datapath.
type Outgoing struct {
	MsgID  MsgID
	ConnID ConnID
	Sga    *OrderedSga
}

// Buffer is a read-only view over received bytes. Deserialized objects
// borrow slices of a Buffer and must not outlive it.
type Buffer interface {
	// Len returns the total number of bytes in the buffer.
	Len() int
	// ContiguousSlice returns the n bytes starting at start, without
	// copying. It fails if the range is out of bounds or is not held by
	// a single underlying segment.
	ContiguousSlice(start, n int) ([]byte, error)
}

// Bytes adapts a byte slice to the Buffer interface.
type Bytes []byte

func (b Bytes) Len() int { return len(b) }

func (b Bytes) ContiguousSlice(start, n int) ([]byte, error) {
	if err := checkBounds("slice", len(b), start, n); err != nil {
		return nil, err
	}
	return b[start : start+n : start+n], nil
}

// ReceivedPkt is a packet handed over by a datapath. Its bytes may be
// spread over several receive segments, each of them owned by the
// datapath until Release is called.
type ReceivedPkt struct {
	msgID    MsgID
	connID   ConnID
	segments [][]byte
	length   int
	release  func()
}

// NewReceivedPkt constructs a packet from its receive segments. The release
// function, if not nil, is called exactly once when the packet is released.
func NewReceivedPkt(msgID MsgID, connID ConnID, segments [][]byte, release func()) *ReceivedPkt {
	length := 0
	for _, s := range segments {
		length += len(s)
	}
	return &ReceivedPkt{
		msgID:    msgID,
		connID:   connID,
		segments: segments,
		length:   length,
		release:  release,
	}
}

func (p *ReceivedPkt) MsgID() MsgID   { return p.msgID }
func (p *ReceivedPkt) ConnID() ConnID { return p.connID }
func (p *ReceivedPkt) Len() int       { return p.length }

func (p *ReceivedPkt) NumSegments() int { return len(p.segments) }

func (p *ReceivedPkt) Segment(i int) []byte { return p.segments[i] }

func (p *ReceivedPkt) ContiguousSlice(start, n int) ([]byte, error) {
	if err := checkBounds("packet", p.length, start, n); err != nil {
		return nil, err
	}
	base := 0
	for _, seg := range p.segments {
		end := base + len(seg)
		if start < end || (n == 0 && start == end) {
			if start+n > end {
				return nil, ErrMalformed.New(fmt.Sprintf("range [%d:%d] spans receive segments", start, start+n))
			}
			off := start - base
			return seg[off : off+n : off+n], nil
		}
		base = end
	}
	return nil, nil
}

// Flatten copies the packet into a single freshly allocated slice.
func (p *ReceivedPkt) Flatten() []byte {
	b := make([]byte, 0, p.length)
	for _, seg := range p.segments {
		b = append(b, seg...)
	}
	return b
}

// Release returns the receive segments to the datapath. Slices borrowed
// from the packet must not be used afterwards.
func (p *ReceivedPkt) Release() {
	if p.release != nil {
		p.release()
		p.release = nil
	}
	p.segments = nil
	p.length = 0
}
