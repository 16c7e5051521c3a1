// Package loopback implements an in-memory datapath connecting two
// endpoints of the same process.
//
// Packets are transmitted the way a scatter-gather NIC would: the header
// and the entries of the copy run are copied into a single receive buffer,
// and every zero-copy entry becomes a segment of its own that aliases the
// registered memory it was sent from. Received packets hold a reference to
// each buffer they use until they are released.
package loopback

import (
	"context"
	"sync"

	"github.com/stealthrocket/cornflakes"
)

// Conn is one endpoint of a loopback pair. It implements cornflakes.Datapath.
//
// A Conn may be used by one sending and one receiving goroutine at the
// same time.
type Conn struct {
	id   cornflakes.ConnID
	cfg  Config
	pool *Mempool
	peer *Conn

	rx        chan *cornflakes.ReceivedPkt
	done      chan struct{}
	closeOnce sync.Once

	stats stats
}

var _ cornflakes.Datapath = (*Conn)(nil)

// NewPair returns two connected endpoints sharing one registered memory
// pool.
func NewPair(cfg Config) (*Conn, *Conn, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	pool := NewMempool(cfg.NumBuffers, cfg.BufferSize)
	a := newConn(1, cfg, pool)
	b := newConn(2, cfg, pool)
	a.peer, b.peer = b, a
	return a, b, nil
}

func newConn(id cornflakes.ConnID, cfg Config, pool *Mempool) *Conn {
	return &Conn{
		id:   id,
		cfg:  cfg,
		pool: pool,
		rx:   make(chan *cornflakes.ReceivedPkt, cfg.QueueDepth),
		done: make(chan struct{}),
	}
}

// ID returns the identifier of c. Packets received by the peer of c carry
// this identifier.
func (c *Conn) ID() cornflakes.ConnID { return c.id }

// PeerID returns the identifier of the endpoint c sends to.
func (c *Conn) PeerID() cornflakes.ConnID { return c.peer.id }

// Mempool returns the registered memory pool of c.
func (c *Conn) Mempool() *Mempool { return c.pool }

func (c *Conn) IsRegistered(b []byte) bool   { return c.pool.IsRegistered(b) }
func (c *Conn) CopyingThreshold() int        { return c.cfg.CopyingThreshold }
func (c *Conn) MaxScatterGatherEntries() int { return c.cfg.MaxScatterGatherEntries }

// PushOrderedSgas transmits a batch of serialized messages to the peer of
// c. Each message must have been serialized for c. When an error is
// returned, the messages preceding the failing one have been delivered.
func (c *Conn) PushOrderedSgas(ctx context.Context, batch []cornflakes.Outgoing) error {
	for _, out := range batch {
		select {
		case <-c.peer.done:
			return ErrClosed.New()
		case <-c.done:
			return ErrClosed.New()
		default:
		}
		if out.ConnID != c.peer.id {
			return ErrUnknownConn.New(out.ConnID)
		}
		pkt, err := c.transmit(out)
		if err != nil {
			return err
		}
		select {
		case c.peer.rx <- pkt:
			select {
			case <-c.peer.done:
				// The peer may have drained its queue before the packet
				// landed in it.
				c.peer.drain()
				return ErrClosed.New()
			default:
			}
		case <-c.peer.done:
			pkt.Release()
			return ErrClosed.New()
		case <-c.done:
			pkt.Release()
			return ErrClosed.New()
		case <-ctx.Done():
			pkt.Release()
			return ctx.Err()
		}
	}
	return nil
}

func (c *Conn) transmit(out cornflakes.Outgoing) (*cornflakes.ReceivedPkt, error) {
	sga := out.Sga
	if size := sga.DataLen(); size > c.cfg.MaxPacketSize {
		return nil, ErrPacketTooLarge.New(size, c.cfg.MaxPacketSize)
	}
	zeroCopy := sga.ZeroCopyRun()
	if segs := 1 + len(zeroCopy); segs > c.cfg.MaxScatterGatherEntries {
		return nil, ErrTooManySegments.New(segs, c.cfg.MaxScatterGatherEntries)
	}
	copyLen := sga.CopyLen()
	if copyLen > c.pool.size {
		return nil, ErrPacketTooLarge.New(copyLen, c.pool.size)
	}

	// Resolve every zero-copy entry before taking any reference so that a
	// failure leaves the pool untouched.
	indexes := make([]int, len(zeroCopy))
	for i, e := range zeroCopy {
		idx, ok := c.pool.index(e.Bytes())
		if !ok {
			return nil, ErrUnregistered.New(e.Len())
		}
		indexes[i] = idx
	}

	rx, err := c.pool.Alloc()
	if err != nil {
		return nil, err
	}
	segments := make([][]byte, 1, 1+len(zeroCopy))
	segments[0] = rx.data[:sga.FlattenCopyRun(rx.data)]

	zeroCopyLen := 0
	for i, e := range zeroCopy {
		c.pool.retain(indexes[i])
		segments = append(segments, e.Bytes())
		zeroCopyLen += e.Len()
	}

	c.stats.packets.Add(1)
	c.stats.segments.Add(uint64(len(segments)))
	c.stats.copied.Add(uint64(copyLen))
	c.stats.zeroCopied.Add(uint64(zeroCopyLen))

	pool := c.pool
	release := func() {
		rx.Release()
		for _, idx := range indexes {
			pool.release(idx)
		}
	}
	return cornflakes.NewReceivedPkt(out.MsgID, c.id, segments, release), nil
}

// Pop waits for at least one packet and returns every packet available,
// up to the configured batch size. The caller must release the packets.
func (c *Conn) Pop(ctx context.Context) ([]*cornflakes.ReceivedPkt, error) {
	var first *cornflakes.ReceivedPkt
	select {
	case first = <-c.rx:
	case <-c.done:
		return nil, ErrClosed.New()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	batch := []*cornflakes.ReceivedPkt{first}
	for len(batch) < c.cfg.BatchSize {
		select {
		case pkt := <-c.rx:
			batch = append(batch, pkt)
		default:
			return batch, nil
		}
	}
	return batch, nil
}

// Close closes c. Packets waiting to be received are released.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.drain()
	})
	return nil
}

func (c *Conn) drain() {
	for {
		select {
		case pkt := <-c.rx:
			pkt.Release()
		default:
			return
		}
	}
}

// Stats returns the transmit counters of c.
func (c *Conn) Stats() Stats { return c.stats.snapshot() }
