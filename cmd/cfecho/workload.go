package main

import (
	"context"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/stealthrocket/cornflakes"
	"github.com/stealthrocket/cornflakes/arena"
	"github.com/stealthrocket/cornflakes/internal/echomsg"
	"github.com/stealthrocket/cornflakes/loopback"
	"github.com/stealthrocket/cornflakes/server"
)

// message is implemented by the generated echo messages.
type message[T any] interface {
	*T
	cornflakes.HeaderRepr
	DeserializeFrom(cornflakes.Buffer) error
	CheckDeepEquality(*T) bool
}

// echo returns a handler sending every request back as it was received.
// Variable-length fields of the response alias the request packet.
func echo[T any, P message[T]]() server.HandlerFunc {
	return func(ctx context.Context, pkt *cornflakes.ReceivedPkt, a *arena.Arena) (cornflakes.HeaderRepr, error) {
		m := P(new(T))
		if err := m.DeserializeFrom(pkt); err != nil {
			return nil, err
		}
		return m, nil
	}
}

// payloads allocates the payloads of a request in registered memory.
type payloads struct {
	pool    *loopback.Mempool
	size    int
	buffers []*loopback.Buffer
	seq     int
}

func (p *payloads) next() (cornflakes.CFBytes, error) {
	buf, err := p.pool.Alloc()
	if err != nil {
		return cornflakes.CFBytes{}, err
	}
	p.buffers = append(p.buffers, buf)
	b := buf.Bytes()[:min(p.size, len(buf.Bytes()))]
	for i := range b {
		b[i] = byte('a' + (p.seq+i)%26)
	}
	p.seq++
	return cornflakes.NewCFBytes(b), nil
}

func (p *payloads) release() {
	for _, buf := range p.buffers {
		buf.Release()
	}
	p.buffers = p.buffers[:0]
}

// workload is the client side of one kind of echo message.
type workload interface {
	handler() server.Handler
	// roundTrip sends one request and verifies the response.
	roundTrip(ctx context.Context, conn *loopback.Conn, id cornflakes.MsgID, p *payloads) error
}

type workloadOf[T any, P message[T]] struct {
	build func(p *payloads) (P, error)
}

func (w workloadOf[T, P]) handler() server.Handler { return echo[T, P]() }

func (w workloadOf[T, P]) roundTrip(ctx context.Context, conn *loopback.Conn, id cornflakes.MsgID, p *payloads) error {
	defer p.release()
	req, err := w.build(p)
	if err != nil {
		return err
	}
	header, sga := cornflakes.AllocContext(req)
	if err := cornflakes.SerializeIntoSga(req, header, sga, conn); err != nil {
		return err
	}
	if err := conn.PushOrderedSgas(ctx, []cornflakes.Outgoing{{MsgID: id, ConnID: conn.PeerID(), Sga: sga}}); err != nil {
		return err
	}

	pkts, err := conn.Pop(ctx)
	if err != nil {
		return err
	}
	defer func() {
		for _, pkt := range pkts {
			pkt.Release()
		}
	}()
	if len(pkts) != 1 || pkts[0].MsgID() != id {
		return fmt.Errorf("expected one response to request %d, got %d packets", id, len(pkts))
	}
	resp := P(new(T))
	if err := resp.DeserializeFrom(pkts[0]); err != nil {
		return err
	}
	if !req.CheckDeepEquality((*T)(resp)) {
		return fmt.Errorf("response to request %d differs from the request", id)
	}
	return nil
}

func newWorkload(kind string, count int) (workload, error) {
	switch kind {
	case "single":
		return workloadOf[echomsg.SingleBufferCF, *echomsg.SingleBufferCF]{
			build: func(p *payloads) (*echomsg.SingleBufferCF, error) {
				b, err := p.next()
				if err != nil {
					return nil, err
				}
				m := echomsg.NewSingleBufferCF()
				m.SetMessage(b)
				return m, nil
			},
		}, nil
	case "list":
		return workloadOf[echomsg.ListCF, *echomsg.ListCF]{
			build: func(p *payloads) (*echomsg.ListCF, error) {
				m := echomsg.NewListCF()
				m.InitMessages(count)
				for i := 0; i < count; i++ {
					b, err := p.next()
					if err != nil {
						return nil, err
					}
					m.GetMutMessages().Append(b)
				}
				return m, nil
			},
		}, nil
	case "tree":
		return workloadOf[echomsg.Tree2LCF, *echomsg.Tree2LCF]{
			build: func(p *payloads) (*echomsg.Tree2LCF, error) {
				m := echomsg.NewTree2LCF()
				leaves := []*echomsg.SingleBufferCF{
					m.GetMutLeft().GetMutLeft(),
					m.GetMutLeft().GetMutRight(),
					m.GetMutRight().GetMutLeft(),
					m.GetMutRight().GetMutRight(),
				}
				for _, leaf := range leaves {
					b, err := p.next()
					if err != nil {
						return nil, err
					}
					leaf.SetMessage(b)
				}
				return m, nil
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown message kind %q (expected single, list or tree)", kind)
	}
}

// newHistogram returns a histogram of latencies in nanoseconds.
func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(1, int64(10*time.Second), 3)
}

// runClient issues requests one at a time on conn and records their
// latency.
func runClient(ctx context.Context, w workload, conn *loopback.Conn, size, requests int, h *hdrhistogram.Histogram) error {
	p := &payloads{pool: conn.Mempool(), size: size}
	for i := 0; i < requests; i++ {
		start := time.Now()
		if err := w.roundTrip(ctx, conn, cornflakes.MsgID(i), p); err != nil {
			return err
		}
		if err := h.RecordValue(int64(time.Since(start))); err != nil {
			return err
		}
	}
	return nil
}
