// Package server runs the request processing loop of a datapath queue.
//
// Requests are processed in batches. Responses are serialized into memory
// owned by an arena, and may alias the request packets they were built
// from; the arena keeps the packets alive until the whole batch has been
// transmitted, then releases them.
package server

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/stealthrocket/cornflakes"
	"github.com/stealthrocket/cornflakes/arena"
	"golang.org/x/sync/errgroup"
	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrBadRequest is returned by handlers for requests that should be dropped
// without affecting the rest of the batch.
var ErrBadRequest = errors.NewKind("bad request: %s")

// Transport is a datapath able to send and receive packets.
type Transport interface {
	cornflakes.Datapath
	PushOrderedSgas(ctx context.Context, batch []cornflakes.Outgoing) error
	Pop(ctx context.Context) ([]*cornflakes.ReceivedPkt, error)
}

// Handler processes requests.
//
// The response returned by Handle may reference the bytes of pkt, and any
// memory allocated in a; both remain valid until the response has been
// transmitted. A nil response sends nothing back.
type Handler interface {
	Handle(ctx context.Context, pkt *cornflakes.ReceivedPkt, a *arena.Arena) (cornflakes.HeaderRepr, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, pkt *cornflakes.ReceivedPkt, a *arena.Arena) (cornflakes.HeaderRepr, error)

func (f HandlerFunc) Handle(ctx context.Context, pkt *cornflakes.ReceivedPkt, a *arena.Arena) (cornflakes.HeaderRepr, error) {
	return f(ctx, pkt, a)
}

// Server serves the requests of one queue. It is not safe for concurrent
// use; run one Server per queue.
type Server struct {
	Transport Transport
	Handler   Handler
	Logger    logrus.FieldLogger
	// Size of the chunks of the batch arena, arena.DefaultChunkSize if zero.
	ArenaChunkSize int

	arena    *arena.Arena
	outgoing []cornflakes.Outgoing
	stats    stats
}

type stats struct {
	batches   atomic.Uint64
	requests  atomic.Uint64
	responses atomic.Uint64
	dropped   atomic.Uint64
}

// Stats are the counters of a server.
type Stats struct {
	Batches   uint64
	Requests  uint64
	Responses uint64
	Dropped   uint64
}

// Stats returns the counters of s. It may be called concurrently with the
// processing loop.
func (s *Server) Stats() Stats {
	return Stats{
		Batches:   s.stats.batches.Load(),
		Requests:  s.stats.requests.Load(),
		Responses: s.stats.responses.Load(),
		Dropped:   s.stats.dropped.Load(),
	}
}

func (s *Server) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

// RunBatch waits for a batch of requests, handles them and transmits the
// responses. Requests failing with ErrBadRequest, or with a capacity or
// malformed buffer error, are logged and dropped; any other error aborts
// the batch and is returned.
func (s *Server) RunBatch(ctx context.Context) error {
	pkts, err := s.Transport.Pop(ctx)
	if err != nil {
		return err
	}
	if s.arena == nil {
		s.arena = arena.New(s.ArenaChunkSize)
	}
	a := s.arena
	for _, pkt := range pkts {
		a.Retain(pkt)
	}
	defer a.Reset()

	s.stats.batches.Add(1)
	s.stats.requests.Add(uint64(len(pkts)))

	out := s.outgoing[:0]
	defer func() {
		clear(out)
		s.outgoing = out[:0]
	}()

	for _, pkt := range pkts {
		sga, err := s.handle(ctx, pkt, a)
		if err != nil {
			if !errors.Any(err, ErrBadRequest, cornflakes.ErrCapacity, cornflakes.ErrMalformed) {
				return err
			}
			s.stats.dropped.Add(1)
			s.logger().WithError(err).WithFields(logrus.Fields{
				"msg_id":  pkt.MsgID(),
				"conn_id": pkt.ConnID(),
			}).Warn("dropping request")
			continue
		}
		if sga != nil {
			out = append(out, cornflakes.Outgoing{MsgID: pkt.MsgID(), ConnID: pkt.ConnID(), Sga: sga})
		}
	}

	if len(out) == 0 {
		return nil
	}
	if err := s.Transport.PushOrderedSgas(ctx, out); err != nil {
		return err
	}
	s.stats.responses.Add(uint64(len(out)))
	return nil
}

func (s *Server) handle(ctx context.Context, pkt *cornflakes.ReceivedPkt, a *arena.Arena) (*cornflakes.OrderedSga, error) {
	resp, err := s.Handler.Handle(ctx, pkt, a)
	if err != nil || resp == nil {
		return nil, err
	}
	header, sga := arena.AllocContext(a, resp)
	if err := cornflakes.SerializeIntoSga(resp, header, sga, s.Transport); err != nil {
		return nil, err
	}
	return sga, nil
}

// Serve runs batches until ctx is cancelled or an error occurs. It returns
// nil when stopped by ctx.
func (s *Server) Serve(ctx context.Context) error {
	log := s.logger()
	log.Debug("serving")
	for {
		if err := s.RunBatch(ctx); err != nil {
			if ctx.Err() != nil {
				log.WithField("requests", s.stats.requests.Load()).Debug("stopped")
				return nil
			}
			return err
		}
	}
}

// ServeQueues runs each server in its own goroutine until ctx is cancelled
// or one of them fails, in which case the others are stopped and the error
// is returned.
func ServeQueues(ctx context.Context, servers ...*Server) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, s := range servers {
		s := s
		group.Go(func() error { return s.Serve(ctx) })
	}
	return group.Wait()
}
