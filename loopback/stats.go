package loopback

import (
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

type stats struct {
	packets    atomic.Uint64
	segments   atomic.Uint64
	copied     atomic.Uint64
	zeroCopied atomic.Uint64
}

func (s *stats) snapshot() Stats {
	return Stats{
		Packets:         s.packets.Load(),
		Segments:        s.segments.Load(),
		CopiedBytes:     s.copied.Load(),
		ZeroCopiedBytes: s.zeroCopied.Load(),
	}
}

// Stats are the transmit counters of a connection.
type Stats struct {
	Packets  uint64
	Segments uint64
	// Bytes copied into transmit buffers, headers included.
	CopiedBytes uint64
	// Bytes sent from registered memory without a copy.
	ZeroCopiedBytes uint64
}

func (s Stats) String() string {
	return fmt.Sprintf("%s packets in %s segments, %s copied, %s zero-copy",
		humanize.Comma(int64(s.Packets)), humanize.Comma(int64(s.Segments)),
		humanize.Bytes(s.CopiedBytes), humanize.Bytes(s.ZeroCopiedBytes))
}
