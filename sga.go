package cornflakes

import "fmt"

// Sge is a scatter-gather entry: one contiguous segment of a message as it
// will be transmitted.
type Sge struct {
	buf []byte
}

func NewSge(b []byte) Sge { return Sge{buf: b} }

func (e Sge) Bytes() []byte { return e.buf }
func (e Sge) Len() int      { return len(e.buf) }

// OrderedSga is the scatter-gather array of one serialized message.
//
// Slot 0 is reserved for the header buffer; the payload entries follow it.
// After reordering, the payload is made of a copy run, whose bytes the
// datapath copies right after the header, followed by a zero-copy run of
// segments transmitted straight from registered memory.
type OrderedSga struct {
	entries []Sge
	offsets []int
	length  int
	numCopy int
}

// AllocateOrderedSga returns an array able to hold capacity payload entries
// in addition to the header.
func AllocateOrderedSga(capacity int) *OrderedSga {
	return NewOrderedSga(make([]Sge, capacity+1), make([]int, capacity))
}

// NewOrderedSga builds an array over caller provided storage, for example
// memory obtained from an arena. offsets is the scratch space used to track
// the header slot of every payload entry during serialization.
func NewOrderedSga(entries []Sge, offsets []int) *OrderedSga {
	if len(entries) == 0 {
		panic("cornflakes: ordered sga needs a header slot")
	}
	return &OrderedSga{entries: entries, offsets: offsets}
}

// Capacity returns the maximum number of payload entries.
func (s *OrderedSga) Capacity() int { return min(len(s.entries)-1, len(s.offsets)) }

// Len returns the number of payload entries.
func (s *OrderedSga) Len() int { return s.length }

// SetLength sets the number of payload entries. Until the array is
// reordered, every payload entry belongs to the copy run.
func (s *OrderedSga) SetLength(n int) error {
	if n < 0 || n > s.Capacity() {
		return ErrCapacity.New(fmt.Sprintf("%d scatter-gather entries requested, array holds %d", n, s.Capacity()))
	}
	s.length, s.numCopy = n, n
	return nil
}

// Reset empties the array, keeping its storage.
func (s *OrderedSga) Reset() {
	clear(s.entries[:s.length+1])
	s.length, s.numCopy = 0, 0
}

func (s *OrderedSga) Header() Sge { return s.entries[0] }

func (s *OrderedSga) SetHeader(e Sge) { s.entries[0] = e }

// Entries returns the header followed by the payload entries, in
// transmission order.
func (s *OrderedSga) Entries() []Sge { return s.entries[:1+s.length] }

func (s *OrderedSga) PayloadEntries() []Sge { return s.entries[1 : 1+s.length] }

func (s *OrderedSga) NumCopyEntries() int { return s.numCopy }

func (s *OrderedSga) NumZeroCopyEntries() int { return s.length - s.numCopy }

func (s *OrderedSga) CopyRun() []Sge { return s.entries[1 : 1+s.numCopy] }

func (s *OrderedSga) ZeroCopyRun() []Sge { return s.entries[1+s.numCopy : 1+s.length] }

// DataLen returns the number of bytes of the message, header included.
func (s *OrderedSga) DataLen() int {
	n := 0
	for _, e := range s.Entries() {
		n += e.Len()
	}
	return n
}

// CopyLen returns the number of bytes of the header and the copy run, which
// is what a datapath copies into its transmit buffer.
func (s *OrderedSga) CopyLen() int {
	n := s.entries[0].Len()
	for _, e := range s.CopyRun() {
		n += e.Len()
	}
	return n
}

// FlattenCopyRun copies the header and the copy run into dst and returns
// the number of bytes written. dst must be at least CopyLen bytes long.
func (s *OrderedSga) FlattenCopyRun(dst []byte) int {
	n := copy(dst, s.entries[0].buf)
	for _, e := range s.CopyRun() {
		n += copy(dst[n:], e.buf)
	}
	return n
}

// Flatten returns the whole message in a single freshly allocated slice.
func (s *OrderedSga) Flatten() []byte {
	b := make([]byte, 0, s.DataLen())
	for _, e := range s.Entries() {
		b = append(b, e.buf...)
	}
	return b
}

func (s *OrderedSga) checkOffsets(offsets []int) error {
	if len(offsets) != s.length {
		return ErrCapacity.New(fmt.Sprintf("%d offsets for %d scatter-gather entries", len(offsets), s.length))
	}
	return nil
}

// ReorderBySizeAndRegistration moves the entries that are worth sending
// without a copy, those at least as long as the copying threshold and held
// in registered memory, to the end of the payload. The partition is stable
// and offsets is permuted along with the entries. Reordering an already
// ordered array leaves it unchanged.
func (s *OrderedSga) ReorderBySizeAndRegistration(dp Datapath, offsets []int) error {
	if err := s.checkOffsets(offsets); err != nil {
		return err
	}
	threshold := dp.CopyingThreshold()
	s.numCopy = s.partition(0, offsets, func(e Sge) bool {
		return e.Len() < threshold || !dp.IsRegistered(e.buf)
	})
	return nil
}

// ReorderByMaxSegs demotes zero-copy entries to the copy run until the
// zero-copy run fits in the segments the datapath can send along with the
// header. Shorter entries are demoted first and, among entries of equal
// length, earlier ones. Demoted entries keep their relative order and land
// at the end of the copy run.
//
// It must run after ReorderBySizeAndRegistration.
func (s *OrderedSga) ReorderByMaxSegs(dp Datapath, offsets []int) error {
	if err := s.checkOffsets(offsets); err != nil {
		return err
	}
	limit := max(dp.MaxScatterGatherEntries()-1, 0)
	excess := s.NumZeroCopyEntries() - limit
	if excess <= 0 {
		return nil
	}
	tail := s.ZeroCopyRun()

	// Find the length of the last entry to demote, then how many entries
	// of exactly that length are demoted.
	cutoff := 0
	for i, e := range tail {
		rank := 0
		for j, o := range tail {
			if o.Len() < e.Len() || (o.Len() == e.Len() && j < i) {
				rank++
			}
		}
		if rank == excess-1 {
			cutoff = e.Len()
			break
		}
	}
	quota := excess
	for _, e := range tail {
		if e.Len() < cutoff {
			quota--
		}
	}

	s.numCopy = s.partition(s.numCopy, offsets, func(e Sge) bool {
		switch {
		case e.Len() < cutoff:
			return true
		case e.Len() == cutoff && quota > 0:
			quota--
			return true
		default:
			return false
		}
	})
	return nil
}

// partition stably moves the payload entries at index start and beyond for
// which front returns true ahead of the others and returns the index, in the
// payload, of the first entry left behind. front is called once per entry,
// in order.
func (s *OrderedSga) partition(start int, offsets []int, front func(Sge) bool) int {
	entries := s.PayloadEntries()
	w := start
	for i := start; i < len(entries); i++ {
		if !front(entries[i]) {
			continue
		}
		if i != w {
			e, o := entries[i], offsets[i]
			copy(entries[w+1:i+1], entries[w:i])
			copy(offsets[w+1:i+1], offsets[w:i])
			entries[w], offsets[w] = e, o
		}
		w++
	}
	return w
}
