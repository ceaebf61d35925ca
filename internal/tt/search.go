package tt

import "github.com/nkoppel/rootchego/internal/position"

// Entry is the decoded contents of a search slot: an IBV-encoded score, the
// searcher's age at the time of the write, the remaining depth searched,
// and the best (or refuting) move found.
type Entry struct {
	Score int32
	Age   uint8
	Depth uint8
	Move  position.Move
}

func packSearch(e Entry) uint64 {
	return uint64(uint32(e.Score))<<32 | uint64(e.Age)<<24 | uint64(e.Depth)<<16 | uint64(e.Move)
}

func unpackSearch(data uint64) Entry {
	return Entry{
		Score: int32(uint32(data >> 32)),
		Age:   uint8(data >> 24),
		Depth: uint8(data >> 16),
		Move:  position.Move(uint16(data)),
	}
}

// SearchTable wraps Table with the search entry packing and the
// age/depth replacement policy from the design: a write is suppressed only
// when the existing entry belongs to the same search generation and was
// searched strictly deeper.
type SearchTable struct {
	t *Table
}

func NewSearchTable(entries int) *SearchTable { return &SearchTable{t: New(entries)} }

func (s *SearchTable) Resize(entries int) { s.t = New(entries) }

func (s *SearchTable) Clear() { s.t.Clear() }

func (s *SearchTable) Len() int { return s.t.Len() }

// Probe returns the decoded entry stored for hash, if any.
func (s *SearchTable) Probe(hash uint64) (Entry, bool) {
	data, ok := s.t.Read(hash)
	if !ok {
		return Entry{}, false
	}
	return unpackSearch(data), true
}

// Store writes e at hash, unless the slot already holds a same-age entry
// searched deeper than e.Depth.
func (s *SearchTable) Store(hash uint64, e Entry) {
	if existing, ok := s.Probe(hash); ok {
		if existing.Age == e.Age && existing.Depth > e.Depth {
			return
		}
	}
	s.t.Write(hash, packSearch(e))
}
