// Package tt implements the engine's lock-free shared transposition table:
// the Hyatt-Brent XOR-verified word-pair scheme. No mutex, no
// compare-and-swap -- a torn concurrent write is simply detected and
// reported as a miss, never as a wrong hit, which is what makes it safe to
// share across lazy-SMP searcher goroutines without synchronization.
package tt

import "sync/atomic"

type slot struct {
	word0 uint64 // hash XOR data
	word1 uint64 // data
}

// Table is a fixed-size array of (word0, word1) pairs, indexed by hash
// modulo capacity.
type Table struct {
	slots []slot
}

// New builds a table with room for entries positions. A resize (changing
// Hash option) is only safe when no searcher holds a reference to the old
// table, per the concurrency model; callers enforce that by installing a
// freshly-built Table only between searches.
func New(entries int) *Table {
	if entries < 1 {
		entries = 1
	}
	return &Table{slots: make([]slot, entries)}
}

func (t *Table) index(hash uint64) uint64 {
	return hash % uint64(len(t.slots))
}

// Read returns (data, true) only if the indexed slot currently verifies
// against hash. Any mismatch -- an empty slot, a different key hashing to
// the same index, or a write torn by a concurrent writer -- is reported as
// a plain miss.
func (t *Table) Read(hash uint64) (uint64, bool) {
	s := &t.slots[t.index(hash)]
	w0 := atomic.LoadUint64(&s.word0)
	w1 := atomic.LoadUint64(&s.word1)
	if w0^w1 == hash {
		return w1, true
	}
	return 0, false
}

// ForceRead returns the indexed slot's (word0^word1, word1) -- the stored
// hash and data -- without verification.
func (t *Table) ForceRead(hash uint64) (uint64, uint64) {
	s := &t.slots[t.index(hash)]
	w0 := atomic.LoadUint64(&s.word0)
	w1 := atomic.LoadUint64(&s.word1)
	return w0 ^ w1, w1
}

// Write stores data at hash's slot unconditionally. Callers that need a
// replacement policy (age, depth) decide whether to call Write themselves;
// Table has no opinion on that.
func (t *Table) Write(hash, data uint64) {
	s := &t.slots[t.index(hash)]
	atomic.StoreUint64(&s.word1, data)
	atomic.StoreUint64(&s.word0, hash^data)
}

func (t *Table) Len() int { return len(t.slots) }

func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i] = slot{}
	}
}

// EntriesPerMiB is the documented UCI Hash sizing constant: each entry is
// one slot (two uint64 words, 16 bytes), but the table is sized generously
// against metadata and allocator overhead at 62500 entries per MiB.
const EntriesPerMiB = 62500
