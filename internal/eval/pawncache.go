package eval

import "github.com/nkoppel/rootchego/internal/tt"

// PawnCache is the small dedicated table (§4.5) caching the pawn-structure
// term, keyed by a hash over only the pawn planes, built on the same
// lock-free word-pair primitive as the main transposition table.
type PawnCache struct {
	t *tt.Table
}

func NewPawnCache(entries int) *PawnCache {
	return &PawnCache{t: tt.New(entries)}
}

func (c *PawnCache) Get(hash uint64) (int, bool) {
	data, ok := c.t.Read(hash)
	if !ok {
		return 0, false
	}
	return int(int32(uint32(data))), true
}

func (c *PawnCache) Put(hash uint64, score int) {
	c.t.Write(hash, uint64(uint32(int32(score))))
}

func (c *PawnCache) Clear() { c.t.Clear() }
