package search

import (
	"testing"

	"github.com/nkoppel/rootchego/internal/eval"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/nkoppel/rootchego/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

// TestRepetitionScoredAsDrawNotAtRoot exercises alphabeta directly: a
// position already on the Ancestry path (as it would be if reached again
// mid-search) must score as a draw (0) rather than be evaluated normally,
// but only below the root -- ply 0 itself is exempt, since the root
// position is always "new" the moment a search starts from it.
func TestRepetitionScoredAsDrawNotAtRoot(t *testing.T) {
	h := position.NewHasher(1)
	table := tt.NewSearchTable(1 << 12)
	pawns := eval.NewPawnCache(1 << 10)
	s := NewSearcher(table, pawns, h, 1, false, true, atomic.NewBool(false))

	f, err := position.ParseFEN("4k3/8/8/8/8/8/7P/4K3 w - - 0 1")
	require.NoError(t, err)
	p := position.NewPosition(f, h)

	s.Ancestry.Push(p.Hash)
	score, err := s.alphabeta(p, -Checkmate*2, Checkmate*2, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}
