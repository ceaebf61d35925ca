package search_test

import (
	"testing"

	"github.com/nkoppel/rootchego/internal/eval"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/nkoppel/rootchego/internal/search"
	"github.com/nkoppel/rootchego/internal/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func newSearcher() (*search.Searcher, *position.Hasher) {
	h := position.NewHasher(1)
	table := tt.NewSearchTable(1 << 16)
	pawns := eval.NewPawnCache(1 << 14)
	return search.NewSearcher(table, pawns, h, 1, false, true, atomic.NewBool(false)), h
}

func TestFindsMateInOne(t *testing.T) {
	s, h := newSearcher()
	f, err := position.ParseFEN("6k1/5ppp/8/8/8/8/5PPP/R6K w - - 0 1")
	require.NoError(t, err)
	p := position.NewPosition(f, h)

	best := s.Think(p, 1, 3, nil)
	assert.Equal(t, "a1a8", best.String())
}

func TestStalemateReturnsNoMove(t *testing.T) {
	s, h := newSearcher()
	f, err := position.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	p := position.NewPosition(f, h)

	best := s.Think(p, 1, 1, nil)
	assert.Equal(t, position.Move(0), best)
}

func TestThinkReportsIncreasingDepth(t *testing.T) {
	s, h := newSearcher()
	f, err := position.ParseFEN(position.Initial)
	require.NoError(t, err)
	p := position.NewPosition(f, h)

	var depths []int
	s.Think(p, 1, 3, func(r search.Result) { depths = append(depths, r.Depth) })
	assert.Equal(t, []int{1, 2, 3}, depths)
}
