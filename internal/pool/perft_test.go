package pool_test

import (
	"context"
	"testing"

	"github.com/nkoppel/rootchego/internal/pool"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerftMatchesKnownNodeCounts(t *testing.T) {
	h := position.NewHasher(1)
	f, err := position.ParseFEN(position.Initial)
	require.NoError(t, err)
	p := position.NewPosition(f, h)

	tests := []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}
	for _, tc := range tests {
		_, total := pool.Perft(context.Background(), p, h, false, 4, tc.depth)
		assert.Equal(t, tc.want, total, "perft(%d)", tc.depth)
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	h := position.NewHasher(1)
	f, err := position.ParseFEN(position.Initial)
	require.NoError(t, err)
	p := position.NewPosition(f, h)

	moves, total := pool.Perft(context.Background(), p, h, false, 2, 2)
	assert.Len(t, moves, 20)

	var sum uint64
	for _, m := range moves {
		sum += m.Nodes
	}
	assert.Equal(t, total, sum)
}
