package movegen_test

import (
	"testing"

	"github.com/nkoppel/rootchego/internal/movegen"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perft(p position.Position, h *position.Hasher, chess960 bool, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	list := movegen.Generate(p, chess960)
	if depth == 1 {
		return uint64(list.Len)
	}
	var n uint64
	for _, m := range list.Slice() {
		n += perft(p.Do(h, m), h, chess960, depth-1)
	}
	return n
}

// The six standard perft positions from
// https://www.chessprogramming.org/Perft_Results, covering castling (both
// sides), promotion, en passant, and pins/discovered checks.
func TestPerftStandardPositions(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		counts []uint64 // counts[i] is perft(i+1)
	}{
		{
			name:   "start position",
			fen:    position.Initial,
			counts: []uint64{20, 400, 8902, 197281},
		},
		{
			name:   "kiwipete",
			fen:    "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
			counts: []uint64{48, 2039, 97862},
		},
		{
			name:   "position 3",
			fen:    "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
			counts: []uint64{14, 191, 2812, 43238},
		},
		{
			name:   "position 4",
			fen:    "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
			counts: []uint64{6, 264, 9467},
		},
		{
			name:   "position 5",
			fen:    "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
			counts: []uint64{44, 1486, 62379},
		},
		{
			name:   "position 6",
			fen:    "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
			counts: []uint64{46, 2079, 89890},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := position.ParseFEN(tc.fen)
			require.NoError(t, err)
			h := position.NewHasher(1)
			p := position.NewPosition(f, h)

			for i, want := range tc.counts {
				got := perft(p, h, false, i+1)
				assert.Equal(t, want, got, "perft(%d) from %v", i+1, tc.fen)
			}
		})
	}
}

func TestMateInOneHasNoReply(t *testing.T) {
	f, err := position.ParseFEN("R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	require.NoError(t, err)
	h := position.NewHasher(1)
	p := position.NewPosition(f, h)

	assert.True(t, movegen.InCheck(p))
	assert.False(t, movegen.HasLegalMove(p, false))
}

func TestStalemateHasNoReplyAndNoCheck(t *testing.T) {
	f, err := position.ParseFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	h := position.NewHasher(1)
	p := position.NewPosition(f, h)

	assert.False(t, movegen.InCheck(p))
	assert.False(t, movegen.HasLegalMove(p, false))
}

// TestEnPassantDiscoveredCheckIsIllegal covers the classic king/rook-on-same-
// rank case: the en-passant capture vacates two squares at once (the
// capturing and captured pawns), opening the rank to the black rook even
// though neither pawn individually looks pinned.
func TestEnPassantDiscoveredCheckIsIllegal(t *testing.T) {
	f, err := position.ParseFEN("8/8/8/KPp4r/8/8/8/7k w - c6 0 1")
	require.NoError(t, err)
	h := position.NewHasher(1)
	p := position.NewPosition(f, h)

	m, ok := position.ParseMove("b5c6")
	require.True(t, ok)

	legal := movegen.Generate(p, false)
	for _, c := range legal.Slice() {
		assert.NotEqual(t, m, c, "en-passant capture must be illegal: exposes the king on the rank")
	}
}

func TestCastleWhileInCheckIsIllegal(t *testing.T) {
	// Black rook on e8 attacks straight down the e-file onto e1: the king
	// is in check, and castling (either side) is never generated while in
	// check.
	f, err := position.ParseFEN("4r3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)
	h := position.NewHasher(1)
	p := position.NewPosition(f, h)

	legal := movegen.Generate(p, false)
	queenside, kingside := false, false
	for _, m := range legal.Slice() {
		if m.From() == position.NewSquare(3, 1) && m.To() == position.NewSquare(5, 1) {
			queenside = true
		}
		if m.From() == position.NewSquare(3, 1) && m.To() == position.NewSquare(1, 1) {
			kingside = true
		}
	}
	assert.False(t, queenside)
	assert.False(t, kingside)
}

func TestChess960CastlingGenerated(t *testing.T) {
	f, err := position.ParseFEN("3kr3/8/8/8/8/8/4P3/3KR3 w Ee - 0 1")
	require.NoError(t, err)
	h := position.NewHasher(1)
	p := position.NewPosition(f, h)

	legal := movegen.Generate(p, true)
	var found bool
	for _, m := range legal.Slice() {
		if m.From() == position.NewSquare(4, 1) && m.To() == position.NewSquare(3, 1) {
			found = true
		}
	}
	assert.True(t, found, "expected a Chess960 castle move (king onto its own rook)")
}

func TestTranspositionReachesSameHash(t *testing.T) {
	h := position.NewHasher(5)
	f, err := position.ParseFEN(position.Initial)
	require.NoError(t, err)
	start := position.NewPosition(f, h)

	order1 := []string{"e2e4", "e7e5", "g1f3", "b8c6"}
	order2 := []string{"g1f3", "b8c6", "e2e4", "e7e5"}

	play := func(moves []string) position.Position {
		p := start
		for _, mv := range moves {
			m, ok := position.ParseMove(mv)
			require.True(t, ok)
			p = p.Do(h, m)
		}
		return p
	}

	a := play(order1)
	b := play(order2)
	assert.Equal(t, a.Hash, b.Hash)
	assert.True(t, a.Board.Equal(b.Board))
}
