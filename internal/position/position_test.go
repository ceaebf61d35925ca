package position_test

import (
	"testing"

	"github.com/nkoppel/rootchego/internal/movegen"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFEN(t *testing.T, fen string, h *position.Hasher) position.Position {
	t.Helper()
	f, err := position.ParseFEN(fen)
	require.NoError(t, err)
	return position.NewPosition(f, h)
}

// TestIncrementalHashMatchesFromScratch walks a short game and checks, at
// every ply, that the incrementally updated hash equals hashing the
// resulting board from scratch -- the property the whole packed-plane
// design exists to make cheap.
func TestIncrementalHashMatchesFromScratch(t *testing.T) {
	h := position.NewHasher(42)
	p := mustFEN(t, position.Initial, h)

	line := []string{"e2e4", "c7c5", "g1f3", "d7d6", "f1b5", "b8d7", "e1g1"}
	for _, mv := range line {
		m, ok := position.ParseMove(mv)
		require.True(t, ok)

		legal := movegen.Generate(p, false)
		var found bool
		for _, c := range legal.Slice() {
			if c == m {
				found = true
				break
			}
		}
		require.True(t, found, "move %v not legal in %v", mv, p.String())

		p = p.Do(h, m)
		want := h.Hash(p.Board, p.Black)
		assert.Equal(t, want, p.Hash, "hash mismatch after %v", mv)
	}
}

func TestDoInverseMoveRoundTrip(t *testing.T) {
	h := position.NewHasher(7)
	p := mustFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", h)

	m, ok := position.ParseMove("f3g5")
	require.True(t, ok)

	next := p.Do(h, m)
	assert.Equal(t, m, position.InverseMove(p, next))
}

func TestCastlingPreservesOtherRookEligibility(t *testing.T) {
	h := position.NewHasher(3)
	p := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", h)

	m, ok := position.ParseMove("e1g1")
	require.True(t, ok)
	next := p.Do(h, m)

	// White castled kingside; the untouched a1 rook keeps its
	// castle-eligible code -- only the rook that actually castles loses
	// eligibility, matching spec.md's Chess960 worked example where "Q"
	// survives a kingside castle.
	assert.Equal(t, position.WhiteRookCR, next.Board.PieceAt(position.NewSquare(7, 1)))
	assert.Equal(t, "r3k2r/8/8/8/8/8/8/R4RK1 b Qkq - 1 1", next.String())
}

func TestOrdinaryKingMoveClearsBothRookEligibility(t *testing.T) {
	h := position.NewHasher(5)
	p := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", h)

	m, ok := position.ParseMove("e1d1")
	require.True(t, ok)
	next := p.Do(h, m)

	// A plain (non-castling) king step strips both rooks' eligibility,
	// even the one it didn't touch -- unlike castling, which only
	// demotes the rook it actually moves with.
	assert.Equal(t, position.WhiteRook, next.Board.PieceAt(position.NewSquare(7, 1)))
	assert.Equal(t, position.WhiteRook, next.Board.PieceAt(position.NewSquare(0, 1)))
}

func TestChess960CastlingKingOntoOwnRook(t *testing.T) {
	h := position.NewHasher(9)
	p := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", h)

	// King castles kingside by "moving onto" its own h1 rook, Chess960-style.
	m := position.NewMove(position.NewSquare(3, 1), position.NewSquare(0, 1), position.PromoNone)
	next := p.Do(h, m)

	assert.Equal(t, position.WhiteKing, next.Board.PieceAt(position.NewSquare(1, 1)))
	assert.Equal(t, position.WhiteRook, next.Board.PieceAt(position.NewSquare(2, 1)))
}

func TestEnPassantCapture(t *testing.T) {
	h := position.NewHasher(11)
	p := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", h)

	m, ok := position.ParseMove("e5d6")
	require.True(t, ok)
	next := p.Do(h, m)

	assert.Equal(t, position.Empty, next.Board.PieceAt(position.NewSquare(4, 5))) // d5 vacated
	assert.Equal(t, position.WhitePawn, next.Board.PieceAt(position.NewSquare(4, 6)))
}

func TestNullMoveFlipsSideAndClearsEnPassant(t *testing.T) {
	h := position.NewHasher(13)
	p := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", h)

	next := p.Null(h)
	assert.True(t, next.Black)
	assert.Equal(t, uint64(0), next.Board.EnPassants())
	assert.Equal(t, h.Hash(next.Board, next.Black), next.Hash)
}
