package position_test

import (
	"testing"

	"github.com/nkoppel/rootchego/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	tests := []string{
		position.Initial,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pp1ppppp/8/2pP4/8/8/PPP1PPPP/RNBQKBNR w KQkq c6 0 3",
		"8/8/8/KPp4r/8/8/8/7k w - c6 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 0 1",
	}
	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			f, err := position.ParseFEN(fen)
			require.NoError(t, err)

			h := position.NewHasher(1)
			p := position.NewPosition(f, h)
			assert.Equal(t, fen, p.String())
		})
	}
}

func TestFENChess960RookLetters(t *testing.T) {
	// Rook on a non-edge file prints its own file letter instead of the
	// classical k/q shorthand.
	fen := "3kr3/8/8/8/8/8/8/3KR3 w Ee - 0 1"
	f, err := position.ParseFEN(fen)
	require.NoError(t, err)

	h := position.NewHasher(1)
	p := position.NewPosition(f, h)
	assert.Equal(t, fen, p.String())
}

func TestFENClassicalLettersResolveOutermostRook(t *testing.T) {
	// spec.md scenario 5: rooks sit on b1/b8, not the standard a1/a8 corner,
	// so the classical "Q"/"q" letters must resolve to those rooks instead
	// of a hardcoded a-file square.
	fen := "1r2k2r/8/8/8/8/8/8/1R2K2R w KQkq -"
	f, err := position.ParseFEN(fen)
	require.NoError(t, err)
	require.Len(t, f.CastleRights, 4)

	want := map[[2]int]bool{
		{0, 0}: true, // white K -> h1 rook (file 0)
		{6, 0}: true, // white Q -> b1 rook (file 6)
		{0, 1}: true, // black k -> h8 rook (file 0)
		{6, 1}: true, // black q -> b8 rook (file 6)
	}
	for _, r := range f.CastleRights {
		black := 0
		if r.Black {
			black = 1
		}
		assert.True(t, want[[2]int{r.File, black}], "unexpected right %+v", r)
	}

	h := position.NewHasher(1)
	p := position.NewPosition(f, h)

	// Before the fix, Apply's "Kind(code) == KindRook" guard looked for a
	// rook on a1/a8, found nothing there, and silently dropped both
	// queenside rights instead of attaching them to b1/b8.
	assert.Equal(t, position.WhiteRookCR, p.Board.PieceAt(position.NewSquare(6, 1)), "b1 should be castle-eligible")
	assert.Equal(t, position.BlackRookCR, p.Board.PieceAt(position.NewSquare(6, 8)), "b8 should be castle-eligible")

	m, ok := position.ParseMove("e1h1")
	require.True(t, ok)
	next := p.Do(h, m)

	// Castling with the h1 rook must not disturb the untouched b1 rook's
	// eligibility (see TestCastlingPreservesOtherRookEligibility).
	assert.Equal(t, position.WhiteKing, next.Board.PieceAt(position.NewSquare(1, 1)))
	assert.Equal(t, position.WhiteRook, next.Board.PieceAt(position.NewSquare(2, 1)))
	assert.Equal(t, position.WhiteRookCR, next.Board.PieceAt(position.NewSquare(6, 1)), "b1 should remain castle-eligible")
}

func TestFENTolerantOfMissingFields(t *testing.T) {
	f, err := position.ParseFEN("8/8/8/8/8/8/8/K6k w")
	require.NoError(t, err)
	assert.False(t, f.HasEnPassant)
	assert.Empty(t, f.CastleRights)
	assert.Equal(t, 1, f.Fullmove)
}

func TestFENRejectsBadPlacement(t *testing.T) {
	_, err := position.ParseFEN("8/8/8/8/8/8/8 w - - 0 1")
	assert.Error(t, err)
}
