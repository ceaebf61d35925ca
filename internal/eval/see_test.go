package eval_test

import (
	"testing"

	"github.com/nkoppel/rootchego/internal/eval"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSEEWinningRookTrade(t *testing.T) {
	// Rxe5 wins a clean pawn: e5 is undefended, so there is no
	// recapture.
	f, err := position.ParseFEN("1k1r4/1pp4p/p7/4p3/8/P5P1/1PP4P/2K1R3 w - - 0 1")
	require.NoError(t, err)

	from := position.NewSquare(3, 1) // e1
	to := position.NewSquare(3, 5)   // e5
	assert.Equal(t, eval.PieceValue[position.KindPawn], eval.SEE(f.Board, from, to))
}

func TestSEELosingKnightTrade(t *testing.T) {
	// Nxe5 loses the knight for a pawn: the d7 knight recaptures.
	f, err := position.ParseFEN("1k1r3q/1ppn3p/p4b2/4p3/8/P2N2P1/1PP1R1BP/2K1Q3 w - - 0 1")
	require.NoError(t, err)

	from := position.NewSquare(4, 3) // d3
	to := position.NewSquare(3, 5)   // e5
	want := eval.PieceValue[position.KindPawn] - eval.PieceValue[position.KindKnight]
	assert.Equal(t, want, eval.SEE(f.Board, from, to))
}
