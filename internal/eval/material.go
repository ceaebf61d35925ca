// Package eval implements the positional evaluator: material, piece-square
// tables, pawn structure (cached in a dedicated pawn-only table), king
// safety, mobility, and static-exchange evaluation.
package eval

import "github.com/nkoppel/rootchego/internal/position"

// PieceValue is indexed by position.Kind*. King carries a value large
// enough that SEE and capture ordering never treat "winning" a king
// exchange as anything but overwhelming, since it can never actually be
// captured in a legal position.
var PieceValue = [7]int{
	position.KindNone:   0,
	position.KindPawn:   100,
	position.KindKnight: 320,
	position.KindBishop: 330,
	position.KindQueen:  900,
	position.KindKing:   20000,
	position.KindRook:   500,
}

func material(b position.Board) int {
	score := 0
	score += popcount(b.WhitePawns()) * PieceValue[position.KindPawn]
	score -= popcount(b.BlackPawns()) * PieceValue[position.KindPawn]
	score += popcount(b.WhiteKnights()) * PieceValue[position.KindKnight]
	score -= popcount(b.BlackKnights()) * PieceValue[position.KindKnight]
	score += popcount(b.WhiteBishops()) * PieceValue[position.KindBishop]
	score -= popcount(b.BlackBishops()) * PieceValue[position.KindBishop]
	score += popcount(b.WhiteRooks()) * PieceValue[position.KindRook]
	score -= popcount(b.BlackRooks()) * PieceValue[position.KindRook]
	score += popcount(b.WhiteQueens()) * PieceValue[position.KindQueen]
	score -= popcount(b.BlackQueens()) * PieceValue[position.KindQueen]
	return score
}

func popcount(v uint64) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}
