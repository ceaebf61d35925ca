package eval

import (
	"github.com/nkoppel/rootchego/internal/movegen"
	"github.com/nkoppel/rootchego/internal/position"
)

// MobilityWeight is indexed by position.Kind*; pawns and kings have no
// mobility term (pawn advances are governed by structure, kings by safety).
var MobilityWeight = [7]int{
	position.KindKnight: 4,
	position.KindBishop: 4,
	position.KindRook:   2,
	position.KindQueen:  1,
}

// Evaluate returns a centipawn score from the side-to-move's perspective:
// material, piece-square placement, cached pawn structure, king safety and
// mobility, all computed white-minus-black and then sign-flipped for black
// to move.
func Evaluate(p position.Position, hasher *position.Hasher, pawns *PawnCache) int {
	b := p.Board

	score := material(b) + pieceSquareScore(b) + kingSafetyScore(b)

	pawnHash := hasher.PawnHash(b)
	pawnScore, ok := pawns.Get(pawnHash)
	if !ok {
		pawnScore = pawnStructureScore(b)
		pawns.Put(pawnHash, pawnScore)
	}
	score += pawnScore

	score += mobilityScore(p)

	if p.Black {
		return -score
	}
	return score
}

// mobilityScore computes the side-to-move's mobility and the opponent's (by
// evaluating mobility on a copy with the side flipped) and returns the
// white-minus-black difference.
func mobilityScore(p position.Position) int {
	own := movegen.MobilityCounts(p)
	opp := p
	opp.Black = !p.Black
	theirs := movegen.MobilityCounts(opp)

	diff := 0
	for kind := 0; kind < 7; kind++ {
		diff += (own[kind] - theirs[kind]) * MobilityWeight[kind]
	}
	if p.Black {
		return -diff
	}
	return diff
}
