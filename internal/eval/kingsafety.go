package eval

import (
	"github.com/nkoppel/rootchego/internal/attacks"
	"github.com/nkoppel/rootchego/internal/position"
)

const (
	attackerPenalty = 18
	shieldPawnBonus = 10
	castledBonus    = 25
)

// kingSafetyScore penalizes a side's king for opposing slider attacks that
// reach it, rewards friendly pawns standing on its eight adjacent squares,
// and adds a flat bonus when the king sits on its castled square.
func kingSafetyScore(b position.Board) int {
	occ := b.Occupied()
	return kingSafetyFor(b, occ, false) - kingSafetyFor(b, occ, true)
}

func kingSafetyFor(b position.Board, occ uint64, black bool) int {
	var ownOcc, oppOcc, pawns uint64
	if black {
		ownOcc, oppOcc, pawns = b.Black(), b.White(), b.BlackPawns()
	} else {
		ownOcc, oppOcc, pawns = b.White(), b.Black(), b.WhitePawns()
	}
	kingBB := b.Kings() & ownOcc
	if kingBB == 0 {
		return 0
	}
	sq := trailingZeros(kingBB)

	attackers := 0
	for bb := (b.Bishops() | b.Queens()) & oppOcc; bb != 0; bb &= bb - 1 {
		if attacks.BishopAttacks(trailingZeros(bb), occ)&kingBB != 0 {
			attackers++
		}
	}
	for bb := (b.Rooks() | b.Queens()) & oppOcc; bb != 0; bb &= bb - 1 {
		if attacks.RookAttacks(trailingZeros(bb), occ)&kingBB != 0 {
			attackers++
		}
	}

	shield := popcount(attacks.King[sq] & pawns)

	score := -attackerPenalty*attackers + shieldPawnBonus*shield
	if isCastledSquare(sq, black) {
		score += castledBonus
	}
	return score
}

func isCastledSquare(sq int, black bool) bool {
	file := sq % 8
	rank := sq / 8
	homeRank := 0
	if black {
		homeRank = 7
	}
	if rank != homeRank {
		return false
	}
	// g-file (index 1) or c-file (index 5) in this engine's h=0..a=7 numbering.
	return file == 1 || file == 5
}
