package eval

import (
	"math/bits"

	"github.com/nkoppel/rootchego/internal/attacks"
	"github.com/nkoppel/rootchego/internal/position"
)

// SEE computes the static-exchange evaluation of a capture from `from` to
// `to`: the net material result of both sides recapturing on `to` with
// their cheapest available attacker, until no attacker remains or
// recapturing would lose material.
func SEE(b position.Board, from, to position.Square) int {
	occ := b.Occupied()
	capturedCode := b.PieceAt(to)
	attackerCode := b.PieceAt(from)

	var gain [32]int
	d := 0
	gain[0] = PieceValue[position.Kind(capturedCode)]
	sideBit := attackerCode & 0x8 ^ 0x8 // the side about to recapture

	occ &^= uint64(1) << uint(from)
	attackerValue := PieceValue[position.Kind(attackerCode)]

	for {
		d++
		gain[d] = attackerValue - gain[d-1]
		if max(gain[d], -gain[d-1]) < 0 {
			break
		}

		attackers := attackersTo(b, occ, to) & occ
		sideAttackers := attackers & colorOcc(b, occ, sideBit)
		if sideAttackers == 0 {
			break
		}
		sq, value := cheapest(b, sideAttackers)
		occ &^= uint64(1) << uint(sq)
		attackerValue = value
		sideBit ^= 0x8
	}

	for d--; d >= 1; d-- {
		gain[d-1] = -max(gain[d], -gain[d-1])
	}
	return gain[0]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// colorOcc returns the subset of occ (the live exchange occupancy) that is
// this color's pieces, re-derived from the board's planes rather than the
// board's own White()/Black() (which reflect the starting occupancy, not
// the pieces still "present" mid-exchange).
func colorOcc(b position.Board, occ uint64, colorBit int) uint64 {
	var out uint64
	for bb := occ; bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		if b.PieceAt(position.Square(sq))&0x8 == colorBit {
			out |= uint64(1) << uint(sq)
		}
	}
	return out
}

// attackersTo returns every square in occ holding a piece that attacks sq,
// given the live exchange occupancy occ (recomputed each step so that
// removing a blocker reveals X-ray sliders behind it).
func attackersTo(b position.Board, occ uint64, sq position.Square) uint64 {
	var out uint64
	out |= attacks.WhitePawnCapture[sq] & occ & b.BlackPawns()
	out |= attacks.BlackPawnCapture[sq] & occ & b.WhitePawns()
	out |= attacks.Knight[sq] & occ & b.Knights()
	out |= attacks.King[sq] & occ & b.Kings()
	out |= attacks.BishopAttacks(int(sq), occ) & occ & (b.Bishops() | b.Queens())
	out |= attacks.RookAttacks(int(sq), occ) & occ & (b.Rooks() | b.Queens())
	return out
}

func cheapest(b position.Board, attackers uint64) (int, int) {
	bestSq, bestVal := -1, 1<<30
	for bb := attackers; bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		v := PieceValue[position.Kind(b.PieceAt(position.Square(sq)))]
		if v < bestVal {
			bestVal, bestSq = v, sq
		}
	}
	return bestSq, bestVal
}
