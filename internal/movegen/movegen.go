// Package movegen generates fully legal moves for a Position: it resolves
// checks, pins, and castling legality up front so that every Move it
// produces is legal to play without further validation by the caller.
package movegen

import (
	"math/bits"

	"github.com/nkoppel/rootchego/internal/attacks"
	"github.com/nkoppel/rootchego/internal/position"
)

// getChecks returns the bitboard of opponent pieces currently giving check,
// found by casting the side-to-move's own attack patterns outward from its
// king and intersecting with matching opponent pieces.
func getChecks(b position.Board, black bool) uint64 {
	occ := b.Occupied()
	var curOcc, oppOcc uint64
	var pawnCap *[64]uint64
	if black {
		curOcc, oppOcc, pawnCap = b.Black(), b.White(), &attacks.BlackPawnCapture
	} else {
		curOcc, oppOcc, pawnCap = b.White(), b.Black(), &attacks.WhitePawnCapture
	}
	kingBB := b.Kings() & curOcc
	if kingBB == 0 {
		return 0
	}
	kingLoc := bits.TrailingZeros64(kingBB)

	var out uint64
	out |= pawnCap[kingLoc] & oppOcc & b.Pawns()
	out |= attacks.Knight[kingLoc] & oppOcc & b.Knights()
	out |= attacks.BishopAttacks(kingLoc, occ) & oppOcc & (b.Bishops() | b.Queens())
	out |= attacks.RookAttacks(kingLoc, occ) & oppOcc & (b.Rooks() | b.Queens())
	return out
}

// getThreatened returns every square attacked by the opponent, with the
// side-to-move's own king removed from the occupancy so a slider's attack
// correctly extends past the square the king is fleeing from.
func getThreatened(b position.Board, black bool) uint64 {
	var curOcc, oppOcc uint64
	var pawnCap *[64]uint64
	if black {
		curOcc, oppOcc, pawnCap = b.Black(), b.White(), &attacks.WhitePawnCapture
	} else {
		curOcc, oppOcc, pawnCap = b.White(), b.Black(), &attacks.BlackPawnCapture
	}
	king := b.Kings() & curOcc
	occ := b.Occupied() &^ king

	var out uint64
	for bb := b.Pawns() & oppOcc; bb != 0; bb &= bb - 1 {
		out |= pawnCap[bits.TrailingZeros64(bb)]
	}
	for bb := b.Knights() & oppOcc; bb != 0; bb &= bb - 1 {
		out |= attacks.Knight[bits.TrailingZeros64(bb)]
	}
	for bb := b.Kings() & oppOcc; bb != 0; bb &= bb - 1 {
		out |= attacks.King[bits.TrailingZeros64(bb)]
	}
	for bb := (b.Bishops() | b.Queens()) & oppOcc; bb != 0; bb &= bb - 1 {
		out |= attacks.BishopAttacks(bits.TrailingZeros64(bb), occ)
	}
	for bb := (b.Rooks() | b.Queens()) & oppOcc; bb != 0; bb &= bb - 1 {
		out |= attacks.RookAttacks(bits.TrailingZeros64(bb), occ)
	}
	return out
}

// getPins computes, for every square, the set of destination squares a
// piece pinned to the king may legally move to (capturing the pinner or
// staying on the pin ray); unpinned squares map to ^0 (unrestricted). A
// pinning slider contributes a restriction only at the square of the single
// friendly piece actually lying on its ray to the king -- indexing by the
// pinned piece's own square, not the slider's, since that is how callers
// look the table up.
func getPins(b position.Board, black bool) [64]uint64 {
	var curOcc, oppOcc uint64
	if black {
		curOcc, oppOcc = b.Black(), b.White()
	} else {
		curOcc, oppOcc = b.White(), b.Black()
	}
	kingBB := b.Kings() & curOcc
	var out [64]uint64
	for i := range out {
		out[i] = ^uint64(0)
	}
	if kingBB == 0 {
		return out
	}
	kingLoc := bits.TrailingZeros64(kingBB)

	bishopRay := attacks.BishopAttacks(kingLoc, oppOcc)
	rookRay := attacks.RookAttacks(kingLoc, oppOcc)

	for bb := bishopRay & oppOcc & (b.Bishops() | b.Queens()); bb != 0; bb &= bb - 1 {
		pinner := bits.TrailingZeros64(bb)
		moves := bishopRay&attacks.BishopAttacks(pinner, oppOcc|kingBB) | uint64(1)<<uint(pinner)
		if pinned := moves & curOcc; bits.OnesCount64(pinned) == 1 {
			out[bits.TrailingZeros64(pinned)] = moves
		}
	}
	for bb := rookRay & oppOcc & (b.Rooks() | b.Queens()); bb != 0; bb &= bb - 1 {
		pinner := bits.TrailingZeros64(bb)
		moves := rookRay&attacks.RookAttacks(pinner, oppOcc|kingBB) | uint64(1)<<uint(pinner)
		if pinned := moves & curOcc; bits.OnesCount64(pinned) == 1 {
			out[bits.TrailingZeros64(pinned)] = moves
		}
	}
	return out
}

// getBlocks returns the current checking pieces and the set of squares a
// non-king move must land on: everywhere (^0) when not in check, the
// interposing/capture squares against a single checker, or nothing (0) when
// in double check, since only the king can move then.
func getBlocks(b position.Board, black bool) (checks, blocks uint64) {
	occ := b.Occupied()
	var curOcc uint64
	if black {
		curOcc = b.Black()
	} else {
		curOcc = b.White()
	}
	kingBB := b.Kings() & curOcc
	checks = getChecks(b, black)

	switch bits.OnesCount64(checks) {
	case 0:
		return checks, ^uint64(0)
	case 1:
	default:
		return checks, 0
	}
	if kingBB == 0 {
		return checks, checks
	}
	kingLoc := bits.TrailingZeros64(kingBB)
	checkLoc := bits.TrailingZeros64(checks)

	rook := attacks.RookAttacks(kingLoc, occ)
	if rook&checks != 0 {
		return checks, attacks.RookAttacks(checkLoc, occ)&rook | checks
	}
	bishop := attacks.BishopAttacks(kingLoc, occ)
	if bishop&checks != 0 {
		return checks, attacks.BishopAttacks(checkLoc, occ)&bishop | checks
	}
	return checks, checks
}

func addMoves(out *position.List, from position.Square, moves uint64, promo int) {
	for moves != 0 {
		to := position.Square(bits.TrailingZeros64(moves))
		moves &= moves - 1
		out.Push(position.NewMove(from, to, promo))
	}
}

func addPawnMoves(out *position.List, from position.Square, moves uint64, promoRank int) {
	for moves != 0 {
		to := position.Square(bits.TrailingZeros64(moves))
		moves &= moves - 1
		if to.Rank() == promoRank {
			out.Push(position.NewMove(from, to, position.PromoQueen))
			out.Push(position.NewMove(from, to, position.PromoRook))
			out.Push(position.NewMove(from, to, position.PromoBishop))
			out.Push(position.NewMove(from, to, position.PromoKnight))
			continue
		}
		out.Push(position.NewMove(from, to, position.PromoNone))
	}
}

func genSlider(out *position.List, bb uint64, attacksFn func(int) uint64, curOcc, blocks uint64, pins [64]uint64) {
	for bb != 0 {
		sq := bits.TrailingZeros64(bb)
		bb &= bb - 1
		moves := attacksFn(sq) &^ curOcc
		moves &= blocks
		moves &= pins[sq]
		addMoves(out, position.Square(sq), moves, position.PromoNone)
	}
}

// legalEnPassant re-checks an en-passant capture against the board as it
// would exist after the move: both the capturing pawn's origin and the
// captured pawn's square empty out while the destination fills, which can
// open a rank to a slider that no ordinary pin computation (which only
// tracks one friendly piece between king and attacker) would have flagged --
// the classic case of a king and rook sharing a rank with two pawns between
// them, one of which vanishes via en passant.
func legalEnPassant(b position.Board, black bool, from, to position.Square) bool {
	var curOcc, oppOcc uint64
	if black {
		curOcc, oppOcc = b.Black(), b.White()
	} else {
		curOcc, oppOcc = b.White(), b.Black()
	}
	kingBB := b.Kings() & curOcc
	if kingBB == 0 {
		return true
	}
	capSq := position.NewSquare(to.File(), from.Rank())
	occ := (b.Occupied() &^ from.Bit() &^ capSq.Bit()) | to.Bit()
	kingLoc := bits.TrailingZeros64(kingBB)
	if attacks.RookAttacks(kingLoc, occ)&oppOcc&(b.Rooks()|b.Queens()) != 0 {
		return false
	}
	if attacks.BishopAttacks(kingLoc, occ)&oppOcc&(b.Bishops()|b.Queens()) != 0 {
		return false
	}
	return true
}

func genPawns(out *position.List, b position.Board, black bool, curOcc, oppOcc, occ, checks, blocks uint64, pins [64]uint64) {
	pawns := b.Pawns() & curOcc
	ep := b.EnPassants()

	var startRank, promoRank int
	var pushShift func(uint64) uint64
	var captures *[64]uint64
	if black {
		startRank, promoRank = 7, 1
		pushShift = func(x uint64) uint64 { return x >> 8 }
		captures = &attacks.BlackPawnCapture
	} else {
		startRank, promoRank = 2, 8
		pushShift = func(x uint64) uint64 { return x << 8 }
		captures = &attacks.WhitePawnCapture
	}

	for bb := pawns; bb != 0; bb &= bb - 1 {
		sq := position.Square(bits.TrailingZeros64(bb))
		var moves uint64
		single := pushShift(sq.Bit()) &^ occ
		if sq.Rank() == startRank {
			double := pushShift(single) &^ occ
			moves = single | double
		} else {
			moves = single
		}
		moves |= captures[sq] & oppOcc
		moves &= blocks
		moves &= pins[sq]

		if epBB := captures[sq] & ep; epBB != 0 {
			to := position.Square(bits.TrailingZeros64(epBB))
			capSq := position.NewSquare(to.File(), sq.Rank())
			// the checker itself may be the pawn this capture removes, which
			// resolves check even though the destination square isn't the
			// checker's square (the ordinary "blocks" test assumes it is).
			checkOK := blocks == ^uint64(0) || blocks&epBB != 0 || checks&capSq.Bit() != 0
			if checkOK && pins[sq]&epBB != 0 && legalEnPassant(b, black, sq, to) {
				moves |= epBB
			}
		}

		addPawnMoves(out, sq, moves, promoRank)
	}
}

func genCastling(out *position.List, b position.Board, black bool, threats uint64, chess960 bool) {
	colorBit := 0
	curOcc := b.White()
	if black {
		colorBit = 0x8
		curOcc = b.Black()
	}
	kingBB := b.Kings() & curOcc
	if kingBB == 0 {
		return
	}
	kingSq := position.Square(bits.TrailingZeros64(kingBB))
	empties := b.Empty() | b.EnPassants()

	for bb := b.CastleRooks() & curOcc; bb != 0; bb &= bb - 1 {
		rookSq := position.Square(bits.TrailingZeros64(bb))
		t := attacks.Castle(colorBit, kingSq.File(), rookSq.File())
		if t.Threat&threats != 0 {
			continue
		}
		if t.Empty&^empties != 0 {
			continue
		}
		dest := rookSq
		if !chess960 {
			if rookSq.File() < kingSq.File() {
				dest = position.NewSquare(1, kingSq.Rank())
			} else {
				dest = position.NewSquare(5, kingSq.Rank())
			}
		}
		out.Push(position.NewMove(kingSq, dest, position.PromoNone))
	}
}

// Generate produces every legal move in p. chess960 selects whether a
// castle is encoded as the king hopping two squares (classical) or the king
// moving onto its own rook (Chess960).
func Generate(p position.Position, chess960 bool) position.List {
	var out position.List
	b := p.Board
	occ := b.Occupied()
	curOcc := p.Own()
	oppOcc := p.Opp()

	threats := getThreatened(b, p.Black)
	checks, blocks := getBlocks(b, p.Black)
	pins := getPins(b, p.Black)

	if kingBB := b.Kings() & curOcc; kingBB != 0 {
		from := position.Square(bits.TrailingZeros64(kingBB))
		moves := attacks.King[from] &^ curOcc &^ threats
		addMoves(&out, from, moves, position.PromoNone)
	}

	if bits.OnesCount64(checks) > 1 {
		return out
	}

	genPawns(&out, b, p.Black, curOcc, oppOcc, occ, checks, blocks, pins)
	genSlider(&out, b.Knights()&curOcc, func(sq int) uint64 { return attacks.Knight[sq] }, curOcc, blocks, pins)
	genSlider(&out, b.Bishops()&curOcc, func(sq int) uint64 { return attacks.BishopAttacks(sq, occ) }, curOcc, blocks, pins)
	genSlider(&out, b.Rooks()&curOcc, func(sq int) uint64 { return attacks.RookAttacks(sq, occ) }, curOcc, blocks, pins)
	genSlider(&out, b.Queens()&curOcc, func(sq int) uint64 { return attacks.BishopAttacks(sq, occ) | attacks.RookAttacks(sq, occ) }, curOcc, blocks, pins)

	if checks == 0 {
		genCastling(&out, b, p.Black, threats, chess960)
	}

	return out
}

// GenerateCaptures returns the subset of legal moves that are captures
// (including en passant, whose destination still carries the en-passant
// marker code rather than Empty) or promotions, for quiescence search.
func GenerateCaptures(p position.Position, chess960 bool) position.List {
	all := Generate(p, chess960)
	var out position.List
	for _, m := range all.Slice() {
		if p.Board.PieceAt(m.To()) != position.Empty || m.Promo() != position.PromoNone {
			out.Push(m)
		}
	}
	return out
}

// InCheck reports whether the side to move is in check.
func InCheck(p position.Position) bool {
	return getChecks(p.Board, p.Black) != 0
}

// HasLegalMove reports whether p has at least one legal move, distinguishing
// checkmate/stalemate from a position with replies.
func HasLegalMove(p position.Position, chess960 bool) bool {
	return Generate(p, chess960).Len > 0
}

// MobilityCounts returns, per piece kind (position.Kind* indexed), the
// number of destination squares available to the side to move after the
// same pin and check masking Generate itself applies -- the evaluator's
// mobility term is computed from these masked attack sets, not from
// enumerating the final move list.
func MobilityCounts(p position.Position) [7]int {
	var out [7]int
	b := p.Board
	occ := b.Occupied()
	curOcc := p.Own()
	_, blocks := getBlocks(b, p.Black)
	pins := getPins(b, p.Black)

	count := func(bb uint64, attacksFn func(int) uint64) int {
		n := 0
		for bb != 0 {
			sq := bits.TrailingZeros64(bb)
			bb &= bb - 1
			moves := attacksFn(sq) &^ curOcc & blocks & pins[sq]
			n += bits.OnesCount64(moves)
		}
		return n
	}

	out[position.KindKnight] = count(b.Knights()&curOcc, func(sq int) uint64 { return attacks.Knight[sq] })
	out[position.KindBishop] = count(b.Bishops()&curOcc, func(sq int) uint64 { return attacks.BishopAttacks(sq, occ) })
	out[position.KindRook] = count(b.Rooks()&curOcc, func(sq int) uint64 { return attacks.RookAttacks(sq, occ) })
	out[position.KindQueen] = count(b.Queens()&curOcc, func(sq int) uint64 { return attacks.BishopAttacks(sq, occ) | attacks.RookAttacks(sq, occ) })
	return out
}
