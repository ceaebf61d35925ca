package eval

import "github.com/nkoppel/rootchego/internal/position"

const (
	chainBonus    = 8
	passedBonus   = 20
	doubledPenalty = 15
	isolatedPenalty = 12
)

var fileMask = func() [8]uint64 {
	var out [8]uint64
	for f := 0; f < 8; f++ {
		var m uint64
		for r := 0; r < 8; r++ {
			m |= uint64(1) << uint(r*8+f)
		}
		out[f] = m
	}
	return out
}()

// northFill/southFill spread every set bit up/down its file -- the
// standard bitboard trick for deriving "is there a pawn anywhere ahead (or
// behind) on this file".
func northFill(bb uint64) uint64 {
	bb |= bb << 8
	bb |= bb << 16
	bb |= bb << 32
	return bb
}

func southFill(bb uint64) uint64 {
	bb |= bb >> 8
	bb |= bb >> 16
	bb |= bb >> 32
	return bb
}

func adjacentFiles(file int) uint64 {
	var m uint64
	if file > 0 {
		m |= fileMask[file-1]
	}
	if file < 7 {
		m |= fileMask[file+1]
	}
	return m
}

// pawnStructureScore computes the material-independent pawn-structure term
// from scratch; callers cache the result in a PawnCache keyed by the
// position's pawn-only hash.
func pawnStructureScore(b position.Board) int {
	white := b.WhitePawns()
	black := b.BlackPawns()

	score := 0
	score += chainBonus * popcount(whiteDefends(white))
	score -= chainBonus * popcount(blackDefends(black))

	for bb := white; bb != 0; bb &= bb - 1 {
		sq := trailingZeros(bb)
		file := sq % 8
		if (white&fileMask[file])&^(uint64(1)<<uint(sq)) != 0 {
			score -= doubledPenalty / 2 // halved: counted from both pawns sharing the file
		}
		if white&adjacentFiles(file) == 0 {
			score -= isolatedPenalty
		}
		if (black&(fileMask[file]|adjacentFiles(file)))&passedSpanWhite(sq) == 0 {
			score += passedBonus
		}
	}

	for bb := black; bb != 0; bb &= bb - 1 {
		sq := trailingZeros(bb)
		file := sq % 8
		if (black&fileMask[file])&^(uint64(1)<<uint(sq)) != 0 {
			score += doubledPenalty / 2
		}
		if black&adjacentFiles(file) == 0 {
			score += isolatedPenalty
		}
		if (white&(fileMask[file]|adjacentFiles(file)))&passedSpanBlack(sq) == 0 {
			score -= passedBonus
		}
	}

	return score
}

// passedSpanWhite is every square ahead of sq (toward rank 8) on sq's file
// or an adjacent file -- the squares an opposing pawn would have to occupy
// to stop sq from being a passed pawn.
func passedSpanWhite(sq int) uint64 {
	file := sq % 8
	rank := sq / 8
	var m uint64
	for r := rank + 1; r < 8; r++ {
		m |= uint64(1) << uint(r*8+file)
	}
	return m | (northFillFrom(rank+1) & adjacentFiles(file))
}

func passedSpanBlack(sq int) uint64 {
	file := sq % 8
	rank := sq / 8
	var m uint64
	for r := rank - 1; r >= 0; r-- {
		m |= uint64(1) << uint(r*8+file)
	}
	return m | (southFillFrom(rank-1) & adjacentFiles(file))
}

func northFillFrom(rank int) uint64 {
	var m uint64
	for r := rank; r < 8; r++ {
		m |= uint64(0xFF) << uint(r*8)
	}
	return m
}

func southFillFrom(rank int) uint64 {
	var m uint64
	for r := rank; r >= 0; r-- {
		m |= uint64(0xFF) << uint(r*8)
	}
	return m
}

func whiteDefends(white uint64) uint64 {
	// A white pawn on sq is defended by another white pawn one rank behind
	// on an adjacent file.
	return (shiftNE(white) | shiftNW(white)) & white
}

func blackDefends(black uint64) uint64 {
	return (shiftSE(black) | shiftSW(black)) & black
}

func shiftNE(bb uint64) uint64 { return (bb &^ fileMask[0]) << 7 }
func shiftNW(bb uint64) uint64 { return (bb &^ fileMask[7]) << 9 }
func shiftSE(bb uint64) uint64 { return (bb &^ fileMask[0]) >> 9 }
func shiftSW(bb uint64) uint64 { return (bb &^ fileMask[7]) >> 7 }

func trailingZeros(bb uint64) int {
	n := 0
	for bb&1 == 0 {
		bb >>= 1
		n++
	}
	return n
}
