package attacks_test

import (
	"math/bits"
	"testing"

	"github.com/nkoppel/rootchego/internal/attacks"
	"github.com/stretchr/testify/assert"
)

func TestKnightCentralSquareHasEightMoves(t *testing.T) {
	// d4 in this engine's h=0..a=7, rank-1-based numbering: file 4, rank 4.
	sq := 3*8 + 4
	assert.Equal(t, 8, bits.OnesCount64(attacks.Knight[sq]))
}

func TestKnightCornerSquareHasTwoMoves(t *testing.T) {
	sq := 0 // h1
	assert.Equal(t, 2, bits.OnesCount64(attacks.Knight[sq]))
}

func TestKingCentralSquareHasEightMoves(t *testing.T) {
	sq := 3*8 + 4
	assert.Equal(t, 8, bits.OnesCount64(attacks.King[sq]))
}

func TestRookAttacksOnEmptyBoardCoversRankAndFile(t *testing.T) {
	sq := 3*8 + 4 // d4
	got := attacks.RookAttacks(sq, 0)
	assert.Equal(t, 14, bits.OnesCount64(got)) // 7 along the rank + 7 along the file
}

func TestRookAttacksStopAtFirstBlocker(t *testing.T) {
	sq := 0                         // h1
	blocker := uint64(1) << uint(3) // 3 squares along the same rank
	beyond := uint64(1) << uint(4)  // one further square along that rank
	got := attacks.RookAttacks(sq, blocker)
	assert.NotEqual(t, uint64(0), got&blocker, "must attack through to the blocker")
	assert.Equal(t, uint64(0), got&beyond, "must not see past the blocker along the rank")
}

func TestBishopAttacksOnEmptyBoardCoversBothDiagonals(t *testing.T) {
	sq := 3*8 + 4 // d4, on the 8-square a1-h8 and 7-square a7-g1 diagonals
	got := attacks.BishopAttacks(sq, 0)
	assert.Equal(t, 13, bits.OnesCount64(got))
}
