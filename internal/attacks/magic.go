package attacks

// Magic bitboard sliding-piece attacks. The magic numbers and table offsets
// below are the outcome of an offline search for perfect hashes over each
// square's relevant-occupancy mask; they are baked in as data rather than
// rediscovered at startup. What IS computed at startup is the mask table and
// the 97264-entry flat attack table those magics index into, verified here
// to be collision-free exactly as the original search verified it.

var bishopMagics = [64]uint64{
	0x007bfeffbfeffbff, 0x003effbfeffbfe08, 0x0000401020200000, 0x0000200810000000, 0x0000110080000000, 0x0000080100800000, 0x0007efe0bfff8000, 0x00000fb0203fff80,
	0x00007dff7fdff7fd, 0x0000011fdff7efff, 0x0000004010202000, 0x0000002008100000, 0x0000001100800000, 0x0000000801008000, 0x000007efe0bfff80, 0x000000080f9fffc0,
	0x0000400080808080, 0x0000200040404040, 0x0000400080808080, 0x0000200200801000, 0x0000240080840000, 0x0000080080840080, 0x0000040010410040, 0x0000020008208020,
	0x0000804000810100, 0x0000402000408080, 0x0000804000810100, 0x0000404004010200, 0x0000404004010040, 0x0000101000804400, 0x0000080800104100, 0x0000040400082080,
	0x0000410040008200, 0x0000208020004100, 0x0000110080040008, 0x0000020080080080, 0x0000404040040100, 0x0000202040008040, 0x0000101010002080, 0x0000080808001040,
	0x0000208200400080, 0x0000104100200040, 0x0000208200400080, 0x0000008840200040, 0x0000020040100100, 0x007fff80c0280050, 0x0000202020200040, 0x0000101010100020,
	0x0007ffdfc17f8000, 0x0003ffefe0bfc000, 0x0000000820806000, 0x00000003ff004000, 0x0000000100202000, 0x0000004040802000, 0x007ffeffbfeff820, 0x003fff7fdff7fc10,
	0x0003ffdfdfc27f80, 0x000003ffefe0bfc0, 0x0000000008208060, 0x0000000003ff0040, 0x0000000001002020, 0x0000000040408020, 0x00007ffeffbfeff9, 0x007ffdff7fdff7fd,
}

var bishopOffsets = [64]uint64{
	16530, 9162, 9674, 18532, 19172, 17700, 5730, 19661,
	17065, 12921, 15683, 17764, 19684, 18724, 4108, 12936,
	15747, 4066, 14359, 36039, 20457, 43291, 5606, 9497,
	15715, 13388, 5986, 11814, 92656, 9529, 18118, 5826,
	4620, 12958, 55229, 9892, 33767, 20023, 6515, 6483,
	19622, 6274, 18404, 14226, 17990, 18920, 13862, 19590,
	5884, 12946, 5570, 18740, 6242, 12326, 4156, 12876,
	17047, 17780, 2494, 17716, 17067, 9465, 16196, 6166,
}

var rookMagics = [64]uint64{
	0x00a801f7fbfeffff, 0x00180012000bffff, 0x0040080010004004, 0x0040040008004002, 0x0040020004004001, 0x0020008020010202, 0x0040004000800100, 0x0810020990202010,
	0x000028020a13fffe, 0x003fec008104ffff, 0x00001800043fffe8, 0x00001800217fffe8, 0x0000200100020020, 0x0000200080010020, 0x0000300043ffff40, 0x000038010843fffd,
	0x00d00018010bfff8, 0x0009000c000efffc, 0x0004000801020008, 0x0002002004002002, 0x0001002002002001, 0x0001001000801040, 0x0000004040008001, 0x0000802000200040,
	0x0040200010080010, 0x0000080010040010, 0x0004010008020008, 0x0000020020040020, 0x0000010020020020, 0x0000008020010020, 0x0000008020200040, 0x0000200020004081,
	0x0040001000200020, 0x0000080400100010, 0x0004010200080008, 0x0000200200200400, 0x0000200100200200, 0x0000200080200100, 0x0000008000404001, 0x0000802000200040,
	0x00ffffb50c001800, 0x007fff98ff7fec00, 0x003ffff919400800, 0x001ffff01fc03000, 0x0000010002002020, 0x0000008001002020, 0x0003fff673ffa802, 0x0001fffe6fff9001,
	0x00ffffd800140028, 0x007fffe87ff7ffec, 0x003fffd800408028, 0x001ffff111018010, 0x000ffff810280028, 0x0007fffeb7ff7fd8, 0x0003fffc0c480048, 0x0001ffffa2280028,
	0x00ffffe4ffdfa3ba, 0x007ffb7fbfdfeff6, 0x003fffbfdfeff7fa, 0x001fffeff7fbfc22, 0x000ffffbf7fc2ffe, 0x0007fffdfa03ffff, 0x0003ffdeff7fbdec, 0x0001ffff99ffab2f,
}

var rookOffsets = [64]uint64{
	85487, 43101, 0, 49085, 93168, 78956, 60703, 64799,
	30640, 9256, 28647, 10404, 63775, 14500, 52819, 2048,
	52037, 16435, 29104, 83439, 86842, 27623, 26599, 89583,
	7042, 84463, 82415, 95216, 35015, 10790, 53279, 70684,
	38640, 32743, 68894, 62751, 41670, 25575, 3042, 36591,
	69918, 9092, 17401, 40688, 96240, 91632, 32495, 51133,
	78319, 12595, 5152, 32110, 13894, 2546, 41052, 77676,
	73580, 44947, 73565, 17682, 56607, 56135, 44989, 21479,
}

const magicTableSize = 97264

var (
	bishopMask  [64]uint64
	rookMask    [64]uint64
	magicTable  [magicTableSize]uint64
)

var bishopDeltas = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// rayMask builds the "relevant occupancy" mask for one ray: every square
// the ray crosses, stopping one square short of the board edge (an edge
// square never needs to be in the mask since it's always either occupied
// by the boundary or irrelevant to further blocking).
func rayMask(sq int, dx, dy int, board *uint64) {
	x, y := sq%8, sq/8

	prevBorders := b2i(x == 0) + b2i(x == 7) + b2i(y == 0) + b2i(y == 7)
	pxBorder := x == 0 || x == 7
	pyBorder := y == 0 || y == 7
	x += dx
	y += dy

	if x < 0 || x >= 8 || y < 0 || y >= 8 {
		return
	}

	borders := b2i(x == 0) + b2i(x == 7) + b2i(y == 0) + b2i(y == 7)
	cxBorder := x == 0 || x == 7
	cyBorder := y == 0 || y == 7

	if prevBorders == borders && (pxBorder != cxBorder || pyBorder != cyBorder) {
		return
	}

	for borders <= prevBorders {
		*board |= uint64(1) << uint(x+y*8)
		x += dx
		y += dy
		prevBorders = borders
		borders = b2i(x == 0) + b2i(x == 7) + b2i(y == 0) + b2i(y == 7)
	}
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}

func genMask(sq int, deltas [4][2]int) uint64 {
	var board uint64
	for _, d := range deltas {
		rayMask(sq, d[0], d[1], &board)
	}
	return board
}

// rayAttack extends a single ray to (and including) the first blocker.
func rayAttack(sq int, dx, dy int, occ uint64, out *uint64) {
	x, y := sq%8, sq/8
	x += dx
	y += dy
	for x >= 0 && x < 8 && y >= 0 && y < 8 && occ&(uint64(1)<<uint(x+y*8)) == 0 {
		*out |= uint64(1) << uint(x+y*8)
		x += dx
		y += dy
	}
	if x >= 0 && x < 8 && y >= 0 && y < 8 {
		*out |= uint64(1) << uint(x+y*8)
	}
}

func genAttack(sq int, deltas [4][2]int, occ uint64) uint64 {
	var out uint64
	for _, d := range deltas {
		rayAttack(sq, d[0], d[1], occ, &out)
	}
	return out
}

// numToMask spreads the low bits of num across the set bits of mask, in
// order -- the standard enumeration of every occupancy subset of a mask.
func numToMask(num, mask uint64) uint64 {
	var out uint64
	numBit := uint64(1)
	for mask != 0 {
		maskBit := mask & (^mask + 1) // lowest set bit
		if num&numBit != 0 {
			out |= maskBit
		}
		numBit <<= 1
		mask &= mask - 1
	}
	return out
}

func initMagics() {
	for sq := 0; sq < 64; sq++ {
		bishopMask[sq] = genMask(sq, bishopDeltas)
		rookMask[sq] = genMask(sq, rookDeltas)
	}

	for sq := 0; sq < 64; sq++ {
		fillMagic(sq, bishopMask[sq], bishopDeltas, bishopMagics[sq], 55, bishopOffsets[sq])
		fillMagic(sq, rookMask[sq], rookDeltas, rookMagics[sq], 52, rookOffsets[sq])
	}
}

func fillMagic(sq int, mask uint64, deltas [4][2]int, magic uint64, shift uint, offset uint64) {
	size := uint64(1) << uint(popcount(mask))
	for i := uint64(0); i < size; i++ {
		occ := numToMask(i, mask)
		att := genAttack(sq, deltas, occ)
		idx := (occ*magic)>>shift + offset
		if magicTable[idx] == 0 {
			magicTable[idx] = att
		} else if magicTable[idx] != att {
			panic("attacks: magic collision during table construction")
		}
	}
}

func popcount(v uint64) int {
	n := 0
	for v != 0 {
		v &= v - 1
		n++
	}
	return n
}

// BishopAttacks returns the bishop attack bitboard from sq given the full
// board occupancy occ.
func BishopAttacks(sq int, occ uint64) uint64 {
	idx := (occ&bishopMask[sq])*bishopMagics[sq]>>55 + bishopOffsets[sq]
	return magicTable[idx]
}

// RookAttacks returns the rook attack bitboard from sq given the full board
// occupancy occ.
func RookAttacks(sq int, occ uint64) uint64 {
	idx := (occ&rookMask[sq])*rookMagics[sq]>>52 + rookOffsets[sq]
	return magicTable[idx]
}

// QueenAttacks is the union of bishop and rook attacks from sq.
func QueenAttacks(sq int, occ uint64) uint64 {
	return BishopAttacks(sq, occ) | RookAttacks(sq, occ)
}
