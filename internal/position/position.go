package position

import (
	"math/bits"

	"github.com/nkoppel/rootchego/internal/attacks"
)

// Position is a Board plus the bookkeeping a Board's planes cannot carry on
// their own: whose move it is, the incremental Zobrist hash, and the two
// FEN move counters. Everything else -- castling rights, en-passant target
// -- lives in the Board's own piece-code planes.
type Position struct {
	Board    Board
	Black    bool
	Hash     uint64
	Halfmove int
	Fullmove int
}

// NewPosition builds the starting Position from a FEN record and a Hasher,
// computing the initial hash from scratch.
func NewPosition(f FEN, h *Hasher) Position {
	b := f.Apply()
	return Position{
		Board:    b,
		Black:    f.Black,
		Hash:     h.Hash(b, f.Black),
		Halfmove: f.Halfmove,
		Fullmove: f.Fullmove,
	}
}

// ColorBit is 0 for white to move, 0x8 for black to move -- the bit-3 value
// that, OR'd with a kind, produces this side's piece codes.
func (p Position) ColorBit() int {
	if p.Black {
		return 0x8
	}
	return 0
}

// Own returns the occupancy of the side to move; Opp the occupancy of the
// other side.
func (p Position) Own() uint64 {
	if p.Black {
		return p.Board.Black()
	}
	return p.Board.White()
}

func (p Position) Opp() uint64 {
	if p.Black {
		return p.Board.White()
	}
	return p.Board.Black()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// rookFileForClassicalCastle infers which rook file a two-square king hop
// refers to, for boards using the classical castling encoding (as opposed
// to Chess960's "king captures own rook").
func rookFileForClassicalCastle(from, to Square) int {
	if to > from {
		return 7 // queenside in this engine's h=0..a=7 file numbering
	}
	return 0 // kingside
}

// Do executes m and returns the resulting Position. It recognizes, in
// order: en-passant captures (destination carries the en-passant marker),
// Chess960-style castling (king moves onto its own rook), classical
// castling (king hops two squares), pawn double pushes (which leave a new
// en-passant marker only when an enemy pawn could capture onto it), and
// otherwise a plain move -- which demotes a moved
// castle-eligible rook and, if the king moved, strips both of that color's
// remaining castling rights.
func (p Position) Do(h *Hasher, m Move) Position {
	b := p.Board
	from, to := m.From(), m.To()
	code := b.PieceAt(from)
	kind := Kind(code)
	colorBit := code & 0x8

	nb := b

	switch {
	case kind == KindPawn && b.PieceAt(to) == EnPassant:
		capSq := NewSquare(to.File(), from.Rank())
		nb.Set(from, Empty)
		nb.Set(to, code)
		nb.Set(capSq, Empty)
		nb.ClearEnPassantTargets()

	case kind == KindKing && Kind(b.PieceAt(to)) == KindRook && (b.PieceAt(to)&0x8) == colorBit:
		nb = applyCastle(b, colorBit, from.File(), to.File())

	case kind == KindKing && absInt(int(to)-int(from)) == 2:
		nb = applyCastle(b, colorBit, from.File(), rookFileForClassicalCastle(from, to))

	case kind == KindPawn && absInt(int(to)-int(from)) == 16:
		nb.Set(from, Empty)
		nb.Set(to, code)
		nb.ClearEnPassantTargets()
		mid := Square((int(from) + int(to)) / 2)
		enemyPawns := b.BlackPawns()
		if colorBit != 0 {
			enemyPawns = b.WhitePawns()
		}
		if attacks.PawnCapture(colorBit, int(mid))&enemyPawns != 0 {
			nb.Set(mid, EnPassant)
		}

	default:
		target := code
		switch {
		case m.Promo() != PromoNone:
			target = colorBit | m.Promo()
		case kind == KindRook && code&0x1 != 0:
			target = code &^ 0x1 // the moved rook loses castle eligibility
		}
		if kind == KindKing {
			nb.b3 ^= b.CastleRooks() & colorPlane(b, colorBit)
		}
		nb.Set(from, Empty)
		nb.Set(to, target)
		nb.ClearEnPassantTargets()
	}

	d0, d1, d2, d3 := Diff(b, nb)
	black := !p.Black
	halfmove := p.Halfmove + 1
	if kind == KindPawn || b.PieceAt(to) != Empty {
		halfmove = 0
	}
	fullmove := p.Fullmove
	if p.Black {
		fullmove++
	}

	return Position{
		Board:    nb,
		Black:    black,
		Hash:     h.Update(p.Hash, d0, d1, d2, d3),
		Halfmove: halfmove,
		Fullmove: fullmove,
	}
}

func colorPlane(b Board, colorBit int) uint64 {
	if colorBit != 0 {
		return b.b0
	}
	return ^b.b0
}

func applyCastle(b Board, colorBit, kingFile, rookFile int) Board {
	t := attacks.Castle(colorBit, kingFile, rookFile)
	nb := b
	nb.Xor(t.D0, t.D1, t.D2, t.D3)
	nb.ClearEnPassantTargets()
	return nb
}

// Null returns p with the side to move flipped and any en-passant target
// cleared, with no other change to the board -- the "null move" used by
// null-move pruning.
func (p Position) Null(h *Hasher) Position {
	nb := p.Board
	nb.ClearEnPassantTargets()
	d0, d1, d2, d3 := Diff(p.Board, nb)
	return Position{
		Board:    nb,
		Black:    !p.Black,
		Hash:     h.Update(p.Hash, d0, d1, d2, d3),
		Halfmove: p.Halfmove,
		Fullmove: p.Fullmove,
	}
}

// InverseMove reconstructs the Move that turns p into next, for testing the
// FEN/Do round trip on ordinary moves and captures (search and move
// generation always carry the Move alongside the Position they produced and
// never need to invert it). Castling and en-passant touch more than two
// squares and are not uniquely invertible from the board diff alone; this
// is a test helper, not a production code path.
func InverseMove(p, next Position) Move {
	d0, d1, d2, d3 := Diff(p.Board, next.Board)
	changed := d0 | d1 | d2 | d3
	var from, to Square = -1, -1
	for changed != 0 {
		sq := Square(bits.TrailingZeros64(changed))
		changed &= changed - 1
		wasEmpty := p.Board.PieceAt(sq) == Empty || p.Board.PieceAt(sq) == EnPassant
		isEmpty := next.Board.PieceAt(sq) == Empty || next.Board.PieceAt(sq) == EnPassant
		if !wasEmpty && isEmpty {
			from = sq
		} else if isEmpty == false {
			to = sq
		}
	}
	promo := PromoNone
	if from >= 0 && to >= 0 {
		fromKind := Kind(p.Board.PieceAt(from))
		toKind := Kind(next.Board.PieceAt(to))
		if fromKind == KindPawn && toKind != KindPawn && toKind != KindNone {
			promo = toKind
		}
	}
	if from < 0 || to < 0 {
		return 0
	}
	return NewMove(from, to, promo)
}
