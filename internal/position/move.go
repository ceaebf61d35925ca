package position

// Move is the compact 16-bit encoding: origin (6 bits), destination (6
// bits), promotion piece (3 bits). A zero Move is the "no move" sentinel
// used by the transposition table and UCI's "bestmove 0000".
type Move uint16

// Promotion piece codes reuse the Board's kind bits directly: knight,
// bishop, queen and rook are exactly the kind nibble of the promoted piece.
// King (5) is a reserved, impossible value; pawn (1) and castle-rook (7)
// are never valid promotions and so are never produced.
const (
	PromoNone   = 0
	PromoKnight = KindKnight
	PromoBishop = KindBishop
	PromoQueen  = KindQueen
	PromoKing   = KindKing // reserved, impossible
	PromoRook   = KindRook
)

func NewMove(from, to Square, promo int) Move {
	return Move(uint16(from)&0x3F | (uint16(to)&0x3F)<<6 | (uint16(promo)&0x7)<<12)
}

func (m Move) From() Square  { return Square(m & 0x3F) }
func (m Move) To() Square    { return Square((m >> 6) & 0x3F) }
func (m Move) Promo() int    { return int((m >> 12) & 0x7) }
func (m Move) IsZero() bool  { return m == 0 }

var promoLetter = map[int]byte{
	PromoKnight: 'n',
	PromoBishop: 'b',
	PromoQueen:  'q',
	PromoRook:   'r',
}

// String renders UCI long algebraic notation: <from><to>[promo].
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if l, ok := promoLetter[m.Promo()]; ok {
		s += string(l)
	}
	return s
}

// ParseMove parses UCI long algebraic notation. Promotion letters are
// case-insensitive per the protocol but always printed lowercase.
func ParseMove(s string) (Move, bool) {
	if len(s) < 4 {
		return 0, false
	}
	from, ok := ParseSquare(s[0:2])
	if !ok {
		return 0, false
	}
	to, ok := ParseSquare(s[2:4])
	if !ok {
		return 0, false
	}
	promo := PromoNone
	if len(s) >= 5 {
		switch s[4] {
		case 'n', 'N':
			promo = PromoKnight
		case 'b', 'B':
			promo = PromoBishop
		case 'r', 'R':
			promo = PromoRook
		case 'q', 'Q':
			promo = PromoQueen
		default:
			return 0, false
		}
	}
	return NewMove(from, to, promo), true
}

// List is a preallocated move buffer, sized for the documented worst case of
// 218 legal moves in a single chess position, avoiding per-position
// allocation during search.
type List struct {
	Moves [218]Move
	Len   int
}

func (l *List) Push(m Move) {
	l.Moves[l.Len] = m
	l.Len++
}

func (l *List) Slice() []Move { return l.Moves[:l.Len] }
