package position

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Initial is the standard starting position in FEN.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// pieceLetters maps a piece code to its FEN letter (uppercase for white,
// lowercase for black). Castle-eligible and moved rooks both print as 'R'/'r'
// -- castling rights are carried separately, by the castling-rights fields.
var pieceLetters = map[int]byte{
	WhitePawn: 'P', WhiteKnight: 'N', WhiteBishop: 'B', WhiteQueen: 'Q', WhiteKing: 'K',
	WhiteRook: 'R', WhiteRookCR: 'R',
	BlackPawn: 'p', BlackKnight: 'n', BlackBishop: 'b', BlackQueen: 'q', BlackKing: 'k',
	BlackRook: 'r', BlackRookCR: 'r',
}

var letterToKind = map[byte]int{
	'p': KindPawn, 'n': KindKnight, 'b': KindBishop, 'q': KindQueen, 'k': KindKing, 'r': KindRook,
}

// FEN is a parsed Forsyth-Edwards record: the board plus the auxiliary state
// a Position needs but a bare Board does not carry on its own (explicit
// castling-rights letters and the side to move, prior to being folded into
// a Board's planes and Position.Black).
type FEN struct {
	Board          Board
	Black          bool
	CastleRights   []CastleRight
	EnPassant      Square
	HasEnPassant   bool
	Halfmove       int
	Fullmove       int
}

// CastleRight names one surviving castling right: a color and the file of
// the rook it belongs to. Chess960 FEN spells this with the rook's own file
// letter (e.g. "Hh" for a h-file rook); classical FEN only ever uses KQkq,
// which this engine maps to the outermost rook on each side.
type CastleRight struct {
	Black bool
	File  int // 0=h .. 7=a
}

// ParseFEN parses a FEN record. Missing trailing fields (castling,
// en-passant, clocks) default to "no rights" / "no target" / zero, so a bare
// "<pieces> <side>" string is accepted -- the documented tolerance for
// truncated input.
func ParseFEN(s string) (FEN, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return FEN{}, fmt.Errorf("position: fen %q: need at least piece placement and side to move", s)
	}

	var f FEN
	board, err := parsePlacement(fields[0])
	if err != nil {
		return FEN{}, err
	}
	f.Board = board

	switch fields[1] {
	case "w":
		f.Black = false
	case "b":
		f.Black = true
	default:
		return FEN{}, fmt.Errorf("position: fen %q: bad side to move %q", s, fields[1])
	}

	if len(fields) > 2 && fields[2] != "-" {
		f.CastleRights = parseCastling(fields[2], f.Board)
	}

	if len(fields) > 3 && fields[3] != "-" {
		if sq, ok := ParseSquare(fields[3]); ok {
			f.EnPassant = sq
			f.HasEnPassant = true
		}
	}

	f.Halfmove = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			f.Halfmove = n
		}
	}
	f.Fullmove = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			f.Fullmove = n
		}
	}

	return f, nil
}

func parsePlacement(s string) (Board, error) {
	var b Board
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return b, fmt.Errorf("position: fen placement %q: need 8 ranks, got %d", s, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 8 - i
		file := 7 // FEN ranks run a..h; file index 7 is 'a' in this engine's h=0 numbering.
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file -= int(c - '0')
				continue
			}
			kind, ok := letterToKind[lower(c)]
			if !ok {
				return b, fmt.Errorf("position: fen placement %q: bad piece letter %q", s, c)
			}
			code := kind
			if c >= 'a' && c <= 'z' {
				code |= 0x8
			}
			if file < 0 {
				return b, fmt.Errorf("position: fen placement %q: rank %d overflows", s, rank)
			}
			b.Set(NewSquare(file, rank), code)
			file--
		}
	}
	return b, nil
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// parseCastling resolves a castling-rights field against b, the
// already-parsed piece placement. A Chess960 file letter names its rook
// directly; a classical K/Q letter is ambiguous whenever the king isn't on
// its standard e-file (or a rook isn't on its standard corner), so it is
// resolved the way X-FEN does it: the outermost friendly rook on that side
// of the king (smallest file index -- this engine's h-file side -- for 'k',
// largest for 'q'), not a hardcoded corner file.
func parseCastling(s string, b Board) []CastleRight {
	var out []CastleRight
	for i := 0; i < len(s); i++ {
		c := s[i]
		black := c >= 'a' && c <= 'z'
		switch lower(c) {
		case 'k':
			if file, ok := outermostRook(b, black, true); ok {
				out = append(out, CastleRight{Black: black, File: file})
			}
		case 'q':
			if file, ok := outermostRook(b, black, false); ok {
				out = append(out, CastleRight{Black: black, File: file})
			}
		default:
			// Chess960: an explicit file letter names the rook directly.
			file := indexByte(fileOrder, lower(c))
			if file >= 0 {
				out = append(out, CastleRight{Black: black, File: file})
			}
		}
	}
	return out
}

// outermostRook finds the rook that a classical K/Q castling letter names:
// among the rooks on the king's kingside (file index below the king's, this
// engine's h=0 side) or queenside (file index above the king's), the one
// furthest from the king -- i.e. smallest file for kingside, largest for
// queenside, matching the standard outermost-rook disambiguation rule.
func outermostRook(b Board, black, kingside bool) (int, bool) {
	rank := 1
	if black {
		rank = 8
	}
	kingBB := b.Kings()
	if black {
		kingBB &= b.Black()
	} else {
		kingBB &= b.White()
	}
	if kingBB == 0 {
		return 0, false
	}
	kingFile := Square(bits.TrailingZeros64(kingBB)).File()

	found := -1
	for file := 0; file < 8; file++ {
		if kingside && file >= kingFile {
			continue
		}
		if !kingside && file <= kingFile {
			continue
		}
		sq := NewSquare(file, rank)
		code := b.PieceAt(sq)
		if Kind(code) != KindRook || (code&0x8 != 0) != black {
			continue
		}
		if kingside {
			if found == -1 || file < found {
				found = file
			}
		} else {
			if found == -1 || file > found {
				found = file
			}
		}
	}
	if found < 0 {
		return 0, false
	}
	return found, true
}

// Apply folds the parsed auxiliary fields into the Board's own planes: each
// surviving castling right marks its rook castle-eligible (code 7/F), and
// the en-passant target square is marked with the dedicated code 0x8.
func (f FEN) Apply() Board {
	b := f.Board
	for _, r := range f.CastleRights {
		rank := 1
		if r.Black {
			rank = 8
		}
		sq := NewSquare(r.File, rank)
		code := b.PieceAt(sq)
		if Kind(code) == KindRook {
			b.Set(sq, code|0x1)
		}
	}
	if f.HasEnPassant {
		b.Set(f.EnPassant, EnPassant)
	}
	return b
}

// String renders the position back to FEN text. Castling rights are
// re-derived from which rooks still carry the castle-eligible code, printed
// in classical KQkq form for rooks on the standard a/h files and Chess960
// file-letter form otherwise.
func (p Position) String() string {
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		run := 0
		for file := 7; file >= 0; file-- {
			code := p.Board.PieceAt(NewSquare(file, rank))
			if code == Empty || code == EnPassant {
				run++
				continue
			}
			if run > 0 {
				sb.WriteString(strconv.Itoa(run))
				run = 0
			}
			sb.WriteByte(pieceLetters[code])
		}
		if run > 0 {
			sb.WriteString(strconv.Itoa(run))
		}
		if rank > 1 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}

	sb.WriteByte(' ')
	rights := castlingString(p.Board)
	if rights == "" {
		sb.WriteByte('-')
	} else {
		sb.WriteString(rights)
	}

	sb.WriteByte(' ')
	if ep := p.Board.EnPassants(); ep != 0 {
		sq := Square(bits.TrailingZeros64(ep))
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", p.Halfmove, p.Fullmove)
	return sb.String()
}

func castlingString(b Board) string {
	var sb strings.Builder
	cr := b.CastleRooks()
	// White rights, h-file then a-file for the classical letters; Chess960
	// files print via their letter directly.
	whiteCR := cr & b.White()
	for file := 0; file < 8; file++ {
		sq := NewSquare(file, 1)
		if whiteCR&sq.Bit() == 0 {
			continue
		}
		sb.WriteByte(classicalOrFileLetter(file, false))
	}
	blackCR := cr & b.Black()
	for file := 0; file < 8; file++ {
		sq := NewSquare(file, 8)
		if blackCR&sq.Bit() == 0 {
			continue
		}
		sb.WriteByte(classicalOrFileLetter(file, true))
	}
	return sb.String()
}

func classicalOrFileLetter(file int, black bool) byte {
	var c byte
	switch file {
	case 0:
		c = 'k'
	case 7:
		c = 'q'
	default:
		c = fileOrder[file]
	}
	if !black {
		c = c - ('a' - 'A')
	}
	return c
}
