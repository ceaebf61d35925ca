package attacks

// Castling templates. A castle is parameterized by which side (color), which
// file the king starts on, and which file the castle-eligible rook it is
// castling with starts on -- the general Chess960 framing that classical
// castling is just a special case of (king e-file, rook a- or h-file).
//
// For a given (color, kingFile, rookFile) triple this records:
//   - threat: squares the king's path must not be attacked on
//   - empty:  squares (other than the king/rook's own current squares) that
//     must be unoccupied
//   - delta:  the four-plane XOR diff that executes the castle
type CastleTemplate struct {
	Threat             uint64
	Empty              uint64
	D0, D1, D2, D3     uint64
}

// castleDestFiles follows the standard (and Chess960) castling convention:
// whatever the starting files, the king ends on the g-file and the rook on
// the f-file when castling to the h-side, and on the c- and d-files when
// castling to the a-side. File 0 is the "h-side" (file index 0..7 with
// 0=h .. 7=a in this engine's square numbering), so a rook starting on a
// lower file than the king is castling to the h-side.
func castleDestFiles(kingFile, rookFile int) (kingTo, rookTo int) {
	if rookFile < kingFile {
		return 1, 2
	}
	return 5, 4
}

var castleTable [2][8][8]CastleTemplate

const (
	kingCode    = 0x5
	rookCRCode  = 0x7
	rookCode    = 0x6
)

func init() {
	for color := 0; color < 2; color++ {
		colorBit := color << 3
		for kf := 0; kf < 8; kf++ {
			for rf := 0; rf < 8; rf++ {
				if kf == rf {
					continue
				}
				castleTable[color][kf][rf] = buildCastleTemplate(colorBit, kf, rf)
			}
		}
	}
}

func buildCastleTemplate(colorBit, kingFile, rookFile int) CastleTemplate {
	kingTo, rookTo := castleDestFiles(kingFile, rookFile)

	lo, hi := kingFile, kingFile
	for _, f := range []int{rookFile, kingTo, rookTo} {
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}

	var threat, empty uint64
	for f := kingFile; ; {
		threat |= uint64(1) << uint(f)
		if f == kingTo {
			break
		}
		if kingTo < f {
			f--
		} else {
			f++
		}
	}
	for f := lo; f <= hi; f++ {
		if f == kingFile || f == rookFile {
			continue
		}
		empty |= uint64(1) << uint(f)
	}

	var d0, d1, d2, d3 uint64
	set := func(file, code int) {
		bit := uint64(1) << uint(file)
		if code&0x8 != 0 {
			d0 ^= bit
		}
		if code&0x4 != 0 {
			d1 ^= bit
		}
		if code&0x2 != 0 {
			d2 ^= bit
		}
		if code&0x1 != 0 {
			d3 ^= bit
		}
	}
	set(kingFile, colorBit|kingCode)
	set(kingTo, colorBit|kingCode)
	set(rookFile, colorBit|rookCRCode)
	set(rookTo, colorBit|rookCode)

	return CastleTemplate{Threat: threat, Empty: empty, D0: d0, D1: d1, D2: d2, D3: d3}
}

// Castle returns the precomputed template for a castle by the given color
// (0=white, 1=black) between kingFile and rookFile, with threat/empty masks
// shifted onto the correct home rank and the plane diff shifted by rank*8.
func Castle(colorBit, kingFile, rookFile int) CastleTemplate {
	color := 0
	if colorBit != 0 {
		color = 1
	}
	t := castleTable[color][kingFile][rookFile]
	rank0 := 0
	if color == 1 {
		rank0 = 7
	}
	shift := uint(rank0 * 8)
	return CastleTemplate{
		Threat: t.Threat << shift,
		Empty:  t.Empty << shift,
		D0:     t.D0 << shift,
		D1:     t.D1 << shift,
		D2:     t.D2 << shift,
		D3:     t.D3 << shift,
	}
}
