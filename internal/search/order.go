package search

import (
	"sort"

	"github.com/nkoppel/rootchego/internal/eval"
	"github.com/nkoppel/rootchego/internal/position"
)

// orderMoves sorts moves in place: the transposition-table move first, then
// captures by descending SEE, then quiet moves by descending history score.
func orderMoves(moves []position.Move, b position.Board, ttMove position.Move, hist *History, black bool) {
	type scored struct {
		m   position.Move
		key int
	}
	const ttKey = 1 << 30
	const captureBase = 1 << 20

	buf := make([]scored, len(moves))
	for i, m := range moves {
		switch {
		case ttMove != 0 && m == ttMove:
			buf[i] = scored{m, ttKey}
		case b.PieceAt(m.To()) != position.Empty || m.Promo() != position.PromoNone:
			buf[i] = scored{m, captureBase + eval.SEE(b, m.From(), m.To())}
		default:
			buf[i] = scored{m, hist.Score(black, m.From(), m.To())}
		}
	}
	sort.SliceStable(buf, func(i, j int) bool { return buf[i].key > buf[j].key })
	for i := range buf {
		moves[i] = buf[i].m
	}
}

// orderCapturesBySEE filters to captures with non-negative SEE and returns
// them sorted by descending SEE, for quiescence search.
func orderCapturesBySEE(moves []position.Move, b position.Board) []position.Move {
	type scored struct {
		m   position.Move
		see int
	}
	buf := make([]scored, 0, len(moves))
	for _, m := range moves {
		see := eval.SEE(b, m.From(), m.To())
		if see >= 0 {
			buf = append(buf, scored{m, see})
		}
	}
	sort.Slice(buf, func(i, j int) bool { return buf[i].see > buf[j].see })
	out := make([]position.Move, len(buf))
	for i, s := range buf {
		out[i] = s.m
	}
	return out
}
