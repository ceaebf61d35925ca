package search

import (
	"github.com/nkoppel/rootchego/internal/eval"
	"github.com/nkoppel/rootchego/internal/movegen"
	"github.com/nkoppel/rootchego/internal/position"
)

// quiesce extends the search over tactical moves only, until the position
// is quiet, fail-soft. Only SEE >= 0 captures are explored and the piece
// count strictly decreases with each one, which is what guarantees
// termination.
func (s *Searcher) quiesce(p position.Position, alpha, beta int) int {
	s.Nodes++
	if s.shouldStop() {
		return alpha
	}

	standPat := ToIBV(eval.Evaluate(p, s.Hasher, s.Pawns))
	if standPat >= beta {
		return ToLower(standPat)
	}
	if standPat > alpha {
		alpha = standPat
	}

	caps := movegen.GenerateCaptures(p, s.Chess960)
	ordered := orderCapturesBySEE(caps.Slice(), p.Board)

	for _, m := range ordered {
		child := p.Do(s.Hasher, m)
		score := -s.quiesce(child, -beta, -alpha)
		if score >= beta {
			return ToLower(score)
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
