package search

import (
	"errors"
	"math/rand"
	"time"

	"github.com/nkoppel/rootchego/internal/eval"
	"github.com/nkoppel/rootchego/internal/movegen"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/nkoppel/rootchego/internal/tt"
	"go.uber.org/atomic"
)

// errStopped is the distinguished cancellation signal: it unwinds the
// recursion without writing incomplete results into the transposition
// table for the node that detected the stop, while deeper subtree writes
// completed before the stop remain (they are still correct bounds).
var errStopped = errors.New("search: stopped")

// Searcher runs iterative-deepening alpha-beta search against a shared
// transposition table and pawn cache. Everything else it touches --
// ancestry, history, node counts -- is thread-local, matching the
// concurrency model: many Searchers may run concurrently over the same TT
// and PawnCache.
type Searcher struct {
	TT       *tt.SearchTable
	Pawns    *eval.PawnCache
	Hasher   *position.Hasher
	Chess960 bool
	Age      uint8
	IsMain   bool

	History  *History
	Ancestry *Ancestry
	Rand     *rand.Rand

	Stop     *atomic.Bool
	Deadline time.Time
	Nodes    uint64
}

func NewSearcher(table *tt.SearchTable, pawns *eval.PawnCache, hasher *position.Hasher, age uint8, chess960, isMain bool, stop *atomic.Bool) *Searcher {
	return &Searcher{
		TT:       table,
		Pawns:    pawns,
		Hasher:   hasher,
		Chess960: chess960,
		Age:      age,
		IsMain:   isMain,
		History:  NewHistory(),
		Ancestry: NewAncestry(),
		Rand:     rand.New(rand.NewSource(int64(age)*7 + 1)),
		Stop:     stop,
	}
}

func (s *Searcher) shouldStop() bool {
	if s.Stop != nil && s.Stop.Load() {
		return true
	}
	if !s.Deadline.IsZero() && time.Now().After(s.Deadline) {
		return true
	}
	return false
}

// Result is one completed (or partially searched) iteration, reported to
// the caller after every finished depth so thread 0 can emit a UCI "info"
// line.
type Result struct {
	Depth int
	Score int // IBV units
	Best  position.Move
	PV    []position.Move
	Nodes uint64
}

// Think runs iterative deepening from minDepth to maxDepth (or until
// stopped), calling report after each completed iteration. It returns the
// best move found by the last completed iteration, or the zero move if none
// completed.
func (s *Searcher) Think(root position.Position, minDepth, maxDepth int, report func(Result)) position.Move {
	var best position.Move
	s.Ancestry.Push(root.Hash)
	defer s.Ancestry.Pop(root.Hash)

	for depth := minDepth; depth <= maxDepth; depth++ {
		score, err := s.alphabeta(root, -Checkmate*2, Checkmate*2, depth, 0)
		if err != nil {
			break
		}
		if entry, ok := s.TT.Probe(root.Hash); ok && entry.Move != 0 {
			best = entry.Move
		}
		if report != nil {
			report(Result{
				Depth: depth,
				Score: score,
				Best:  best,
				PV:    s.extractPV(root, depth),
				Nodes: s.Nodes,
			})
		}
		if s.shouldStop() {
			break
		}
	}
	return best
}

// extractPV walks the transposition table following each position's stored
// best move, up to maxLen plies or until the trail runs out.
func (s *Searcher) extractPV(root position.Position, maxLen int) []position.Move {
	var pv []position.Move
	p := root
	seen := map[uint64]bool{}
	for i := 0; i < maxLen; i++ {
		entry, ok := s.TT.Probe(p.Hash)
		if !ok || entry.Move == 0 || seen[p.Hash] {
			break
		}
		seen[p.Hash] = true
		pv = append(pv, entry.Move)
		p = p.Do(s.Hasher, entry.Move)
	}
	return pv
}

func hasNonPawnMaterial(b position.Board, black bool) bool {
	var occ uint64
	if black {
		occ = b.Black()
	} else {
		occ = b.White()
	}
	return occ&^(b.Pawns()|b.Kings()) != 0
}

// alphabeta is the main search: fail-soft negamax with null-move pruning,
// late-move reductions, principal-variation search, and history-ordered
// quiet moves, storing every resolved node into the shared transposition
// table.
func (s *Searcher) alphabeta(p position.Position, alpha, beta, depth, ply int) (int, error) {
	s.Nodes++

	if ply > 0 && s.Ancestry.Contains(p.Hash) {
		return 0, nil
	}

	if depth <= 0 {
		return s.quiesce(p, alpha, beta), nil
	}

	if s.shouldStop() {
		return 0, errStopped
	}

	origAlpha := alpha
	var ttMove position.Move
	if entry, ok := s.TT.Probe(p.Hash); ok {
		ttMove = entry.Move
		if int(entry.Depth) >= depth {
			val := Exact(int(entry.Score))
			switch Bound(int(entry.Score)) {
			case boundExact:
				return int(entry.Score), nil
			case boundLower:
				if val >= beta {
					return int(entry.Score), nil
				}
			case boundUpper:
				if val <= alpha {
					return int(entry.Score), nil
				}
			}
		}
	}

	inCheck := movegen.InCheck(p)

	if depth > 3 && !inCheck && hasNonPawnMaterial(p.Board, p.Black) {
		child := p.Null(s.Hasher)
		s.Ancestry.Push(p.Hash)
		score, err := s.alphabeta(child, -beta, -beta+1, depth-3, ply+1)
		s.Ancestry.Pop(p.Hash)
		if err != nil {
			return 0, err
		}
		if -score >= beta {
			return beta, nil
		}
	}

	list := movegen.Generate(p, s.Chess960)
	if list.Len == 0 {
		if inCheck {
			return -(Checkmate - ply*4), nil
		}
		return 0, nil
	}

	moves := list.Slice()
	orderMoves(moves, p.Board, ttMove, s.History, p.Black)
	if ply == 0 && !s.IsMain {
		s.Rand.Shuffle(len(moves), func(i, j int) { moves[i], moves[j] = moves[j], moves[i] })
	}

	var best position.Move
	bestScore := -Checkmate * 2

	for i, m := range moves {
		isCapture := p.Board.PieceAt(m.To()) != position.Empty || m.Promo() != position.PromoNone
		child := p.Do(s.Hasher, m)
		givesCheck := movegen.InCheck(child)

		childDepth := depth - 1
		if givesCheck {
			childDepth++
		} else if !inCheck && depth > 2 && i > 3 && !isCapture {
			childDepth = depth - 2
		}

		s.Ancestry.Push(p.Hash)
		var score int
		var err error
		if i == 0 {
			score, err = s.alphabeta(child, -beta, -alpha, childDepth, ply+1)
			score = -score
		} else {
			score, err = s.alphabeta(child, -(alpha + 4), -alpha, childDepth, ply+1)
			score = -score
			if err == nil && score > alpha && score < beta {
				score, err = s.alphabeta(child, -beta, -alpha, depth-1, ply+1)
				score = -score
			}
		}
		s.Ancestry.Pop(p.Hash)

		if err != nil {
			return 0, err
		}

		if score > bestScore {
			bestScore = score
			best = m
		}

		if score >= beta {
			s.TT.Store(p.Hash, tt.Entry{Score: int32(ToLower(score)), Age: s.Age, Depth: uint8(depth), Move: m})
			if !isCapture {
				s.History.Bump(p.Black, m.From(), m.To(), depth)
			}
			return score, nil
		}
		if score > alpha {
			alpha = score
		}
	}

	if alpha > origAlpha {
		s.TT.Store(p.Hash, tt.Entry{Score: int32(Exact(bestScore)), Age: s.Age, Depth: uint8(depth), Move: best})
	} else {
		s.TT.Store(p.Hash, tt.Entry{Score: int32(ToUpper(bestScore)), Age: s.Age, Depth: uint8(depth), Move: best})
	}
	return bestScore, nil
}
