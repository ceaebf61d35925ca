package pool

import (
	"context"
	"sync"

	"github.com/nkoppel/rootchego/internal/movegen"
	"github.com/nkoppel/rootchego/internal/position"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// PerftMove is one root move and the node count perft found under it,
// reported so a "go perft" caller can print a per-move divide.
type PerftMove struct {
	Move  position.Move
	Nodes uint64
}

// queue is the mutex-guarded shared work list §4.7/§5 calls for: root moves
// that any idle worker may pop next, as opposed to the lock-free TT, because
// perft workers must each claim a distinct, non-overlapping slice of work.
type queue struct {
	mu    sync.Mutex
	items []position.Move
}

func (q *queue) pop() (position.Move, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return 0, false
	}
	m := q.items[0]
	q.items = q.items[1:]
	return m, true
}

// Perft counts leaf positions reachable in exactly depth plies from p,
// splitting the root moves across threads goroutines via a shared queue and
// aggregating through an atomic counter, per the cooperative design in
// §4.7. It returns the per-root-move breakdown (for "divide" output) and the
// grand total.
func Perft(ctx context.Context, p position.Position, hasher *position.Hasher, chess960 bool, threads uint, depth int) ([]PerftMove, uint64) {
	if threads == 0 {
		threads = 1
	}
	roots := movegen.Generate(p, chess960).Slice()
	if depth <= 0 || len(roots) == 0 {
		return nil, 0
	}

	results := make([]uint64, len(roots))
	q := &queue{items: append([]position.Move(nil), roots...)}
	indexOf := make(map[position.Move]int, len(roots))
	for i, m := range roots {
		indexOf[m] = i
	}

	var total atomic.Uint64
	var g errgroup.Group
	workers := threads
	if uint(len(roots)) < workers {
		workers = uint(len(roots))
	}
	for i := uint(0); i < workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				m, ok := q.pop()
				if !ok {
					return nil
				}
				child := p.Do(hasher, m)
				n := perftCount(child, hasher, chess960, depth-1)
				results[indexOf[m]] = n
				total.Add(n)
			}
		})
	}
	_ = g.Wait()

	out := make([]PerftMove, len(roots))
	for i, m := range roots {
		out[i] = PerftMove{Move: m, Nodes: results[i]}
	}
	return out, total.Load()
}

func perftCount(p position.Position, hasher *position.Hasher, chess960 bool, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	list := movegen.Generate(p, chess960)
	if depth == 1 {
		return uint64(list.Len)
	}
	var n uint64
	for _, m := range list.Slice() {
		n += perftCount(p.Do(hasher, m), hasher, chess960, depth-1)
	}
	return n
}
