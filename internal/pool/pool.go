// Package pool runs lazy-SMP search: N searcher goroutines independently
// iterative-deepening the same position, sharing only a transposition table
// and a pawn-structure cache. The randomized move ordering on non-main
// threads (internal/search.Searcher.IsMain) is what makes the threads
// explore different parts of the tree despite searching identical
// positions, so that a shared table actually helps instead of every thread
// doing the same work.
package pool

import (
	"context"
	"sync"
	"time"

	"github.com/nkoppel/rootchego/internal/eval"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/nkoppel/rootchego/internal/search"
	"github.com/nkoppel/rootchego/internal/searchctl"
	"github.com/nkoppel/rootchego/internal/tt"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Launcher launches lazy-SMP searches against a shared table and pawn
// cache. It is the pool package's analogue of a single-threaded iterative
// deepening harness, generalized to run Threads searchers concurrently.
type Launcher struct {
	TT     *tt.SearchTable
	Pawns  *eval.PawnCache
	Hasher *position.Hasher
}

// Handle lets the owner halt an in-flight search and recover the best
// result the main thread had completed.
type Handle interface {
	// Halt stops the search, if running, and returns the last result
	// reported by the main thread. Idempotent.
	Halt() search.Result
}

type handle struct {
	init iox.AsyncCloser
	quit iox.AsyncCloser
	stop *atomic.Bool

	mu   sync.Mutex
	last search.Result
}

func (h *handle) Halt() search.Result {
	<-h.init.Closed()
	h.stop.Store(true)
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Launch starts Threads searcher goroutines over p, numbered 0 (the main
// thread, whose results alone are forwarded on the returned channel) through
// Threads-1. All threads share the same transposition table, so a deeper
// main-thread result can ride on work a helper thread already did. The
// channel closes when every thread has returned.
func (l *Launcher) Launch(ctx context.Context, p position.Position, age uint8, threads uint, opt searchctl.Options) (Handle, <-chan search.Result) {
	if threads == 0 {
		threads = 1
	}

	out := make(chan search.Result, 64)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
		stop: atomic.NewBool(false),
	}

	deadline, hasDeadline := searchctl.Deadline(opt, p.Black, time.Now())

	maxDepth := 64
	if v, ok := opt.DepthLimit.V(); ok && v > 0 {
		maxDepth = int(v)
	}

	go l.run(ctx, p, age, threads, maxDepth, deadline, hasDeadline, opt, h, out)
	return h, out
}

func (l *Launcher) run(ctx context.Context, p position.Position, age uint8, threads uint, maxDepth int, deadline time.Time, hasDeadline bool, opt searchctl.Options, h *handle, out chan search.Result) {
	defer close(out)
	defer h.init.Close()

	var g errgroup.Group
	for i := uint(0); i < threads; i++ {
		i := i
		g.Go(func() error {
			s := search.NewSearcher(l.TT, l.Pawns, l.Hasher, age, opt.Chess960, i == 0, h.stop)
			if hasDeadline {
				s.Deadline = deadline
			}

			report := func(r search.Result) {
				if i != 0 {
					return
				}
				h.mu.Lock()
				h.last = r
				h.mu.Unlock()

				select {
				case out <- r:
				case <-h.quit.Closed():
				}
			}

			s.Think(p, 1, maxDepth, report)
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-h.quit.Closed():
		<-done
	}

	logw.Debugf(ctx, "Search of %v completed", p.Hash)
}
