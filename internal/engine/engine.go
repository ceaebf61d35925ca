// Package engine ties together position, search and the transposition
// table into the object a UCI driver drives: reset to a position, apply
// opponent moves, launch and halt analysis.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/nkoppel/rootchego/internal/eval"
	"github.com/nkoppel/rootchego/internal/movegen"
	"github.com/nkoppel/rootchego/internal/pool"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/nkoppel/rootchego/internal/search"
	"github.com/nkoppel/rootchego/internal/searchctl"
	"github.com/nkoppel/rootchego/internal/tt"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Options are the engine-wide settings a UCI "setoption" call changes,
// as opposed to the per-search Options in package searchctl.
type Options struct {
	// Hash is the transposition table size in MiB.
	Hash uint
	// Threads is the lazy-SMP searcher count.
	Threads uint
	// Chess960 selects Fischer Random castling semantics.
	Chess960 bool
}

func (o Options) String() string {
	return fmt.Sprintf("{hash=%vMiB, threads=%v, chess960=%v}", o.Hash, o.Threads, o.Chess960)
}

// Engine owns the current position, the shared transposition table and
// pawn cache, and the in-flight search, if any.
type Engine struct {
	name, author string

	launcher pool.Launcher
	hasher   *position.Hasher
	opts     Options
	age      uint8

	p      position.Position
	active pool.Handle
	mu     sync.Mutex
}

func New(ctx context.Context, name, author string, opts Options) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		hasher: position.NewHasher(0),
	}
	e.applyOptions(opts)

	_ = e.Reset(ctx, position.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

func (e *Engine) Name() string   { return fmt.Sprintf("%v %v", e.name, version) }
func (e *Engine) Author() string { return e.author }

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// SetOptions reconfigures hash size, thread count and Chess960 mode. It
// rebuilds the transposition table and pawn cache when the hash size
// changes, which discards all cached search results.
func (e *Engine) SetOptions(ctx context.Context, opts Options) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)
	e.applyOptions(opts)

	logw.Infof(ctx, "Options updated: %v", e.opts)
}

func (e *Engine) applyOptions(opts Options) {
	rebuildTT := opts.Hash != e.opts.Hash || e.launcher.TT == nil
	e.opts = opts

	if rebuildTT {
		entries := int(opts.Hash) * tt.EntriesPerMiB
		if entries <= 0 {
			entries = tt.EntriesPerMiB
		}
		e.launcher.TT = tt.NewSearchTable(entries)
		e.launcher.Pawns = eval.NewPawnCache(entries / 4)
	}
	e.launcher.Hasher = e.hasher
}

// Position returns the current position in FEN.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.p.String()
}

// Reset resets the engine to the position described by the given FEN.
func (e *Engine) Reset(ctx context.Context, fen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	f, err := position.ParseFEN(fen)
	if err != nil {
		return err
	}
	e.p = position.NewPosition(f, e.hasher)
	e.age++

	logw.Infof(ctx, "Reset to %v", e.p.String())
	return nil
}

// Move applies a single UCI long-algebraic move to the current position.
// It is used both for opponent moves and to replay a game's move list.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	m, ok := position.ParseMove(move)
	if !ok {
		return fmt.Errorf("invalid move syntax: %v", move)
	}

	legal := movegen.Generate(e.p, e.opts.Chess960)
	for _, candidate := range legal.Slice() {
		if candidate != m {
			continue
		}
		e.p = e.p.Do(e.hasher, candidate)
		logw.Infof(ctx, "Move %v: %v", candidate, e.p.String())
		return nil
	}
	return fmt.Errorf("illegal move: %v", move)
}

// Analyze launches a lazy-SMP search of the current position and returns a
// channel of the main thread's completed iterations.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	opt.Chess960 = e.opts.Chess960

	logw.Infof(ctx, "Analyze %v, opt=%v", e.p.String(), opt)

	threads := e.opts.Threads
	if threads == 0 {
		threads = 1
	}

	h, out := e.launcher.Launch(ctx, e.p, e.age, threads, opt)
	e.active = h
	return out, nil
}

// Perft counts leaf positions reachable in exactly depth plies from the
// current position, cooperatively across the configured thread count, and
// returns the per-root-move divide alongside the total.
func (e *Engine) Perft(ctx context.Context, depth int) ([]pool.PerftMove, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	threads := e.opts.Threads
	if threads == 0 {
		threads = 1
	}
	return pool.Perft(ctx, e.p, e.hasher, e.opts.Chess960, threads, depth)
}

// Halt stops the active search, if any, and returns its last result.
func (e *Engine) Halt(ctx context.Context) (search.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.Result{}, fmt.Errorf("no active search")
	}
	return r, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.Result, bool) {
	if e.active == nil {
		return search.Result{}, false
	}
	r := e.active.Halt()
	logw.Infof(ctx, "Search halted: depth=%v nodes=%v", r.Depth, r.Nodes)
	e.active = nil
	return r, true
}
