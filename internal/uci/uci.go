// Package uci implements a driver for running the engine under the
// Universal Chess Interface protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nkoppel/rootchego/internal/engine"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/nkoppel/rootchego/internal/search"
	"github.com/nkoppel/rootchego/internal/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

const (
	minHashMiB = 1
	maxHashMiB = 1_000_000
	minThreads = 1
	maxThreads = 64
)

// Driver implements a UCI driver for an Engine. It is activated by "uci".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool
	ponder       chan search.Result
	lastPosition string

	quit   chan struct{}
	closed atomic.Bool
}

// NewDriver starts a driver reading UCI command lines from in, returning
// the driver and a channel of lines to print back to the GUI.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.Result, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} { return d.quit }

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "UCI protocol initialized")

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	opts := d.e.Options()
	d.out <- fmt.Sprintf("option name Hash type spin default %v min %v max %v", opts.Hash, minHashMiB, maxHashMiB)
	d.out <- fmt.Sprintf("option name Threads type spin default %v min %v max %v", opts.Threads, minThreads, maxThreads)
	d.out <- "option name Ponder type check default false"
	d.out <- fmt.Sprintf("option name UCI_Chess960 type check default %v", opts.Chess960)

	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			if d.dispatch(ctx, line) {
				return
			}

		case r := <-d.ponder:
			if d.active.Load() {
				d.out <- printResult(r)
			}

		case <-d.quit:
			d.ensureInactive(ctx)
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// dispatch handles one input line. It returns true if the driver should
// shut down, which only the "quit" command does.
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "isready":
		d.out <- "readyok"

	case "debug", "register", "ponderhit":
		// accepted, no behavioral effect

	case "setoption":
		d.handleSetOption(ctx, args)

	case "ucinewgame":
		d.ensureInactive(ctx)
		d.lastPosition = ""

	case "position":
		d.handlePosition(ctx, line, args)

	case "go":
		d.handleGo(ctx, args)

	case "stop":
		if r, err := d.e.Halt(ctx); err == nil {
			d.searchCompleted(r)
		}

	case "quit":
		return true

	default:
		logw.Warningf(ctx, "Unknown command %q: %v", cmd, args)
	}
	return false
}

func (d *Driver) handleSetOption(ctx context.Context, args []string) {
	name, value := parseSetOption(args)

	opts := d.e.Options()
	switch name {
	case "Hash":
		if n, err := strconv.Atoi(value); err == nil {
			opts.Hash = clampUint(n, minHashMiB, maxHashMiB)
			d.e.SetOptions(ctx, opts)
		}
	case "Threads":
		if n, err := strconv.Atoi(value); err == nil {
			opts.Threads = clampUint(n, minThreads, maxThreads)
			d.e.SetOptions(ctx, opts)
		}
	case "UCI_Chess960":
		opts.Chess960 = value == "true"
		d.e.SetOptions(ctx, opts)
	case "Ponder":
		// no-op: this engine does not ponder.
	}
}

// parseSetOption extracts name and value from a "setoption name <id> [value
// <x>]" argument list; <id> may itself contain spaces.
func parseSetOption(args []string) (name, value string) {
	var nameParts, valueParts []string
	inValue := false
	for _, a := range args {
		switch a {
		case "name":
			inValue = false
		case "value":
			inValue = true
		default:
			if inValue {
				valueParts = append(valueParts, a)
			} else {
				nameParts = append(nameParts, a)
			}
		}
	}
	return strings.Join(nameParts, " "), strings.Join(valueParts, " ")
}

func clampUint(n, lo, hi int) uint {
	if n < lo {
		n = lo
	}
	if n > hi {
		n = hi
	}
	return uint(n)
}

func (d *Driver) handlePosition(ctx context.Context, line string, args []string) {
	d.ensureInactive(ctx)

	if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
		moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
		for _, arg := range strings.Fields(moves) {
			if arg == "moves" {
				continue
			}
			if err := d.e.Move(ctx, arg); err != nil {
				logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
				return
			}
		}
		d.lastPosition = line
		return
	}

	fen := position.Initial
	if len(args) >= 7 && args[0] == "fen" {
		fen = strings.Join(args[1:7], " ")
	}
	if err := d.e.Reset(ctx, fen); err != nil {
		logw.Errorf(ctx, "Invalid position: %v", line)
		return
	}

	move := false
	for _, arg := range args {
		if arg == "moves" {
			move = true
			continue
		}
		if !move {
			continue
		}
		if err := d.e.Move(ctx, arg); err != nil {
			logw.Errorf(ctx, "Invalid position move %q: %v: %v", arg, line, err)
			return
		}
	}
	d.lastPosition = line
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	d.ensureInactive(ctx)

	if depth, ok := perftDepth(args); ok {
		d.handlePerft(ctx, depth)
		return
	}

	var opt searchctl.Options
	var tc searchctl.TimeControl
	haveTC := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth", "wtime", "btime", "winc", "binc", "movestogo", "movetime":
			i++
			if i == len(args) {
				logw.Errorf(ctx, "No argument for %v", args[i-1])
				return
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				logw.Errorf(ctx, "Invalid argument for %v: %v", args[i-1], err)
				return
			}
			switch args[i-1] {
			case "depth":
				opt.DepthLimit = lang.Some(uint(n))
			case "wtime":
				tc.White = time.Millisecond * time.Duration(n)
				haveTC = true
			case "btime":
				tc.Black = time.Millisecond * time.Duration(n)
				haveTC = true
			case "winc":
				tc.WhiteInc = time.Millisecond * time.Duration(n)
				haveTC = true
			case "binc":
				tc.BlackInc = time.Millisecond * time.Duration(n)
				haveTC = true
			case "movestogo":
				tc.MovesToGo = n
				haveTC = true
			case "movetime":
				opt.MoveTime = lang.Some(time.Millisecond * time.Duration(n))
			}
		case "infinite", "ponder":
			// infinite: run until "stop"; ponder is treated the same way
			// since this engine does not pre-compute a ponder move.
		default:
			// searchmoves, mate and nodes are accepted but not restricted on.
		}
	}
	if haveTC {
		opt.TimeControl = lang.Some(tc)
	}

	out, err := d.e.Analyze(ctx, opt)
	if err != nil {
		logw.Errorf(ctx, "Analyze failed: %v", err)
		return
	}
	d.active.Store(true)

	go func() {
		var last search.Result
		for r := range out {
			last = r
			d.ponder <- r
		}
		d.searchCompleted(last)
	}()
}

// perftDepth looks for a "perft N" token pair in a "go" argument list.
// Perft is a node-count diagnostic, not a timed search, so it is dispatched
// before any of the time-control parsing below runs.
func perftDepth(args []string) (int, bool) {
	for i, a := range args {
		if a != "perft" {
			continue
		}
		if i+1 >= len(args) {
			return 0, false
		}
		n, err := strconv.Atoi(args[i+1])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// handlePerft runs a synchronous node count and prints the classic
// per-root-move divide followed by the total, matching the diagnostic
// format chess engines traditionally emit for "go perft".
func (d *Driver) handlePerft(ctx context.Context, depth int) {
	moves, total := d.e.Perft(ctx, depth)
	for _, pm := range moves {
		d.out <- fmt.Sprintf("%v: %v", pm.Move, pm.Nodes)
	}
	d.out <- fmt.Sprintf("Nodes searched: %v", total)
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(r search.Result) {
	if d.active.CAS(true, false) {
		if r.Best != 0 {
			d.out <- printResult(r)
			d.out <- fmt.Sprintf("bestmove %v", r.Best)
		} else {
			d.out <- "bestmove 0000"
		}
	}
}

func printResult(r search.Result) string {
	parts := []string{"info", fmt.Sprintf("depth %v", r.Depth)}

	if mate, ok := mateDistance(r.Score); ok {
		parts = append(parts, fmt.Sprintf("score mate %v", mate))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", search.Value(r.Score)))
	}
	parts = append(parts, fmt.Sprintf("nodes %v", r.Nodes))

	if len(r.PV) > 0 {
		var pv []string
		for _, m := range r.PV {
			pv = append(pv, m.String())
		}
		parts = append(parts, "pv "+strings.Join(pv, " "))
	}
	return strings.Join(parts, " ")
}

// mateDistance reports the number of full moves to a forced mate, if the
// IBV score represents one, signed from the searching side's perspective.
func mateDistance(ibv int) (int, bool) {
	cp := search.Value(ibv)
	dist := search.Checkmate/4 - abs(cp)
	if dist > 1000 {
		return 0, false
	}
	mate := (dist + 1) / 2
	if cp < 0 {
		mate = -mate
	}
	return mate, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
