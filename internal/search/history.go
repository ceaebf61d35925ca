package search

import "github.com/nkoppel/rootchego/internal/position"

// History is the history heuristic table: history[black][from][to] scores
// how often a quiet move has produced a beta cutoff, weighted by the depth
// at which it did so. Thread-local, per the concurrency model.
type History struct {
	table [2][position.NumSquares][position.NumSquares]int
}

func NewHistory() *History { return &History{} }

func (h *History) Score(black bool, from, to position.Square) int {
	return h.table[b2i(black)][from][to]
}

// Bump rewards a quiet move that caused a beta cutoff at the given
// remaining depth, by depth squared, per the design.
func (h *History) Bump(black bool, from, to position.Square, depth int) {
	h.table[b2i(black)][from][to] += depth * depth
}

func b2i(v bool) int {
	if v {
		return 1
	}
	return 0
}
