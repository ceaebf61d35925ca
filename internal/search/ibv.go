// Package search implements the iterative-deepening alpha-beta searcher:
// quiescence, null-move pruning, late-move reductions, principal-variation
// search, the history heuristic, and SEE-based move ordering, all reading
// and writing scores in the integer-bounded-value (IBV) encoding so that
// bound information survives a trip through the transposition table.
package search

// Checkmate is the terminal score magnitude, in IBV units (centipawns * 4).
const Checkmate = 25600 * 4

// Exact strips any bound flag from an IBV value n, returning the canonical
// exact-bound encoding of the same centipawn*4 value.
func Exact(n int) int { return (n + 1) &^ 3 }

// ToLower marks n as a lower-bound (fail-high) score.
func ToLower(n int) int { return Exact(n) + 1 }

// ToUpper marks n as an upper-bound (fail-low) score.
func ToUpper(n int) int { return Exact(n) - 1 }

// ToIBV converts a plain centipawn score into IBV form (no bound flag set).
func ToIBV(cp int) int { return cp * 4 }

// Value extracts the centipawn score out of an IBV value, discarding its
// bound flag.
func Value(n int) int { return Exact(n) / 4 }

const (
	boundExact = 0
	boundLower = 1
	boundUpper = 3
)

// Bound returns which of the three bound types n carries.
func Bound(n int) int { return n & 3 }
