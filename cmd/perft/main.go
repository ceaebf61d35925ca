// perft is a movegen debugging tool, independent of the UCI front end, that
// reports node counts per depth and optionally divides the deepest count by
// root move. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/nkoppel/rootchego/internal/pool"
	"github.com/nkoppel/rootchego/internal/position"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	fen      = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide the deepest count by root move")
	threads  = flag.Uint("threads", 1, "Worker count; root moves are split across workers")
	chess960 = flag.Bool("chess960", false, "Use Chess960 castling semantics")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	record := *fen
	if record == "" {
		record = position.Initial
	}

	f, err := position.ParseFEN(record)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", record, err)
	}
	hasher := position.NewHasher(0)
	p := position.NewPosition(f, hasher)

	for d := 1; d <= *depth; d++ {
		start := time.Now()
		moves, nodes := pool.Perft(ctx, p, hasher, *chess960, *threads, d)
		duration := time.Since(start)

		if *divide && d == *depth {
			for _, m := range moves {
				fmt.Printf("%v: %v\n", m.Move, m.Nodes)
			}
		}
		fmt.Printf("perft,%v,%v,%v,%v\n", record, d, nodes, duration.Microseconds())
	}
}
