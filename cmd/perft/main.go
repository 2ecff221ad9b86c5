package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/perft"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	b, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := perft.Divide(b, *depth)
		keys := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			keys = append(keys, m)
			sum += n
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %d\n", k, div[k])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	start := time.Now()
	nodes := perft.Perft(b, *depth)
	elapsed := time.Since(start)
	fmt.Printf("depth %d \tnodes %d \ttime %s \tnps %.0f\n", *depth, nodes, elapsed, float64(nodes)/elapsed.Seconds())
}
