// Package perft counts leaf nodes of the legal move tree. It is the standard
// check that move generation is complete and sound.
package perft

import (
	"github.com/park285/Cheese-chesscore/internal/analysis"
	"github.com/park285/Cheese-chesscore/internal/board"
)

// Perft returns the number of leaf positions reachable from b in depth plies.
func Perft(b *board.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	variants := analysis.CreateValidVariants(b, b.SideToMove(), true)
	if depth == 1 {
		return uint64(len(variants))
	}
	var nodes uint64
	for _, v := range variants {
		nodes += Perft(v.Board(), depth-1)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by UCI.
func Divide(b *board.Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, v := range analysis.CreateValidVariants(b, b.SideToMove(), true) {
		m, _ := v.Move()
		out[m.UCI()] = Perft(v.Board(), depth-1)
	}
	return out
}
