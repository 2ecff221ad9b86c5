// Package analysis enumerates legal moves and scores material over a board.
// Every function takes the side explicitly; the board is never mutated.
package analysis

import (
	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/variant"
)

// GameAnalysis maps each side to its summed material weight.
type GameAnalysis map[board.Side]float64

// Value returns side's score; a side with no entry scores 0.
func (g GameAnalysis) Value(side board.Side) float64 { return g[side] }

// Balance is white's score minus black's.
func (g GameAnalysis) Balance() float64 { return g.Value(board.White) - g.Value(board.Black) }

var promotionChoices = [4]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// forEachCandidate walks side's pseudo-legal candidate moves on base in
// square order, then destination order. A pawn destination on the last rank
// yields one candidate per promotion piece. It stops when fn returns false.
func forEachCandidate(base *board.Board, side board.Side, fn func(board.Move) bool) {
	for _, sq := range base.Squares() {
		if sq.Empty() || sq.Piece.Side != side {
			continue
		}
		for _, to := range sq.BuildMoveDestinations(base) {
			m := board.NewMove(side, sq.Position, to)
			if sq.Piece.Type != board.Pawn || to.Rank != board.PromotionRank(side) {
				if !fn(m) {
					return
				}
				continue
			}
			for _, p := range promotionChoices {
				m.Promotion = p
				if !fn(m) {
					return
				}
			}
		}
	}
}

// trialBase is the board every candidate for side is tried against.
func trialBase(b *board.Board, side board.Side) *board.Board {
	return b.WithSideToMove(side)
}

// ValidVariantExists reports whether side has at least one legal move. Each
// candidate is replayed as a single-change deep Variant from the board's
// serialized state; the scan stops at the first legal one.
func ValidVariantExists(b *board.Board, side board.Side) bool {
	base := trialBase(b, side)
	fen := base.FEN()
	opts := board.WithWeights(base.Weights())
	found := false
	forEachCandidate(base, side, func(m board.Move) bool {
		v := variant.New(fen, []variant.BoardChange{variant.MoveMade{Move: m}}, true, opts)
		if v.Legal() {
			found = true
			return false
		}
		return true
	})
	return found
}

// CreateValidVariants returns one Variant per legal move of side, in square
// then destination order. Each candidate is attempted directly on its own
// clone; deep is recorded on the variants for later replays. The result is
// nil when side has no legal move.
func CreateValidVariants(b *board.Board, side board.Side, deep bool) []*variant.Variant {
	base := trialBase(b, side)
	fen := base.FEN()
	var out []*variant.Variant
	forEachCandidate(base, side, func(m board.Move) bool {
		trial := base.Clone()
		committed, err := trial.AttemptMove(m)
		if err == nil {
			out = append(out, variant.Resolved(fen, committed, trial, deep))
		}
		return true
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

// AnyValidMoves reports whether side has a legal move, using direct
// clone-and-attempt trials and stopping at the first success.
func AnyValidMoves(b *board.Board, side board.Side) bool {
	base := trialBase(b, side)
	found := false
	forEachCandidate(base, side, func(m board.Move) bool {
		if _, err := base.Clone().AttemptMove(m); err == nil {
			found = true
			return false
		}
		return true
	})
	return found
}

// AreThereAnyValidMoves is AnyValidMoves for the board's side to move.
func AreThereAnyValidMoves(b *board.Board) bool {
	return AnyValidMoves(b, b.SideToMove())
}

// LegalMoves lists side's legal moves with their derived metadata.
func LegalMoves(b *board.Board, side board.Side) []board.Move {
	variants := CreateValidVariants(b, side, true)
	out := make([]board.Move, 0, len(variants))
	for _, v := range variants {
		if m, ok := v.Move(); ok {
			out = append(out, m)
		}
	}
	return out
}

// PieceWeights sums piece weights per side. Both sides are always present.
func PieceWeights(b *board.Board) GameAnalysis {
	out := GameAnalysis{board.White: 0, board.Black: 0}
	for _, sq := range b.Squares() {
		if sq.Empty() {
			continue
		}
		out[sq.Piece.Side] += sq.Piece.Weight
	}
	return out
}

// PositionsForOccupiedSquares lists occupied positions in square order.
func PositionsForOccupiedSquares(b *board.Board) []board.Position {
	var out []board.Position
	for _, sq := range b.Squares() {
		if !sq.Empty() {
			out = append(out, sq.Position)
		}
	}
	return out
}
