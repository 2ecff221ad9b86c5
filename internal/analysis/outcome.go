package analysis

import "github.com/park285/Cheese-chesscore/internal/board"

// Result classifies a game state, using the tokens of game records.
type Result string

const (
	Ongoing  Result = "*"
	WhiteWon Result = "1-0"
	BlackWon Result = "0-1"
	Draw     Result = "1/2-1/2"
)

// Decisive reports whether the result names a winner.
func (r Result) Decisive() bool { return r == WhiteWon || r == BlackWon }

// Over reports whether the game has ended.
func (r Result) Over() bool { return r != Ongoing && r != "" }

// Method explains how a finished result came about.
type Method string

const (
	NoMethod             Method = ""
	Checkmate            Method = "checkmate"
	Stalemate            Method = "stalemate"
	FiftyMoveRule        Method = "fifty_move_rule"
	InsufficientMaterial Method = "insufficient_material"
	ThreefoldRepetition  Method = "threefold_repetition"
	// InvalidPosition marks a board that cannot be classified because a
	// side does not have exactly one king. Its Result stays Ongoing.
	InvalidPosition Method = "invalid_position"
)

// Status is the queryable outcome signal for a position.
type Status struct {
	Result     Result
	Method     Method
	SideToMove board.Side
	InCheck    bool
}

// WinFor returns the result that awards the game to side.
func WinFor(side board.Side) Result {
	if side == board.White {
		return WhiteWon
	}
	return BlackWon
}

// Outcome classifies b for its side to move. A side without legal moves is
// checkmated when in check and stalemated otherwise; checkmate takes
// precedence over the fifty-move rule. A board failing Validate is reported
// as InvalidPosition rather than as a stalemate.
func Outcome(b *board.Board) Status {
	side := b.SideToMove()
	st := Status{Result: Ongoing, SideToMove: side, InCheck: b.InCheck(side)}
	switch {
	case b.Validate() != nil:
		st.Method = InvalidPosition
	case !AnyValidMoves(b, side):
		if st.InCheck {
			st.Result, st.Method = WinFor(side.Opponent()), Checkmate
		} else {
			st.Result, st.Method = Draw, Stalemate
		}
	case b.HalfmoveClock() >= 100:
		st.Result, st.Method = Draw, FiftyMoveRule
	case insufficientMaterial(b):
		st.Result, st.Method = Draw, InsufficientMaterial
	}
	return st
}

// insufficientMaterial covers bare kings, a single minor piece, and any
// number of bishops all standing on one square color.
func insufficientMaterial(b *board.Board) bool {
	minors := 0
	bishopColors := map[int]bool{}
	onlyBishops := true
	for _, sq := range b.Squares() {
		switch sq.Piece.Type {
		case board.NoPieceType, board.King:
			continue
		case board.Knight:
			minors++
			onlyBishops = false
		case board.Bishop:
			minors++
			bishopColors[(sq.Position.File+sq.Position.Rank)%2] = true
		default:
			return false
		}
	}
	if minors <= 1 {
		return true
	}
	return onlyBishops && len(bishopColors) == 1
}
