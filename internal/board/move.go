package board

import (
	"fmt"
	"strings"
)

// Move is a move request. Side, Start, End and (for pawns reaching the last
// rank) Promotion are supplied by the caller; the remaining fields are filled
// in by a successful Apply.
type Move struct {
	Side      Side
	Start     Position
	End       Position
	Promotion PieceType

	Piece      PieceType
	Captured   PieceType
	CapturedAt Position
	EnPassant  bool
	Castle     Wing
	Check      bool
}

func NewMove(side Side, start, end Position) Move {
	return Move{Side: side, Start: start, End: end, CapturedAt: NoPosition}
}

// Request strips the fields Apply derives, leaving only the caller's request.
func (m Move) Request() Move {
	r := NewMove(m.Side, m.Start, m.End)
	r.Promotion = m.Promotion
	return r
}

func (m Move) IsCapture() bool { return m.Captured != NoPieceType }

// UCI renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.Start.String() + m.End.String()
	if ch := m.Promotion.Letter(); ch != 0 {
		s += string(ch)
	}
	return s
}

func (m Move) String() string { return m.UCI() }

// ParseUCI builds a move request for side from coordinate notation.
func ParseUCI(side Side, s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}
	start, err := ParsePosition(s[0:2])
	if err != nil {
		return Move{}, err
	}
	end, err := ParsePosition(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := NewMove(side, start, end)
	if len(s) == 5 {
		m.Promotion = pieceTypeFromLetter(s[4])
		if m.Promotion == NoPieceType {
			return Move{}, fmt.Errorf("invalid promotion piece in %q", s)
		}
	}
	return m, nil
}

// Legality selects how strictly Apply validates a move.
type Legality uint8

const (
	// Shallow accepts pseudo-legal moves, including special-move
	// preconditions, without checking the mover's king safety.
	Shallow Legality = iota
	// Deep additionally rejects moves that leave the mover's king attacked.
	Deep
)

func (l Legality) String() string {
	if l == Deep {
		return "deep"
	}
	return "shallow"
}
