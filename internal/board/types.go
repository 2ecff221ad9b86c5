package board

import (
	"fmt"
	"math"
	"strings"
)

// Side identifies a player color.
type Side uint8

const (
	White Side = iota
	Black
)

func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// ParseSide accepts "white"/"w" and "black"/"b" (case-insensitive).
func ParseSide(v string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	}
	return White, fmt.Errorf("unknown side %q", v)
}

// Position is a file/rank coordinate; both range over 0..7 (a..h, 1..8).
type Position struct {
	File int
	Rank int
}

// NoPosition marks an absent coordinate (e.g. no en passant target).
var NoPosition = Position{File: -1, Rank: -1}

func NewPosition(file, rank int) (Position, bool) {
	p := Position{File: file, Rank: rank}
	return p, p.Valid()
}

// ParsePosition parses algebraic coordinates such as "e4".
func ParsePosition(s string) (Position, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return NoPosition, fmt.Errorf("invalid square %q", s)
	}
	return Position{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}, nil
}

func (p Position) Valid() bool {
	return p.File >= 0 && p.File < 8 && p.Rank >= 0 && p.Rank < 8
}

func (p Position) String() string {
	if !p.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+p.File, p.Rank+1)
}

func (p Position) index() int { return p.Rank*8 + p.File }

func (p Position) offset(df, dr int) (Position, bool) {
	return NewPosition(p.File+df, p.Rank+dr)
}

func positionAt(idx int) Position { return Position{File: idx % 8, Rank: idx / 8} }

// PieceType is a colorless piece kind. NoPieceType marks an empty square.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = [...]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (t PieceType) String() string {
	if int(t) < len(pieceTypeNames) {
		return pieceTypeNames[t]
	}
	return "unknown"
}

// Letter returns the lowercase FEN letter for the type, or 0 for NoPieceType.
func (t PieceType) Letter() byte {
	const letters = " pnbrqk"
	if t == NoPieceType || int(t) >= len(letters) {
		return 0
	}
	return letters[t]
}

func pieceTypeFromLetter(ch byte) PieceType {
	switch ch {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	}
	return NoPieceType
}

// Piece occupies a square. Weight is the material value used for scoring.
type Piece struct {
	Type   PieceType
	Side   Side
	Weight float64
}

// IsZero reports whether p is the empty-square placeholder.
func (p Piece) IsZero() bool { return p.Type == NoPieceType }

func (p Piece) fenChar() byte {
	ch := p.Type.Letter()
	if p.Side == White {
		ch -= 'a' - 'A'
	}
	return ch
}

func (p Piece) String() string {
	if p.IsZero() {
		return "empty"
	}
	return p.Side.String() + " " + p.Type.String()
}

// WeightTable maps piece types to material weights.
type WeightTable map[PieceType]float64

// DefaultWeights are the conventional material values.
var DefaultWeights = WeightTable{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   0,
}

var weightedTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

// Validate requires a finite, non-negative weight for all six piece types.
func (w WeightTable) Validate() error {
	for _, t := range weightedTypes {
		v, ok := w[t]
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidWeights, t)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s weight %v", ErrInvalidWeights, t, v)
		}
	}
	return nil
}

func (w WeightTable) weight(t PieceType) float64 {
	if w == nil {
		return DefaultWeights[t]
	}
	return w[t]
}

// CastlingRights is a bit set of the four castling options.
type CastlingRights uint8

const (
	CastleWhiteKing CastlingRights = 1 << iota
	CastleWhiteQueen
	CastleBlackKing
	CastleBlackQueen
)

// Wing names the side of the board a castling move goes to.
type Wing uint8

const (
	NoWing Wing = iota
	KingSide
	QueenSide
)

func castleRight(side Side, wing Wing) CastlingRights {
	switch {
	case side == White && wing == KingSide:
		return CastleWhiteKing
	case side == White && wing == QueenSide:
		return CastleWhiteQueen
	case side == Black && wing == KingSide:
		return CastleBlackKing
	case side == Black && wing == QueenSide:
		return CastleBlackQueen
	}
	return 0
}
