package board

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Square is one board cell. Piece.IsZero() reports an empty square.
type Square struct {
	Position Position
	Piece    Piece
}

func (s Square) Empty() bool { return s.Piece.IsZero() }

// Board is the 8x8 grid plus the state needed for full legality. It has value
// semantics: copying a Board (or calling Clone) never aliases square state.
type Board struct {
	squares   [64]Square
	toMove    Side
	castling  CastlingRights
	enPassant Position
	halfmove  int
	fullmove  int
	weights   WeightTable
}

type Option func(*Board) error

// WithWeights sets the weight table used for pieces placed on the board. A
// nil table keeps DefaultWeights; any other table must pass Validate.
func WithWeights(w WeightTable) Option {
	return func(b *Board) error {
		if w == nil {
			return nil
		}
		if err := w.Validate(); err != nil {
			return err
		}
		b.weights = w
		return nil
	}
}

// New returns a board in the standard starting layout.
func New(opts ...Option) *Board {
	b, err := ParseFEN(StartFEN, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

func empty(opts ...Option) (*Board, error) {
	b := &Board{enPassant: NoPosition, fullmove: 1, weights: DefaultWeights}
	for i := range b.squares {
		b.squares[i] = Square{Position: positionAt(i)}
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Squares returns all 64 squares in a1, b1, ..., h8 order.
func (b *Board) Squares() []Square {
	out := make([]Square, 64)
	copy(out, b.squares[:])
	return out
}

// At returns the square at p; ok is false when p is off the board.
func (b *Board) At(p Position) (Square, bool) {
	if !p.Valid() {
		return Square{}, false
	}
	return b.squares[p.index()], true
}

func (b *Board) pieceAt(p Position) Piece { return b.squares[p.index()].Piece }

func (b *Board) SideToMove() Side { return b.toMove }
func (b *Board) Castling() CastlingRights { return b.castling }
func (b *Board) EnPassantTarget() Position { return b.enPassant }
func (b *Board) HalfmoveClock() int { return b.halfmove }
func (b *Board) FullmoveNumber() int { return b.fullmove }
func (b *Board) Weights() WeightTable { return b.weights }
func (b *Board) CanCastle(s Side, w Wing) bool { return b.castling&castleRight(s, w) != 0 }

// WithSideToMove returns a clone with side to move set to s. Switching sides
// clears the en passant target, which only belongs to the side that was due.
func (b *Board) WithSideToMove(s Side) *Board {
	c := b.Clone()
	if c.toMove != s {
		c.toMove = s
		c.enPassant = NoPosition
	}
	return c
}

// Place puts a piece of type t for side on p, replacing any occupant.
// Passing NoPieceType clears the square.
func (b *Board) Place(p Position, t PieceType, side Side) {
	if !p.Valid() {
		return
	}
	if t == NoPieceType {
		b.squares[p.index()].Piece = Piece{}
		return
	}
	b.squares[p.index()].Piece = Piece{Type: t, Side: side, Weight: b.weights.weight(t)}
}

// KingPosition finds side's king. ok is false unless exactly one is present.
func (b *Board) KingPosition(side Side) (Position, bool) {
	found := NoPosition
	count := 0
	for _, sq := range b.squares {
		if sq.Piece.Type == King && sq.Piece.Side == side {
			found = sq.Position
			count++
		}
	}
	return found, count == 1
}

// Validate reports a *MalformedStateError unless each side has exactly one
// king. ParseFEN does not require kings so that fragments can be analysed;
// boards that are played on should be validated.
func (b *Board) Validate() error {
	for _, side := range [2]Side{White, Black} {
		if _, ok := b.KingPosition(side); !ok {
			return malformed(b.FEN(), "%s must have exactly one king", side)
		}
	}
	return nil
}

// InCheck reports whether side's king is attacked. A side without a king is
// never in check.
func (b *Board) InCheck(side Side) bool {
	k, ok := b.KingPosition(side)
	if !ok {
		return false
	}
	return b.IsAttacked(k, side.Opponent())
}
