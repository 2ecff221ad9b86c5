package board

type step struct{ df, dr int }

var (
	knightSteps = [8]step{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8]step{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookDirs    = [4]step{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirs  = [4]step{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
)

func forward(s Side) int {
	if s == White {
		return 1
	}
	return -1
}

func pawnHomeRank(s Side) int {
	if s == White {
		return 1
	}
	return 6
}

func backRank(s Side) int {
	if s == White {
		return 0
	}
	return 7
}

// PromotionRank is the rank on which side's pawns promote.
func PromotionRank(s Side) int { return backRank(s.Opponent()) }

// BuildMoveDestinations returns the pseudo-legal destinations of the piece
// on s: movement pattern, blocking and captures, plus double pushes, en
// passant and castling when their board preconditions hold. King safety is
// not considered. The result is nil for an empty square and its order is
// stable for a given board.
func (s Square) BuildMoveDestinations(b *Board) []Position {
	if s.Empty() {
		return nil
	}
	gen := destinations{board: b, from: s.Position, side: s.Piece.Side}
	switch s.Piece.Type {
	case Pawn:
		gen.pawn()
	case Knight:
		gen.steps(knightSteps[:])
	case Bishop:
		gen.slide(bishopDirs[:])
	case Rook:
		gen.slide(rookDirs[:])
	case Queen:
		gen.slide(rookDirs[:])
		gen.slide(bishopDirs[:])
	case King:
		gen.steps(kingSteps[:])
		gen.castle(KingSide)
		gen.castle(QueenSide)
	}
	return gen.out
}

type destinations struct {
	board *Board
	from  Position
	side  Side
	out   []Position
}

// add records to unless a friendly piece stands there. It reports whether a
// slider may continue past to.
func (g *destinations) add(to Position) bool {
	occupant := g.board.pieceAt(to)
	if occupant.IsZero() {
		g.out = append(g.out, to)
		return true
	}
	if occupant.Side != g.side {
		g.out = append(g.out, to)
	}
	return false
}

func (g *destinations) steps(table []step) {
	for _, st := range table {
		if to, ok := g.from.offset(st.df, st.dr); ok {
			g.add(to)
		}
	}
}

func (g *destinations) slide(dirs []step) {
	for _, d := range dirs {
		to, ok := g.from.offset(d.df, d.dr)
		for ok && g.add(to) {
			to, ok = to.offset(d.df, d.dr)
		}
	}
}

func (g *destinations) pawn() {
	dir := forward(g.side)
	if one, ok := g.from.offset(0, dir); ok && g.board.pieceAt(one).IsZero() {
		g.out = append(g.out, one)
		if g.from.Rank == pawnHomeRank(g.side) {
			if two, ok := g.from.offset(0, 2*dir); ok && g.board.pieceAt(two).IsZero() {
				g.out = append(g.out, two)
			}
		}
	}
	for _, df := range [2]int{-1, 1} {
		to, ok := g.from.offset(df, dir)
		if !ok {
			continue
		}
		target := g.board.pieceAt(to)
		if (!target.IsZero() && target.Side != g.side) || (target.IsZero() && to == g.board.enPassant && g.side == g.board.toMove) {
			g.out = append(g.out, to)
		}
	}
}

// castle adds the king's two-file destination when side still holds the
// right, king and rook stand on their home squares and the squares between
// them are empty. Attacked transit squares are checked by Apply.
func (g *destinations) castle(wing Wing) {
	rank := backRank(g.side)
	home := Position{File: 4, Rank: rank}
	if g.from != home || !g.board.CanCastle(g.side, wing) {
		return
	}
	rookFile, kingTo := 7, 6
	if wing == QueenSide {
		rookFile, kingTo = 0, 2
	}
	rook := g.board.pieceAt(Position{File: rookFile, Rank: rank})
	if rook.Type != Rook || rook.Side != g.side {
		return
	}
	lo, hi := rookFile+1, 3
	if wing == KingSide {
		lo, hi = 5, rookFile-1
	}
	for f := lo; f <= hi; f++ {
		if !g.board.pieceAt(Position{File: f, Rank: rank}).IsZero() {
			return
		}
	}
	g.out = append(g.out, Position{File: kingTo, Rank: rank})
}

// IsAttacked reports whether any piece of side by attacks target. It walks
// the generator's capture patterns outward from target.
func (b *Board) IsAttacked(target Position, by Side) bool {
	if !target.Valid() {
		return false
	}
	is := func(p Position, types ...PieceType) bool {
		pc := b.pieceAt(p)
		if pc.IsZero() || pc.Side != by {
			return false
		}
		for _, t := range types {
			if pc.Type == t {
				return true
			}
		}
		return false
	}
	for _, df := range [2]int{-1, 1} {
		if from, ok := target.offset(df, -forward(by)); ok && is(from, Pawn) {
			return true
		}
	}
	for _, st := range knightSteps {
		if from, ok := target.offset(st.df, st.dr); ok && is(from, Knight) {
			return true
		}
	}
	for _, st := range kingSteps {
		if from, ok := target.offset(st.df, st.dr); ok && is(from, King) {
			return true
		}
	}
	ray := func(dirs []step, types ...PieceType) bool {
		for _, d := range dirs {
			p, ok := target.offset(d.df, d.dr)
			for ok {
				if !b.pieceAt(p).IsZero() {
					if is(p, types...) {
						return true
					}
					break
				}
				p, ok = p.offset(d.df, d.dr)
			}
		}
		return false
	}
	return ray(rookDirs[:], Rook, Queen) || ray(bishopDirs[:], Bishop, Queen)
}
