package board

// AttemptMove is the legality gate: it applies m with full (Deep) legality.
// On success the board is updated in place and the returned Move carries the
// derived metadata. On failure the board is unchanged and the error is an
// *IllegalMoveError.
func (b *Board) AttemptMove(m Move) (Move, error) {
	return b.Apply(m, Deep)
}

// Apply validates req under mode and, if it passes, commits it. Every
// legality decision in the module goes through here.
func (b *Board) Apply(req Move, mode Legality) (Move, error) {
	m := req.Request()
	if !m.Start.Valid() || !m.End.Valid() {
		return req, illegal(m, ReasonOffBoard)
	}
	piece := b.pieceAt(m.Start)
	switch {
	case piece.IsZero():
		return req, illegal(m, ReasonNoPiece)
	case piece.Side != m.Side:
		return req, illegal(m, ReasonWrongSide)
	case m.Side != b.toMove:
		return req, illegal(m, ReasonNotSideToMove)
	}
	if !contains(b.squares[m.Start.index()].BuildMoveDestinations(b), m.End) {
		return req, illegal(m, ReasonUnreachable)
	}
	opp := m.Side.Opponent()
	if target := b.pieceAt(m.End); target.Type == King {
		return req, illegal(m, ReasonCapturesKing)
	}
	if mode == Deep {
		if _, ok := b.KingPosition(m.Side); !ok {
			return req, illegal(m, ReasonMissingKing)
		}
		// A position where the side not to move is in check cannot arise
		// from legal play, so nothing is legal from it.
		if b.InCheck(opp) {
			return req, illegal(m, ReasonOpponentInCheck)
		}
	}

	promoting := piece.Type == Pawn && m.End.Rank == PromotionRank(m.Side)
	if promoting {
		switch m.Promotion {
		case Knight, Bishop, Rook, Queen:
		case NoPieceType:
			return req, illegal(m, ReasonPromotionUnspecified)
		default:
			return req, illegal(m, ReasonInvalidPromotion)
		}
	} else if m.Promotion != NoPieceType {
		return req, illegal(m, ReasonInvalidPromotion)
	}

	wing := NoWing
	if piece.Type == King && abs(m.End.File-m.Start.File) == 2 {
		wing = KingSide
		if m.End.File < m.Start.File {
			wing = QueenSide
		}
		transit := Position{File: (m.Start.File + m.End.File) / 2, Rank: m.Start.Rank}
		if mode == Deep && (b.IsAttacked(m.Start, opp) || b.IsAttacked(transit, opp)) {
			return req, illegal(m, ReasonCastlingThroughCheck)
		}
	}

	next := *b
	m.Piece = piece.Type
	captured := next.pieceAt(m.End)
	if piece.Type == Pawn && captured.IsZero() && m.End == b.enPassant && m.Start.File != m.End.File {
		m.EnPassant = true
		m.CapturedAt = Position{File: m.End.File, Rank: m.Start.Rank}
		captured = next.pieceAt(m.CapturedAt)
		if captured.Type != Pawn || captured.Side != opp {
			return req, illegal(m.Request(), ReasonInvalidEnPassant)
		}
		next.squares[m.CapturedAt.index()].Piece = Piece{}
	} else if !captured.IsZero() {
		m.CapturedAt = m.End
	}
	m.Captured = captured.Type

	next.squares[m.End.index()].Piece = piece
	next.squares[m.Start.index()].Piece = Piece{}
	if promoting {
		next.Place(m.End, m.Promotion, m.Side)
	}
	if wing != NoWing {
		m.Castle = wing
		rookFrom, rookTo := Position{File: 7, Rank: m.Start.Rank}, Position{File: 5, Rank: m.Start.Rank}
		if wing == QueenSide {
			rookFrom, rookTo = Position{File: 0, Rank: m.Start.Rank}, Position{File: 3, Rank: m.Start.Rank}
		}
		next.squares[rookTo.index()].Piece = next.pieceAt(rookFrom)
		next.squares[rookFrom.index()].Piece = Piece{}
	}

	next.castling &^= rightsAnchoredAt(m.Start) | rightsAnchoredAt(m.End)
	next.enPassant = NoPosition
	if piece.Type == Pawn && abs(m.End.Rank-m.Start.Rank) == 2 {
		next.enPassant = Position{File: m.Start.File, Rank: (m.Start.Rank + m.End.Rank) / 2}
	}
	if piece.Type == Pawn || m.IsCapture() {
		next.halfmove = 0
	} else {
		next.halfmove++
	}
	if m.Side == Black {
		next.fullmove++
	}
	next.toMove = opp

	if mode == Deep && next.InCheck(m.Side) {
		return req, illegal(m, ReasonLeavesKingInCheck)
	}
	m.Check = next.InCheck(opp)
	*b = next
	return m, nil
}

// rightsAnchoredAt returns the castling rights lost when a piece leaves or
// lands on p (king and rook home squares).
func rightsAnchoredAt(p Position) CastlingRights {
	switch p {
	case Position{File: 4, Rank: 0}:
		return CastleWhiteKing | CastleWhiteQueen
	case Position{File: 7, Rank: 0}:
		return CastleWhiteKing
	case Position{File: 0, Rank: 0}:
		return CastleWhiteQueen
	case Position{File: 4, Rank: 7}:
		return CastleBlackKing | CastleBlackQueen
	case Position{File: 7, Rank: 7}:
		return CastleBlackKing
	case Position{File: 0, Rank: 7}:
		return CastleBlackQueen
	}
	return 0
}

func contains(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
