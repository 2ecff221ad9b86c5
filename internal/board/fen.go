package board

import (
	"strconv"
	"strings"
)

// ParseFEN builds a board from a FEN string. Four-field input is accepted;
// the halfmove clock then defaults to 0 and the fullmove number to 1.
// Any malformation yields a *MalformedStateError.
func ParseFEN(fen string, opts ...Option) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, malformed(fen, "expected 4 to 6 fields, got %d", len(fields))
	}
	b, err := empty(opts...)
	if err != nil {
		return nil, err
	}

	// 1. Piece placement, rank 8 first.
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, malformed(fen, "expected 8 ranks, got %d", len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			t := pieceTypeFromLetter(ch)
			if t == NoPieceType {
				return nil, malformed(fen, "unrecognized piece %q", ch)
			}
			if file >= 8 {
				return nil, malformed(fen, "rank %d has more than 8 files", rank+1)
			}
			if t == Pawn && (rank == 0 || rank == 7) {
				return nil, malformed(fen, "pawn on back rank %d", rank+1)
			}
			side := Black
			if ch >= 'A' && ch <= 'Z' {
				side = White
			}
			b.Place(Position{File: file, Rank: rank}, t, side)
			file++
		}
		if file != 8 {
			return nil, malformed(fen, "rank %d does not have 8 files", rank+1)
		}
	}

	// 2. Side to move.
	switch fields[1] {
	case "w":
		b.toMove = White
	case "b":
		b.toMove = Black
	default:
		return nil, malformed(fen, "side to move must be 'w' or 'b'")
	}

	// 3. Castling rights.
	if fields[2] != "-" {
		for j := 0; j < len(fields[2]); j++ {
			var r CastlingRights
			switch fields[2][j] {
			case 'K':
				r = CastleWhiteKing
			case 'Q':
				r = CastleWhiteQueen
			case 'k':
				r = CastleBlackKing
			case 'q':
				r = CastleBlackQueen
			default:
				return nil, malformed(fen, "invalid castling character %q", fields[2][j])
			}
			if b.castling&r != 0 {
				return nil, malformed(fen, "duplicate castling character %q", fields[2][j])
			}
			b.castling |= r
		}
	}

	// 4. En passant target.
	if fields[3] != "-" {
		ep, err := ParsePosition(fields[3])
		if err != nil {
			return nil, malformed(fen, "invalid en passant square %q", fields[3])
		}
		want := 5
		if b.toMove == Black {
			want = 2
		}
		if ep.Rank != want {
			return nil, malformed(fen, "en passant square %s does not match side to move", ep)
		}
		// The opponent's pawn must have just double-pushed through ep.
		dir := forward(b.toMove)
		pushed := Position{File: ep.File, Rank: ep.Rank - dir}
		origin := Position{File: ep.File, Rank: ep.Rank + dir}
		if p := b.pieceAt(pushed); p.Type != Pawn || p.Side != b.toMove.Opponent() {
			return nil, malformed(fen, "en passant square %s has no %s pawn in front of it", ep, b.toMove.Opponent())
		}
		if !b.pieceAt(ep).IsZero() || !b.pieceAt(origin).IsZero() {
			return nil, malformed(fen, "en passant square %s or %s is occupied", ep, origin)
		}
		b.enPassant = ep
	}

	if b.InCheck(b.toMove.Opponent()) {
		return nil, malformed(fen, "%s is in check but not to move", b.toMove.Opponent())
	}

	// 5-6. Clocks.
	if len(fields) > 4 {
		n, err := strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, malformed(fen, "halfmove clock %q is not a non-negative number", fields[4])
		}
		b.halfmove = n
	}
	if len(fields) > 5 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, malformed(fen, "fullmove number %q is not a positive number", fields[5])
		}
		b.fullmove = n
	}
	return b, nil
}

// FEN serializes the board. ParseFEN(b.FEN()) reproduces b.
func (b *Board) FEN() string {
	var sb strings.Builder
	sb.WriteString(b.placement())
	sb.WriteByte(' ')
	if b.toMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(b.castlingString())
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullmove))
	return sb.String()
}

// PositionKey identifies a position for repetition purposes: placement, side
// to move, castling rights and, only when an en passant capture is actually
// legal, the en passant target. Clocks are left out.
func (b *Board) PositionKey() string {
	ep := NoPosition
	if b.enPassantCapturable() {
		ep = b.enPassant
	}
	return b.placement() + " " + b.toMove.String()[:1] + " " + b.castlingString() + " " + ep.String()
}

func (b *Board) enPassantCapturable() bool {
	if b.enPassant == NoPosition {
		return false
	}
	for _, df := range [2]int{-1, 1} {
		from, ok := b.enPassant.offset(df, -forward(b.toMove))
		if !ok {
			continue
		}
		if p := b.pieceAt(from); p.Type != Pawn || p.Side != b.toMove {
			continue
		}
		trial := *b
		if _, err := trial.Apply(NewMove(b.toMove, from, b.enPassant), Deep); err == nil {
			return true
		}
	}
	return false
}

func (b *Board) placement() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		emptyRun := 0
		for file := 0; file < 8; file++ {
			p := b.squares[rank*8+file].Piece
			if p.IsZero() {
				emptyRun++
				continue
			}
			if emptyRun > 0 {
				sb.WriteByte('0' + byte(emptyRun))
				emptyRun = 0
			}
			sb.WriteByte(p.fenChar())
		}
		if emptyRun > 0 {
			sb.WriteByte('0' + byte(emptyRun))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (b *Board) castlingString() string {
	if b.castling == 0 {
		return "-"
	}
	var sb strings.Builder
	if b.castling&CastleWhiteKing != 0 {
		sb.WriteByte('K')
	}
	if b.castling&CastleWhiteQueen != 0 {
		sb.WriteByte('Q')
	}
	if b.castling&CastleBlackKing != 0 {
		sb.WriteByte('k')
	}
	if b.castling&CastleBlackQueen != 0 {
		sb.WriteByte('q')
	}
	return sb.String()
}
