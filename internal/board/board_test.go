package board

import (
	"errors"
	"testing"
)

func mustFEN(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func mustMove(t *testing.T, side Side, uci string) Move {
	t.Helper()
	m, err := ParseUCI(side, uci)
	if err != nil {
		t.Fatalf("ParseUCI(%q): %v", uci, err)
	}
	return m
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 12 40",
	}
	for _, fen := range fens {
		b := mustFEN(t, fen)
		if got := b.FEN(); got != fen {
			t.Fatalf("round trip mismatch:\n got %s\nwant %s", got, fen)
		}
	}
}

func TestFENDefaultsClocks(t *testing.T) {
	b := mustFEN(t, "8/8/8/8/8/8/8/K6k w - -")
	if b.HalfmoveClock() != 0 || b.FullmoveNumber() != 1 {
		t.Fatalf("clocks = %d/%d, want 0/1", b.HalfmoveClock(), b.FullmoveNumber())
	}
}

func TestParseFENMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"few fields":     "8/8/8/8/8/8/8/8 w",
		"seven ranks":    "8/8/8/8/8/8/8 w - - 0 1",
		"short rank":     "7/8/8/8/8/8/8/8 w - - 0 1",
		"long rank":      "ppppppppp/8/8/8/8/8/8/8 w - - 0 1",
		"bad piece":      "x7/8/8/8/8/8/8/8 w - - 0 1",
		"bad side":       "8/8/8/8/8/8/8/8 x - - 0 1",
		"bad castling":   "8/8/8/8/8/8/8/8 w KX - 0 1",
		"dup castling":   "8/8/8/8/8/8/8/8 w KK - 0 1",
		"bad ep":         "8/8/8/8/8/8/8/8 w - z9 0 1",
		"ep wrong rank":  "8/8/8/8/8/8/8/8 w - e3 0 1",
		"bad halfmove":   "8/8/8/8/8/8/8/8 w - - x 1",
		"zero fullmove":  "8/8/8/8/8/8/8/8 w - - 0 0",
		"pawn back rank": "P7/8/8/8/8/8/8/k6K w - - 0 1",
	}
	for name, fen := range cases {
		t.Run(name, func(t *testing.T) {
			b, err := ParseFEN(fen)
			if err == nil {
				t.Fatalf("expected error, got board %s", b.FEN())
			}
			if !errors.Is(err, ErrMalformedState) {
				t.Fatalf("error %v does not wrap ErrMalformedState", err)
			}
			var mse *MalformedStateError
			if !errors.As(err, &mse) || mse.Reason == "" {
				t.Fatalf("expected MalformedStateError with reason, got %T", err)
			}
		})
	}
}

func TestSquaresOrder(t *testing.T) {
	sq := New().Squares()
	if len(sq) != 64 {
		t.Fatalf("len = %d", len(sq))
	}
	if sq[0].Position.String() != "a1" || sq[7].Position.String() != "h1" || sq[63].Position.String() != "h8" {
		t.Fatalf("unexpected order: %s %s %s", sq[0].Position, sq[7].Position, sq[63].Position)
	}
	if sq[4].Piece.Type != King || sq[4].Piece.Side != White {
		t.Fatalf("e1 = %v", sq[4].Piece)
	}
}

func TestPieceWeightsFromTable(t *testing.T) {
	b, err := ParseFEN(StartFEN, WithWeights(WeightTable{Pawn: 2, Knight: 4, Bishop: 4, Rook: 6, Queen: 10, King: 0}))
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	sq, _ := b.At(Position{File: 0, Rank: 1})
	if sq.Piece.Weight != 2 {
		t.Fatalf("pawn weight = %v, want 2", sq.Piece.Weight)
	}
	if c := b.Clone(); c.Weights()[Queen] != 10 {
		t.Fatalf("clone lost weight table")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := New()
	c := b.Clone()
	if _, err := c.AttemptMove(mustMove(t, White, "e2e4")); err != nil {
		t.Fatalf("AttemptMove: %v", err)
	}
	if b.FEN() != StartFEN {
		t.Fatalf("original mutated: %s", b.FEN())
	}
}

func TestAttemptMoveUpdatesBoard(t *testing.T) {
	b := New()
	m, err := b.AttemptMove(mustMove(t, White, "e2e4"))
	if err != nil {
		t.Fatalf("AttemptMove: %v", err)
	}
	if m.Piece != Pawn || m.IsCapture() || m.Check {
		t.Fatalf("unexpected metadata: %+v", m)
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := b.FEN(); got != want {
		t.Fatalf("FEN = %s, want %s", got, want)
	}
}

func TestAttemptMoveRejections(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		side Side
		uci  string
		want Reason
	}{
		{"no piece", StartFEN, White, "e3e4", ReasonNoPiece},
		{"wrong side", StartFEN, White, "e7e5", ReasonWrongSide},
		{"not side to move", StartFEN, Black, "e7e5", ReasonNotSideToMove},
		{"unreachable", StartFEN, White, "e2e5", ReasonUnreachable},
		{"blocked slider", StartFEN, White, "a1a3", ReasonUnreachable},
		{"pinned piece", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", White, "e2d3", ReasonLeavesKingInCheck},
		{"king into check", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", White, "e1e2", ReasonLeavesKingInCheck},
		{"missing king", "4k3/8/8/8/8/8/4P3/8 w - - 0 1", White, "e2e4", ReasonMissingKing},
		{"promotion unspecified", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", White, "a7a8", ReasonPromotionUnspecified},
		{"promotion to king", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", White, "a7a8k", ReasonInvalidPromotion},
		{"promotion off last rank", StartFEN, White, "e2e4q", ReasonInvalidPromotion},
		{"castle out of check", "4k3/4r3/8/8/8/8/8/R3K2R w KQ - 0 1", White, "e1g1", ReasonCastlingThroughCheck},
		{"castle through check", "4k3/5r2/8/8/8/8/8/R3K2R w KQ - 0 1", White, "e1g1", ReasonCastlingThroughCheck},
		{"castle without right", "4k3/8/8/8/8/8/8/R3K2R w Q - 0 1", White, "e1g1", ReasonUnreachable},
		{"castle blocked", "4k3/8/8/8/8/8/8/RN2K2R w KQ - 0 1", White, "e1c1", ReasonUnreachable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustFEN(t, tc.fen)
			before := b.FEN()
			_, err := b.AttemptMove(mustMove(t, tc.side, tc.uci))
			if err == nil {
				t.Fatalf("expected rejection")
			}
			if !errors.Is(err, ErrIllegalMove) {
				t.Fatalf("error %v does not wrap ErrIllegalMove", err)
			}
			if got := RejectionReason(err); got != tc.want {
				t.Fatalf("reason = %s, want %s", got, tc.want)
			}
			if b.FEN() != before {
				t.Fatalf("board changed on failure: %s", b.FEN())
			}
		})
	}
}

func TestShallowSkipsKingSafety(t *testing.T) {
	fen := "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1"
	b := mustFEN(t, fen)
	if _, err := b.Apply(mustMove(t, White, "e2d3"), Shallow); err != nil {
		t.Fatalf("shallow Apply rejected pinned move: %v", err)
	}
	if !b.InCheck(White) {
		t.Fatalf("expected white king exposed after shallow move")
	}
}

func TestEnPassant(t *testing.T) {
	b := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	m, err := b.AttemptMove(mustMove(t, White, "e5d6"))
	if err != nil {
		t.Fatalf("AttemptMove: %v", err)
	}
	if !m.EnPassant || m.Captured != Pawn || m.CapturedAt.String() != "d5" {
		t.Fatalf("unexpected en passant metadata: %+v", m)
	}
	if sq, _ := b.At(Position{File: 3, Rank: 4}); !sq.Empty() {
		t.Fatalf("captured pawn still on d5")
	}
}

func TestCastlingMovesRookAndClearsRights(t *testing.T) {
	b := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	m, err := b.AttemptMove(mustMove(t, White, "e1c1"))
	if err != nil {
		t.Fatalf("AttemptMove: %v", err)
	}
	if m.Castle != QueenSide {
		t.Fatalf("castle = %v", m.Castle)
	}
	want := "r3k2r/8/8/8/8/8/8/2KR3R b kq - 1 1"
	if got := b.FEN(); got != want {
		t.Fatalf("FEN = %s, want %s", got, want)
	}
	if _, err := b.AttemptMove(mustMove(t, Black, "h8h1")); err != nil {
		t.Fatalf("AttemptMove rook capture: %v", err)
	}
	if b.CanCastle(White, KingSide) || b.CanCastle(Black, KingSide) || !b.CanCastle(Black, QueenSide) {
		t.Fatalf("castling rights = %v", b.Castling())
	}
}

func TestPromotion(t *testing.T) {
	b := mustFEN(t, "1n2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	m, err := b.AttemptMove(mustMove(t, White, "a7b8n"))
	if err != nil {
		t.Fatalf("AttemptMove: %v", err)
	}
	if m.Promotion != Knight || m.Captured != Knight {
		t.Fatalf("unexpected metadata: %+v", m)
	}
	sq, _ := b.At(Position{File: 1, Rank: 7})
	if sq.Piece.Type != Knight || sq.Piece.Side != White || sq.Piece.Weight != DefaultWeights[Knight] {
		t.Fatalf("b8 = %+v", sq.Piece)
	}
}

func TestCheckFlagAndFoolsMate(t *testing.T) {
	b := New()
	for _, mv := range []struct {
		side Side
		uci  string
	}{{White, "f2f3"}, {Black, "e7e5"}, {White, "g2g4"}} {
		if _, err := b.AttemptMove(mustMove(t, mv.side, mv.uci)); err != nil {
			t.Fatalf("AttemptMove %s: %v", mv.uci, err)
		}
	}
	m, err := b.AttemptMove(mustMove(t, Black, "d8h4"))
	if err != nil {
		t.Fatalf("AttemptMove d8h4: %v", err)
	}
	if !m.Check || !b.InCheck(White) {
		t.Fatalf("expected white in check after Qh4")
	}
	if b.FEN() != "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3" {
		t.Fatalf("FEN = %s", b.FEN())
	}
}

func TestBuildMoveDestinations(t *testing.T) {
	b := New()
	sq, _ := b.At(Position{File: 6, Rank: 0})
	got := sq.BuildMoveDestinations(b)
	if len(got) != 2 {
		t.Fatalf("g1 knight destinations = %v", got)
	}
	empty, _ := b.At(Position{File: 4, Rank: 3})
	if empty.BuildMoveDestinations(b) != nil {
		t.Fatalf("empty square produced destinations")
	}
	again := sq.BuildMoveDestinations(b)
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("destinations not stable: %v vs %v", got, again)
		}
	}
}

func TestWithSideToMoveClearsEnPassant(t *testing.T) {
	b := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	w := b.WithSideToMove(White)
	if w.SideToMove() != White || w.EnPassantTarget() != NoPosition {
		t.Fatalf("unexpected state %s", w.FEN())
	}
	if b.SideToMove() != Black {
		t.Fatalf("original mutated")
	}
}

func TestParseFENRejectsUnreachableStates(t *testing.T) {
	cases := map[string]string{
		"ep over own pawn":          "4k3/8/8/3PP3/8/8/8/4K3 w - e6 0 1",
		"ep over empty square":      "4k3/8/8/3P4/8/8/8/4K3 w - e6 0 1",
		"ep over enemy knight":      "4k3/8/8/3Pn3/8/8/8/4K3 w - e6 0 1",
		"ep target occupied":        "4k3/8/4n3/3Pp3/8/8/8/4K3 w - e6 0 1",
		"ep origin occupied":        "4k3/4n3/8/3Pp3/8/8/8/4K3 w - e6 0 1",
		"black ep over own pawn":    "4k3/8/8/8/3pp3/8/8/4K3 b - e3 0 1",
		"side not to move in check": "4k3/8/8/8/8/8/4Q3/4K3 w - - 0 1",
		"white not to move checked": "4k3/8/8/8/8/3n4/8/4K3 b - - 0 1",
	}
	for name, fen := range cases {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrMalformedState) {
			t.Fatalf("%s: err = %v, want malformed state", name, err)
		}
	}
	if _, err := ParseFEN("4k3/8/8/8/3Pp3/8/8/4K3 b - d3 0 1"); err != nil {
		t.Fatalf("valid black en passant target rejected: %v", err)
	}
}

func TestEnPassantRequiresOpponentPawn(t *testing.T) {
	const fen = "4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1"
	legit := mustFEN(t, fen)
	if m, err := legit.AttemptMove(mustMove(t, White, "d5e6")); err != nil || !m.EnPassant || m.Captured != Pawn {
		t.Fatalf("legit en passant: %+v %v", m, err)
	}

	e5 := Position{File: 4, Rank: 4}
	replace := map[string]func(b *Board){
		"enemy knight": func(b *Board) { b.Place(e5, Knight, Black) },
		"own pawn":     func(b *Board) { b.Place(e5, Pawn, White) },
		"empty":        func(b *Board) { b.Place(e5, NoPieceType, White) },
	}
	for name, edit := range replace {
		b := mustFEN(t, fen)
		edit(b)
		before := b.FEN()
		_, err := b.AttemptMove(mustMove(t, White, "d5e6"))
		if got := RejectionReason(err); got != ReasonInvalidEnPassant {
			t.Fatalf("%s: reason = %q (%v)", name, got, err)
		}
		if b.FEN() != before {
			t.Fatalf("%s: board changed on failure", name)
		}
	}
}

func TestKingCannotBeCaptured(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	b.Place(Position{File: 4, Rank: 1}, Queen, White)

	for _, mode := range []Legality{Deep, Shallow} {
		_, err := b.Clone().Apply(mustMove(t, White, "e2e8"), mode)
		if got := RejectionReason(err); got != ReasonCapturesKing {
			t.Fatalf("mode %v: reason = %q (%v)", mode, got, err)
		}
	}
	if _, err := b.Clone().AttemptMove(mustMove(t, White, "e1d1")); RejectionReason(err) != ReasonOpponentInCheck {
		t.Fatalf("deep move with opponent in check: %v", err)
	}
	if _, err := b.Clone().Apply(mustMove(t, White, "e1d1"), Shallow); err != nil {
		t.Fatalf("shallow move: %v", err)
	}
}

func TestValidateKings(t *testing.T) {
	if err := New().Validate(); err != nil {
		t.Fatalf("start position: %v", err)
	}
	for _, fen := range []string{
		"4k3/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/K3K3 w - - 0 1",
	} {
		if err := mustFEN(t, fen).Validate(); !errors.Is(err, ErrMalformedState) {
			t.Fatalf("%s: err = %v", fen, err)
		}
	}
}

func TestPositionKeyEnPassant(t *testing.T) {
	b := New()
	if _, err := b.AttemptMove(mustMove(t, White, "e2e4")); err != nil {
		t.Fatal(err)
	}
	if b.EnPassantTarget().String() != "e3" {
		t.Fatalf("ep target = %s", b.EnPassantTarget())
	}
	if key := b.PositionKey(); key != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq -" {
		t.Fatalf("key without capturable ep = %q", key)
	}

	capturable := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if key := capturable.PositionKey(); key != "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6" {
		t.Fatalf("key with capturable ep = %q", key)
	}

	// bxc6 would expose the king on a5 to the rook.
	pinned := mustFEN(t, "8/8/8/KPp4r/8/8/8/7k w - c6 0 1")
	if key := pinned.PositionKey(); key != "8/8/8/KPp4r/8/8/8/7k w - -" {
		t.Fatalf("key with illegal ep = %q", key)
	}
}

func TestWithWeightsValidates(t *testing.T) {
	bad := map[string]WeightTable{
		"partial":  {Pawn: 1, Knight: 3},
		"negative": {Pawn: -1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 0},
	}
	for name, w := range bad {
		if _, err := ParseFEN(StartFEN, WithWeights(w)); !errors.Is(err, ErrInvalidWeights) {
			t.Fatalf("%s: err = %v", name, err)
		}
	}
	b, err := ParseFEN(StartFEN, WithWeights(nil))
	if err != nil {
		t.Fatalf("nil table: %v", err)
	}
	if sq, _ := b.At(Position{File: 3, Rank: 0}); sq.Piece.Weight != DefaultWeights[Queen] {
		t.Fatalf("nil table should keep defaults, queen = %v", sq.Piece.Weight)
	}
}
