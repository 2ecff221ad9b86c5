package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/park285/Cheese-chesscore/internal/analysis"
	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/notation"
)

// repetitionLimit is the occurrence count that draws by repetition.
const repetitionLimit = 3

// Start builds a new session at fen. The position is classified right away,
// so a session may begin finished.
func Start(id, fen string, weights board.WeightTable, now time.Time) (*Game, error) {
	if strings.TrimSpace(fen) == "" {
		fen = board.StartFEN
	}
	b, err := board.ParseFEN(fen, board.WithWeights(weights))
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		ID:        id,
		StartFEN:  b.FEN(),
		FEN:       b.FEN(),
		Records:   []Record{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.classify(b)
	return g, nil
}

// Board parses the session's current position.
func (g *Game) Board(weights board.WeightTable) (*board.Board, error) {
	return board.ParseFEN(g.FEN, board.WithWeights(weights))
}

// Play applies req for the side to move and returns the updated session
// together with the committed move. g is left unchanged.
func Play(g *Game, req PlayRequest, weights board.WeightTable, now time.Time) (*Game, board.Move, error) {
	if g.Status != StatusActive {
		return nil, board.Move{}, ErrGameFinished
	}
	if req.ExpectedPly != nil && *req.ExpectedPly != len(g.Records) {
		return nil, board.Move{}, ErrConcurrentUpdate
	}
	b, err := g.Board(weights)
	if err != nil {
		return nil, board.Move{}, err
	}
	m, err := ParseMove(g.FEN, b.SideToMove(), req.Move)
	if err != nil {
		return nil, board.Move{}, err
	}
	committed, err := b.AttemptMove(m)
	if err != nil {
		return nil, board.Move{}, err
	}
	san, err := notation.SAN(g.FEN, committed.UCI())
	if err != nil {
		san = committed.UCI()
	}

	next := *g
	next.Records = make([]Record, len(g.Records), len(g.Records)+1)
	copy(next.Records, g.Records)
	next.Records = append(next.Records, Record{
		Ply:        len(g.Records) + 1,
		Side:       committed.Side.String(),
		UCI:        committed.UCI(),
		SAN:        san,
		FENAfter:   b.FEN(),
		Annotation: strings.TrimSpace(req.Annotation),
	})
	next.FEN = b.FEN()
	next.UpdatedAt = now
	next.classify(b)
	return &next, committed, nil
}

// ParseMove reads text as a move for side in the position fen. UCI is
// tried first, then algebraic notation.
func ParseMove(fen string, side board.Side, text string) (board.Move, error) {
	raw := strings.TrimSpace(text)
	if m, err := board.ParseUCI(side, raw); err == nil {
		return m, nil
	}
	uci, err := notation.ToUCI(fen, raw)
	if err != nil {
		return board.Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, raw)
	}
	return board.ParseUCI(side, uci)
}

// classify sets the outcome fields from b and the record history.
func (g *Game) classify(b *board.Board) {
	st := analysis.Outcome(b)
	if !st.Result.Over() && g.repetitions(b.PositionKey()) >= repetitionLimit {
		st.Result, st.Method = analysis.Draw, analysis.ThreefoldRepetition
	}
	g.Result, g.Method = st.Result, st.Method
	if st.Result.Over() {
		g.Status = StatusFinished
	} else {
		g.Status = StatusActive
	}
}

// repetitions counts how often key occurred, including the start position.
func (g *Game) repetitions(key string) int {
	n := 0
	count := func(fen string) {
		if b, err := board.ParseFEN(fen); err == nil && b.PositionKey() == key {
			n++
		}
	}
	count(g.StartFEN)
	for _, r := range g.Records {
		count(r.FENAfter)
	}
	return n
}
