package httpapi

import (
	"github.com/park285/Cheese-chesscore/internal/analysis"
	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/game"
	"github.com/park285/Cheese-chesscore/pkg/chessdto"
)

func moveDTO(m board.Move, san string) chessdto.Move {
	out := chessdto.Move{
		UCI:       m.UCI(),
		SAN:       san,
		Side:      m.Side.String(),
		From:      m.Start.String(),
		To:        m.End.String(),
		Piece:     m.Piece.String(),
		EnPassant: m.EnPassant,
		Check:     m.Check,
	}
	if m.Promotion != board.NoPieceType {
		out.Promotion = m.Promotion.String()
	}
	if m.Captured != board.NoPieceType {
		out.Captured = m.Captured.String()
	}
	switch m.Castle {
	case board.KingSide:
		out.Castle = "king"
	case board.QueenSide:
		out.Castle = "queen"
	}
	return out
}

func material(b *board.Board) chessdto.MaterialScore {
	w := analysis.PieceWeights(b)
	return chessdto.MaterialScore{White: w.Value(board.White), Black: w.Value(board.Black), Balance: w.Balance()}
}

func outcomeDTO(st analysis.Status) chessdto.Outcome {
	return chessdto.Outcome{
		Result:     string(st.Result),
		Method:     string(st.Method),
		SideToMove: st.SideToMove.String(),
		InCheck:    st.InCheck,
	}
}

func gameState(g *game.Game, weights board.WeightTable) chessdto.GameState {
	out := chessdto.GameState{
		ID:        g.ID,
		StartFEN:  g.StartFEN,
		FEN:       g.FEN,
		Status:    string(g.Status),
		Result:    string(g.Result),
		Method:    string(g.Method),
		Records:   make([]chessdto.Record, len(g.Records)),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	for i, r := range g.Records {
		out.Records[i] = chessdto.Record{Ply: r.Ply, Side: r.Side, UCI: r.UCI, SAN: r.SAN, FENAfter: r.FENAfter, Annotation: r.Annotation}
	}
	if b, err := g.Board(weights); err == nil {
		out.SideToMove = b.SideToMove().String()
		out.Material = material(b)
	}
	return out
}
