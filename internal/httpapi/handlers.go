package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/park285/Cheese-chesscore/internal/analysis"
	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/game"
	"github.com/park285/Cheese-chesscore/internal/notation"
	"github.com/park285/Cheese-chesscore/pkg/chessdto"
)

// position parses fen (the standard start when empty) and resolves side,
// which defaults to the side to move.
func (s *Server) position(fen, side string) (*board.Board, board.Side, error) {
	if strings.TrimSpace(fen) == "" {
		fen = board.StartFEN
	}
	b, err := board.ParseFEN(fen, board.WithWeights(s.weights))
	if err != nil {
		return nil, 0, err
	}
	if strings.TrimSpace(side) == "" {
		return b, b.SideToMove(), nil
	}
	sd, err := board.ParseSide(side)
	if err != nil {
		return nil, 0, badRequest(err.Error())
	}
	return b, sd, nil
}

func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("invalid JSON body: " + err.Error())
	}
	return nil
}

// movesWithSAN renders side's legal moves; SAN is computed against the
// position with side to move set to side.
func movesWithSAN(b *board.Board, side board.Side) []chessdto.Move {
	legal := analysis.LegalMoves(b, side)
	fen := b.WithSideToMove(side).FEN()
	out := make([]chessdto.Move, 0, len(legal))
	for _, m := range legal {
		san, _ := notation.SAN(fen, m.UCI())
		out = append(out, moveDTO(m, san))
	}
	return out
}

func (s *Server) listMoves(c *fiber.Ctx) error {
	var req chessdto.PositionRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	b, side, err := s.position(req.FEN, req.Side)
	if err != nil {
		return writeError(c, err)
	}
	moves := movesWithSAN(b, side)
	return c.JSON(chessdto.MovesResponse{FEN: b.FEN(), Side: side.String(), Count: len(moves), Moves: moves})
}

func (s *Server) attempt(c *fiber.Ctx) error {
	var req chessdto.AttemptRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	var mode board.Legality
	switch strings.ToLower(strings.TrimSpace(req.Legality)) {
	case "", "deep":
		mode = board.Deep
	case "shallow":
		mode = board.Shallow
	default:
		return writeError(c, badRequest("legality must be deep or shallow"))
	}
	b, side, err := s.position(req.FEN, "")
	if err != nil {
		return writeError(c, err)
	}
	before := b.FEN()
	m, err := game.ParseMove(before, side, req.Move)
	if err != nil {
		return writeError(c, err)
	}
	committed, err := b.Apply(m, mode)
	if err != nil {
		return writeError(c, err)
	}
	san, _ := notation.SAN(before, committed.UCI())
	return c.JSON(chessdto.AttemptResponse{Move: moveDTO(committed, san), FEN: b.FEN()})
}

func (s *Server) analyze(c *fiber.Ctx) error {
	var req chessdto.PositionRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	b, side, err := s.position(req.FEN, req.Side)
	if err != nil {
		return writeError(c, err)
	}
	occupied := analysis.PositionsForOccupiedSquares(b)
	names := make([]string, len(occupied))
	for i, p := range occupied {
		names[i] = p.String()
	}
	return c.JSON(chessdto.AnalysisResponse{
		FEN:                b.FEN(),
		Side:               side.String(),
		ValidVariantExists: analysis.ValidVariantExists(b, side),
		Material:           material(b),
		Occupied:           names,
		Outcome:            outcomeDTO(analysis.Outcome(b)),
	})
}

func (s *Server) createGame(c *fiber.Ctx) error {
	var req chessdto.CreateGameRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &req); err != nil {
			return writeError(c, err)
		}
	}
	g, err := s.games.Create(c.UserContext(), req.FEN)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(gameState(g, s.games.Weights()))
}

func (s *Server) getGame(c *fiber.Ctx) error {
	g, err := s.games.Load(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(gameState(g, s.games.Weights()))
}

func (s *Server) gameMoves(c *fiber.Ctx) error {
	g, err := s.games.Load(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	b, err := g.Board(s.games.Weights())
	if err != nil {
		return writeError(c, err)
	}
	moves := []chessdto.Move{}
	if g.Status == game.StatusActive {
		moves = movesWithSAN(b, b.SideToMove())
	}
	return c.JSON(chessdto.MovesResponse{FEN: g.FEN, Side: b.SideToMove().String(), Count: len(moves), Moves: moves})
}

func (s *Server) playMove(c *fiber.Ctx) error {
	var req chessdto.PlayRequest
	if err := bind(c, &req); err != nil {
		return writeError(c, err)
	}
	if strings.TrimSpace(req.Move) == "" {
		return writeError(c, badRequest("move is required"))
	}
	g, committed, err := s.games.Play(c.UserContext(), c.Params("id"), game.PlayRequest{
		Move:        req.Move,
		Annotation:  req.Annotation,
		ExpectedPly: req.ExpectedPly,
	})
	if err != nil {
		return writeError(c, err)
	}
	san := ""
	if n := len(g.Records); n > 0 {
		san = g.Records[n-1].SAN
	}
	return c.JSON(chessdto.PlayResponse{Game: gameState(g, s.games.Weights()), Move: moveDTO(committed, san)})
}
