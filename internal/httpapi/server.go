// Package httpapi exposes the legality core and game sessions as JSON over HTTP.
package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/game"
	"github.com/park285/Cheese-chesscore/internal/obslog"
	"github.com/park285/Cheese-chesscore/pkg/chessdto"
)

type Server struct {
	app     *fiber.App
	games   *game.Manager
	weights board.WeightTable
}

type Option func(*Server)

// WithGames enables the /v1/games routes.
func WithGames(m *game.Manager) Option {
	return func(s *Server) { s.games = m }
}

// WithWeights sets the table used to weigh pieces of request positions.
func WithWeights(w board.WeightTable) Option {
	return func(s *Server) { s.weights = w }
}

func New(maxBodyBytes int, opts ...Option) *Server {
	s := &Server{weights: board.DefaultWeights}
	for _, opt := range opts {
		opt(s)
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	s.app = fiber.New(fiber.Config{
		AppName:               "chesscore",
		BodyLimit:             maxBodyBytes,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          fiberErrorHandler,
	})
	s.app.Use(accessLog())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.health)

	v1 := s.app.Group("/v1")
	v1.Post("/moves", s.listMoves)
	v1.Post("/attempt", s.attempt)
	v1.Post("/analysis", s.analyze)

	games := v1.Group("/games", s.requireGames)
	games.Post("/", s.createGame)
	games.Get("/:id", s.getGame)
	games.Get("/:id/moves", s.gameMoves)
	games.Post("/:id/moves", s.playMove)
	games.Get("/:id/watch", s.watchUpgrade, websocket.New(s.watchGame, websocket.Config{
		HandshakeTimeout: 5 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
	}))
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

func (s *Server) Shutdown(ctx context.Context) error { return s.app.ShutdownWithContext(ctx) }

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(chessdto.HealthResponse{Status: "ok", Games: s.games != nil})
}

func (s *Server) requireGames(c *fiber.Ctx) error {
	if s.games == nil {
		return writeError(c, game.ErrStoreDisabled)
	}
	return c.Next()
}

func accessLog() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		obslog.L().Info("http_request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
		return err
	}
}
