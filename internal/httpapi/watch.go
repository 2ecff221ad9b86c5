package httpapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/park285/Cheese-chesscore/internal/game"
	"github.com/park285/Cheese-chesscore/internal/obslog"
)

// watchUpgrade rejects non-websocket requests and unknown games before the
// connection is upgraded, so those failures still get a JSON body.
func (s *Server) watchUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	if _, err := s.games.Load(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.Next()
}

// watchGame sends the current state and then one GameState per committed
// move. The socket is closed normally once the game is finished.
func (s *Server) watchGame(conn *websocket.Conn) {
	id := conn.Params("id")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := s.games.Watch(ctx, id)
	if err != nil {
		obslog.L().Warn("game_watch_error", zap.String("game_id", id), zap.Error(err))
		closeWith(conn, websocket.CloseInternalServerErr, "subscribe failed")
		return
	}
	g, err := s.games.Load(ctx, id)
	if err != nil {
		closeWith(conn, websocket.CloseInternalServerErr, "load failed")
		return
	}
	if !s.push(conn, g) {
		return
	}

	// Client frames are ignored; reading only detects the peer going away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case next, ok := <-updates:
			if !ok || !s.push(conn, next) {
				return
			}
		}
	}
}

// push writes g and reports whether the stream should continue.
func (s *Server) push(conn *websocket.Conn, g *game.Game) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(gameState(g, s.games.Weights())); err != nil {
		return false
	}
	if g.Status == game.StatusFinished {
		closeWith(conn, websocket.CloseNormalClosure, "game finished")
		return false
	}
	return true
}

func closeWith(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(time.Second))
}
