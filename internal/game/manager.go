package game

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/Cheese-chesscore/internal/analysis"
	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/obslog"
)

// Manager runs game sessions on top of a Store.
type Manager struct {
	store   *Store
	archive Archive
	weights board.WeightTable
	now     func() time.Time
}

// NewManager builds a Manager; a nil weights table means board.DefaultWeights.
func NewManager(store *Store, weights board.WeightTable) *Manager {
	if weights == nil {
		weights = board.DefaultWeights
	}
	return &Manager{store: store, weights: weights, now: time.Now}
}

// AttachArchive wires a destination for finished games.
func (m *Manager) AttachArchive(a Archive) {
	if m != nil {
		m.archive = a
	}
}

func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	return m.store.Close()
}

// Weights returns the table boards are built with.
func (m *Manager) Weights() board.WeightTable { return m.weights }

// Create starts a session at fen, or at the standard position when fen is empty.
func (m *Manager) Create(ctx context.Context, fen string) (*Game, error) {
	if m == nil || m.store == nil {
		return nil, ErrStoreDisabled
	}
	g, err := Start(uuid.NewString(), fen, m.weights, m.now())
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(ctx, g); err != nil {
		return nil, err
	}
	obslog.L().Info("game_create",
		zap.String("game_id", g.ID),
		zap.String("fen", g.FEN),
		zap.String("status", string(g.Status)),
	)
	m.persistIfFinal(ctx, g)
	return g, nil
}

func (m *Manager) Load(ctx context.Context, id string) (*Game, error) {
	if m == nil || m.store == nil {
		return nil, ErrStoreDisabled
	}
	return m.store.Load(ctx, id)
}

// Play applies req to the session with optimistic concurrency.
func (m *Manager) Play(ctx context.Context, id string, req PlayRequest) (*Game, board.Move, error) {
	if m == nil || m.store == nil {
		return nil, board.Move{}, ErrStoreDisabled
	}
	var committed board.Move
	g, err := m.store.Update(ctx, id, func(cur *Game) (*Game, error) {
		next, mv, err := Play(cur, req, m.weights, m.now())
		if err != nil {
			return nil, err
		}
		committed = mv
		return next, nil
	})
	if err != nil {
		obslog.L().Debug("game_move_rejected",
			zap.String("game_id", strings.TrimSpace(id)),
			zap.String("move", req.Move),
			zap.String("reason", string(board.RejectionReason(err))),
			zap.Error(err),
		)
		return nil, board.Move{}, err
	}
	obslog.L().Info("game_move",
		zap.String("game_id", g.ID),
		zap.Int("ply", len(g.Records)),
		zap.String("uci", committed.UCI()),
		zap.String("status", string(g.Status)),
		zap.String("result", string(g.Result)),
	)
	if err := m.store.Publish(ctx, g); err != nil {
		obslog.L().Warn("game_publish_error", zap.String("game_id", g.ID), zap.Error(err))
	}
	m.persistIfFinal(ctx, g)
	return g, committed, nil
}

// Watch streams the session's state after every committed move. The channel
// closes when ctx is done.
func (m *Manager) Watch(ctx context.Context, id string) (<-chan *Game, error) {
	if m == nil || m.store == nil {
		return nil, ErrStoreDisabled
	}
	return m.store.Subscribe(ctx, id)
}

// LegalMoves lists the side to move's legal moves in the session.
func (m *Manager) LegalMoves(ctx context.Context, id string) ([]board.Move, error) {
	g, err := m.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Status != StatusActive {
		return nil, nil
	}
	b, err := g.Board(m.weights)
	if err != nil {
		return nil, err
	}
	return analysis.LegalMoves(b, b.SideToMove()), nil
}

// persistIfFinal archives a finished game; failures are logged, not returned.
func (m *Manager) persistIfFinal(ctx context.Context, g *Game) {
	if m.archive == nil || g == nil || g.Status != StatusFinished {
		return
	}
	if err := m.archive.SaveResult(ctx, g); err != nil {
		obslog.L().Error("game_result_persist_error", zap.String("game_id", g.ID), zap.String("result", string(g.Result)), zap.Error(err))
		return
	}
	obslog.L().Info("game_result_persist", zap.String("game_id", g.ID), zap.String("result", string(g.Result)), zap.String("method", string(g.Method)))
}
