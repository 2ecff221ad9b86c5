package game

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/park285/Cheese-chesscore/internal/obslog"
)

func (s *Store) channel(id string) string { return "game:" + strings.TrimSpace(id) + ":events" }

// Publish announces a new snapshot of g to its watchers.
func (s *Store) Publish(ctx context.Context, g *Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel(g.ID), raw).Err()
}

// Subscribe streams snapshots published for id until ctx is done. The
// subscription is confirmed before Subscribe returns, so any Publish that
// happens afterwards is delivered.
func (s *Store) Subscribe(ctx context.Context, id string) (<-chan *Game, error) {
	ps := s.rdb.Subscribe(ctx, s.channel(id))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}
	out := make(chan *Game, 8)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var g Game
				if err := json.Unmarshal([]byte(m.Payload), &g); err != nil {
					obslog.L().Warn("game_event_decode_error", zap.String("channel", m.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- &g:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
