package corebuilder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/park285/Cheese-chesscore/internal/board"
	"github.com/park285/Cheese-chesscore/internal/config"
	"github.com/park285/Cheese-chesscore/internal/game"
	"github.com/park285/Cheese-chesscore/internal/httpapi"
	"github.com/park285/Cheese-chesscore/internal/weights"
)

type Deps struct {
	Server  *httpapi.Server
	Weights board.WeightTable
	Games   *game.Manager
	Repo    *game.Repository
}

// Close releases the session store and the archive.
func (d *Deps) Close() {
	if d == nil {
		return
	}
	_ = d.Games.Close()
	_ = d.Repo.Close()
}

func New(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) (*Deps, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	catalog, err := weights.New(cfg.WeightsDir)
	if err != nil {
		return nil, fmt.Errorf("load weight presets: %w", err)
	}
	table, err := catalog.Table(cfg.WeightPreset)
	if err != nil {
		return nil, err
	}
	logger.Info("weights_loaded", zap.String("preset", cfg.WeightPreset), zap.Strings("available", catalog.Names()))

	deps := &Deps{Weights: table}
	opts := []httpapi.Option{httpapi.WithWeights(table)}

	// Sessions (Redis optional)
	if cfg.GamesEnabled() {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		store, err := game.OpenStore(pctx, cfg.RedisURL, cfg.SessionTTL())
		cancel()
		if err != nil {
			return nil, fmt.Errorf("init session store: %w", err)
		}
		deps.Games = game.NewManager(store, table)

		// Archive (DB optional)
		if cfg.DatabaseURL != "" {
			repo, err := game.NewRepository(cfg.DatabaseURL)
			if err != nil {
				_ = deps.Games.Close()
				return nil, fmt.Errorf("init result archive: %w", err)
			}
			deps.Repo = repo
			deps.Games.AttachArchive(repo)
		}
		opts = append(opts, httpapi.WithGames(deps.Games))
	} else {
		logger.Info("games_disabled", zap.String("reason", "REDIS_URL not set"))
	}

	deps.Server = httpapi.New(cfg.MaxBodyBytes, opts...)
	return deps, nil
}
