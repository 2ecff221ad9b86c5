package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/park285/Cheese-chesscore/internal/domain"
)

// Archive receives finished sessions.
type Archive interface {
	SaveResult(ctx context.Context, g *Game) error
}

// Repository archives finished games to Postgres.
type Repository struct {
	db *sql.DB
}

func NewRepository(databaseURL string) (*Repository, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(8)
	db.SetConnMaxLifetime(30 * time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// ResultRow flattens a finished session into its archive row.
func ResultRow(g *Game) domain.GameResult {
	duration := g.UpdatedAt.Sub(g.CreatedAt)
	if duration < 0 {
		duration = 0
	}
	return domain.GameResult{
		GameID:       g.ID,
		StartFEN:     g.StartFEN,
		FinalFEN:     g.FEN,
		Result:       string(g.Result),
		ResultMethod: string(g.Method),
		Plies:        len(g.Records),
		MovesUCI:     g.MovesUCI(),
		MovesSAN:     g.MovesSAN(),
		StartedAt:    g.CreatedAt,
		EndedAt:      g.UpdatedAt,
		Duration:     duration,
	}
}

// SaveResult upserts a finished game into chess_results.
func (r *Repository) SaveResult(ctx context.Context, g *Game) error {
	if r == nil || r.db == nil || g == nil {
		return nil
	}
	row := ResultRow(g)
	movesUCIRaw, err := json.Marshal(row.MovesUCI)
	if err != nil {
		return err
	}
	movesSANRaw, err := json.Marshal(row.MovesSAN)
	if err != nil {
		return err
	}

	q := `INSERT INTO chess_results (
        game_id, start_fen, final_fen, result, result_method, plies,
        moves_uci, moves_san, started_at, ended_at, duration_ms
      ) VALUES (
        $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
      ) ON CONFLICT (game_id) DO UPDATE SET
        start_fen=EXCLUDED.start_fen,
        final_fen=EXCLUDED.final_fen,
        result=EXCLUDED.result,
        result_method=EXCLUDED.result_method,
        plies=EXCLUDED.plies,
        moves_uci=EXCLUDED.moves_uci,
        moves_san=EXCLUDED.moves_san,
        started_at=EXCLUDED.started_at,
        ended_at=EXCLUDED.ended_at,
        duration_ms=EXCLUDED.duration_ms`

	_, err = r.db.ExecContext(ctx, q,
		row.GameID, row.StartFEN, row.FinalFEN,
		row.Result, row.ResultMethod, row.Plies,
		string(movesUCIRaw), string(movesSANRaw),
		row.StartedAt, row.EndedAt, row.Duration.Milliseconds(),
	)
	return err
}
