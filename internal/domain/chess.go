package domain

import "time"

// GameResult is one archived finished game.
type GameResult struct {
	GameID       string
	StartFEN     string
	FinalFEN     string
	Result       string
	ResultMethod string
	Plies        int
	MovesUCI     []string
	MovesSAN     []string
	StartedAt    time.Time
	EndedAt      time.Time
	Duration     time.Duration
}
