package game

import (
	"time"

	"github.com/park285/Cheese-chesscore/internal/analysis"
)

// Status represents a game session lifecycle state.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusFinished Status = "FINISHED"
)

// Record is one committed move in play order.
type Record struct {
	Ply        int    `json:"ply"`
	Side       string `json:"side"`
	UCI        string `json:"uci"`
	SAN        string `json:"san"`
	FENAfter   string `json:"fen_after"`
	Annotation string `json:"annotation,omitempty"`
}

// Game is the persisted state of a session. FEN is authoritative; Records
// carry the history needed for repetition and export.
type Game struct {
	ID        string          `json:"id"`
	StartFEN  string          `json:"start_fen"`
	FEN       string          `json:"fen"`
	Records   []Record        `json:"records"`
	Status    Status          `json:"status"`
	Result    analysis.Result `json:"result"`
	Method    analysis.Method `json:"method,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MovesUCI lists the recorded moves in UCI.
func (g *Game) MovesUCI() []string {
	out := make([]string, len(g.Records))
	for i, r := range g.Records {
		out[i] = r.UCI
	}
	return out
}

// MovesSAN lists the recorded moves in algebraic notation.
func (g *Game) MovesSAN() []string {
	out := make([]string, len(g.Records))
	for i, r := range g.Records {
		out[i] = r.SAN
	}
	return out
}

// PlayRequest is a move submitted to a session. ExpectedPly, when set, must
// equal the number of recorded moves or the request is rejected as stale.
type PlayRequest struct {
	Move        string
	Annotation  string
	ExpectedPly *int
}
