package chessdto

import "time"

type MaterialScore struct {
	White   float64 `json:"white"`
	Black   float64 `json:"black"`
	Balance float64 `json:"balance"`
}

// Outcome is the result classification of a position.
type Outcome struct {
	Result     string `json:"result"`
	Method     string `json:"method,omitempty"`
	SideToMove string `json:"side_to_move"`
	InCheck    bool   `json:"in_check"`
}

// GameState is a session as exposed over the wire.
type GameState struct {
	ID         string        `json:"id"`
	StartFEN   string        `json:"start_fen"`
	FEN        string        `json:"fen"`
	Status     string        `json:"status"`
	Result     string        `json:"result"`
	Method     string        `json:"method,omitempty"`
	SideToMove string        `json:"side_to_move"`
	Records    []Record      `json:"records"`
	Material   MaterialScore `json:"material"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
