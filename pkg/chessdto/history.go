package chessdto

// Record is one entry of a game's play history.
type Record struct {
	Ply        int    `json:"ply"`
	Side       string `json:"side"`
	UCI        string `json:"uci"`
	SAN        string `json:"san"`
	FENAfter   string `json:"fen_after"`
	Annotation string `json:"annotation,omitempty"`
}
