package chessdto

// Move is a committed or candidate move with its derived metadata.
type Move struct {
	UCI       string `json:"uci"`
	SAN       string `json:"san,omitempty"`
	Side      string `json:"side"`
	From      string `json:"from"`
	To        string `json:"to"`
	Piece     string `json:"piece"`
	Promotion string `json:"promotion,omitempty"`
	Captured  string `json:"captured,omitempty"`
	EnPassant bool   `json:"en_passant,omitempty"`
	Castle    string `json:"castle,omitempty"`
	Check     bool   `json:"check,omitempty"`
}
