package chessdto

// PositionRequest names a position and, optionally, the side to examine.
// Side defaults to the position's side to move.
type PositionRequest struct {
	FEN  string `json:"fen"`
	Side string `json:"side,omitempty"`
}

type MovesResponse struct {
	FEN   string `json:"fen"`
	Side  string `json:"side"`
	Count int    `json:"count"`
	Moves []Move `json:"moves"`
}

// AttemptRequest asks whether Move is legal in FEN. Legality is "deep"
// (default) or "shallow".
type AttemptRequest struct {
	FEN      string `json:"fen"`
	Move     string `json:"move"`
	Legality string `json:"legality,omitempty"`
}

type AttemptResponse struct {
	Move Move   `json:"move"`
	FEN  string `json:"fen"`
}

type AnalysisResponse struct {
	FEN                string        `json:"fen"`
	Side               string        `json:"side"`
	ValidVariantExists bool          `json:"valid_variant_exists"`
	Material           MaterialScore `json:"material"`
	Occupied           []string      `json:"occupied"`
	Outcome            Outcome       `json:"outcome"`
}

type CreateGameRequest struct {
	FEN string `json:"fen,omitempty"`
}

type PlayRequest struct {
	Move        string `json:"move"`
	Annotation  string `json:"annotation,omitempty"`
	ExpectedPly *int   `json:"expected_ply,omitempty"`
}

type PlayResponse struct {
	Game GameState `json:"game"`
	Move Move      `json:"move"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Games  bool   `json:"games"`
}
