package chessdto

// DomainError is the error body returned by the HTTP surface.
type DomainError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Reason    string `json:"reason,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "chesscore error"
}

const (
	CodeBadRequest     = "bad_request"
	CodeMalformedState = "malformed_state"
	CodeIllegalMove    = "illegal_move"
	CodeInvalidMove    = "invalid_move"
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeGameFinished   = "game_finished"
	CodeUnavailable    = "unavailable"
	CodeInternal       = "internal"
)
