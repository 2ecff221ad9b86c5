package board

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedState = errors.New("malformed board state")
	ErrIllegalMove    = errors.New("illegal move")
	ErrInvalidWeights = errors.New("invalid weight table")
)

// MalformedStateError reports a serialized board that cannot be parsed.
type MalformedStateError struct {
	FEN    string
	Reason string
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed board state %q: %s", e.FEN, e.Reason)
}

func (e *MalformedStateError) Unwrap() error { return ErrMalformedState }

func malformed(fen, format string, args ...any) error {
	return &MalformedStateError{FEN: fen, Reason: fmt.Sprintf(format, args...)}
}

// Reason classifies why a move was rejected.
type Reason string

const (
	ReasonOffBoard             Reason = "off_board"
	ReasonNoPiece              Reason = "no_piece"
	ReasonWrongSide            Reason = "wrong_side"
	ReasonNotSideToMove        Reason = "not_side_to_move"
	ReasonUnreachable          Reason = "unreachable"
	ReasonLeavesKingInCheck    Reason = "leaves_king_in_check"
	ReasonMissingKing          Reason = "missing_king"
	ReasonPromotionUnspecified Reason = "promotion_unspecified"
	ReasonInvalidPromotion     Reason = "invalid_promotion"
	ReasonCastlingThroughCheck Reason = "castling_through_check"
	ReasonInvalidEnPassant     Reason = "invalid_en_passant"
	ReasonCapturesKing         Reason = "captures_king"
	ReasonOpponentInCheck      Reason = "opponent_in_check"
)

// IllegalMoveError is returned by Apply and AttemptMove.
type IllegalMoveError struct {
	Move   Move
	Reason Reason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move.UCI(), e.Reason)
}

func (e *IllegalMoveError) Unwrap() error { return ErrIllegalMove }

func illegal(m Move, r Reason) error { return &IllegalMoveError{Move: m, Reason: r} }

// RejectionReason extracts the Reason from an IllegalMoveError, or "".
func RejectionReason(err error) Reason {
	var ime *IllegalMoveError
	if errors.As(err, &ime) {
		return ime.Reason
	}
	return ""
}
