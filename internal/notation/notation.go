// Package notation converts between UCI and standard algebraic notation.
package notation

import (
	"errors"
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

var ErrUnrecognizedMove = errors.New("unrecognized move notation")

func position(fen string) (*nchess.Position, error) {
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("load position: %w", err)
	}
	return nchess.NewGame(opt).Position(), nil
}

// SAN renders the UCI move uci in algebraic notation for the position fen.
func SAN(fen, uci string) (string, error) {
	pos, err := position(fen)
	if err != nil {
		return "", err
	}
	mv, err := nchess.UCINotation{}.Decode(pos, strings.ToLower(strings.TrimSpace(uci)))
	if err != nil || !legal(pos, mv) {
		return "", fmt.Errorf("%w: %s", ErrUnrecognizedMove, uci)
	}
	return nchess.AlgebraicNotation{}.Encode(pos, mv), nil
}

// ToUCI resolves text, given in UCI or algebraic notation, to UCI for the
// position fen. UCI is tried first.
func ToUCI(fen, text string) (string, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return "", ErrUnrecognizedMove
	}
	pos, err := position(fen)
	if err != nil {
		return "", err
	}
	if mv, derr := (nchess.UCINotation{}).Decode(pos, strings.ToLower(raw)); derr == nil && legal(pos, mv) {
		return mv.String(), nil
	}
	mv, err := nchess.AlgebraicNotation{}.Decode(pos, raw)
	if err != nil || !legal(pos, mv) {
		return "", fmt.Errorf("%w: %s", ErrUnrecognizedMove, raw)
	}
	return mv.String(), nil
}

// legal reports whether mv is among the position's valid moves; decoding
// alone does not check legality.
func legal(pos *nchess.Position, mv *nchess.Move) bool {
	if mv == nil {
		return false
	}
	want := mv.String()
	for _, v := range pos.ValidMoves() {
		if v.String() == want {
			return true
		}
	}
	return false
}
