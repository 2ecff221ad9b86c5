// Package variant replays hypothetical board changes against a fresh board
// built from a serialized state.
package variant

import (
	"fmt"

	"github.com/park285/Cheese-chesscore/internal/board"
)

// ChangeKind tags a BoardChange.
type ChangeKind string

const (
	KindMoveMade ChangeKind = "move_made"
)

// BoardChange is one atomic mutation that a Variant can replay. Apply
// returns the committed move when the change is a move, nil otherwise.
type BoardChange interface {
	Kind() ChangeKind
	Apply(b *board.Board, mode board.Legality) (*board.Move, error)
}

// MoveMade replays a move request.
type MoveMade struct {
	Move board.Move
}

func (MoveMade) Kind() ChangeKind { return KindMoveMade }

func (c MoveMade) Apply(b *board.Board, mode board.Legality) (*board.Move, error) {
	m, err := b.Apply(c.Move, mode)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Variant is the result of replaying Changes, in order, against a board
// parsed from OriginalFEN. Deep selects full legality for the replay.
type Variant struct {
	OriginalFEN string
	Changes     []BoardChange
	Deep        bool

	move   *board.Move
	result *board.Board
	err    error
}

// New builds and immediately replays a variant. Options are passed to
// board.ParseFEN (e.g. a weight table).
func New(originalFEN string, changes []BoardChange, deep bool, opts ...board.Option) *Variant {
	v := &Variant{OriginalFEN: originalFEN, Changes: changes, Deep: deep}
	v.result, v.move, v.err = replay(originalFEN, changes, v.mode(), opts)
	return v
}

// Resolved wraps a move that was already committed on result, so the
// variant does not need to replay it again.
func Resolved(originalFEN string, committed board.Move, result *board.Board, deep bool) *Variant {
	m := committed
	return &Variant{
		OriginalFEN: originalFEN,
		Changes:     []BoardChange{MoveMade{Move: committed.Request()}},
		Deep:        deep,
		move:        &m,
		result:      result.Clone(),
	}
}

func (v *Variant) mode() board.Legality {
	if v.Deep {
		return board.Deep
	}
	return board.Shallow
}

func replay(fen string, changes []BoardChange, mode board.Legality, opts []board.Option) (*board.Board, *board.Move, error) {
	b, err := board.ParseFEN(fen, opts...)
	if err != nil {
		return nil, nil, err
	}
	var last *board.Move
	for i, c := range changes {
		m, err := c.Apply(b, mode)
		if err != nil {
			return nil, nil, fmt.Errorf("change %d (%s): %w", i, c.Kind(), err)
		}
		if m != nil {
			last = m
		}
	}
	return b, last, nil
}

// Move returns the last move committed by the replay. ok is false when the
// replay failed or produced no move.
func (v *Variant) Move() (board.Move, bool) {
	if v.err != nil || v.move == nil {
		return board.Move{}, false
	}
	return *v.move, true
}

// Legal reports whether every change was accepted and a move was produced.
func (v *Variant) Legal() bool {
	_, ok := v.Move()
	return ok
}

// Err returns the first rejection, or nil.
func (v *Variant) Err() error { return v.err }

// Board returns a copy of the resulting board, or nil if the replay failed.
func (v *Variant) Board() *board.Board {
	if v.result == nil {
		return nil
	}
	return v.result.Clone()
}

// FEN returns the resulting serialized state, or "" if the replay failed.
func (v *Variant) FEN() string {
	if v.result == nil {
		return ""
	}
	return v.result.FEN()
}
