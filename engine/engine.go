package engine

import (
	"errors"
	"tictactoe/game"
)

var (
	ErrNoAction    = errors.New("no legal action available")
	ErrIllegalMove = errors.New("illegal move")
)

// Player picks a move for the side it plays.
type Player interface {
	Move(state game.State, legal []game.Action) (game.Action, error)
}

// Update records one move from the mover's point of view: the board it saw,
// what it played, and the board and options right after its move.
type Update struct {
	Mark      game.Mark
	State     game.State
	Action    game.Action
	Next      game.State
	NextLegal []game.Action
}

type Result struct {
	Outcome game.Outcome
	Turns   int
	// Moves holds each side's updates in play order, X first.
	Moves [2][]Update
}

// For returns the updates made by mark.
func (r Result) For(mark game.Mark) []Update {
	if mark == game.O {
		return r.Moves[1]
	}
	return r.Moves[0]
}
