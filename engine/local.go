package engine

import (
	"fmt"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
)

type Engine struct {
	Board   *game.Board
	Players [2]Player // X, O
}

func LocalEngine(board *game.Board, x, o Player) *Engine {
	if x == nil || o == nil {
		panic("need two players")
	}
	return &Engine{
		Board:   board,
		Players: [2]Player{x, o},
	}
}

// Run resets the board and plays one game to the end. X moves first and the
// outcome is checked after every move.
func (e *Engine) Run() (Result, error) {
	e.Board.Reset()
	result := Result{}
	mark := e.Board.StartingPlayer()

	for {
		index := 0
		if mark == game.O {
			index = 1
		}

		state := e.Board.State()
		legal := e.Board.LegalActions()
		action, err := e.Players[index].Move(state, legal)
		if err != nil {
			return result, fmt.Errorf("player %s failed to move: %w", mark, err)
		}
		if !e.Board.Apply(action, mark) {
			return result, fmt.Errorf("%w: %s played %s on %s", ErrIllegalMove, mark, action, state)
		}
		result.Turns++

		result.Moves[index] = append(result.Moves[index], Update{
			Mark:      mark,
			State:     state,
			Action:    action,
			Next:      e.Board.State(),
			NextLegal: e.Board.LegalActions(),
		})

		if outcome := e.Board.Outcome(); outcome.Terminal() {
			result.Outcome = outcome
			log.Debug().Msgf("game over after %d turns: %s", result.Turns, outcome)
			return result, nil
		}
		mark = mark.Opponent()
	}
}
