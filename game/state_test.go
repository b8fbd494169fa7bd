package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func boardOf(cells ...Mark) *Board {
	var s State
	copy(s[:], cells)
	return BoardFromState(s)
}

func TestReset(t *testing.T) {
	b := boardOf(X, O, X, O, X, O, O, X, O)

	b.Reset()

	require.Len(t, b.LegalActions(), 9, "Reset board should have every cell available")
	require.Equal(t, InProgress, b.Outcome(), "Reset board should be in progress")
	require.Equal(t, State{}, b.State(), "Reset board should be empty")
	require.Equal(t, X, b.StartingPlayer(), "X should start")
}

func TestLegalActions(t *testing.T) {
	t.Run("row-major order of empty cells", func(t *testing.T) {
		b := boardOf(X, Empty, O, Empty, X, Empty, Empty, Empty, O)

		require.Equal(t, []Action{{0, 1}, {1, 0}, {1, 2}, {2, 0}, {2, 1}}, b.LegalActions())
	})

	t.Run("full board has none", func(t *testing.T) {
		b := boardOf(X, O, X, X, O, O, O, X, X)

		require.Empty(t, b.LegalActions())
	})
}

func TestApply(t *testing.T) {
	t.Run("places a mark on an empty cell", func(t *testing.T) {
		b := NewBoard()

		require.True(t, b.Apply(Action{Row: 1, Col: 2}, X))
		require.Equal(t, X, b.State().At(Action{Row: 1, Col: 2}))
		require.Len(t, b.LegalActions(), 8)
	})

	t.Run("rejects an occupied cell without mutating", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.Apply(Action{Row: 0, Col: 0}, X))
		before := b.State()

		for i := 0; i < 3; i++ {
			require.False(t, b.Apply(Action{Row: 0, Col: 0}, O), "Occupied cell should be rejected")
			require.Equal(t, before, b.State(), "Rejected move should not change the board")
		}
	})

	t.Run("rejects an out of range action", func(t *testing.T) {
		b := NewBoard()

		require.False(t, b.Apply(Action{Row: 3, Col: 0}, X))
		require.False(t, b.Apply(Action{Row: 0, Col: -1}, X))
		require.Equal(t, State{}, b.State())
	})

	t.Run("does not switch turns", func(t *testing.T) {
		b := NewBoard()
		require.True(t, b.Apply(Action{Row: 0, Col: 0}, X))
		require.True(t, b.Apply(Action{Row: 0, Col: 1}, X))

		require.Equal(t, X, b.State().At(Action{Row: 0, Col: 1}), "Caller owns the turn order")
	})
}

func TestStateIsSnapshot(t *testing.T) {
	b := NewBoard()
	s := b.State()

	b.Apply(Action{Row: 2, Col: 2}, X)

	require.Equal(t, Empty, s.At(Action{Row: 2, Col: 2}), "Earlier snapshot should not observe later moves")
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name  string
		board *Board
		want  Outcome
	}{
		{"empty board", NewBoard(), InProgress},
		{"X wins a row", boardOf(O, O, Empty, X, X, X, Empty, Empty, Empty), XWins},
		{"O wins a column", boardOf(X, O, X, Empty, O, X, Empty, O, Empty), OWins},
		{"X wins the diagonal", boardOf(X, O, O, Empty, X, Empty, Empty, Empty, X), XWins},
		{"O wins the anti-diagonal", boardOf(X, X, O, Empty, O, X, O, Empty, X), OWins},
		{"full board without a line is a draw", boardOf(X, O, X, X, O, O, O, X, X), Draw},
		{"winning on the last cell is a win", boardOf(X, O, X, O, X, O, O, X, X), XWins},
		{"unfinished board", boardOf(X, O, Empty, Empty, Empty, Empty, Empty, Empty, Empty), InProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.board.Outcome())
		})
	}
}

func TestOutcomeOverRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for game := 0; game < 500; game++ {
		b := NewBoard()
		mark := X
		for b.Outcome() == InProgress {
			legal := b.LegalActions()
			require.NotEmpty(t, legal, "In-progress board should have legal actions")
			require.True(t, b.Apply(legal[rng.Intn(len(legal))], mark))
			mark = mark.Opponent()

			balance := 0
			for _, m := range b.State() {
				balance += int(m)
			}
			require.Contains(t, []int{0, 1}, balance, "X should never trail or lead by more than one")
		}

		outcome := b.Outcome()
		require.True(t, outcome.Terminal())
		if outcome == Draw {
			require.Empty(t, b.LegalActions(), "Draw should only happen on a full board")
		}
		if outcome == XWins {
			require.Equal(t, O, mark, "X should win on its own move")
		}
		if outcome == OWins {
			require.Equal(t, X, mark, "O should win on its own move")
		}
	}
}

func TestToMove(t *testing.T) {
	require.Equal(t, X, NewBoard().ToMove())
	require.Equal(t, O, boardOf(X).ToMove())
	require.Equal(t, X, boardOf(X, O).ToMove())
}

func TestStateRendering(t *testing.T) {
	s := boardOf(Empty, X, O, Empty, Empty, Empty, Empty, Empty, Empty).State()

	require.Equal(t, "(0, 1, -1, 0, 0, 0, 0, 0, 0)", s.String())
	require.Equal(t, "(0, -1, 1, 0, 0, 0, 0, 0, 0)", s.Flipped().String())
	require.Equal(t, "(1, 2)", Action{Row: 1, Col: 2}.String())
}

func TestCopy(t *testing.T) {
	b := boardOf(X)
	c := b.Copy()

	c.Apply(Action{Row: 1, Col: 1}, O)

	require.Equal(t, Empty, b.State().At(Action{Row: 1, Col: 1}), "Copy should not share cells")
}
