package agent

import (
	"testing"
	"tictactoe/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func nearWin() (game.State, []game.Action) {
	// X X .
	// O O .
	// . . .
	b := game.NewBoard()
	b.Apply(game.Action{Row: 0, Col: 0}, game.X)
	b.Apply(game.Action{Row: 1, Col: 0}, game.O)
	b.Apply(game.Action{Row: 0, Col: 1}, game.X)
	b.Apply(game.Action{Row: 1, Col: 1}, game.O)
	return b.State(), b.LegalActions()
}

func TestNew(t *testing.T) {
	a := New(game.X)

	require.Equal(t, game.X, a.Player())
	require.Equal(t, 0.1, a.LearningRate())
	require.Equal(t, 0.9, a.Discount())
	require.Equal(t, 0.3, a.Exploration())
	require.True(t, a.Training(), "Agent should start in training mode")
	require.Zero(t, a.Len(), "Agent should start with an empty table")
}

func TestValueOf(t *testing.T) {
	t.Run("unseen pair defaults to zero and is materialised once", func(t *testing.T) {
		a := New(game.X)
		state := game.NewBoard().State()
		action := game.Action{Row: 1, Col: 1}

		require.Equal(t, 0.0, a.ValueOf(state, action))
		require.Equal(t, 1, a.Len(), "First lookup should insert the default")
		require.Equal(t, 0.0, a.ValueOf(state, action))
		require.Equal(t, 1, a.Len(), "Repeated lookups should not grow the table")
	})

	t.Run("peek does not materialise", func(t *testing.T) {
		a := New(game.X)

		_, ok := a.Peek(game.State{}, game.Action{})
		require.False(t, ok)
		require.Zero(t, a.Len())
	})
}

func TestUpdate(t *testing.T) {
	state, legal := nearWin()
	win := game.Action{Row: 0, Col: 2}

	t.Run("terminal update with alpha 1 lands on the reward", func(t *testing.T) {
		a := New(game.X, WithLearningRate(1))
		// Unrelated content must not leak into a terminal update
		a.Update(game.State{}, game.Action{}, 50, game.State{}, nil)
		a.Update(state, win, 3, state, legal)

		a.Update(state, win, 10, game.State{}, nil)

		require.Equal(t, 10.0, a.ValueOf(state, win))
	})

	t.Run("terminal update moves alpha of the way", func(t *testing.T) {
		a := New(game.X, WithLearningRate(0.5))

		a.Update(state, win, 10, game.State{}, nil)
		require.InDelta(t, 5.0, a.ValueOf(state, win), 1e-9)

		a.Update(state, win, 10, game.State{}, nil)
		require.InDelta(t, 7.5, a.ValueOf(state, win), 1e-9)
	})

	t.Run("bootstraps from the best next value", func(t *testing.T) {
		a := New(game.X, WithLearningRate(0.5), WithDiscount(0.9))
		next := state.Flipped()
		nextLegal := []game.Action{{Row: 2, Col: 0}, {Row: 2, Col: 1}}
		a.Update(next, nextLegal[0], -4, game.State{}, nil) // -> -2
		a.Update(next, nextLegal[1], 4, game.State{}, nil)  // -> 2

		a.Update(state, win, 1, next, nextLegal)

		// 0 + 0.5 * (1 + 0.9*2 - 0)
		require.InDelta(t, 1.4, a.ValueOf(state, win), 1e-9)
	})

	t.Run("negative next values are not floored at zero", func(t *testing.T) {
		a := New(game.X, WithLearningRate(1), WithDiscount(1))
		next := state.Flipped()
		nextLegal := []game.Action{{Row: 2, Col: 0}}
		a.Update(next, nextLegal[0], -4, game.State{}, nil)

		a.Update(state, win, 0, next, nextLegal)

		require.InDelta(t, -4.0, a.ValueOf(state, win), 1e-9)
	})
}

func TestChooseAction(t *testing.T) {
	t.Run("no legal actions", func(t *testing.T) {
		a := New(game.X)

		_, ok := a.ChooseAction(game.State{}, nil)
		require.False(t, ok, "Empty action set should yield no action")
	})

	t.Run("inference picks the only positive action", func(t *testing.T) {
		state, legal := nearWin()
		win := game.Action{Row: 0, Col: 2}
		a := New(game.X, WithLearningRate(1), WithExploration(1), WithRand(seeded(1)))
		a.Update(state, win, 10, game.State{}, nil)
		a.SetTraining(false)

		for i := 0; i < 20; i++ {
			got, ok := a.ChooseAction(state, legal)
			require.True(t, ok)
			require.Equal(t, win, got, "Inference should always take the winning move")
		}
	})

	t.Run("greedy ties go to the first legal action", func(t *testing.T) {
		a := New(game.X, WithExploration(0))
		legal := game.NewBoard().LegalActions()

		got, ok := a.ChooseAction(game.State{}, legal)
		require.True(t, ok)
		require.Equal(t, legal[0], got)
		require.Equal(t, len(legal), a.Len(), "Greedy choice should materialise every candidate")
	})

	t.Run("greedy choice with all negative values", func(t *testing.T) {
		state, legal := nearWin()
		a := New(game.X, WithLearningRate(1), WithExploration(0))
		for i, action := range legal {
			a.Update(state, action, -float64(10-i), game.State{}, nil)
		}

		got, _ := a.ChooseAction(state, legal)
		require.Equal(t, legal[len(legal)-1], got, "Least negative action should win")
	})

	t.Run("full exploration samples several actions", func(t *testing.T) {
		a := New(game.X, WithExploration(1), WithRand(seeded(3)))
		legal := game.NewBoard().LegalActions()

		seen := map[game.Action]bool{}
		for i := 0; i < 200; i++ {
			got, ok := a.ChooseAction(game.State{}, legal)
			require.True(t, ok)
			require.Contains(t, legal, got)
			seen[got] = true
		}
		require.Greater(t, len(seen), 1, "Exploration should not always pick the same action")
		require.Zero(t, a.Len(), "Exploration should not touch the table")
	})
}

func TestSetTraining(t *testing.T) {
	a := New(game.X, WithExploration(0.4))

	a.SetTraining(false)
	require.False(t, a.Training())
	require.Zero(t, a.Exploration(), "Inference should disable exploration")

	a.SetTraining(true)
	require.Zero(t, a.Exploration(), "Exploration rate should not be restored")
}

func TestStats(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		require.Equal(t, Stats{}, New(game.X).Stats())
	})

	t.Run("counts distinct states and averages values", func(t *testing.T) {
		a := New(game.X, WithLearningRate(1))
		empty := game.State{}
		a.Update(empty, game.Action{Row: 0, Col: 0}, 4, empty, nil)
		a.Update(empty, game.Action{Row: 0, Col: 1}, -2, empty, nil)
		a.ValueOf(empty.Flipped(), game.Action{Row: 1, Col: 1}) // same state rendering
		state, _ := nearWin()
		a.Update(state, game.Action{Row: 0, Col: 2}, 10, empty, nil)

		stats := a.Stats()
		require.Equal(t, 2, stats.StatesLearned)
		require.Equal(t, 4, stats.TotalValues)
		require.InDelta(t, 3.0, stats.AverageValue, 1e-9)
		require.Equal(t, 4, a.Len(), "Stats should not change the table")
	})

	t.Run("average does not depend on insertion order", func(t *testing.T) {
		values := []float64{0.1, 1e16, 0.2, -1e16, 0.3, 7.7}
		forward := New(game.X, WithLearningRate(1))
		backward := New(game.X, WithLearningRate(1))
		for i := range values {
			j := len(values) - 1 - i
			forward.Update(game.State{}, game.Action{Row: i / game.Size, Col: i % game.Size}, values[i], game.State{}, nil)
			backward.Update(game.State{}, game.Action{Row: j / game.Size, Col: j % game.Size}, values[j], game.State{}, nil)
		}

		for i := 0; i < 20; i++ {
			require.Equal(t, forward.Stats(), backward.Stats())
		}
	})
}
