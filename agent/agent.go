package agent

import (
	"sort"
	"tictactoe/game"
	"time"

	"golang.org/x/exp/rand"
)

// Agent is a tabular Q-learner. The table is keyed on absolute board
// states, so the mark it was created for is informational only.
//
// Hyperparameters are taken as given. Values outside their usual ranges are
// not rejected and simply make learning worse.
type Agent struct {
	player       game.Mark
	learningRate float64
	discount     float64
	exploration  float64
	training     bool
	rng          *rand.Rand
	table        map[string]float64
}

func New(player game.Mark, options ...Option) *Agent {
	a := &Agent{
		player: player,
		table:  make(map[string]float64),
	}
	defaults(a)
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return a
}

func (a *Agent) Player() game.Mark {
	return a.player
}

func (a *Agent) Discount() float64 {
	return a.discount
}

func (a *Agent) LearningRate() float64 {
	return a.learningRate
}

func (a *Agent) Exploration() float64 {
	return a.exploration
}

func (a *Agent) SetExploration(epsilon float64) {
	a.exploration = epsilon
}

func (a *Agent) Training() bool {
	return a.training
}

// SetTraining toggles exploration. Leaving training mode zeroes the
// exploration rate for good; switching back does not restore it.
func (a *Agent) SetTraining(training bool) {
	a.training = training
	if !training {
		a.exploration = 0
	}
}

// ValueOf returns Q(s, a), inserting 0 for pairs never seen before.
func (a *Agent) ValueOf(state game.State, action game.Action) float64 {
	k := Key(state, action)
	q, ok := a.table[k]
	if !ok {
		a.table[k] = 0
	}
	return q
}

// Peek is ValueOf without the insertion.
func (a *Agent) Peek(state game.State, action game.Action) (float64, bool) {
	q, ok := a.table[Key(state, action)]
	return q, ok
}

// ChooseAction is epsilon-greedy. Greedy ties go to the earliest action in
// legal, so inference is reproducible. It returns false when legal is empty.
func (a *Agent) ChooseAction(state game.State, legal []game.Action) (game.Action, bool) {
	if len(legal) == 0 {
		return game.Action{}, false
	}

	if a.training && a.rng.Float64() < a.exploration {
		return legal[a.rng.Intn(len(legal))], true
	}

	best := legal[0]
	bestValue := a.ValueOf(state, best)
	for _, action := range legal[1:] {
		if q := a.ValueOf(state, action); q > bestValue {
			best, bestValue = action, q
		}
	}
	return best, true
}

// Update applies the one-step Q-learning rule
//
//	Q(s,a) += alpha * (reward + gamma * max Q(s',a') - Q(s,a))
//
// with the max taken over nextLegal, or 0 when nextLegal is empty.
func (a *Agent) Update(state game.State, action game.Action, reward float64, next game.State, nextLegal []game.Action) {
	current := a.ValueOf(state, action)

	maxNext := 0.0
	for i, nextAction := range nextLegal {
		q := a.ValueOf(next, nextAction)
		if i == 0 || q > maxNext {
			maxNext = q
		}
	}

	a.table[Key(state, action)] = current + a.learningRate*(reward+a.discount*maxNext-current)
}

// Len is the number of table entries.
func (a *Agent) Len() int {
	return len(a.table)
}

type Stats struct {
	StatesLearned int     `json:"statesLearned"`
	TotalValues   int     `json:"totalValues"`
	AverageValue  float64 `json:"averageValue"`
}

func (a *Agent) Stats() Stats {
	keys := make([]string, 0, len(a.table))
	states := make(map[string]struct{})
	for k := range a.table {
		keys = append(keys, k)
		states[statePart(k)] = struct{}{}
	}
	// Summing in key order makes the average bit-for-bit reproducible.
	sort.Strings(keys)
	sum := 0.0
	for _, k := range keys {
		sum += a.table[k]
	}

	stats := Stats{
		StatesLearned: len(states),
		TotalValues:   len(a.table),
	}
	if len(a.table) > 0 {
		stats.AverageValue = sum / float64(len(a.table))
	}
	return stats
}
