package engine

import (
	"tictactoe/agent"
	"tictactoe/game"

	"golang.org/x/exp/rand"
)

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(rng *rand.Rand) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) Move(_ game.State, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return game.Action{}, ErrNoAction
	}
	return legal[p.rng.Intn(len(legal))], nil
}

// AgentPlayer lets a learned agent take a side. The agent learns as X, so
// when it plays O it is shown the board with the marks swapped.
type AgentPlayer struct {
	Agent *agent.Agent
	Mark  game.Mark
}

func NewAgentPlayer(a *agent.Agent, mark game.Mark) *AgentPlayer {
	return &AgentPlayer{Agent: a, Mark: mark}
}

func (p *AgentPlayer) Move(state game.State, legal []game.Action) (game.Action, error) {
	if p.Mark == game.O {
		state = state.Flipped()
	}
	action, ok := p.Agent.ChooseAction(state, legal)
	if !ok {
		return game.Action{}, ErrNoAction
	}
	return action, nil
}
