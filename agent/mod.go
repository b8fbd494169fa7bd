package agent

import (
	"tictactoe/meta"

	"golang.org/x/exp/rand"
)

type Option func(a *Agent)

func WithLearningRate(alpha float64) Option {
	return func(a *Agent) {
		a.learningRate = alpha
	}
}

func WithDiscount(gamma float64) Option {
	return func(a *Agent) {
		a.discount = gamma
	}
}

func WithExploration(epsilon float64) Option {
	return func(a *Agent) {
		a.exploration = epsilon
	}
}

// WithRand injects the source used for exploration, so runs can be replayed.
func WithRand(rng *rand.Rand) Option {
	return func(a *Agent) {
		if rng != nil {
			a.rng = rng
		}
	}
}

func defaults(a *Agent) {
	a.learningRate = meta.LearningRate
	a.discount = meta.Discount
	a.exploration = meta.Exploration
	a.training = true
}
