package experiments

import (
	"fmt"
	"tictactoe/agent"
	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(e *evaluator)

// WithMetrics collects a record for every game and move.
func WithMetrics() Option {
	return func(e *evaluator) {
		e.metrics = metrics.NewCollector()
	}
}

type Evaluation struct {
	RunID       string               `json:"runId"`
	Games       int                  `json:"games"`
	AgentWins   int                  `json:"agentWins"`
	RandomWins  int                  `json:"randomWins"`
	Ties        int                  `json:"ties"`
	GameRecords []metrics.GameRecord `json:"-"`
	MoveRecords []metrics.MoveRecord `json:"-"`
}

// WinRate is the share of games the agent won, in percent.
func (e Evaluation) WinRate() float64 {
	if e.Games == 0 {
		return 0
	}
	return float64(e.AgentWins) / float64(e.Games) * 100
}

type evaluator struct {
	metrics metrics.Collector
}

// RunEvaluation plays the agent as X against a random O. The agent is put in
// inference mode first and nothing is learned.
func RunEvaluation(a *agent.Agent, games int, rng *rand.Rand, options ...Option) (Evaluation, error) {
	ev := &evaluator{metrics: metrics.NewDummyCollector()}
	for _, option := range options {
		option(ev)
	}

	a.SetTraining(false)
	e := engine.LocalEngine(game.NewBoard(), engine.NewAgentPlayer(a, game.X), engine.NewRandomPlayer(rng))
	evaluation := Evaluation{RunID: uuid.NewString(), Games: games}

	log.Info().Msgf("starting evaluation %s over %d games...", evaluation.RunID, games)

	for i := 0; i < games; i++ {
		ev.metrics.Start()
		result, err := e.Run()
		if err != nil {
			return evaluation, fmt.Errorf("evaluation game %d failed: %w", i+1, err)
		}

		switch result.Outcome.Winner() {
		case game.X:
			evaluation.AgentWins++
		case game.O:
			evaluation.RandomWins++
		default:
			evaluation.Ties++
		}

		for step, u := range interleave(result) {
			ev.metrics.AddMove(step+1, u.Mark, u.Action)
		}
		gameMetric, moveMetrics := ev.metrics.Complete(e.Board.StartingPlayer(), result.Outcome)
		if gameMetric.TotalMoves > 0 {
			evaluation.GameRecords = append(evaluation.GameRecords, metrics.GameRecord{
				ID:         i + 1,
				RunID:      evaluation.RunID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				evaluation.MoveRecords = append(evaluation.MoveRecords, metrics.MoveRecord{
					Game:       i + 1,
					MoveMetric: mm,
				})
			}
		}

		log.Debug().Msgf("completed game %d of %d: %s", i+1, games, result.Outcome)
	}

	log.Info().Msgf("completed evaluation: agent=%d random=%d ties=%d", evaluation.AgentWins, evaluation.RandomWins, evaluation.Ties)
	return evaluation, nil
}

// interleave restores play order from the per-side updates.
func interleave(result engine.Result) []engine.Update {
	x, o := result.For(game.X), result.For(game.O)
	moves := make([]engine.Update, 0, len(x)+len(o))
	for i := range x {
		moves = append(moves, x[i])
		if i < len(o) {
			moves = append(moves, o[i])
		}
	}
	return moves
}

// Store writes the evaluation summary and its records under root.
func Store(root string, evaluation Evaluation) (string, error) {
	writer, err := metrics.NewWriter(root, "evaluation", evaluation.RunID)
	if err != nil {
		return "", err
	}
	if err := writer.WriteSummary(evaluation); err != nil {
		return "", err
	}
	log.Info().Msg("stored evaluation summary")

	if err := writer.WriteGameRecords(evaluation.GameRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(evaluation.MoveRecords); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
