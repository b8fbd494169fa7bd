package trainer

import (
	"fmt"
	"io"
	"math"
	"sort"
	"tictactoe/agent"
	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(t *Trainer)

// WithProgress sends one line per checkpoint to w.
func WithProgress(w io.Writer) Option {
	return func(t *Trainer) {
		if w != nil {
			t.progress = w
		}
	}
}

func WithCheckpoints(checkpoints []int) Option {
	return func(t *Trainer) {
		t.checkpoints = checkpoints
	}
}

func WithAnnealing(schedule map[int]float64) Option {
	return func(t *Trainer) {
		t.annealing = schedule
	}
}

// WithModelPath makes Train save the table to path once it is done.
func WithModelPath(path string) Option {
	return func(t *Trainer) {
		t.modelPath = path
	}
}

type Results struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

func (r Results) Games() int {
	return r.Wins + r.Losses + r.Ties
}

// WinRate is the share of games won, in percent.
func (r Results) WinRate() float64 {
	if r.Games() == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Games()) * 100
}

type Checkpoint struct {
	Episode     int
	Results     Results
	WinRate     float64
	Stats       agent.Stats
	Exploration float64 // rate used up to this checkpoint
}

func (c Checkpoint) String() string {
	return fmt.Sprintf("Episode %d: Wins=%d Losses=%d Ties=%d WinRate=%.2f%% StatesLearned=%d AvgQ=%.3f",
		c.Episode, c.Results.Wins, c.Results.Losses, c.Results.Ties, c.WinRate, c.Stats.StatesLearned, c.Stats.AverageValue)
}

type Summary struct {
	Episodes    int
	Results     Results
	Stats       agent.Stats
	Checkpoints []Checkpoint
}

// Trainer plays the agent as X against a random O and learns from the
// outcome of every game.
type Trainer struct {
	agent       *agent.Agent
	engine      *engine.Engine
	results     Results
	progress    io.Writer
	checkpoints []int
	annealing   map[int]float64
	modelPath   string
}

func New(a *agent.Agent, rng *rand.Rand, options ...Option) *Trainer {
	t := &Trainer{
		agent:       a,
		engine:      engine.LocalEngine(game.NewBoard(), engine.NewAgentPlayer(a, game.X), engine.NewRandomPlayer(rng)),
		progress:    io.Discard,
		checkpoints: meta.Checkpoints,
		annealing:   meta.Annealing,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *Trainer) Results() Results {
	return t.results
}

// PlayEpisode plays one game and assigns credit for it.
func (t *Trainer) PlayEpisode() (game.Outcome, error) {
	result, err := t.engine.Run()
	if err != nil {
		return game.InProgress, fmt.Errorf("failed to play episode: %w", err)
	}

	reward := Reward(result.Outcome, game.X)
	switch result.Outcome.Winner() {
	case game.X:
		t.results.Wins++
	case game.O:
		t.results.Losses++
	default:
		t.results.Ties++
	}

	AssignCredit(t.agent, result.For(game.X), reward)
	return result.Outcome, nil
}

// Train runs the given number of episodes, reports at every checkpoint,
// anneals exploration on schedule and saves the model once at the end.
func (t *Trainer) Train(episodes int) (Summary, error) {
	schedule := Schedule(episodes, t.checkpoints)
	summary := Summary{Episodes: episodes}

	log.Info().Msgf("training for %d episodes with checkpoints %v", episodes, schedule)

	next := 0
	for ep := 1; ep <= episodes; ep++ {
		if _, err := t.PlayEpisode(); err != nil {
			return summary, err
		}

		if next < len(schedule) && ep == schedule[next] {
			next++
			checkpoint := t.checkpoint(ep)
			summary.Checkpoints = append(summary.Checkpoints, checkpoint)

			if epsilon, ok := t.annealing[ep]; ok {
				t.agent.SetExploration(epsilon)
				log.Debug().Msgf("exploration rate lowered to %.2f", epsilon)
			}
		}
	}

	summary.Results = t.results
	summary.Stats = t.agent.Stats()

	if t.modelPath != "" {
		if err := t.agent.Save(t.modelPath); err != nil {
			return summary, err
		}
		if _, err := fmt.Fprintf(t.progress, "\nSaved model to %s\n", t.modelPath); err != nil {
			return summary, fmt.Errorf("failed to write progress: %w", err)
		}
	}
	return summary, nil
}

func (t *Trainer) checkpoint(ep int) Checkpoint {
	c := Checkpoint{
		Episode:     ep,
		Results:     t.results,
		WinRate:     float64(t.results.Wins) / float64(ep) * 100,
		Stats:       t.agent.Stats(),
		Exploration: t.agent.Exploration(),
	}
	line := c.String()
	log.Info().
		Int("episode", ep).
		Float64("exploration", c.Exploration).
		Int("entries", c.Stats.TotalValues).
		Msg(line)
	if _, err := fmt.Fprintln(t.progress, line); err != nil {
		log.Warn().Err(err).Msg("failed to write progress line")
	}
	return c
}

// Schedule returns the sorted checkpoints within [1, episodes] plus the last
// episode itself.
func Schedule(episodes int, checkpoints []int) []int {
	if episodes <= 0 {
		return []int{}
	}
	set := map[int]struct{}{episodes: {}}
	for _, c := range checkpoints {
		if c >= 1 && c <= episodes {
			set[c] = struct{}{}
		}
	}
	schedule := make([]int, 0, len(set))
	for c := range set {
		schedule = append(schedule, c)
	}
	sort.Ints(schedule)
	return schedule
}

// Reward maps a finished game to the terminal reward for mark.
func Reward(outcome game.Outcome, mark game.Mark) float64 {
	switch outcome.Winner() {
	case mark:
		return meta.WinReward
	case mark.Opponent():
		return meta.LossReward
	default:
		return meta.DrawReward
	}
}

// AssignCredit walks the trajectory backwards. The last move receives the
// full reward with no bootstrap; the move i steps earlier receives
// reward*gamma^i and bootstraps from its own successor state. Every step
// reuses the terminal reward rather than a per-transition one.
func AssignCredit(a *agent.Agent, trajectory []engine.Update, reward float64) {
	for i, u := range utils.Reversed(trajectory) {
		if i == 0 {
			a.Update(u.State, u.Action, reward, u.Next, nil)
			continue
		}
		discounted := reward * math.Pow(a.Discount(), float64(i))
		a.Update(u.State, u.Action, discounted, u.Next, u.NextLegal)
	}
}
