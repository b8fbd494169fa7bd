package metrics

import (
	"tictactoe/game"
	"time"
)

type MoveMetric struct {
	Step   int
	Player string // "X" or "O"
	Row    int
	Col    int
}

type GameMetric struct {
	StartingPlayer string
	Winner         string // "X", "O" or "" for a draw
	Outcome        string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start()
	AddMove(step int, mark game.Mark, action game.Action)
	Complete(starting game.Mark, outcome game.Outcome) (GameMetric, []MoveMetric)
}

type collector struct {
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.moves = nil
}

func (c *collector) AddMove(step int, mark game.Mark, action game.Action) {
	c.moves = append(c.moves, MoveMetric{
		Step:   step,
		Player: mark.String(),
		Row:    action.Row,
		Col:    action.Col,
	})
}

func (c *collector) Complete(starting game.Mark, outcome game.Outcome) (GameMetric, []MoveMetric) {
	end := time.Now()
	winner := ""
	if w := outcome.Winner(); w != game.Empty {
		winner = w.String()
	}
	return GameMetric{
		StartingPlayer: starting.String(),
		Winner:         winner,
		Outcome:        outcome.String(),
		StartTime:      c.startTime,
		EndTime:        end,
		Duration:       end.Sub(c.startTime),
		TotalMoves:     len(c.moves),
	}, c.moves
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start()                              {}
func (c *dummyCollector) AddMove(int, game.Mark, game.Action) {}
func (c *dummyCollector) Complete(game.Mark, game.Outcome) (GameMetric, []MoveMetric) {
	return GameMetric{}, nil
}
