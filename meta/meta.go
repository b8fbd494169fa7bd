// meta/meta.go
package meta

// Default hyperparameters of the Q-learning agent.
const (
	LearningRate = 0.1
	Discount     = 0.9
	Exploration  = 0.3
)

// Terminal rewards from the learner's point of view. There is no
// intermediate reward.
const (
	WinReward  = 10.0
	LossReward = -10.0
	DrawReward = -5.0
)

// Checkpoints are the episode counts at which training reports progress.
// The final episode is always a checkpoint as well.
var Checkpoints = []int{100, 500, 1000, 5000, 10000}

// Annealing lowers the exploration rate once the given checkpoint has been
// reported.
var Annealing = map[int]float64{
	500:  0.2,
	1000: 0.1,
	5000: 0.05,
}

// Default file locations, relative to the working directory.
const (
	ModelFile    = "trained_model.json"
	ResultsDir   = "results"
	ProgressFile = "results/training_progress.txt"
	ChartFile    = "results/training_progress.html"
	HistoryFile  = "results/history.db"
)

const (
	TrainingEpisodes = 1000
	EvaluationGames  = 20
)

// Presets are the named training lengths offered by the train command.
var Presets = map[string]int{
	"quick":     1000,
	"standard":  5000,
	"intensive": 10000,
}
