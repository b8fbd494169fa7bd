package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS training_runs (
	run_id         TEXT PRIMARY KEY,
	started_at     TEXT NOT NULL,
	finished_at    TEXT NOT NULL,
	episodes       INTEGER NOT NULL,
	learning_rate  REAL NOT NULL,
	discount       REAL NOT NULL,
	exploration    REAL NOT NULL,
	seed           INTEGER NOT NULL,
	wins           INTEGER NOT NULL,
	losses         INTEGER NOT NULL,
	ties           INTEGER NOT NULL,
	states_learned INTEGER NOT NULL,
	total_values   INTEGER NOT NULL,
	average_value  REAL NOT NULL,
	model_path     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS checkpoints (
	run_id         TEXT NOT NULL,
	episode        INTEGER NOT NULL,
	wins           INTEGER NOT NULL,
	losses         INTEGER NOT NULL,
	ties           INTEGER NOT NULL,
	win_rate       REAL NOT NULL,
	states_learned INTEGER NOT NULL,
	average_value  REAL NOT NULL,
	exploration    REAL NOT NULL,
	PRIMARY KEY (run_id, episode),
	FOREIGN KEY (run_id) REFERENCES training_runs(run_id)
);
`

// Fixed width so that stored timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one finished training run.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	Episodes      int
	LearningRate  float64
	Discount      float64
	Exploration   float64
	Seed          uint64
	Wins          int
	Losses        int
	Ties          int
	StatesLearned int
	TotalValues   int
	AverageValue  float64
	ModelPath     string
	Checkpoints   []Checkpoint
}

type Checkpoint struct {
	Episode       int
	Wins          int
	Losses        int
	Ties          int
	WinRate       float64
	StatesLearned int
	AverageValue  float64
	Exploration   float64
}

// Store keeps training runs in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and runs migrations.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a run with its checkpoints and returns its ID. A fresh ID
// is assigned when run.ID is empty.
func (s *Store) Record(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO training_runs
		(run_id, started_at, finished_at, episodes, learning_rate, discount, exploration, seed,
		 wins, losses, ties, states_learned, total_values, average_value, model_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(timeFormat), run.FinishedAt.UTC().Format(timeFormat),
		run.Episodes, run.LearningRate, run.Discount, run.Exploration, int64(run.Seed),
		run.Wins, run.Losses, run.Ties, run.StatesLearned, run.TotalValues, run.AverageValue, run.ModelPath)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, c := range run.Checkpoints {
		_, err = tx.Exec(`INSERT INTO checkpoints
			(run_id, episode, wins, losses, ties, win_rate, states_learned, average_value, exploration)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, c.Episode, c.Wins, c.Losses, c.Ties, c.WinRate, c.StatesLearned, c.AverageValue, c.Exploration)
		if err != nil {
			return "", fmt.Errorf("insert checkpoint %d: %w", c.Episode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return run.ID, nil
}

// Recent returns up to limit runs, newest first, without checkpoints.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id, started_at, finished_at, episodes, learning_rate, discount,
		exploration, seed, wins, losses, ties, states_learned, total_values, average_value, model_path
		FROM training_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Get returns a run with its checkpoints in episode order.
func (s *Store) Get(id string) (Run, error) {
	row := s.db.QueryRow(`SELECT run_id, started_at, finished_at, episodes, learning_rate, discount,
		exploration, seed, wins, losses, ties, states_learned, total_values, average_value, model_path
		FROM training_runs WHERE run_id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return Run{}, err
	}

	rows, err := s.db.Query(`SELECT episode, wins, losses, ties, win_rate, states_learned, average_value, exploration
		FROM checkpoints WHERE run_id = ? ORDER BY episode`, id)
	if err != nil {
		return Run{}, fmt.Errorf("query checkpoints: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Checkpoint
		if err := rows.Scan(&c.Episode, &c.Wins, &c.Losses, &c.Ties, &c.WinRate, &c.StatesLearned, &c.AverageValue, &c.Exploration); err != nil {
			return Run{}, fmt.Errorf("scan checkpoint: %w", err)
		}
		run.Checkpoints = append(run.Checkpoints, c)
	}
	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var started, finished string
	var seed int64
	err := row.Scan(&run.ID, &started, &finished, &run.Episodes, &run.LearningRate, &run.Discount,
		&run.Exploration, &seed, &run.Wins, &run.Losses, &run.Ties, &run.StatesLearned, &run.TotalValues,
		&run.AverageValue, &run.ModelPath)
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Seed = uint64(seed)
	if run.StartedAt, err = time.Parse(timeFormat, started); err != nil {
		return Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(timeFormat, finished); err != nil {
		return Run{}, fmt.Errorf("parse finished_at: %w", err)
	}
	return run, nil
}
