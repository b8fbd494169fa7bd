package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
)

const keySeparator = "|"

var ErrModelNotFound = errors.New("model file not found")

// Key renders a table key as "<state tuple>|<row>,<col>". Saved models use
// the same keys, so the format must not change.
func Key(state game.State, action game.Action) string {
	return state.String() + keySeparator + strconv.Itoa(action.Row) + "," + strconv.Itoa(action.Col)
}

func statePart(key string) string {
	state, _, _ := strings.Cut(key, keySeparator)
	return state
}

// Save writes the table as a flat JSON object.
func (a *Agent) Save(path string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer closeInto(&err, f)

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(a.table); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}

	log.Info().Str("path", path).Int("entries", len(a.table)).Msg("model saved")
	return nil
}

// closeInto closes c and reports its error through err unless err is
// already set. A buffered write can fail only on close.
func closeInto(err *error, c io.Closer) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close model file: %w", cerr)
	}
}

// Load replaces the table with the one stored at path. A missing file
// returns an error wrapping ErrModelNotFound; anything unreadable is
// returned unchanged and is not worth recovering from.
func (a *Agent) Load(path string) error {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}
	if err != nil {
		return err
	}

	// Unmarshal, unlike a streaming decoder, rejects trailing data.
	table := make(map[string]float64)
	if err := json.Unmarshal(content, &table); err != nil {
		return fmt.Errorf("failed to decode model %s: %w", path, err)
	}
	if table == nil { // "null"
		table = make(map[string]float64)
	}
	a.table = table

	log.Info().Str("path", path).Int("entries", len(a.table)).Msg("model loaded")
	return nil
}
