package trainer

import (
	"fmt"
	"os"
	"path/filepath"
)

const progressHeader = "TRAINING TIC-TAC-TOE AI (Q-LEARNING)\n=================================\n"

// OpenProgressLog starts a fresh progress log at path. Each training run
// overwrites the previous log and then appends to it.
func OpenProgressLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create progress directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress log: %w", err)
	}
	if _, err := f.WriteString(progressHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write progress header: %w", err)
	}
	return f, nil
}
