package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"tictactoe/game"
	"tictactoe/utils"
	"time"
)

// RemotePlayer asks a move server for its moves. The server works out the
// side to move from the board itself.
type RemotePlayer struct {
	URL    string
	client *http.Client
}

// NewRemotePlayer talks to the server at url. A nil client gets a default
// one with a short timeout.
func NewRemotePlayer(url string, client *http.Client) *RemotePlayer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RemotePlayer{URL: strings.TrimRight(url, "/"), client: client}
}

func (p *RemotePlayer) Move(state game.State, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return game.Action{}, ErrNoAction
	}

	board := make([]int, len(state))
	for i, m := range state {
		board[i] = int(m)
	}
	body, err := json.Marshal(struct {
		Board []int `json:"board"`
	}{Board: board})
	if err != nil {
		return game.Action{}, err
	}

	resp, err := p.client.Post(p.URL+"/move", "application/json", bytes.NewReader(body))
	if err != nil {
		return game.Action{}, fmt.Errorf("failed to request move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Action{}, fmt.Errorf("move server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var action game.Action
	if err := json.NewDecoder(resp.Body).Decode(&action); err != nil {
		return game.Action{}, fmt.Errorf("failed to decode move: %w", err)
	}
	if utils.FindIndex(legal, action) < 0 {
		return game.Action{}, fmt.Errorf("%w: move server answered %s", ErrIllegalMove, action)
	}
	return action, nil
}
