package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"tictactoe/engine"
	"tictactoe/game"

	"github.com/logrusorgru/aurora"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard(t *testing.T) {
	board := game.NewBoard()
	board.Apply(game.Action{Row: 0, Col: 0}, game.X)
	board.Apply(game.Action{Row: 1, Col: 2}, game.O)

	got := RenderBoard(aurora.NewAurora(false), board.State())

	want := "\n   0   1   2\n" +
		"  -----------\n" +
		"0  X |   |  \n" +
		"  -----------\n" +
		"1    |   | O\n" +
		"  -----------\n" +
		"2    |   |  \n" +
		"  -----------\n"
	require.Equal(t, want, got)
}

func TestParseAction(t *testing.T) {
	action, err := ParseAction(" 1, 2 ")
	require.NoError(t, err)
	require.Equal(t, game.Action{Row: 1, Col: 2}, action)

	for _, bad := range []string{"", "1", "1,2,3", "a,1", "1,b"} {
		_, err := ParseAction(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestHuman(t *testing.T) {
	legal := game.NewBoard().LegalActions()

	t.Run("re-prompts until legal", func(t *testing.T) {
		var out bytes.Buffer
		c := New(strings.NewReader("nonsense\n5,5\n2,1\n"), &out, false)

		action, err := c.Human().Move(game.State{}, legal)

		require.NoError(t, err)
		require.Equal(t, game.Action{Row: 2, Col: 1}, action)
		require.Contains(t, out.String(), "Format error")
		require.Contains(t, out.String(), "Invalid move")
		require.Equal(t, 3, strings.Count(out.String(), "Your move"))
	})

	t.Run("rejects occupied cells", func(t *testing.T) {
		board := game.NewBoard()
		board.Apply(game.Action{Row: 1, Col: 1}, game.X)
		var out bytes.Buffer
		c := New(strings.NewReader("1,1\n0,0\n"), &out, false)

		action, err := c.Human().Move(board.State(), board.LegalActions())

		require.NoError(t, err)
		require.Equal(t, game.Action{Row: 0, Col: 0}, action)
	})

	t.Run("end of input", func(t *testing.T) {
		c := New(strings.NewReader(""), io.Discard, false)

		_, err := c.Human().Move(game.State{}, legal)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("no legal moves", func(t *testing.T) {
		c := New(strings.NewReader("0,0\n"), io.Discard, false)

		_, err := c.Human().Move(game.State{}, nil)
		require.ErrorIs(t, err, engine.ErrNoAction)
	})
}

type fixedPlayer struct {
	action game.Action
}

func (p fixedPlayer) Move(game.State, []game.Action) (game.Action, error) {
	return p.action, nil
}

func TestAnnounce(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out, false)
	p := c.Announce(fixedPlayer{action: game.Action{Row: 2, Col: 0}}, "AI")

	action, err := p.Move(game.State{}, game.NewBoard().LegalActions())

	require.NoError(t, err)
	require.Equal(t, game.Action{Row: 2, Col: 0}, action)
	require.Contains(t, out.String(), "AI moves to: (2, 0)")
}

func TestPrompt(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("  3 \n"), &out, false)

	line, err := c.Prompt("Choice: ")
	require.NoError(t, err)
	require.Equal(t, "3", line)
	require.Equal(t, "Choice: ", out.String())

	_, err = c.Prompt("Choice: ")
	require.ErrorIs(t, err, io.EOF)
}
