package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/utils"

	"github.com/logrusorgru/aurora"
)

// Console is a line-oriented terminal: prompts go to out, answers come
// from in.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
	au  aurora.Aurora
}

func New(in io.Reader, out io.Writer, colors bool) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
		au:  aurora.NewAurora(colors),
	}
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) Banner(title string) {
	rule := strings.Repeat("=", 50)
	c.Printf("\n%s\n%s\n%s\n", rule, c.au.Bold(title), rule)
}

// Prompt prints prompt and returns the next trimmed input line. It returns
// io.EOF once input is exhausted.
func (c *Console) Prompt(prompt string) (string, error) {
	c.Printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) PrintBoard(state game.State) {
	c.Printf("%s", RenderBoard(c.au, state))
}

// RenderBoard draws the board with row and column indices.
func RenderBoard(au aurora.Aurora, state game.State) string {
	var b strings.Builder
	rule := "  -----------\n"
	b.WriteString("\n   0   1   2\n")
	b.WriteString(rule)
	for r := 0; r < game.Size; r++ {
		cells := make([]string, game.Size)
		for c := 0; c < game.Size; c++ {
			cells[c] = paint(au, state.At(game.Action{Row: r, Col: c}))
		}
		fmt.Fprintf(&b, "%d  %s\n", r, strings.Join(cells, " | "))
		b.WriteString(rule)
	}
	return b.String()
}

func paint(au aurora.Aurora, m game.Mark) string {
	switch m {
	case game.X:
		return au.Red(m.String()).Bold().String()
	case game.O:
		return au.Blue(m.String()).Bold().String()
	default:
		return m.String()
	}
}

// ParseAction reads "row,col".
func ParseAction(s string) (game.Action, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return game.Action{}, errors.New("expected row,col")
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return game.Action{}, fmt.Errorf("row: %w", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return game.Action{}, fmt.Errorf("col: %w", err)
	}
	return game.Action{Row: row, Col: col}, nil
}

// Human is a player that types its moves.
type Human struct {
	console *Console
}

func (c *Console) Human() *Human {
	return &Human{console: c}
}

// Move shows the board and asks until a legal move is entered.
func (h *Human) Move(state game.State, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return game.Action{}, engine.ErrNoAction
	}
	c := h.console
	c.PrintBoard(state)
	c.Printf("Available moves: %v\n", legal)
	for {
		line, err := c.Prompt("Your move (row,col): ")
		if err != nil {
			return game.Action{}, err
		}
		action, err := ParseAction(line)
		if err != nil {
			c.Println(c.au.Yellow("Format error. Use row,col (example: 0,2)"))
			continue
		}
		if utils.FindIndex(legal, action) < 0 {
			c.Println(c.au.Yellow("Invalid move (not available). Try again."))
			continue
		}
		return action, nil
	}
}

type announcer struct {
	engine.Player
	console *Console
	name    string
}

// Announce wraps p so that each of its moves is printed after the board it
// was chosen on.
func (c *Console) Announce(p engine.Player, name string) engine.Player {
	return &announcer{Player: p, console: c, name: name}
}

func (a *announcer) Move(state game.State, legal []game.Action) (game.Action, error) {
	action, err := a.Player.Move(state, legal)
	if err != nil {
		return action, err
	}
	a.console.PrintBoard(state)
	a.console.Printf("%s moves to: %s\n", a.name, action)
	return action, nil
}
