package game

import (
	"strconv"
	"strings"
)

const Size = 3

// Mark is the content of a single cell. X always moves first.
type Mark int8

const (
	Empty Mark = 0
	X     Mark = 1
	O     Mark = -1
)

func (m Mark) Opponent() Mark {
	return -m
}

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return " "
	}
}

// State is a row-major snapshot of the 9 cells. It is a value type so a
// State handed out by a Board never changes afterwards.
type State [Size * Size]Mark

// String renders the state as a tuple, e.g. "(0, 1, -1, 0, 0, 0, 0, 0, 0)".
// Model files key their entries by this rendering.
func (s State) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, m := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(int(m)))
	}
	b.WriteByte(')')
	return b.String()
}

// Flipped swaps X and O, so a player of O can look at the board as if it were X.
func (s State) Flipped() State {
	var flipped State
	for i, m := range s {
		flipped[i] = -m
	}
	return flipped
}

func (s State) At(a Action) Mark {
	return s[a.Row*Size+a.Col]
}

// Action addresses one cell.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (a Action) Valid() bool {
	return a.Row >= 0 && a.Row < Size && a.Col >= 0 && a.Col < Size
}

func (a Action) String() string {
	return "(" + strconv.Itoa(a.Row) + ", " + strconv.Itoa(a.Col) + ")"
}

type Outcome int

const (
	InProgress Outcome = iota
	XWins
	OWins
	Draw
)

func (o Outcome) Terminal() bool {
	return o != InProgress
}

// Winner returns the winning mark, or Empty for a draw or an unfinished game.
func (o Outcome) Winner() Mark {
	switch o {
	case XWins:
		return X
	case OWins:
		return O
	default:
		return Empty
	}
}

func (o Outcome) String() string {
	switch o {
	case XWins:
		return "X wins"
	case OWins:
		return "O wins"
	case Draw:
		return "draw"
	default:
		return "in progress"
	}
}
