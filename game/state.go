package game

// Board is the mutable game. It only changes through Apply and Reset.
type Board struct {
	cells    [Size][Size]Mark
	starting Mark
}

// NewBoard returns an empty board with X to start.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// BoardFromState rebuilds a board from a snapshot.
func BoardFromState(s State) *Board {
	b := NewBoard()
	for i, m := range s {
		b.cells[i/Size][i%Size] = m
	}
	return b
}

func (b *Board) Reset() {
	b.cells = [Size][Size]Mark{}
	b.starting = X
}

func (b *Board) Copy() *Board {
	// Arrays copy by value
	c := *b
	return &c
}

func (b *Board) State() State {
	var s State
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			s[r*Size+c] = b.cells[r][c]
		}
	}
	return s
}

// StartingPlayer is the mark that moved, or will move, first.
func (b *Board) StartingPlayer() Mark {
	return b.starting
}

// ToMove derives whose turn it is from the piece counts. Callers that keep
// their own turn order do not need it.
func (b *Board) ToMove() Mark {
	balance := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			balance += int(b.cells[r][c])
		}
	}
	if balance > 0 {
		return O
	}
	return X
}

// LegalActions returns the empty cells in row-major order.
func (b *Board) LegalActions() []Action {
	actions := []Action{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b.cells[r][c] == Empty {
				actions = append(actions, Action{Row: r, Col: c})
			}
		}
	}
	return actions
}

// Apply places mark at action if the cell exists and is empty. It reports
// whether the board changed and never switches turns.
func (b *Board) Apply(action Action, mark Mark) bool {
	if !action.Valid() || b.cells[action.Row][action.Col] != Empty {
		return false
	}
	b.cells[action.Row][action.Col] = mark
	return true
}

// Outcome checks rows, then columns, then both diagonals. A legal game can
// hold at most one winning line, so the order does not change the result.
func (b *Board) Outcome() Outcome {
	for r := 0; r < Size; r++ {
		if o := lineOutcome(b.cells[r][0] + b.cells[r][1] + b.cells[r][2]); o != InProgress {
			return o
		}
	}
	for c := 0; c < Size; c++ {
		if o := lineOutcome(b.cells[0][c] + b.cells[1][c] + b.cells[2][c]); o != InProgress {
			return o
		}
	}
	diagonal := b.cells[0][0] + b.cells[1][1] + b.cells[2][2]
	anti := b.cells[0][2] + b.cells[1][1] + b.cells[2][0]
	if diagonal == 3 || anti == 3 {
		return XWins
	}
	if diagonal == -3 || anti == -3 {
		return OWins
	}

	if len(b.LegalActions()) == 0 {
		return Draw
	}
	return InProgress
}

func lineOutcome(sum Mark) Outcome {
	switch sum {
	case 3 * X:
		return XWins
	case 3 * O:
		return OWins
	default:
		return InProgress
	}
}
