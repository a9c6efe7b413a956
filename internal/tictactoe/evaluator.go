package tictactoe

// Outcome is the terminal state of a board, or Ongoing when play continues.
type Outcome uint8

const (
	Ongoing Outcome = iota
	MaxWin
	MinWin
	Draw
)

// lines holds the 8 winning lines: rows, columns, main diagonal, anti-diagonal.
var lines = [8][Size]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

func (o Outcome) String() string {
	switch o {
	case MaxWin:
		return "max_win"
	case MinWin:
		return "min_win"
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

func (o Outcome) IsTerminal() bool {
	return o != Ongoing
}

// Score is the value of a terminal outcome from Max's point of view.
func (o Outcome) Score() int {
	switch o {
	case MaxWin:
		return 1
	case MinWin:
		return -1
	default:
		return 0
	}
}

// HasLine reports whether player owns a full row, column or diagonal.
func HasLine(b *Board, player Cell) bool {
	if player == Empty {
		return false
	}

	for _, line := range lines {
		if b[line[0].Row][line[0].Col] == player &&
			b[line[1].Row][line[1].Col] == player &&
			b[line[2].Row][line[2].Col] == player {
			return true
		}
	}

	return false
}

// Evaluate reports the state of the board. A board with lines for both
// players cannot come from alternating play; MaxWin wins that tie.
func Evaluate(b *Board) Outcome {
	switch {
	case HasLine(b, Max):
		return MaxWin
	case HasLine(b, Min):
		return MinWin
	case b.IsFull():
		return Draw
	default:
		return Ongoing
	}
}
