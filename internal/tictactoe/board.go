package tictactoe

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the number of rows and columns of the board.
const Size = 3

// Cell is the state of a single square.
type Cell uint8

const (
	Empty Cell = iota
	// Max is the automated player, it looks for the highest score.
	Max
	// Min is the human player, modelled as minimizing the score.
	Min
)

var (
	ErrInvalidMove           = errors.New("invalid move")
	ErrPreconditionViolation = errors.New("precondition violation")
	ErrNoAvailableMoves      = errors.New("no available moves")
	ErrUnknownCell           = errors.New("unknown cell value")
)

func (c Cell) String() string {
	switch c {
	case Max:
		return "O"
	case Min:
		return "X"
	default:
		return ""
	}
}

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Max:
		return Min
	case Min:
		return Max
	default:
		return Empty
	}
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*c = Empty
	case "O":
		*c = Max
	case "X":
		*c = Min
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCell, text)
	}

	return nil
}

// Board is the 3x3 grid, row-major. The zero value is an empty board.
type Board [Size][Size]Cell

// Square is one entry of Board.Cells.
type Square struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Cell Cell `json:"cell"`
}

// Move addresses a square by its row and column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// Mark puts player's mark on an empty square. The board is left untouched on error.
func (that *Board) Mark(row, col int, player Cell) error {
	if !inBounds(row, col) {
		return fmt.Errorf("%w: cell (%d, %d) is out of range", ErrInvalidMove, row, col)
	}

	if player != Max && player != Min {
		return fmt.Errorf("%w: cannot mark with %q", ErrInvalidMove, player)
	}

	if that[row][col] != Empty {
		return fmt.Errorf("%w: cell (%d, %d) is already occupied", ErrInvalidMove, row, col)
	}

	that[row][col] = player

	return nil
}

// IsEmpty reports whether the square is free. Out of range squares are never free.
func (that *Board) IsEmpty(row, col int) bool {
	return inBounds(row, col) && that[row][col] == Empty
}

func (that *Board) IsFull() bool {
	for row := range Size {
		for col := range Size {
			if that[row][col] == Empty {
				return false
			}
		}
	}

	return true
}

func (that *Board) Clear() {
	*that = Board{}
}

// Cells lists every square in row-major order.
func (that *Board) Cells() []Square {
	squares := make([]Square, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			squares = append(squares, Square{Row: row, Col: col, Cell: that[row][col]})
		}
	}

	return squares
}

// Count returns how many squares hold the given cell value.
func (that *Board) Count(cell Cell) int {
	count := 0
	for row := range Size {
		for col := range Size {
			if that[row][col] == cell {
				count++
			}
		}
	}

	return count
}

func (that *Board) String() string {
	var sb strings.Builder
	for row := range Size {
		if row > 0 {
			sb.WriteString("\n")
		}
		for col := range Size {
			if col > 0 {
				sb.WriteString("|")
			}
			if that[row][col] == Empty {
				sb.WriteString(" ")
				continue
			}
			sb.WriteString(that[row][col].String())
		}
	}

	return sb.String()
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}
