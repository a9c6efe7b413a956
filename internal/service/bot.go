package service

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// Bot plays the Max side of a board. MakeTurn applies the chosen move to
// board and returns it.
type Bot interface {
	MakeTurn(board *tictactoe.Board) (tictactoe.Move, error)
}

// NewBot returns the bot for a difficulty level.
func NewBot(difficulty string) (Bot, error) {
	switch difficulty {
	case entity.HardDifficulty:
		return NewMinimaxBot(), nil
	case entity.EasyDifficulty:
		return NewRandomBot(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

// NewBots builds one bot per known difficulty.
func NewBots() map[string]Bot {
	return map[string]Bot{
		entity.HardDifficulty: NewMinimaxBot(),
		entity.EasyDifficulty: NewRandomBot(),
	}
}

type minimaxBot struct{}

func NewMinimaxBot() Bot {
	return &minimaxBot{}
}

func (that *minimaxBot) MakeTurn(board *tictactoe.Board) (tictactoe.Move, error) {
	move, err := tictactoe.RequestAIMove(board)
	if err != nil {
		return tictactoe.Move{}, fmt.Errorf("minimax bot failed to make turn: %w", err)
	}

	return move, nil
}

type randomBot struct {
	intn func(n int) int
}

func NewRandomBot() Bot {
	return &randomBot{intn: rand.IntN} //nolint: gosec // it's ok
}

func (that *randomBot) MakeTurn(board *tictactoe.Board) (tictactoe.Move, error) {
	if outcome := tictactoe.Evaluate(board); outcome.IsTerminal() {
		return tictactoe.Move{}, fmt.Errorf("%w: board is already %s", tictactoe.ErrPreconditionViolation, outcome)
	}

	availableCells := make([]tictactoe.Move, 0, tictactoe.Size*tictactoe.Size)
	for _, square := range board.Cells() {
		if square.Cell == tictactoe.Empty {
			availableCells = append(availableCells, tictactoe.Move{Row: square.Row, Col: square.Col})
		}
	}

	if len(availableCells) == 0 {
		return tictactoe.Move{}, tictactoe.ErrNoAvailableMoves
	}

	chosen := availableCells[that.intn(len(availableCells))]

	if err := board.Mark(chosen.Row, chosen.Col, tictactoe.Max); err != nil {
		return tictactoe.Move{}, fmt.Errorf("random bot failed to make turn: %w", err)
	}

	return chosen, nil
}
