package tictactoe

import "fmt"

// ApplyHumanMove marks the square for Min.
func ApplyHumanMove(b *Board, row, col int) error {
	if err := b.Mark(row, col, Min); err != nil {
		return fmt.Errorf("human move rejected: %w", err)
	}

	return nil
}

// RequestAIMove asks the engine for Max's reply and applies it. Call it only
// while Evaluate(b) is Ongoing.
func RequestAIMove(b *Board) (Move, error) {
	move, err := BestMove(b)
	if err != nil {
		return Move{}, fmt.Errorf("ai move failed: %w", err)
	}

	return move, nil
}
