package tictactoe

import (
	"fmt"
	"math"
)

// Search returns the minimax value of b with the given side to move.
//
// The whole tree is explored without pruning or memoization, and the depth of
// a result does not change its score. Marks are placed and reverted on b
// itself, so the caller must hold exclusive access to b for the whole call.
func Search(b *Board, maximizing bool) int {
	if outcome := Evaluate(b); outcome.IsTerminal() {
		return outcome.Score()
	}

	player, best := Min, math.MaxInt
	if maximizing {
		player, best = Max, math.MinInt
	}

	for row := range Size {
		for col := range Size {
			if b[row][col] != Empty {
				continue
			}

			b[row][col] = player
			score := Search(b, !maximizing)
			b[row][col] = Empty

			if maximizing {
				best = max(best, score)
			} else {
				best = min(best, score)
			}
		}
	}

	return best
}

// BestMove picks Max's move on an ongoing board, applies it to b and returns it.
//
// Squares are tried in row-major order and a later square only replaces the
// current choice with a strictly higher score, so equal boards always yield
// the same move. Like Search, it needs exclusive access to b.
func BestMove(b *Board) (Move, error) {
	if outcome := Evaluate(b); outcome.IsTerminal() {
		return Move{}, fmt.Errorf("%w: board is already %s", ErrPreconditionViolation, outcome)
	}

	var (
		best      Move
		bestScore = math.MinInt
		found     bool
	)

	for row := range Size {
		for col := range Size {
			if b[row][col] != Empty {
				continue
			}

			b[row][col] = Max
			score := Search(b, false)
			b[row][col] = Empty

			if !found || score > bestScore {
				best, bestScore, found = Move{Row: row, Col: col}, score, true
			}
		}
	}

	if !found {
		return Move{}, ErrNoAvailableMoves
	}

	if err := b.Mark(best.Row, best.Col, Max); err != nil {
		return Move{}, fmt.Errorf("failed to apply best move: %w", err)
	}

	return best, nil
}
