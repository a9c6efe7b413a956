package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	t.Run("Terminal boards return their score", func(t *testing.T) {
		maxWon := Board{
			{Max, Max, Max},
			{Min, Min, Empty},
			{Empty, Empty, Empty},
		}
		minWon := Board{
			{Max, Max, Empty},
			{Min, Min, Min},
			{Max, Empty, Empty},
		}
		drawn := Board{
			{Min, Max, Min},
			{Min, Max, Max},
			{Max, Min, Min},
		}

		for _, maximizing := range []bool{true, false} {
			assert.Equal(t, 1, Search(&maxWon, maximizing))
			assert.Equal(t, -1, Search(&minWon, maximizing))
			assert.Equal(t, 0, Search(&drawn, maximizing))
		}
	})

	t.Run("Empty board is a draw under optimal play", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: searching with either side to move
		// Then: the value is a draw and the board is restored
		assert.Equal(t, 0, Search(&board, true))
		assert.Equal(t, 0, Search(&board, false))
		assert.Equal(t, Board{}, board)
	})

	t.Run("Side to move completes its line", func(t *testing.T) {
		// Given: both players have two in a row and the board is otherwise open
		board := Board{
			{Max, Max, Empty},
			{Min, Min, Empty},
			{Empty, Empty, Empty},
		}
		before := board

		// Then: whoever moves first wins
		assert.Equal(t, 1, Search(&board, true))
		assert.Equal(t, -1, Search(&board, false))

		// Then: every placed mark has been reverted
		assert.Equal(t, before, board)
	})

	t.Run("Fork cannot be defended", func(t *testing.T) {
		// Given: Max threatens both (1,0) and (2,1); Min to move
		board := Board{
			{Max, Empty, Min},
			{Empty, Min, Empty},
			{Max, Empty, Max},
		}

		// Then: Max wins regardless of Min's reply
		assert.Equal(t, 1, Search(&board, false))
	})
}

func TestBestMove(t *testing.T) {
	t.Run("Opening move is the first scanned cell", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: Max chooses a move
		move, err := BestMove(&board)

		// Then: every opening draws, so the earliest cell (0,0) wins the tie
		require.NoError(t, err)
		require.Equal(t, Move{Row: 0, Col: 0}, move)

		// Then: the move has been applied and nothing else changed
		expected := Board{}
		expected[0][0] = Max
		require.Equal(t, expected, board)
	})

	t.Run("Forced block", func(t *testing.T) {
		// Given: Min threatens to complete the top row
		board := Board{
			{Min, Min, Empty},
			{Empty, Max, Empty},
			{Empty, Empty, Empty},
		}

		// When: Max chooses a move
		move, err := BestMove(&board)

		// Then: Max blocks at (0,2)
		require.NoError(t, err)
		require.Equal(t, Move{Row: 0, Col: 2}, move)
		require.Equal(t, Max, board[0][2])
	})

	t.Run("Takes the immediate win", func(t *testing.T) {
		// Given: Max can complete the left column at the first free square
		board := Board{
			{Max, Min, Min},
			{Empty, Empty, Empty},
			{Max, Empty, Empty},
		}

		// When: Max chooses a move
		move, err := BestMove(&board)

		// Then: the winning square is chosen and the board is won
		require.NoError(t, err)
		require.Equal(t, Move{Row: 1, Col: 0}, move)
		require.Equal(t, MaxWin, Evaluate(&board))
	})

	t.Run("Slower win scanned first beats an immediate win", func(t *testing.T) {
		// Given: (1,0) forks and (2,1) wins at once; both score +1
		board := Board{
			{Min, Max, Min},
			{Empty, Max, Empty},
			{Min, Empty, Empty},
		}

		// When: Max chooses a move
		move, err := BestMove(&board)

		// Then: the earlier square wins the tie and the game goes on
		require.NoError(t, err)
		require.Equal(t, Move{Row: 1, Col: 0}, move)
		require.Equal(t, Ongoing, Evaluate(&board))
	})

	t.Run("Precondition violation on a won board", func(t *testing.T) {
		// Given: a board Max has already won
		board := Board{
			{Max, Max, Max},
			{Min, Min, Empty},
			{Min, Empty, Empty},
		}
		before := board

		// When: a move is requested
		_, err := BestMove(&board)

		// Then: ErrPreconditionViolation is returned and the board is unchanged
		require.ErrorIs(t, err, ErrPreconditionViolation)
		require.Equal(t, before, board)
	})

	t.Run("Precondition violation on a drawn board", func(t *testing.T) {
		board := Board{
			{Min, Max, Min},
			{Min, Max, Max},
			{Max, Min, Min},
		}

		_, err := BestMove(&board)

		require.ErrorIs(t, err, ErrPreconditionViolation)
	})

	t.Run("Deterministic for identical boards", func(t *testing.T) {
		// Given: two bit-identical boards
		first := Board{
			{Min, Empty, Empty},
			{Empty, Empty, Empty},
			{Empty, Empty, Min},
		}
		first[1][1] = Max
		second := first

		// When: both are asked for a move
		moveA, errA := BestMove(&first)
		moveB, errB := BestMove(&second)

		// Then: the answers and resulting boards match
		require.NoError(t, errA)
		require.NoError(t, errB)
		require.Equal(t, moveA, moveB)
		require.Equal(t, first, second)
	})
}

// TestBestMove_NeverLoses plays every legal line for Min against BestMove and
// checks that no game ends with a Min win.
func TestBestMove_NeverLoses(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive game tree walk")
	}

	t.Run("Human moves first", func(t *testing.T) {
		games := playAllLines(t, Board{}, true)
		assert.Positive(t, games)
	})

	t.Run("Engine moves first", func(t *testing.T) {
		games := playAllLines(t, Board{}, false)
		assert.Positive(t, games)
	})
}

// playAllLines returns the number of finished games reached from b.
func playAllLines(t *testing.T, b Board, humanToMove bool) int {
	t.Helper()

	if outcome := Evaluate(&b); outcome.IsTerminal() {
		require.NotEqual(t, MinWin, outcome, "engine lost:\n%s", &b)
		return 1
	}

	if !humanToMove {
		_, err := RequestAIMove(&b)
		require.NoError(t, err)

		return playAllLines(t, b, true)
	}

	games := 0
	for row := range Size {
		for col := range Size {
			if !b.IsEmpty(row, col) {
				continue
			}

			next := b
			require.NoError(t, ApplyHumanMove(&next, row, col))
			games += playAllLines(t, next, false)
		}
	}

	return games
}

func TestApplyHumanMove(t *testing.T) {
	// Given: a board with Max in the center
	board := Board{}
	require.NoError(t, board.Mark(1, 1, Max))

	// When: the human plays the center and then a free corner
	errTaken := ApplyHumanMove(&board, 1, 1)
	errFree := ApplyHumanMove(&board, 0, 0)

	// Then: the taken square is rejected and the corner belongs to Min
	require.ErrorIs(t, errTaken, ErrInvalidMove)
	require.NoError(t, errFree)
	require.Equal(t, Min, board[0][0])
}
