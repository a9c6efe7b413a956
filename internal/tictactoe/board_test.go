package tictactoe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Mark(t *testing.T) {
	t.Run("Marks an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: Min marks the center
		err := board.Mark(1, 1, Min)

		// Then: only the center holds Min's mark
		require.NoError(t, err)
		expected := Board{
			{Empty, Empty, Empty},
			{Empty, Min, Empty},
			{Empty, Empty, Empty},
		}
		require.Equal(t, expected, board)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: a board where Max owns the corner
		board := Board{}
		require.NoError(t, board.Mark(0, 0, Max))
		before := board

		// When: Min tries the same cell
		err := board.Mark(0, 0, Min)

		// Then: ErrInvalidMove is returned and the board is unchanged
		require.ErrorIs(t, err, ErrInvalidMove)
		require.Equal(t, before, board)
	})

	t.Run("Rejects out of range coordinates", func(t *testing.T) {
		cases := []Move{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}}

		for _, move := range cases {
			// Given: an empty board
			board := Board{}

			// When: a move outside the grid is marked
			err := board.Mark(move.Row, move.Col, Min)

			// Then: ErrInvalidMove is returned and the board stays empty
			require.ErrorIs(t, err, ErrInvalidMove, "move %s", move)
			require.Equal(t, Board{}, board)
		}
	})

	t.Run("Rejects the empty mark", func(t *testing.T) {
		board := Board{}

		err := board.Mark(0, 0, Empty)

		require.ErrorIs(t, err, ErrInvalidMove)
	})
}

func TestBoard_IsEmpty(t *testing.T) {
	// Given: a board with one mark
	board := Board{}
	require.NoError(t, board.Mark(2, 1, Max))

	// Then: only the marked cell is not empty
	assert.False(t, board.IsEmpty(2, 1))
	assert.True(t, board.IsEmpty(0, 0))

	// Then: cells outside the grid are never empty
	assert.False(t, board.IsEmpty(3, 0))
	assert.False(t, board.IsEmpty(-1, 2))
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Empty board is not full", func(t *testing.T) {
		board := Board{}

		assert.False(t, board.IsFull())
	})

	t.Run("Board with one empty cell is not full", func(t *testing.T) {
		board := Board{
			{Min, Max, Min},
			{Min, Max, Max},
			{Max, Min, Empty},
		}

		assert.False(t, board.IsFull())
	})

	t.Run("Completely filled board is full", func(t *testing.T) {
		board := Board{
			{Min, Max, Min},
			{Min, Max, Max},
			{Max, Min, Min},
		}

		assert.True(t, board.IsFull())
	})
}

func TestBoard_Clear(t *testing.T) {
	// Given: a board in the middle of a game
	board := Board{
		{Min, Max, Empty},
		{Empty, Max, Empty},
		{Min, Empty, Empty},
	}

	// When: the board is cleared twice
	board.Clear()
	once := board
	board.Clear()

	// Then: both results are the empty, ongoing board
	require.Equal(t, Board{}, once)
	require.Equal(t, once, board)
	require.Equal(t, Ongoing, Evaluate(&board))
}

func TestBoard_Cells(t *testing.T) {
	// Given: a board with two marks
	board := Board{}
	require.NoError(t, board.Mark(0, 2, Min))
	require.NoError(t, board.Mark(2, 0, Max))

	// When: enumerating the cells
	squares := board.Cells()

	// Then: all 9 squares are listed in row-major order
	require.Len(t, squares, Size*Size)
	for i, square := range squares {
		assert.Equal(t, i/Size, square.Row)
		assert.Equal(t, i%Size, square.Col)
	}
	assert.Equal(t, Min, squares[2].Cell)
	assert.Equal(t, Max, squares[6].Cell)
	assert.Equal(t, 7, board.Count(Empty))
}

func TestBoard_JSON(t *testing.T) {
	// Given: a board with both marks
	board := Board{
		{Min, Empty, Empty},
		{Empty, Max, Empty},
		{Empty, Empty, Empty},
	}

	// When: it is encoded
	data, err := json.Marshal(board)
	require.NoError(t, err)

	// Then: cells are written as their symbols
	assert.JSONEq(t, `[["X","",""],["","O",""],["","",""]]`, string(data))

	// Then: decoding gives the same board back
	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, board, decoded)

	// Then: unknown symbols are rejected
	err = json.Unmarshal([]byte(`[["Z","",""],["","",""],["","",""]]`), &decoded)
	require.ErrorIs(t, err, ErrUnknownCell)
}

func TestBoard_String(t *testing.T) {
	board := Board{
		{Min, Empty, Empty},
		{Empty, Max, Empty},
		{Empty, Empty, Min},
	}

	assert.Equal(t, "X| | \n |O| \n | |X", board.String())
}

func TestCell_Opponent(t *testing.T) {
	assert.Equal(t, Min, Max.Opponent())
	assert.Equal(t, Max, Min.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}
