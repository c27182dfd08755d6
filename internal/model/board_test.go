package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testBoard builds a full 25-cell board with a free space at position 12
// and the given task ids marked completed.
func testBoard(completed ...int) Board {
	done := make(map[int]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}

	b := make(Board, 0, TotalCells)
	for pos := 0; pos < TotalCells; pos++ {
		taskID := pos + 1
		b = append(b, Cell{
			TaskID:      taskID,
			Description: "task",
			Position:    pos,
			Completed:   done[taskID],
			IsFreeSpace: pos == 12,
		})
	}
	return b
}

func TestBoardValidate(t *testing.T) {
	require.NoError(t, testBoard().Validate())
}

func TestBoardValidateWrongSize(t *testing.T) {
	b := testBoard()
	assert.ErrorIs(t, b[:24].Validate(), ErrMalformedBoard)
}

func TestBoardValidateDuplicatePosition(t *testing.T) {
	b := testBoard()
	b[3].Position = b[4].Position
	assert.ErrorIs(t, b.Validate(), ErrMalformedBoard)
}

func TestBoardValidatePositionOutOfRange(t *testing.T) {
	b := testBoard()
	b[0].Position = 25
	assert.ErrorIs(t, b.Validate(), ErrMalformedBoard)
}

func TestProgressCountsFreeSpace(t *testing.T) {
	completed, total := testBoard().Progress()
	assert.Equal(t, 1, completed, "free space counts as completed")
	assert.Equal(t, TotalCells, total)
}

func TestProgressPartition(t *testing.T) {
	b := testBoard(1, 2, 7, 20)
	completed, total := b.Progress()
	incomplete := len(b.SelectableCells())
	assert.Equal(t, TotalCells, total)
	assert.Equal(t, TotalCells, completed+incomplete)
}

func TestSortedOrdersByPosition(t *testing.T) {
	b := testBoard()
	// Shuffle deterministically by swapping a few cells
	b[0], b[24] = b[24], b[0]
	b[5], b[17] = b[17], b[5]

	sorted := b.Sorted()
	for i, c := range sorted {
		assert.Equal(t, i, c.Position)
	}
}

func TestFindTask(t *testing.T) {
	b := testBoard()

	cell, ok := b.FindTask(7)
	require.True(t, ok)
	assert.Equal(t, 7, cell.TaskID)

	_, ok = b.FindTask(999)
	assert.False(t, ok)
}

func TestSelectableCellsExcludesFreeAndCompleted(t *testing.T) {
	b := testBoard(1, 2)
	for _, c := range b.SelectableCells() {
		assert.False(t, c.Completed)
		assert.False(t, c.IsFreeSpace)
	}
	// 25 cells - free space - 2 completed
	assert.Len(t, b.SelectableCells(), 22)
}

func TestFullyComplete(t *testing.T) {
	all := make([]int, 0, TotalCells)
	for id := 1; id <= TotalCells; id++ {
		all = append(all, id)
	}

	assert.False(t, testBoard().FullyComplete())
	assert.True(t, testBoard(all...).FullyComplete())
}
