package model

import "sort"

// BoardSize is the grid dimension of a player's board
const BoardSize = 5

// TotalCells is the number of cells on a board
const TotalCells = BoardSize * BoardSize

// Cell is one task slot on a player's board
type Cell struct {
	TaskID      int    `json:"task_id"`
	Description string `json:"description"`
	Position    int    `json:"position"` // 0..24, row-major
	Completed   bool   `json:"completed"`
	IsFreeSpace bool   `json:"is_free_space"`
}

// Done reports whether the cell counts toward progress.
// The free space is completed by construction.
func (c Cell) Done() bool {
	return c.Completed || c.IsFreeSpace
}

// Selectable reports whether the cell is a valid activation target for a scan
func (c Cell) Selectable() bool {
	return !c.Completed && !c.IsFreeSpace
}

// Board is a player's read-only snapshot of their 5x5 grid. Cells arrive
// unordered from the server; positions form a permutation of 0..24.
type Board []Cell

// Validate checks the structural invariants of a board snapshot
func (b Board) Validate() error {
	if len(b) != TotalCells {
		return ErrMalformedBoard
	}
	seen := make([]bool, TotalCells)
	for _, c := range b {
		if c.Position < 0 || c.Position >= TotalCells || seen[c.Position] {
			return ErrMalformedBoard
		}
		seen[c.Position] = true
	}
	return nil
}

// Sorted returns the cells ordered by position ascending
func (b Board) Sorted() []Cell {
	cells := make([]Cell, len(b))
	copy(cells, b)
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Position < cells[j].Position
	})
	return cells
}

// Progress returns the completed and total cell counts
func (b Board) Progress() (completed, total int) {
	for _, c := range b {
		if c.Done() {
			completed++
		}
	}
	return completed, len(b)
}

// FindTask returns the cell for the given task id
func (b Board) FindTask(taskID int) (Cell, bool) {
	for _, c := range b {
		if c.TaskID == taskID {
			return c, true
		}
	}
	return Cell{}, false
}

// SelectableCells returns the cells that can still be chosen for a scan,
// ordered by position
func (b Board) SelectableCells() []Cell {
	var cells []Cell
	for _, c := range b.Sorted() {
		if c.Selectable() {
			cells = append(cells, c)
		}
	}
	return cells
}

// FullyComplete reports whether no selectable cells remain
func (b Board) FullyComplete() bool {
	return len(b.SelectableCells()) == 0
}
