// Package grid is the dirty-tracking cell store behind a board.
//
// The grid separates two repaint triggers on purpose: an update-all flag for
// structural resets (bulk initialization) and a per-index dirty set for
// steady-state targeted updates. The compositor picks a full linear repaint
// or a sparse one from these two signals without ever diffing snapshots.
package grid

import (
	"github.com/hnimtadd/boardio/board/cell"
	"github.com/hnimtadd/boardio/board/color"
	"github.com/hnimtadd/boardio/board/coordinate"
	"github.com/hnimtadd/boardio/board/resource"
	"github.com/hnimtadd/boardio/board/utils"
)

const defaultDirtyCapacity = 16

// Update is one targeted cell replacement.
type Update struct {
	Cell cell.Cell
	Pos  coordinate.Position
}

// Grid is a fixed rows x columns store of cells in row-major order. It is
// never resized after construction.
type Grid struct {
	rows       int
	columns    int
	cellWidth  int
	cellHeight int
	cells      []cell.Cell
	resources  resource.Table

	// updateAll marks a structural reset: every cell is stale.
	updateAll bool
	// dirty holds the indices changed since the last UpdateComplete. It is
	// a set, not a queue: iteration order is unspecified.
	dirty map[int]struct{}
}

func New(columns, rows, cellWidth, cellHeight int, res resource.Table) *Grid {
	cells := make([]cell.Cell, columns*rows)
	for i := range cells {
		cells[i] = cell.Empty()
	}
	return &Grid{
		rows:       rows,
		columns:    columns,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		cells:      cells,
		resources:  res,
		updateAll:  true,
		dirty:      make(map[int]struct{}, defaultDirtyCapacity),
	}
}

// InitFromCells overwrites every cell from a row-major slice and marks the
// whole grid stale. Panics if the slice length does not match.
func (g *Grid) InitFromCells(cells []cell.Cell) {
	utils.Assert(len(cells) == g.rows*g.columns, "invalid number of cells")
	copy(g.cells, cells)
	g.updateAll = true
}

// InitFromChars overwrites every cell with a Char cell per rune. The caller
// (the board) has already validated the rune count and the 1x1 cell size.
func (g *Grid) InitFromChars(runes []rune) {
	utils.Assert(len(runes) == g.rows*g.columns, "invalid number of cells")
	for i, r := range runes {
		g.cells[i] = cell.Char(r)
	}
	g.updateAll = true
}

// HasUpdates reports whether anything at all is stale.
func (g *Grid) HasUpdates() bool {
	return g.updateAll || len(g.dirty) > 0
}

// NeedsUpdateAll reports whether everything is stale.
func (g *Grid) NeedsUpdateAll() bool {
	return g.updateAll
}

// Cells returns the backing slice in row-major order. Callers must treat it
// as read-only.
func (g *Grid) Cells() []cell.Cell {
	return g.cells
}

// DirtyIndices returns the stale indices in unspecified order.
func (g *Grid) DirtyIndices() []int {
	indices := make([]int, 0, len(g.dirty))
	for i := range g.dirty {
		indices = append(indices, i)
	}
	return indices
}

// At returns the cell at a row-major index.
func (g *Grid) At(i int) cell.Cell {
	return g.cells[i]
}

// UpdateComplete acknowledges a finished repaint: it clears per-cell
// dirtiness and the update-all flag without touching cell values. Dirtiness
// is never cleared anywhere else; calling this twice in a row is a no-op
// the second time.
func (g *Grid) UpdateComplete() {
	clear(g.dirty)
	g.updateAll = false
}

// Set applies a batch of targeted replacements, marking only those indices
// dirty.
func (g *Grid) Set(updates []Update) {
	for _, u := range updates {
		i := g.index(u.Pos)
		g.cells[i] = u.Cell
		g.dirty[i] = struct{}{}
	}
}

// SetCell replaces one cell. This entry point exists for the cursor, which
// restores remembered content when it moves away.
func (g *Grid) SetCell(c cell.Cell, pos coordinate.Position) {
	i := g.index(pos)
	g.cells[i] = c
	g.dirty[i] = struct{}{}
}

// HighlightAt replaces the cell at pos with its highlighted variant and
// returns the value that was there before. This entry point exists for the
// cursor, which must remember the pre-highlight content.
func (g *Grid) HighlightAt(pos coordinate.Position, bg color.RGB) cell.Cell {
	i := g.index(pos)
	original := g.cells[i]
	g.cells[i] = original.Highlight(g.cellWidth, g.cellHeight, g.resources, bg)
	g.dirty[i] = struct{}{}
	return original
}

func (g *Grid) index(pos coordinate.Position) int {
	return pos.Y*g.columns + pos.X
}
