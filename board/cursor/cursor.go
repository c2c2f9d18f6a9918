// Package cursor is a single-cell highlight overlay for a board.
//
// The cursor marks one grid position by replacing that cell with a
// background-highlighted variant, remembering the original so it can be
// written back when the cursor moves away. The implementation is
// deliberately small: four directional moves with optional wraparound. A
// program that needs richer movement should drive the grid itself.
package cursor

import (
	"github.com/hnimtadd/boardio/board/cell"
	"github.com/hnimtadd/boardio/board/color"
	"github.com/hnimtadd/boardio/board/coordinate"
	"github.com/hnimtadd/boardio/board/grid"
	"github.com/hnimtadd/boardio/input"
)

// Direction of one cursor step.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Result of offering a key to the cursor.
type Result int

const (
	// The key is not a movement key; the caller should handle it.
	NotHandled Result = iota
	// The key was a movement key but the cursor stayed put (a non-wrapping
	// edge). The caller should not handle it further.
	Consumed
	// The cursor moved; the returned position is the new one.
	Moved
)

// DirectionFunc resolves a key to a movement direction. It reports false
// for keys it does not map.
type DirectionFunc func(key input.Key) (Direction, bool)

// DefaultDirections maps WASD and the arrow keys.
func DefaultDirections(key input.Key) (Direction, bool) {
	switch key.Kind {
	case input.KindLeft:
		return Left, true
	case input.KindRight:
		return Right, true
	case input.KindUp:
		return Up, true
	case input.KindDown:
		return Down, true
	case input.KindChar:
		switch key.Rune {
		case 'a':
			return Left, true
		case 'd':
			return Right, true
		case 'w':
			return Up, true
		case 's':
			return Down, true
		}
	}
	return 0, false
}

// Cursor state. Invariant: once attached to a grid, exactly one position
// holds highlighted content, and original always holds the pre-highlight
// value at that position.
type Cursor struct {
	original   cell.Cell
	background color.RGB
	position   coordinate.Position
	wrapAround bool
	direction  DirectionFunc
	rows       int
	columns    int
}

// New creates a cursor starting at position. A nil direction function
// selects DefaultDirections.
func New(background color.RGB, position coordinate.Position, wrapAround bool, direction DirectionFunc) *Cursor {
	if direction == nil {
		direction = DefaultDirections
	}
	return &Cursor{
		original:   cell.Empty(),
		background: background,
		position:   position,
		wrapAround: wrapAround,
		direction:  direction,
	}
}

// Init attaches the cursor to a grid: the starting cell is highlighted and
// its original value remembered. The cursor stays attached for the board's
// whole lifetime; there is no detach.
func (c *Cursor) Init(rows, columns int, g *grid.Grid) {
	c.rows = rows
	c.columns = columns
	c.original = g.HighlightAt(c.position, c.background)
}

// Position returns the current cursor position.
func (c *Cursor) Position() coordinate.Position {
	return c.position
}

// HandleKey resolves the key and moves the cursor. The returned position is
// meaningful only when the result is Moved.
func (c *Cursor) HandleKey(key input.Key, g *grid.Grid) (coordinate.Position, Result) {
	dir, ok := c.direction(key)
	if !ok {
		return c.position, NotHandled
	}
	switch dir {
	case Left:
		return c.step(g, -1, 0, c.position.X, c.columns)
	case Right:
		return c.step(g, 1, 0, c.position.X, c.columns)
	case Up:
		return c.step(g, 0, -1, c.position.Y, c.rows)
	case Down:
		return c.step(g, 0, 1, c.position.Y, c.rows)
	default:
		return c.position, NotHandled
	}
}

// CheckUpdates reconciles the cursor with an external batch of targeted
// updates. If the batch replaced the cell under the cursor, the new value
// becomes the remembered original and the highlight is reapplied on top.
// Skipping this would either erase the highlight or make the next move
// restore stale content.
func (c *Cursor) CheckUpdates(updates []grid.Update, g *grid.Grid) {
	for _, u := range updates {
		if u.Pos == c.position {
			c.original = g.HighlightAt(c.position, c.background)
			break
		}
	}
}

// step moves one cell along an axis: dx/dy pick the axis and sense, coord
// is the current coordinate on that axis and limit its cell count.
func (c *Cursor) step(g *grid.Grid, dx, dy, coord, limit int) (coordinate.Position, Result) {
	var next int
	switch {
	case dx < 0 || dy < 0:
		if coord == 0 {
			if !c.wrapAround {
				return c.position, Consumed
			}
			next = limit - 1
		} else {
			next = coord - 1
		}
	default:
		if coord == limit-1 {
			if !c.wrapAround {
				return c.position, Consumed
			}
			next = 0
		} else {
			next = coord + 1
		}
	}

	pos := c.position
	if dx != 0 {
		pos.X = next
	} else {
		pos.Y = next
	}
	return c.move(pos, g), Moved
}

// move restores the remembered value at the old position, highlights the
// new one and remembers what was there.
func (c *Cursor) move(pos coordinate.Position, g *grid.Grid) coordinate.Position {
	g.SetCell(c.original, c.position)
	c.position = pos
	c.original = g.HighlightAt(c.position, c.background)
	return c.position
}
