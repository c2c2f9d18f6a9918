// Package board renders a fixed grid of cells into a terminal directive
// stream. It composes the cell grid, an optional cursor overlay, border
// drawing and a modal text dialog, and decides on every query whether a
// full repaint, a sparse repaint or no repaint is needed.
//
// Everything here is a pure in-memory computation: operations return the
// bytes to write and never touch the terminal themselves. One control loop
// drives the board; nothing is safe for concurrent use.
package board

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	dw "github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"github.com/hnimtadd/boardio/board/cache"
	"github.com/hnimtadd/boardio/board/cell"
	"github.com/hnimtadd/boardio/board/chars"
	"github.com/hnimtadd/boardio/board/coordinate"
	"github.com/hnimtadd/boardio/board/cursor"
	"github.com/hnimtadd/boardio/board/grid"
	"github.com/hnimtadd/boardio/board/resource"
	"github.com/hnimtadd/boardio/board/utils"
	"github.com/hnimtadd/boardio/input"
	"github.com/hnimtadd/boardio/logger"
)

type Options struct {
	Cols int // horizontal cell count
	Rows int // vertical cell count

	// Per-cell size in characters.
	CellWidth  int
	CellHeight int

	// Draw single-line borders between cells. The outer double-line border
	// is always drawn.
	CellBorders bool

	// Shared payloads for Resource cells. Optional; attached once, read-only
	// afterwards.
	Resources resource.Table

	Logger logger.Logger
}

type Board struct {
	// Top-left screen coordinate, 1-based. Assigned by the session layout.
	origin coordinate.Position
	// Total size in characters, borders included.
	width  int
	height int

	rows        int
	columns     int
	cellWidth   int
	cellHeight  int
	cellBorders bool

	grid      *grid.Grid
	resources resource.Table
	cursor    *cursor.Cursor

	// Dialog line buffer; non-nil while the dialog owns the surface.
	messageLines []string

	// Structural invalidation: the next repaint emits border + every cell.
	updateAll bool

	formatted *cache.Cache
	logger    logger.Logger
}

func New(opts Options) *Board {
	utils.Assert(opts.Cols > 0 && opts.Rows > 0, "board needs at least one cell")
	utils.Assert(opts.CellWidth > 0 && opts.CellHeight > 0, "cell size must be positive")

	wBorders, hBorders := 2, 2
	if opts.CellBorders {
		wBorders += opts.Cols - 1
		hBorders += opts.Rows - 1
	}

	log := opts.Logger
	if log == nil {
		log = logger.Discard
	}

	return &Board{
		origin:      coordinate.NewPosition(1, 1),
		width:       opts.Cols*opts.CellWidth + wBorders,
		height:      opts.Rows*opts.CellHeight + hBorders,
		rows:        opts.Rows,
		columns:     opts.Cols,
		cellWidth:   opts.CellWidth,
		cellHeight:  opts.CellHeight,
		cellBorders: opts.CellBorders,
		grid:        grid.New(opts.Cols, opts.Rows, opts.CellWidth, opts.CellHeight, opts.Resources),
		resources:   opts.Resources,
		formatted:   cache.New(4 * opts.Cols * opts.Rows),
		logger:      log,
	}
}

// Width returns the total board width in characters, borders included.
func (b *Board) Width() int {
	return b.width
}

// Height returns the total board height in characters, borders included.
func (b *Board) Height() int {
	return b.height
}

// SetOrigin moves the board's top-left corner to a screen coordinate
// (1-based). The session calls this once during layout.
func (b *Board) SetOrigin(pos coordinate.Position) {
	b.origin = pos
}

// InitFromCells fills the grid row by row from a slice of cells and
// attaches the cursor, if any. Panics if the slice length is not
// rows*columns.
func (b *Board) InitFromCells(cells []cell.Cell, cur *cursor.Cursor) {
	b.grid.InitFromCells(cells)
	b.attachCursor(cur)
	b.updateAll = true
}

// InitFromString fills the grid row by row with one Char cell per rune.
// Only boards with 1x1 cells can be initialized this way; anything else
// panics, as does a rune count that is not rows*columns.
//
// The string is NFC-normalized first, but runes are still counted as
// codepoints, not grapheme clusters: a glyph that stays multi-codepoint
// after normalization, or one wider than a single column, breaks the board
// alignment and is unsupported. Wide runes are logged and left alone.
func (b *Board) InitFromString(cells string, cur *cursor.Cursor) {
	utils.Assert(b.cellWidth == 1 && b.cellHeight == 1,
		"string initialization works for boards with 1x1 cells only")
	runes := []rune(norm.NFC.String(cells))
	utils.Assert(len(runes) == b.rows*b.columns, "invalid number of cells")
	for _, r := range runes {
		if dw.RuneWidth(r) > 1 {
			b.logger.Warn("cell character is wider than one column; alignment is undefined",
				"char", string(r))
			break
		}
	}
	b.grid.InitFromChars(runes)
	b.attachCursor(cur)
	b.updateAll = true
}

func (b *Board) attachCursor(cur *cursor.Cursor) {
	if cur != nil {
		cur.Init(b.rows, b.columns, b.grid)
		b.cursor = cur
	}
}

// State reports the repaint state the next Updates call will act on.
func (b *Board) State() State {
	switch {
	case b.messageLines != nil:
		return StateDialogShown
	case b.updateAll || b.grid.NeedsUpdateAll():
		return StateNeedsFullRepaint
	case b.grid.HasUpdates():
		return StateHasDirtyCells
	default:
		return StateClean
	}
}

// Updates computes the next repaint. It reports false when there is
// nothing to paint; callers must not write anything in that case. The
// strategies, in strict priority order:
//
//  1. dialog shown: the dialog alone, repainted in full on every query;
//  2. structural invalidation: border plus every cell, then the flag
//     clears;
//  3. dirty cells only, at their mapped coordinates;
//  4. nothing.
func (b *Board) Updates() (string, bool) {
	if b.messageLines != nil {
		return b.renderDialog(), true
	}

	if !b.updateAll && !b.grid.HasUpdates() {
		return "", false
	}

	var sb strings.Builder
	updateAll := b.updateAll || b.grid.NeedsUpdateAll()
	if updateAll {
		sb.WriteString(b.Border())
	}

	switch {
	case updateAll && b.cellWidth == 1 && b.cellHeight == 1 && !b.cellBorders:
		// One linear scan with coordinates advanced in place instead of the
		// index-to-coordinate mapping. The emitted bytes are identical to
		// the general path below.
		x := b.origin.X + 1
		y := b.origin.Y + 1
		for i, c := range b.grid.Cells() {
			if i > 0 && i%b.columns == 0 {
				x = b.origin.X + 1
				y++
			}
			sb.WriteString(b.formatCell(c, x, y))
			x++
		}
	case updateAll:
		for i, c := range b.grid.Cells() {
			p := b.cellOrigin(i)
			sb.WriteString(b.formatCell(c, p.X, p.Y))
		}
	default:
		for _, i := range b.grid.DirtyIndices() {
			p := b.cellOrigin(i)
			sb.WriteString(b.formatCell(b.grid.At(i), p.X, p.Y))
		}
	}

	b.grid.UpdateComplete()
	b.updateAll = false
	return sb.String(), true
}

// UpdateCells applies a batch of targeted cell updates and reconciles the
// cursor with it. Panics if the dialog is shown: the dialog owns the
// surface until it is explicitly hidden.
func (b *Board) UpdateCells(updates []grid.Update) {
	utils.Assert(b.messageLines == nil,
		"cells cannot be updated while a message dialog is shown; hide it first")
	b.grid.Set(updates)
	if b.cursor != nil {
		b.cursor.CheckUpdates(updates, b.grid)
	}
}

// HandleKey offers a key to the cursor. Without a cursor every key is
// NotHandled.
func (b *Board) HandleKey(key input.Key) (coordinate.Position, cursor.Result) {
	if b.cursor == nil {
		return coordinate.Position{}, cursor.NotHandled
	}
	return b.cursor.HandleKey(key, b.grid)
}

// ShowMessage opens the modal dialog over the board. While it is shown,
// Updates paints only the dialog and cell updates are forbidden.
func (b *Board) ShowMessage(lines []string) {
	utils.Assert(len(lines) > 0, "message dialog needs at least one line")
	b.messageLines = make([]string, len(lines))
	copy(b.messageLines, lines)
}

// HideMessage closes the dialog and forces one full repaint to wipe its
// remnants off the board.
func (b *Board) HideMessage() {
	b.messageLines = nil
	b.updateAll = true
}

// Border renders the whole static frame: the outer double-line border and,
// if enabled, single-line borders between cells.
func (b *Board) Border() string {
	// Positioning directives cost a handful of bytes per row.
	var sb strings.Builder
	sb.Grow((b.width + 16) * b.height)

	for h := 0; h < b.height; h++ {
		sb.WriteString(ansi.CursorPosition(b.origin.X, b.origin.Y+h))
		for w := 0; w < b.width; w++ {
			if ch, ok := b.borderChar(w, h); ok {
				sb.WriteRune(ch)
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// borderChar picks the frame glyph for a board-relative character
// coordinate, based on whether that row/column lies on a cell boundary.
func (b *Board) borderChar(w, h int) (rune, bool) {
	hCellBorder := h%(b.cellHeight+1) == 0
	vCellBorder := w%(b.cellWidth+1) == 0

	switch {
	case w == 0 && h == 0:
		return chars.DoubleBorderTopLeft, true
	case w == b.width-1 && h == 0:
		return chars.DoubleBorderTopRight, true
	case w == 0 && h == b.height-1:
		return chars.DoubleBorderBottomLeft, true
	case w == b.width-1 && h == b.height-1:
		return chars.DoubleBorderBottomRight, true
	case h == 0:
		if b.cellBorders && vCellBorder {
			return chars.DoubleBorderJoinUp, true
		}
		return chars.DoubleBorderHorLine, true
	case h == b.height-1:
		if b.cellBorders && vCellBorder {
			return chars.DoubleBorderJoinDown, true
		}
		return chars.DoubleBorderHorLine, true
	case w == 0:
		if b.cellBorders && hCellBorder {
			return chars.DoubleBorderJoinLeft, true
		}
		return chars.DoubleBorderVertLine, true
	case w == b.width-1:
		if b.cellBorders && hCellBorder {
			return chars.DoubleBorderJoinRight, true
		}
		return chars.DoubleBorderVertLine, true
	case b.cellBorders && hCellBorder && vCellBorder:
		return chars.SingleBorderCross, true
	case b.cellBorders && hCellBorder:
		return chars.SingleBorderHorLine, true
	case b.cellBorders && vCellBorder:
		return chars.SingleBorderVertLine, true
	default:
		return 0, false
	}
}

// cellOrigin maps a row-major cell index to the screen coordinate of the
// cell's top-left character.
func (b *Board) cellOrigin(i int) coordinate.Position {
	stepX, stepY := b.cellWidth, b.cellHeight
	if b.cellBorders {
		stepX++
		stepY++
	}
	return coordinate.NewPosition(
		b.origin.X+1+(i%b.columns)*stepX,
		b.origin.Y+1+(i/b.columns)*stepY,
	)
}

// formatCell returns the cell's painted rectangle, memoized by cell value
// and placement.
func (b *Board) formatCell(c cell.Cell, x, y int) string {
	w, h := b.cellWidth, b.cellHeight
	k := cache.Key{Hash: c.Hash(), Width: w, Height: h, X: x, Y: y}
	if s, ok := b.formatted.Get(k); ok {
		return s
	}
	s := c.Format(w, h, x, y, b.resources)
	b.formatted.Put(k, s)
	return s
}
