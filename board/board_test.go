package board

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/hnimtadd/boardio/board/cell"
	"github.com/hnimtadd/boardio/board/color"
	"github.com/hnimtadd/boardio/board/coordinate"
	"github.com/hnimtadd/boardio/board/cursor"
	"github.com/hnimtadd/boardio/board/grid"
	"github.com/hnimtadd/boardio/input"
)

var highlightColor = color.NewRGB(0, 0, 200)

func newBoard(t *testing.T, cols, rows int) *Board {
	t.Helper()
	return New(Options{Cols: cols, Rows: rows, CellWidth: 1, CellHeight: 1})
}

// drain performs the initial full repaint so the board is clean.
func drain(t *testing.T, b *Board) {
	t.Helper()
	_, ok := b.Updates()
	assert.True(t, ok)
	assert.Equal(t, StateClean, b.State())
}

func TestNewValidatesDimensions(t *testing.T) {
	assert.Panics(t, func() { New(Options{Cols: 0, Rows: 3, CellWidth: 1, CellHeight: 1}) })
	assert.Panics(t, func() { New(Options{Cols: 3, Rows: 3, CellWidth: 1, CellHeight: 0}) })
}

func TestSizeIncludesBorders(t *testing.T) {
	b := New(Options{Cols: 3, Rows: 2, CellWidth: 4, CellHeight: 2})
	assert.Equal(t, 3*4+2, b.Width())
	assert.Equal(t, 2*2+2, b.Height())

	b = New(Options{Cols: 3, Rows: 2, CellWidth: 4, CellHeight: 2, CellBorders: true})
	assert.Equal(t, 3*4+2+2, b.Width())
	assert.Equal(t, 2*2+2+1, b.Height())
}

func TestFirstUpdatesIsFullRepaint(t *testing.T) {
	b := newBoard(t, 3, 3)
	b.InitFromString("---------", nil)
	assert.Equal(t, StateNeedsFullRepaint, b.State())

	out, ok := b.Updates()
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(out, b.Border()))

	// Acknowledged: the next query has nothing to paint.
	out, ok = b.Updates()
	assert.False(t, ok)
	assert.Empty(t, out)
	assert.Equal(t, StateClean, b.State())
}

func TestTargetedUpdatePaintsOnlyThatCell(t *testing.T) {
	b := newBoard(t, 3, 3)
	b.InitFromString("---------", nil)
	drain(t, b)

	b.UpdateCells([]grid.Update{{Cell: cell.Char('X'), Pos: coordinate.NewPosition(1, 1)}})
	assert.Equal(t, StateHasDirtyCells, b.State())

	out, ok := b.Updates()
	assert.True(t, ok)
	// Origin (1,1), one border column and row: center cell lands at (3,3).
	assert.Equal(t, ansi.CursorPosition(3, 3)+"X", out)
	assert.Equal(t, StateClean, b.State())
}

func TestTargetedUpdatesPaintEachDirtyCellOnce(t *testing.T) {
	b := newBoard(t, 3, 3)
	b.InitFromString("---------", nil)
	drain(t, b)

	b.UpdateCells([]grid.Update{
		{Cell: cell.Char('X'), Pos: coordinate.NewPosition(0, 0)},
		{Cell: cell.Char('O'), Pos: coordinate.NewPosition(2, 2)},
	})
	out, ok := b.Updates()
	assert.True(t, ok)

	first := ansi.CursorPosition(2, 2) + "X"
	second := ansi.CursorPosition(4, 4) + "O"
	assert.Contains(t, out, first)
	assert.Contains(t, out, second)
	// Dirty order is unspecified, but nothing else is emitted.
	assert.Len(t, out, len(first)+len(second))
}

func TestFullRepaintMatchesPerCellFormatting(t *testing.T) {
	b := newBoard(t, 2, 2)
	b.InitFromString("abcd", nil)

	var want strings.Builder
	want.WriteString(b.Border())
	coords := []coordinate.Position{{X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 3}, {X: 3, Y: 3}}
	for i, r := range "abcd" {
		p := coords[i]
		want.WriteString(cell.Char(r).Format(1, 1, p.X, p.Y, nil))
	}

	out, ok := b.Updates()
	assert.True(t, ok)
	assert.Equal(t, want.String(), out)
}

func TestBorderWithCellBorders(t *testing.T) {
	b := New(Options{Cols: 2, Rows: 2, CellWidth: 2, CellHeight: 1, CellBorders: true})

	rows := []string{
		"╔══╤══╗",
		"║  │  ║",
		"╟──┼──╢",
		"║  │  ║",
		"╚══╧══╝",
	}
	var want strings.Builder
	for i, r := range rows {
		want.WriteString(ansi.CursorPosition(1, 1+i))
		want.WriteString(r)
	}
	assert.Equal(t, want.String(), b.Border())
}

func TestCellOriginAccountsForCellBorders(t *testing.T) {
	b := New(Options{Cols: 2, Rows: 2, CellWidth: 2, CellHeight: 1, CellBorders: true})
	b.InitFromCells([]cell.Cell{cell.Empty(), cell.Empty(), cell.Empty(), cell.Char('x')}, nil)
	drain(t, b)

	b.UpdateCells([]grid.Update{{Cell: cell.Char('y'), Pos: coordinate.NewPosition(1, 1)}})
	out, _ := b.Updates()
	// Second column starts past the first cell and its divider; second row
	// likewise.
	assert.Equal(t, ansi.CursorPosition(5, 4)+"yy", out)
}

func TestInitFromStringValidation(t *testing.T) {
	b := newBoard(t, 3, 3)
	assert.Panics(t, func() { b.InitFromString("--------", nil) })

	big := New(Options{Cols: 3, Rows: 3, CellWidth: 2, CellHeight: 1})
	assert.Panics(t, func() { big.InitFromString("---------", nil) })
}

func TestInitFromStringNormalizes(t *testing.T) {
	b := newBoard(t, 2, 1)
	// "e" + U+0301 composes to a single rune under NFC.
	b.InitFromString("xé", nil)
	out, ok := b.Updates()
	assert.True(t, ok)
	assert.Contains(t, out, "é")
}

func TestDialogTakesOverTheSurface(t *testing.T) {
	b := newBoard(t, 10, 10)
	b.InitFromString(strings.Repeat("-", 100), nil)
	drain(t, b)

	b.ShowMessage([]string{"hi"})
	assert.Equal(t, StateDialogShown, b.State())

	var want strings.Builder
	want.WriteString(ansi.CursorPosition(4, 4) + "╔════╗")
	want.WriteString(ansi.CursorPosition(4, 5) + "║    ║")
	want.WriteString(ansi.CursorPosition(4, 6) + "║ hi ║")
	want.WriteString(ansi.CursorPosition(4, 7) + "║    ║")
	want.WriteString(ansi.CursorPosition(4, 8) + "╚════╝")

	out, ok := b.Updates()
	assert.True(t, ok)
	assert.Equal(t, want.String(), out)

	// The dialog is repainted in full on every query while shown.
	again, ok := b.Updates()
	assert.True(t, ok)
	assert.Equal(t, out, again)
}

func TestUpdateCellsPanicsWhileDialogShown(t *testing.T) {
	b := newBoard(t, 10, 10)
	b.InitFromString(strings.Repeat("-", 100), nil)
	drain(t, b)

	b.ShowMessage([]string{"hi"})
	assert.Panics(t, func() {
		b.UpdateCells([]grid.Update{{Cell: cell.Char('X'), Pos: coordinate.NewPosition(0, 0)}})
	})
}

func TestHideMessageForcesFullRepaint(t *testing.T) {
	b := newBoard(t, 10, 10)
	b.InitFromString(strings.Repeat("-", 100), nil)
	drain(t, b)

	b.ShowMessage([]string{"hi"})
	_, _ = b.Updates()
	b.HideMessage()
	assert.Equal(t, StateNeedsFullRepaint, b.State())

	out, ok := b.Updates()
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(out, b.Border()))
	assert.Equal(t, StateClean, b.State())
}

func TestShowMessageRequiresLines(t *testing.T) {
	b := newBoard(t, 10, 10)
	assert.Panics(t, func() { b.ShowMessage(nil) })
}

func TestShowMessageCopiesLines(t *testing.T) {
	b := newBoard(t, 10, 10)
	b.InitFromString(strings.Repeat("-", 100), nil)
	drain(t, b)

	lines := []string{"hi"}
	b.ShowMessage(lines)
	first, _ := b.Updates()
	lines[0] = "bye"
	second, _ := b.Updates()
	assert.Equal(t, first, second)
}

func TestDialogAlignmentMarkers(t *testing.T) {
	assert.Equal(t, "ab    ", alignLine("ab", 6))
	assert.Equal(t, "  ab  ", alignLine("|^|ab", 6))
	assert.Equal(t, "    ab", alignLine("|>|ab", 6))
}

func TestDialogAlignmentIsEscapeAware(t *testing.T) {
	styled := "\x1b[31mab\x1b[0m"
	assert.Equal(t, "  "+styled+"  ", alignLine("|^|"+styled, 6))
	assert.Equal(t, 2, ansi.StringWidth(stripMarker("|>|"+styled)))
}

func TestCursorMoveDirtiesBothCells(t *testing.T) {
	b := newBoard(t, 3, 3)
	cur := cursor.New(highlightColor, coordinate.NewPosition(0, 0), false, nil)
	b.InitFromString("---------", cur)
	drain(t, b)

	pos, res := b.HandleKey(input.Char('d'))
	assert.Equal(t, cursor.Moved, res)
	assert.Equal(t, coordinate.NewPosition(1, 0), pos)

	out, ok := b.Updates()
	assert.True(t, ok)
	// The restored old cell and the newly highlighted one.
	assert.Contains(t, out, ansi.CursorPosition(2, 2)+"-")
	assert.Contains(t, out, ansi.CursorPosition(3, 2))
}

func TestHandleKeyWithoutCursor(t *testing.T) {
	b := newBoard(t, 3, 3)
	b.InitFromString("---------", nil)
	_, res := b.HandleKey(input.Char('d'))
	assert.Equal(t, cursor.NotHandled, res)
}

func TestSetOriginShiftsEverything(t *testing.T) {
	b := newBoard(t, 2, 2)
	b.SetOrigin(coordinate.NewPosition(10, 5))
	b.InitFromString("abcd", nil)
	drain(t, b)

	b.UpdateCells([]grid.Update{{Cell: cell.Char('X'), Pos: coordinate.NewPosition(0, 0)}})
	out, _ := b.Updates()
	assert.Equal(t, ansi.CursorPosition(11, 6)+"X", out)
}
