// Package info is the optional auxiliary panel displayed next to a board:
// a double-border box on one side of the board, sized on one axis only
// (the other axis is taken from the board during session layout). It holds
// free text lines and repaints them only when they change.
package info

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/hnimtadd/boardio/board/chars"
	"github.com/hnimtadd/boardio/board/coordinate"
)

// Layout places the panel relative to the board.
type Layout int

const (
	LayoutLeft Layout = iota
	LayoutRight
	LayoutTop
	LayoutBottom
)

type Info struct {
	position coordinate.Position
	width    int
	height   int
	// The fixed dimension in characters, borders included. Which axis it
	// constrains depends on the layout.
	size   int
	layout Layout

	lines []string
	dirty bool
}

// New creates a panel. size is the panel's own dimension in characters
// (width for Left/Right, height for Top/Bottom); the borders are added on
// top of it.
func New(size int, layout Layout) *Info {
	return &Info{
		position: coordinate.NewPosition(1, 1),
		width:    1,
		height:   1,
		size:     size + 2,
		layout:   layout,
	}
}

// Size returns the fixed dimension, borders included.
func (i *Info) Size() int {
	return i.size
}

func (i *Info) Layout() Layout {
	return i.layout
}

// SetArea assigns the panel's screen position and final size. The session
// calls this during layout.
func (i *Info) SetArea(pos coordinate.Position, width, height int) {
	i.position = pos
	i.width = width
	i.height = height
	if len(i.lines) > 0 {
		i.dirty = true
	}
}

// SetText replaces the panel's content. The next Updates call repaints the
// interior. Lines beyond the interior height are dropped; long lines are
// truncated (escape-aware).
func (i *Info) SetText(lines []string) {
	i.lines = make([]string, len(lines))
	copy(i.lines, lines)
	i.dirty = true
}

// Border renders the panel frame.
func (i *Info) Border() string {
	x, y := i.position.X, i.position.Y

	var sb strings.Builder
	sb.Grow((i.width + 16) * i.height)

	sb.WriteString(ansi.CursorPosition(x, y))
	sb.WriteRune(chars.DoubleBorderTopLeft)
	sb.WriteString(strings.Repeat(string(chars.DoubleBorderHorLine), i.width-2))
	sb.WriteRune(chars.DoubleBorderTopRight)
	sb.WriteString(ansi.CursorPosition(x, y+1))
	y++

	for n := 0; n < i.height-2; n++ {
		sb.WriteRune(chars.DoubleBorderVertLine)
		sb.WriteString(ansi.CursorPosition(x+i.width-1, y))
		sb.WriteRune(chars.DoubleBorderVertLine)
		sb.WriteString(ansi.CursorPosition(x, y+1))
		y++
	}

	sb.WriteRune(chars.DoubleBorderBottomLeft)
	sb.WriteString(strings.Repeat(string(chars.DoubleBorderHorLine), i.width-2))
	sb.WriteRune(chars.DoubleBorderBottomRight)
	return sb.String()
}

// Updates repaints the interior when the content changed. It reports false
// when there is nothing to write.
func (i *Info) Updates() (string, bool) {
	if !i.dirty {
		return "", false
	}
	i.dirty = false

	interiorW := i.width - 2
	interiorH := i.height - 2
	if interiorW <= 0 || interiorH <= 0 {
		return "", false
	}

	var sb strings.Builder
	for row := 0; row < interiorH; row++ {
		line := ""
		if row < len(i.lines) {
			line = i.lines[row]
		}
		if w := ansi.StringWidth(line); w > interiorW {
			line = ansi.Truncate(line, interiorW, "")
		} else {
			line += strings.Repeat(" ", interiorW-w)
		}
		sb.WriteString(ansi.CursorPosition(i.position.X+1, i.position.Y+1+row))
		sb.WriteString(line)
		sb.WriteString(ansi.ResetStyle)
	}
	return sb.String(), true
}
