package cell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mitchellh/hashstructure/v2"
	"github.com/rivo/uniseg"

	"github.com/hnimtadd/boardio/board/color"
	"github.com/hnimtadd/boardio/board/resource"
	"github.com/hnimtadd/boardio/board/utils"
)

type Tag int

const (
	// Empty cell, rendered as spaces.
	TagEmpty Tag = iota
	// A single codepoint. If the cell is larger than 1x1 the whole
	// rectangle is filled with it.
	TagChar
	// A resource id. The payload lives in the board's resource table.
	TagResource
	// An arbitrary string, laid into the rectangle line by line. The string
	// may carry SGR escape sequences; they are passed through verbatim and
	// never count toward the line width. Styling is always reset at the end
	// of the cell, so it cannot leak into neighbours.
	//
	// Do not put a full style reset or a background color inside the string
	// of a cell that the cursor can visit: the cursor highlight is itself a
	// background color prefix and the two overlap.
	TagContent
)

// In-band escape sequences inside cell content start with ESC and end at
// the SGR terminator. Everything between contributes zero display width.
const (
	escStart      = 0x1b
	escTerminator = 'm'
)

const (
	noTableMsg    = "cell references a resource id but no resource table is attached to the board"
	missingResMsg = "cell references a resource id that is not in the resource table"
)

// Cell is one renderable unit of the grid. It is an immutable value; copy
// it freely.
type Cell struct {
	Tag      Tag
	Char     rune
	Resource resource.ID
	Content  string
}

func Empty() Cell {
	return Cell{Tag: TagEmpty}
}

func Char(r rune) Cell {
	return Cell{Tag: TagChar, Char: r}
}

func Resource(id resource.ID) Cell {
	return Cell{Tag: TagResource, Resource: id}
}

func Content(s string) Cell {
	return Cell{Tag: TagContent, Content: s}
}

// Format produces the exact byte stream that paints this cell into a
// width x height rectangle whose top-left corner is at the terminal
// coordinate (x, y), 1-based: positioning directives, printable text and,
// for styled tags, one trailing reset-all directive.
//
// Panics if the cell is a resource reference and res does not resolve it;
// that is a contract violation, not a recoverable error.
func (c Cell) Format(width, height, x, y int, res resource.Table) string {
	switch c.Tag {
	case TagEmpty:
		return fillRect(' ', width, height, x, y)
	case TagChar:
		return fillRect(c.Char, width, height, x, y)
	case TagResource:
		return layout(c.payload(res), width, height, x, y)
	case TagContent:
		return layout(c.Content, width, height, x, y)
	default:
		panic("unknown cell tag")
	}
}

// Highlight returns the highlighted variant of the cell: its effective
// content prefixed with a background-color directive. The result is a
// Content cell, so it formats under the same rules as any other cell.
func (c Cell) Highlight(width, height int, res resource.Table, bg color.RGB) Cell {
	prefix := bg.BgSequence()
	switch c.Tag {
	case TagEmpty:
		return Content(prefix + strings.Repeat(" ", width*height))
	case TagChar:
		return Content(prefix + strings.Repeat(string(c.Char), width*height))
	case TagResource:
		return Content(prefix + c.payload(res))
	case TagContent:
		return Content(prefix + c.Content)
	default:
		panic("unknown cell tag")
	}
}

// Hash is a stable hash over the cell value, used to key the board's
// format cache.
func (c Cell) Hash() uint64 {
	hashed, err := hashstructure.Hash(c, hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash cell: %v", err))
	return hashed
}

func (c Cell) payload(res resource.Table) string {
	utils.Assert(res != nil, noTableMsg)
	s, ok := res.Lookup(c.Resource)
	utils.Assert(ok, missingResMsg)
	return s
}

// fillRect paints every line of the rectangle with the same glyph. No
// styling can be introduced here, so no reset is emitted.
func fillRect(r rune, width, height, x, y int) string {
	var sb strings.Builder
	line := strings.Repeat(string(r), width)
	for i := 0; i < height; i++ {
		sb.WriteString(ansi.CursorPosition(x, y+i))
		sb.WriteString(line)
	}
	return sb.String()
}

// layout cuts content into width-sized lines and emits each with a
// positioning directive, stopping after height lines. Printable units are
// extended grapheme clusters, never raw codepoints, so a multi-codepoint
// glyph is never split. Escape-sequence bytes are copied through with the
// chunk they precede and contribute nothing to the width budget. A
// trailing chunk shorter than a full line is not emitted.
func layout(content string, width, height, x, y int) string {
	var sb strings.Builder
	sb.WriteString(ansi.CursorPosition(x, y))

	lineStart := 0
	printed := 0
	inEscape := false
	row := y

	gr := uniseg.NewGraphemes(content)
scan:
	for gr.Next() {
		cluster := gr.Str()
		switch {
		case cluster[0] == escStart:
			inEscape = true
		case inEscape:
			if cluster[0] == escTerminator {
				inEscape = false
			}
		default:
			printed++
			if printed == width {
				_, end := gr.Positions()
				sb.WriteString(content[lineStart:end])
				lineStart = end
				printed = 0
				row++
				height--
				if height == 0 {
					// Rectangle is full: the rest is silently truncated.
					break scan
				}
				sb.WriteString(ansi.CursorPosition(x, row))
			}
		}
	}

	sb.WriteString(ansi.ResetStyle)
	return sb.String()
}
