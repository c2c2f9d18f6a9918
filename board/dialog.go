package board

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/hnimtadd/boardio/board/chars"
)

// Leading alignment markers for dialog lines. Lines are left-aligned by
// default.
const (
	alignCenter = "|^|"
	alignRight  = "|>|"
)

// The dialog keeps one character of margin between the board border and
// its own border, and one between its border and the text, on both sides:
// 2 * (board border + margin + dialog border + margin) = 8.
const dialogMarginBudget = 8

// renderDialog paints the message dialog: a centered double-border box
// sized to its content and clamped to the board's interior. It is emitted
// in full on every query while shown.
func (b *Board) renderDialog() string {
	lines := b.messageLines

	maxLen := 0
	for _, l := range lines {
		if w := ansi.StringWidth(stripMarker(l)); w > maxLen {
			maxLen = w
		}
	}

	// Interior plus two border columns and two padding columns per axis.
	dlgW := min(maxLen, b.width-dialogMarginBudget) + 4
	dlgH := min(len(lines), b.height-dialogMarginBudget) + 4

	x := b.origin.X + (b.width-dlgW)/2
	y := b.origin.Y + (b.height-dlgH)/2

	hor := strings.Repeat(string(chars.DoubleBorderHorLine), dlgW-2)
	blank := strings.Repeat(" ", dlgW-2)

	var sb strings.Builder
	sb.Grow((dlgW + 16) * dlgH)

	// Top border and one blank padding row.
	sb.WriteString(ansi.CursorPosition(x, y))
	sb.WriteRune(chars.DoubleBorderTopLeft)
	sb.WriteString(hor)
	sb.WriteRune(chars.DoubleBorderTopRight)
	sb.WriteString(ansi.CursorPosition(x, y+1))
	sb.WriteRune(chars.DoubleBorderVertLine)
	sb.WriteString(blank)
	sb.WriteRune(chars.DoubleBorderVertLine)
	sb.WriteString(ansi.CursorPosition(x, y+2))

	// Content rows. Lines beyond the clamped height are dropped.
	row := y + 2
	for i := 2; i < dlgH-2; i++ {
		row++
		sb.WriteRune(chars.DoubleBorderVertLine)
		sb.WriteByte(' ')
		sb.WriteString(alignLine(lines[i-2], dlgW-4))
		sb.WriteByte(' ')
		sb.WriteRune(chars.DoubleBorderVertLine)
		sb.WriteString(ansi.CursorPosition(x, row))
	}

	// Blank padding row and bottom border.
	sb.WriteRune(chars.DoubleBorderVertLine)
	sb.WriteString(blank)
	sb.WriteRune(chars.DoubleBorderVertLine)
	sb.WriteString(ansi.CursorPosition(x, row+1))
	sb.WriteRune(chars.DoubleBorderBottomLeft)
	sb.WriteString(hor)
	sb.WriteRune(chars.DoubleBorderBottomRight)

	return sb.String()
}

func stripMarker(line string) string {
	switch {
	case strings.HasPrefix(line, alignCenter):
		return line[len(alignCenter):]
	case strings.HasPrefix(line, alignRight):
		return line[len(alignRight):]
	default:
		return line
	}
}

// alignLine pads or truncates one dialog line to the interior width,
// honoring its alignment marker. Width and truncation are escape-aware so
// styled lines do not skew the layout.
func alignLine(line string, width int) string {
	switch {
	case strings.HasPrefix(line, alignCenter):
		return padCenter(line[len(alignCenter):], width)
	case strings.HasPrefix(line, alignRight):
		return padLeft(line[len(alignRight):], width)
	default:
		return padRight(line, width)
	}
}

func padCenter(s string, width int) string {
	l := ansi.StringWidth(s)
	if l >= width {
		return ansi.Truncate(s, width, "")
	}
	left := (width - l) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-l-left)
}

func padLeft(s string, width int) string {
	l := ansi.StringWidth(s)
	if l >= width {
		return ansi.Truncate(s, width, "")
	}
	return strings.Repeat(" ", width-l) + s
}

func padRight(s string, width int) string {
	l := ansi.StringWidth(s)
	if l >= width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-l)
}
