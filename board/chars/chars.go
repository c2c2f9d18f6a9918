// Package chars holds the fixed glyph table used for board and dialog
// borders. Outer borders and dialogs use double-line glyphs, inter-cell
// borders use single-line glyphs.
package chars

const (
	DoubleBorderHorLine     = '═'
	DoubleBorderVertLine    = '║'
	DoubleBorderTopLeft     = '╔'
	DoubleBorderTopRight    = '╗'
	DoubleBorderBottomLeft  = '╚'
	DoubleBorderBottomRight = '╝'
	DoubleBorderJoinLeft    = '╟'
	DoubleBorderJoinRight   = '╢'
	DoubleBorderJoinUp      = '╤'
	DoubleBorderJoinDown    = '╧'

	SingleBorderHorLine  = '─'
	SingleBorderVertLine = '│'
	SingleBorderCross    = '┼'
)
