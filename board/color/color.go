package color

import "github.com/charmbracelet/x/ansi"

// RGB is a 24-bit color value.
type RGB struct {
	R, G, B uint8
}

func NewRGB(r, g, b uint8) RGB {
	return RGB{R: r, G: g, B: b}
}

// ANSI converts the value into the terminal-control layer's color type so it
// can be used in SGR directives.
func (c RGB) ANSI() ansi.TrueColor {
	return ansi.TrueColor(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
}

// BgSequence returns the directive that switches the background color to c.
// The directive is opaque to callers; only the terminal interprets it.
func (c RGB) BgSequence() string {
	return ansi.Style{}.BackgroundColor(c.ANSI()).String()
}
