// Package input decodes raw terminal key input into abstract key events.
// It understands printable characters (UTF-8), C0 control bytes and the
// CSI/SS3 sequences terminals send for named keys. It does not parse any
// other terminal responses.
package input

// Kind names a decoded key.
type Kind int

const (
	// A printable character; the value is in Key.Rune.
	KindChar Kind = iota
	KindUp
	KindDown
	KindRight
	KindLeft
	KindHome
	KindEnd
	KindDelete
	KindPageUp
	KindPageDown
	KindBackspace
	KindEnter
	KindEsc
	// A control chord; Key.Rune holds the letter, e.g. 'c' for ctrl-c.
	KindCtrl
)

// Key is one decoded key event.
type Key struct {
	Kind Kind
	Rune rune
}

func Char(r rune) Key {
	return Key{Kind: KindChar, Rune: r}
}

func Ctrl(r rune) Key {
	return Key{Kind: KindCtrl, Rune: r}
}
