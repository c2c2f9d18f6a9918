package input

// The C0 control bytes the decoder cares about. Key input only ever uses a
// handful of them; everything else below 0x20 is reported as a ctrl chord.
type c0 struct {
	NUL uint8 // null (^@)
	HT  uint8 // horizontal tab (^I)
	LF  uint8 // line feed (^J)
	CR  uint8 // carriage return (^M)
	ESC uint8 // escape (^[)
	DEL uint8 // delete, sent by the backspace key on most terminals
}

var C0 = c0{
	NUL: 0x00,
	HT:  0x09,
	LF:  0x0A,
	CR:  0x0D,
	ESC: 0x1b,
	DEL: 0x7f,
}
