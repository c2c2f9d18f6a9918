package input

// Streaming UTF-8 decoder, fed one byte at a time by the key decoder.
//
// This is the DFA described by Bjoern Hoehrmann at
// http://bjoern.hoehrmann.de/utf-8/decoder/dfa with ill-formed sequences
// replaced by U+FFFD.
type utf8Decoder struct {
	state       uint8
	accumulator uint32
}

const (
	stateUTF8Accept = 0
	stateUTF8Reject = 12
)

var utf8d = [364]uint8{
	// Byte to character class.
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	8, 8, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	10, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 4, 3, 3, 11, 6, 6, 6, 5, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,

	// State + class to next state.
	0, 12, 24, 36, 60, 96, 84, 12, 12, 12, 48, 72, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
	12, 0, 12, 12, 12, 12, 12, 0, 12, 0, 12, 12, 12, 24, 12, 12, 12, 12, 12, 24, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12, 12, 12, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12, 12, 36, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// next feeds one byte into the automaton. It reports the decoded codepoint
// once a sequence completes, whether one was generated, and whether the
// byte was consumed. The byte is only left unconsumed when an ill-formed
// sequence was detected mid-run; the caller must feed it again.
func (d *utf8Decoder) next(c uint8) (cp uint32, generated bool, consumed bool) {
	typ := utf8d[c]
	initial := d.state

	if d.state != stateUTF8Accept {
		d.accumulator <<= 6
		d.accumulator |= uint32(c) & 0x3F
	} else {
		d.accumulator = (uint32(0xFF) >> typ) & uint32(c)
	}
	d.state = utf8d[256+int(d.state)+int(typ)]

	switch d.state {
	case stateUTF8Accept:
		cp = d.accumulator
		d.accumulator = 0
		return cp, true, true

	case stateUTF8Reject:
		d.accumulator = 0
		d.state = stateUTF8Accept
		// Emit a replacement character. If the offending byte opened the
		// sequence it was consumed, otherwise it must be replayed.
		return 0xFFFD, true, initial == stateUTF8Accept

	default:
		return 0, false, true
	}
}
