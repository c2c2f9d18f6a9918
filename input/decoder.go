package input

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const maxCSIParamBytes = 16

// Decoder turns a raw byte stream into key events. Reads are blocking; the
// caller runs it from a single input loop.
//
// A lone ESC press is only reported once the next byte arrives or the
// stream ends, since ESC is also the prefix of every named-key sequence.
type Decoder struct {
	r    *bufio.Reader
	utf8 utf8Decoder
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next blocks until one key event is decoded or the stream fails. io.EOF
// is returned once the input is exhausted.
func (d *Decoder) Next() (Key, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return Key{}, err
		}

		switch {
		case b == C0.ESC:
			return d.decodeEscape()
		case b == C0.CR || b == C0.LF:
			return Key{Kind: KindEnter}, nil
		case b == C0.HT:
			return Char('\t'), nil
		case b == C0.DEL:
			return Key{Kind: KindBackspace}, nil
		case b == C0.NUL:
			continue
		case b < 0x20:
			return Ctrl(rune('a' + b - 1)), nil
		default:
			return d.decodeChar(b)
		}
	}
}

// decodeChar runs the UTF-8 automaton until it yields a codepoint.
func (d *Decoder) decodeChar(b byte) (Key, error) {
	cp, generated, consumed := d.utf8.next(b)
	for !generated {
		nb, err := d.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		b = nb
		cp, generated, consumed = d.utf8.next(b)
	}
	if !consumed {
		// Ill-formed sequence: replay the byte that broke it.
		_ = d.r.UnreadByte()
	}
	return Char(rune(cp)), nil
}

func (d *Decoder) decodeEscape() (Key, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return Key{Kind: KindEsc}, nil
		}
		return Key{}, err
	}

	switch b {
	case '[':
		return d.decodeCSI()
	case 'O':
		return d.decodeSS3()
	default:
		// Not a sequence we know; report ESC and let the byte be decoded
		// on its own.
		_ = d.r.UnreadByte()
		return Key{Kind: KindEsc}, nil
	}
}

func (d *Decoder) decodeCSI() (Key, error) {
	var params strings.Builder
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return Key{Kind: KindEsc}, nil
			}
			return Key{}, err
		}
		// Final bytes of a CSI sequence are 0x40..0x7E.
		if b >= 0x40 && b <= 0x7E {
			return csiKey(b, params.String()), nil
		}
		params.WriteByte(b)
		if params.Len() > maxCSIParamBytes {
			return Key{Kind: KindEsc}, nil
		}
	}
}

func (d *Decoder) decodeSS3() (Key, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return Key{Kind: KindEsc}, nil
		}
		return Key{}, err
	}
	switch b {
	case 'A':
		return Key{Kind: KindUp}, nil
	case 'B':
		return Key{Kind: KindDown}, nil
	case 'C':
		return Key{Kind: KindRight}, nil
	case 'D':
		return Key{Kind: KindLeft}, nil
	case 'H':
		return Key{Kind: KindHome}, nil
	case 'F':
		return Key{Kind: KindEnd}, nil
	default:
		return Key{Kind: KindEsc}, nil
	}
}

func csiKey(final byte, params string) Key {
	switch final {
	case 'A':
		return Key{Kind: KindUp}
	case 'B':
		return Key{Kind: KindDown}
	case 'C':
		return Key{Kind: KindRight}
	case 'D':
		return Key{Kind: KindLeft}
	case 'H':
		return Key{Kind: KindHome}
	case 'F':
		return Key{Kind: KindEnd}
	case '~':
		first, _, _ := strings.Cut(params, ";")
		n, err := strconv.Atoi(first)
		if err != nil {
			return Key{Kind: KindEsc}
		}
		switch n {
		case 1, 7:
			return Key{Kind: KindHome}
		case 3:
			return Key{Kind: KindDelete}
		case 4, 8:
			return Key{Kind: KindEnd}
		case 5:
			return Key{Kind: KindPageUp}
		case 6:
			return Key{Kind: KindPageDown}
		}
	}
	return Key{Kind: KindEsc}
}
