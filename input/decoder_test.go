package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// decodeAll drains the stream and returns every key until EOF.
func decodeAll(t *testing.T, raw string) []Key {
	t.Helper()
	d := NewDecoder(strings.NewReader(raw))
	var keys []Key
	for {
		k, err := d.Next()
		if err == io.EOF {
			return keys
		}
		assert.NoError(t, err)
		keys = append(keys, k)
	}
}

func TestDecodePrintableASCII(t *testing.T) {
	keys := decodeAll(t, "ab ")
	assert.Equal(t, []Key{Char('a'), Char('b'), Char(' ')}, keys)
}

func TestDecodeMultiByteUTF8(t *testing.T) {
	keys := decodeAll(t, "é你🙂")
	assert.Equal(t, []Key{Char('é'), Char('你'), Char('🙂')}, keys)
}

func TestDecodeIllFormedUTF8YieldsReplacement(t *testing.T) {
	// A continuation byte with no lead, then a plain character.
	keys := decodeAll(t, "\x80a")
	assert.Equal(t, []Key{Char('�'), Char('a')}, keys)
}

func TestDecodeTruncatedUTF8ReplaysNextByte(t *testing.T) {
	// 0xC3 starts a two-byte sequence; 'a' breaks it and must come
	// through as its own key.
	keys := decodeAll(t, "\xc3a")
	assert.Equal(t, []Key{Char('�'), Char('a')}, keys)
}

func TestDecodeControlBytes(t *testing.T) {
	keys := decodeAll(t, "\x03\x1a")
	assert.Equal(t, []Key{Ctrl('c'), Ctrl('z')}, keys)
}

func TestDecodeEnterAndTabAndBackspace(t *testing.T) {
	keys := decodeAll(t, "\r\n\t\x7f")
	assert.Equal(t, []Key{
		{Kind: KindEnter},
		{Kind: KindEnter},
		Char('\t'),
		{Kind: KindBackspace},
	}, keys)
}

func TestDecodeNULIsSkipped(t *testing.T) {
	keys := decodeAll(t, "\x00a")
	assert.Equal(t, []Key{Char('a')}, keys)
}

func TestDecodeCSIArrows(t *testing.T) {
	keys := decodeAll(t, "\x1b[A\x1b[B\x1b[C\x1b[D")
	assert.Equal(t, []Key{
		{Kind: KindUp}, {Kind: KindDown}, {Kind: KindRight}, {Kind: KindLeft},
	}, keys)
}

func TestDecodeSS3Arrows(t *testing.T) {
	keys := decodeAll(t, "\x1bOA\x1bOD\x1bOH\x1bOF")
	assert.Equal(t, []Key{
		{Kind: KindUp}, {Kind: KindLeft}, {Kind: KindHome}, {Kind: KindEnd},
	}, keys)
}

func TestDecodeTildeSequences(t *testing.T) {
	cases := map[string]Kind{
		"\x1b[1~": KindHome,
		"\x1b[3~": KindDelete,
		"\x1b[4~": KindEnd,
		"\x1b[5~": KindPageUp,
		"\x1b[6~": KindPageDown,
		"\x1b[7~": KindHome,
		"\x1b[8~": KindEnd,
	}
	for raw, kind := range cases {
		keys := decodeAll(t, raw)
		assert.Equal(t, []Key{{Kind: kind}}, keys, "sequence %q", raw)
	}
}

func TestDecodeHomeEndFinals(t *testing.T) {
	keys := decodeAll(t, "\x1b[H\x1b[F")
	assert.Equal(t, []Key{{Kind: KindHome}, {Kind: KindEnd}}, keys)
}

func TestDecodeModifiedArrowStillResolves(t *testing.T) {
	// Shift-up arrives with parameters; the modifier is dropped.
	keys := decodeAll(t, "\x1b[1;2A")
	assert.Equal(t, []Key{{Kind: KindUp}}, keys)
}

func TestDecodeLoneEscape(t *testing.T) {
	keys := decodeAll(t, "\x1b")
	assert.Equal(t, []Key{{Kind: KindEsc}}, keys)
}

func TestDecodeEscapeThenCharacter(t *testing.T) {
	// ESC followed by a byte that is no sequence introducer: both come
	// through.
	keys := decodeAll(t, "\x1bq")
	assert.Equal(t, []Key{{Kind: KindEsc}, Char('q')}, keys)
}

func TestDecodeUnknownCSIFallsBackToEsc(t *testing.T) {
	keys := decodeAll(t, "\x1b[9~a")
	assert.Equal(t, []Key{{Kind: KindEsc}, Char('a')}, keys)
}

func TestDecodeTruncatedCSIAtEOF(t *testing.T) {
	keys := decodeAll(t, "\x1b[")
	assert.Equal(t, []Key{{Kind: KindEsc}}, keys)
}

func TestDecodeOverlongCSIGivesUp(t *testing.T) {
	raw := "\x1b[" + strings.Repeat("1;", 12) + "A"
	keys := decodeAll(t, raw)
	// The parameter budget is exceeded before the final byte; the
	// remainder decodes as ordinary bytes.
	assert.Equal(t, Key{Kind: KindEsc}, keys[0])
}

func TestDecodeMixedStream(t *testing.T) {
	keys := decodeAll(t, "w\x1b[Cq\x03")
	assert.Equal(t, []Key{
		Char('w'), {Kind: KindRight}, Char('q'), Ctrl('c'),
	}, keys)
}
