package utf16le

import (
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// utf16RuneLen is unicode/utf16.RuneLen, copied verbatim because that
// function only exists in Go 1.23+ and this module must build on 1.21.
func utf16RuneLen(r rune) int {
	const (
		surr1    = 0xd800
		surr3    = 0xe000
		surrSelf = 0x10000
		maxRune  = '\U0010FFFF'
	)
	switch {
	case 0 <= r && r < surr1, surr3 <= r && r < surrSelf:
		return 1
	case surrSelf <= r && r <= maxRune:
		return 2
	default:
		return -1
	}
}

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Decoder validates by round-tripping the buffer through the x/text
// UTF-16LE decoder and counting the code units behind every decoded
// rune. The decoder substitutes U+FFFD for invalid input, so the count
// stops at the first replacement rune; buffers that legitimately
// contain U+FFFD are outside this routine's remit.
func Decoder(p []uint16) int {
	raw := make([]byte, 2*len(p))
	for i, c := range p {
		binary.LittleEndian.PutUint16(raw[2*i:], c)
	}

	decoded, err := utf16LE.NewDecoder().Bytes(raw)
	if err != nil {
		return 0
	}

	n := 0
	for _, r := range string(decoded) {
		if r == utf8.RuneError {
			break
		}
		n += utf16RuneLen(r)
	}
	return n
}
