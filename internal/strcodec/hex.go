package strcodec

import "github.com/billyoneal/instalog-go/internal/oserr"

const hexUpper = "0123456789ABCDEF"

// HexCharacter writes the two uppercase hex digits of b into out[0:2].
func HexCharacter(b byte, out []byte) {
	out[0] = hexUpper[b>>4]
	out[1] = hexUpper[b&0xF]
}

// UnHexCharacter decodes a single hex digit (either case), returning an
// error if c is not a hex digit.
func UnHexCharacter(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, oserr.New(oserr.MalformedEscapedSequence, "not a hex digit")
	}
}
