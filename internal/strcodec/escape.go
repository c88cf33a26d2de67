// Package strcodec implements the escaping/unescaping codec used for every
// path and free-form string that gets written to the report, plus the
// small handful of string-shaping helpers (Header, hex digit primitives)
// that share no state with the codec but live in the same conceptual
// layer.
package strcodec

import (
	"strings"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// DefaultEscape and DefaultEnd are the escape and end-delimiter bytes used
// throughout the report unless a section has a specific reason to use
// different ones (e.g. a right-delimiter for an inline list).
const (
	DefaultEscape byte = '#'
	DefaultEnd    byte = 0
)

// mnemonic maps a C0 control byte to its canonical single-letter escape, and
// back. Bytes without a mnemonic fall through to the #xHH form.
var mnemonicFor = map[byte]byte{
	0x00: '0',
	0x08: 'b',
	0x09: 't',
	0x0A: 'n',
	0x0B: 'v',
	0x0C: 'f',
	0x0D: 'r',
}

var byteForMnemonic = map[byte]byte{
	'0': 0x00,
	'b': 0x08,
	't': 0x09,
	'n': 0x0A,
	'v': 0x0B,
	'f': 0x0C,
	'r': 0x0D,
}

// GeneralEscape rewrites s so it round-trips unambiguously through
// Unescape: the escape character doubles itself, the end delimiter (if
// nonzero) is escaped, C0 controls and bytes outside printable ASCII use
// the mnemonic or #xHH form, and space runs of two or more have every
// space after the first escaped (a leading or trailing space is always
// escaped regardless of run length).
func GeneralEscape(s string, esc, end byte) string {
	return escapeCommon(s, esc, end, false)
}

// HttpEscape is GeneralEscape plus: the literal ASCII sequence "http"
// (case-insensitive) has its 'p' escaped, so the string never renders as a
// clickable-looking URI in report viewers that linkify "http://".
func HttpEscape(s string, esc, end byte) string {
	return escapeCommon(s, esc, end, true)
}

func escapeCommon(s string, esc, end byte, httpMode bool) string {
	var out []byte
	httpState := 0
	n := len(s)
	for i := 0; i < n; i++ {
		c := s[i]

		if httpMode {
			switch {
			case c == 'h' || c == 'H':
				httpState = 1
			case httpState == 1 && (c == 't' || c == 'T'):
				httpState = 2
			case httpState == 2 && (c == 't' || c == 'T'):
				httpState = 3
			case httpState == 3 && (c == 'p' || c == 'P'):
				out = append(out, esc, c)
				httpState = 0
				continue
			default:
				httpState = 0
			}
		}

		mnemonic, hasMnemonic := mnemonicFor[c]
		switch {
		case c == esc:
			out = append(out, esc, esc)
		case end != 0 && c == end:
			out = append(out, esc, end)
		case hasMnemonic:
			out = append(out, esc, mnemonic)
		case c < 0x20 || c >= 0x7F:
			var hx [2]byte
			HexCharacter(c, hx[:])
			out = append(out, esc, 'x', hx[0], hx[1])
		case c == ' ' && spaceNeedsEscape(s, i):
			out = append(out, esc, ' ')
		default:
			out = append(out, c)
		}
	}
	if len(out) == len(s) {
		return s
	}
	return string(out)
}

// spaceNeedsEscape decides whether the space at index i must be escaped:
// leading, trailing, or the second-or-later space in a run of two or more.
func spaceNeedsEscape(s string, i int) bool {
	if i == 0 || i == len(s)-1 {
		return true
	}
	return s[i-1] == ' '
}

// Unescape reads s[pos:] one input byte at a time, inverting GeneralEscape
// and HttpEscape alike, and stops at the first unescaped end delimiter. It
// returns the decoded text and the index of the unconsumed delimiter (or
// len(s) if none was found).
func Unescape(s string, pos int, esc, end byte) (string, int, error) {
	var out strings.Builder
	i := pos
	for i < len(s) {
		c := s[i]
		if end != 0 && c == end {
			return out.String(), i, nil
		}
		if c != esc {
			out.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(s) {
			return "", 0, oserr.New(oserr.MalformedEscapedSequence, "dangling escape character")
		}
		x := s[i]
		if x == 'x' {
			if i+2 >= len(s) {
				return "", 0, oserr.New(oserr.MalformedEscapedSequence, "truncated #xHH sequence")
			}
			hi, err := UnHexCharacter(s[i+1])
			if err != nil {
				return "", 0, err
			}
			lo, err := UnHexCharacter(s[i+2])
			if err != nil {
				return "", 0, err
			}
			out.WriteByte(hi<<4 | lo)
			i += 3
			continue
		}
		if b, ok := byteForMnemonic[x]; ok {
			out.WriteByte(b)
			i++
			continue
		}
		// Any other escaped byte (esc itself, the end delimiter, a space,
		// or an HttpEscape 'p') decodes to its literal value.
		out.WriteByte(x)
		i++
	}
	return out.String(), i, nil
}

// UnescapeAll unescapes the whole of s, failing if any unescaped end
// delimiter appears other than past the final byte (there is none to stop
// at since DefaultEnd is the NUL byte, which strings never contain).
func UnescapeAll(s string) (string, error) {
	out, _, err := Unescape(s, 0, DefaultEscape, DefaultEnd)
	return out, err
}
