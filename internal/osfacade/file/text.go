package file

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// decodeText implements File.ReadAllLines' "detect UTF-16 by heuristic"
// rule: a UTF-16LE BOM or UTF-8 BOM decides outright; otherwise a byte
// profile check (every other byte NUL, the signature of ASCII-range
// UTF-16LE text) decides. Anything else is treated as already UTF-8/ASCII.
func decodeText(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return utf16LEToString(raw[2:])
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return string(raw[3:])
	case looksUTF16LE(raw):
		return utf16LEToString(raw)
	default:
		return string(raw)
	}
}

// looksUTF16LE is the "detects UTF-16 by heuristic" rule: among the first
// 64 bytes, every other byte (the expected high byte of an ASCII-range
// UTF-16LE code unit) is NUL.
func looksUTF16LE(raw []byte) bool {
	n := len(raw)
	if n < 4 {
		return false
	}
	if n > 64 {
		n = 64
	}
	n -= n % 2
	zeros := 0
	for i := 1; i < n; i += 2 {
		if raw[i] == 0 {
			zeros++
		}
	}
	return zeros*2 >= n-1
}

func utf16LEToString(raw []byte) string {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == '\r' || r == '\n' })
}
