package logsink

import (
	"strconv"

	"github.com/billyoneal/instalog-go/internal/oserr"
	"golang.org/x/text/encoding/unicode"
)

// Value is a pure function of "take a value, append its formatted bytes to
// dst, return the grown slice." Composing Values this way over a small
// stack-resident backing array (see Write, below) gives every integral and
// character formatter zero-heap-churn output for the common case; only a
// genuinely long total forces the buffer onto the heap, growing it as
// append requires.
type Value interface {
	AppendTo(dst []byte) ([]byte, error)
}

// Newline is the platform line terminator. Instalog targets Windows only,
// so this is unconditionally CRLF.
var Newline Value = rawBytes("\r\n")

type rawBytes []byte

func (r rawBytes) AppendTo(dst []byte) ([]byte, error) { return append(dst, r...), nil }

// Str is a byte-string view formatter. It never copies; the caller's bytes
// are appended directly.
type Str string

func (s Str) AppendTo(dst []byte) ([]byte, error) { return append(dst, s...), nil }

// Char is a single byte-character formatter.
type Char byte

func (c Char) AppendTo(dst []byte) ([]byte, error) { return append(dst, byte(c)), nil }

// Int formats a signed 64-bit integer in decimal. Use it for 16/32/64-bit
// signed values alike; Go integer promotion makes the width distinction
// irrelevant to the decimal rendering.
type Int int64

func (v Int) AppendTo(dst []byte) ([]byte, error) {
	return strconv.AppendInt(dst, int64(v), 10), nil
}

// Uint formats an unsigned 64-bit integer in decimal.
type Uint uint64

func (v Uint) AppendTo(dst []byte) ([]byte, error) {
	return strconv.AppendUint(dst, uint64(v), 10), nil
}

// Double formats an IEEE double with three significant digits beyond the
// decimal point.
type Double float64

func (v Double) AppendTo(dst []byte) ([]byte, error) {
	return strconv.AppendFloat(dst, float64(v), 'f', 3, 64), nil
}

// Hex renders value as fixed-width, zero-padded, uppercase hexadecimal.
// Width is 2*byteWidth; callers pass byteWidth explicitly since Go has no
// sizeof.
type Hex struct {
	Value     uint64
	ByteWidth int // 1, 2, 4, or 8
}

const hexDigits = "0123456789ABCDEF"

func (h Hex) AppendTo(dst []byte) ([]byte, error) {
	width := h.ByteWidth * 2
	start := len(dst)
	for i := 0; i < width; i++ {
		dst = append(dst, '0')
	}
	out := dst[start:]
	v := h.Value
	for i := width - 1; i >= 0; i-- {
		out[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return dst, nil
}

// Pad formats Inner with its default formatter, then left-pads with Fill to
// at least Width. Values already at or beyond Width are emitted unchanged.
type Pad struct {
	Width int
	Fill  byte
	Inner Value
}

func (p Pad) AppendTo(dst []byte) ([]byte, error) {
	var scratch [64]byte
	inner, err := p.Inner.AppendTo(scratch[:0])
	if err != nil {
		return dst, err
	}
	if len(inner) >= p.Width {
		return append(dst, inner...), nil
	}
	for i := 0; i < p.Width-len(inner); i++ {
		dst = append(dst, p.Fill)
	}
	return append(dst, inner...), nil
}

// WStr transcodes a UTF-16 (native wide-character) string to UTF-8. A lone
// surrogate fails with oserr.InvalidUtf16.
type WStr []uint16

func (w WStr) AppendTo(dst []byte) ([]byte, error) {
	for i := 0; i < len(w); i++ {
		switch u := w[i]; {
		case u >= 0xD800 && u < 0xDC00:
			if i+1 >= len(w) || w[i+1] < 0xDC00 || w[i+1] >= 0xE000 {
				return dst, oserr.New(oserr.InvalidUtf16, "WStr.AppendTo: unpaired high surrogate")
			}
			i++
		case u >= 0xDC00 && u < 0xE000:
			return dst, oserr.New(oserr.InvalidUtf16, "WStr.AppendTo: unpaired low surrogate")
		}
	}
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	raw := make([]byte, len(w)*2)
	for i, u := range w {
		raw[2*i] = byte(u)
		raw[2*i+1] = byte(u >> 8)
	}
	out, err := decoder.Bytes(raw)
	if err != nil {
		return dst, oserr.Wrap(oserr.InvalidUtf16, "WStr.AppendTo", err)
	}
	return append(dst, out...), nil
}

// Write formats every argument in order and appends the concatenated result
// to sink in exactly one Append call. This is the only formatted I/O
// mechanism used anywhere in this codebase.
func Write(sink Sink, args ...Value) error {
	var stackBuf [256]byte
	buf := stackBuf[:0]
	for _, a := range args {
		var err error
		buf, err = a.AppendTo(buf)
		if err != nil {
			return err
		}
	}
	return sink.Append(buf)
}

// Writeln is Write followed by the platform newline.
func Writeln(sink Sink, args ...Value) error {
	return Write(sink, append(append([]Value{}, args...), Newline)...)
}
