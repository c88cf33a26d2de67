// Package registry wraps the live Windows registry behind the native
// NT-path API, surfacing RegistryKey, RegistryValue, and
// RegistryValueAndData per the facade contract every other package in this
// repository relies on.
package registry

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// utf16ToString decodes a UTF-16LE code-unit slice to UTF-8, the same
// transcoder logsink.WStr uses for report text. Registry string data is
// allowed to carry an unpaired surrogate in the wild (legacy tools wrote
// plenty of malformed REG_SZ values); the decoder renders an unpaired
// surrogate as U+FFFD, and any decoder error falls back to a byte-for-byte
// narrowing rather than failing the whole registry read.
func utf16ToString(u16 []uint16) string {
	raw := make([]byte, len(u16)*2)
	for i, u := range u16 {
		raw[2*i] = byte(u)
		raw[2*i+1] = byte(u >> 8)
	}
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(raw)
	if err != nil {
		out = make([]byte, 0, len(u16))
		for _, u := range u16 {
			out = append(out, byte(u))
		}
	}
	return string(out)
}

// Type tags, numerically identical to the Win32 REG_* constants.
type Type uint32

const (
	TypeNone                     Type = 0
	TypeSZ                       Type = 1
	TypeExpandSZ                 Type = 2
	TypeBinary                   Type = 3
	TypeDWORD                    Type = 4
	TypeDWORDBigEndian           Type = 5
	TypeLink                     Type = 6
	TypeMultiSZ                  Type = 7
	TypeResourceList             Type = 8
	TypeFullResourceDescriptor   Type = 9
	TypeResourceRequirementsList Type = 10
	TypeQWORD                    Type = 11
)

// Value is a raw registry value: its type tag and unconverted bytes.
// Conversions are explicit requests that may fail with
// oserr.InvalidRegistryDataType.
type Value struct {
	Type Type
	Data []byte
}

// ValueAndData pairs a Value with the name it was enumerated under.
// ValueAndData sorts lexicographically on Name.
type ValueAndData struct {
	Name string
	Value
}

// utf16BytesToString decodes UTF-16LE bytes, first removing exactly one
// trailing NUL code unit, matching the source's "trim a single trailing NUL if
// present" rule for REG_SZ/REG_EXPAND_SZ.
func utf16BytesToString(b []byte) string {
	u16 := make([]uint16, len(b)/2)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	if n := len(u16); n > 0 && u16[n-1] == 0 {
		u16 = u16[:n-1]
	}
	return utf16ToString(u16)
}

// GetString renders any value type as a display string: REG_SZ/REG_EXPAND_SZ
// decode as UTF-16; REG_DWORD/REG_DWORD_BIG_ENDIAN/REG_QWORD render as
// "dword:XXXXXXXX"/"dword-be:XXXXXXXX"/"qword:XXXXXXXXXXXXXXXX"; everything
// else (including REG_MULTI_SZ) renders as "hex(N):BB,BB,…" with REG_BINARY
// using the bare "hex:" tag.
func (v Value) GetString() (string, error) {
	switch v.Type {
	case TypeSZ, TypeExpandSZ:
		return utf16BytesToString(v.Data), nil
	case TypeDWORD:
		if len(v.Data) < 4 {
			return "", oserr.New(oserr.InvalidRegistryDataType, "GetString: short REG_DWORD")
		}
		return fmt.Sprintf("dword:%08X", binary.LittleEndian.Uint32(v.Data)), nil
	case TypeDWORDBigEndian:
		if len(v.Data) < 4 {
			return "", oserr.New(oserr.InvalidRegistryDataType, "GetString: short REG_DWORD_BIG_ENDIAN")
		}
		return fmt.Sprintf("dword-be:%08X", binary.BigEndian.Uint32(v.Data)), nil
	case TypeQWORD:
		if len(v.Data) < 8 {
			return "", oserr.New(oserr.InvalidRegistryDataType, "GetString: short REG_QWORD")
		}
		return fmt.Sprintf("qword:%016X", binary.LittleEndian.Uint64(v.Data)), nil
	case TypeBinary:
		return "hex:" + hexCSV(v.Data), nil
	default:
		return fmt.Sprintf("hex(%d):%s", int(v.Type), hexCSV(v.Data)), nil
	}
}

func hexCSV(data []byte) string {
	var b strings.Builder
	for i, by := range data {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%02X", by)
	}
	return b.String()
}

// GetStringStrict is GetString restricted to REG_SZ/REG_EXPAND_SZ.
func (v Value) GetStringStrict() (string, error) {
	if v.Type != TypeSZ && v.Type != TypeExpandSZ {
		return "", oserr.New(oserr.InvalidRegistryDataType, "GetStringStrict: not REG_SZ/REG_EXPAND_SZ")
	}
	return utf16BytesToString(v.Data), nil
}

// GetDWORD coerces the value to a uint32: REG_DWORD as-is,
// REG_DWORD_BIG_ENDIAN byte-reversed, REG_QWORD only if it fits,
// REG_SZ/REG_EXPAND_SZ by decimal parse of the trimmed string (which must
// consume the whole string). Anything else fails.
func (v Value) GetDWORD() (uint32, error) {
	switch v.Type {
	case TypeDWORD:
		if len(v.Data) < 4 {
			return 0, oserr.New(oserr.InvalidRegistryDataType, "GetDWORD: short REG_DWORD")
		}
		return binary.LittleEndian.Uint32(v.Data), nil
	case TypeDWORDBigEndian:
		if len(v.Data) < 4 {
			return 0, oserr.New(oserr.InvalidRegistryDataType, "GetDWORD: short REG_DWORD_BIG_ENDIAN")
		}
		return binary.BigEndian.Uint32(v.Data), nil
	case TypeQWORD:
		q, err := v.GetQWORD()
		if err != nil {
			return 0, err
		}
		if q > 0xFFFFFFFF {
			return 0, oserr.New(oserr.InvalidRegistryDataType, "GetDWORD: REG_QWORD does not fit in 32 bits")
		}
		return uint32(q), nil
	case TypeSZ, TypeExpandSZ:
		s := strings.TrimSpace(utf16BytesToString(v.Data))
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, oserr.Wrap(oserr.InvalidRegistryDataType, "GetDWORD: ParseUint", err)
		}
		return uint32(n), nil
	default:
		return 0, oserr.New(oserr.InvalidRegistryDataType, "GetDWORD: unsupported value type")
	}
}

// GetDWORDStrict accepts only REG_DWORD.
func (v Value) GetDWORDStrict() (uint32, error) {
	if v.Type != TypeDWORD {
		return 0, oserr.New(oserr.InvalidRegistryDataType, "GetDWORDStrict: not REG_DWORD")
	}
	if len(v.Data) < 4 {
		return 0, oserr.New(oserr.InvalidRegistryDataType, "GetDWORDStrict: short REG_DWORD")
	}
	return binary.LittleEndian.Uint32(v.Data), nil
}

// GetQWORD is GetDWORD's analogue for 64-bit values.
func (v Value) GetQWORD() (uint64, error) {
	switch v.Type {
	case TypeQWORD:
		if len(v.Data) < 8 {
			return 0, oserr.New(oserr.InvalidRegistryDataType, "GetQWORD: short REG_QWORD")
		}
		return binary.LittleEndian.Uint64(v.Data), nil
	case TypeDWORD:
		d, err := v.GetDWORDStrict()
		return uint64(d), err
	case TypeDWORDBigEndian:
		if len(v.Data) < 4 {
			return 0, oserr.New(oserr.InvalidRegistryDataType, "GetQWORD: short REG_DWORD_BIG_ENDIAN")
		}
		return uint64(binary.BigEndian.Uint32(v.Data)), nil
	case TypeSZ, TypeExpandSZ:
		s := strings.TrimSpace(utf16BytesToString(v.Data))
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, oserr.Wrap(oserr.InvalidRegistryDataType, "GetQWORD: ParseUint", err)
		}
		return n, nil
	default:
		return 0, oserr.New(oserr.InvalidRegistryDataType, "GetQWORD: unsupported value type")
	}
}

// GetQWORDStrict accepts only REG_QWORD.
func (v Value) GetQWORDStrict() (uint64, error) {
	if v.Type != TypeQWORD {
		return 0, oserr.New(oserr.InvalidRegistryDataType, "GetQWORDStrict: not REG_QWORD")
	}
	if len(v.Data) < 8 {
		return 0, oserr.New(oserr.InvalidRegistryDataType, "GetQWORDStrict: short REG_QWORD")
	}
	return binary.LittleEndian.Uint64(v.Data), nil
}

// GetMultiStringArray splits a REG_MULTI_SZ at NULs, dropping trailing
// empty elements.
func (v Value) GetMultiStringArray() ([]string, error) {
	if v.Type != TypeMultiSZ {
		return nil, oserr.New(oserr.InvalidRegistryDataType, "GetMultiStringArray: not REG_MULTI_SZ")
	}
	u16 := make([]uint16, len(v.Data)/2)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(v.Data[2*i:])
	}
	var out []string
	start := 0
	for i, u := range u16 {
		if u == 0 {
			out = append(out, utf16ToString(u16[start:i]))
			start = i + 1
		}
	}
	if start < len(u16) {
		out = append(out, utf16ToString(u16[start:]))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out, nil
}

// GetCommaStringArray splits a REG_SZ/REG_EXPAND_SZ at commas, left-trimming
// each element.
func (v Value) GetCommaStringArray() ([]string, error) {
	s, err := v.GetStringStrict()
	if err != nil {
		return nil, oserr.Wrap(oserr.InvalidRegistryDataType, "GetCommaStringArray", err)
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimLeft(p, " ")
	}
	return parts, nil
}
