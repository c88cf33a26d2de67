package registry

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func utf16LE(s string) []byte {
	out := make([]byte, 0, (len(s)+1)*2)
	for _, r := range s {
		out = binary.LittleEndian.AppendUint16(out, uint16(r))
	}
	return binary.LittleEndian.AppendUint16(out, 0)
}

func TestGetDWORDFromREGSZ(t *testing.T) {
	v := Value{Type: TypeSZ, Data: utf16LE("42")}
	n, err := v.GetDWORD()
	require.NoError(t, err)
	require.Equal(t, uint32(42), n)
}

func TestGetDWORDFromREGSZTrailingGarbageFails(t *testing.T) {
	v := Value{Type: TypeSZ, Data: utf16LE("42 trailing")}
	_, err := v.GetDWORD()
	require.Error(t, err)
}

func TestGetQWORDFromREGQWORDExceedsDWORD(t *testing.T) {
	var data [8]byte
	binary.LittleEndian.PutUint64(data[:], 0xBADC0FFEEBADBAD1)
	v := Value{Type: TypeQWORD, Data: data[:]}

	_, err := v.GetDWORD()
	require.Error(t, err)

	q, err := v.GetQWORD()
	require.NoError(t, err)
	require.Equal(t, uint64(0xBADC0FFEEBADBAD1), q)
}

func TestGetStringRendersDWORDAsHex(t *testing.T) {
	var data [4]byte
	binary.LittleEndian.PutUint32(data[:], 0xDEADBEEF)
	v := Value{Type: TypeDWORD, Data: data[:]}
	s, err := v.GetString()
	require.NoError(t, err)
	require.Equal(t, "dword:DEADBEEF", s)
}

func TestGetStringRendersBinaryAsHexList(t *testing.T) {
	v := Value{Type: TypeBinary, Data: []byte{0xAB, 0x01, 0xFF}}
	s, err := v.GetString()
	require.NoError(t, err)
	require.Equal(t, "hex:AB,01,FF", s)
}

func TestGetStringRendersMultiSZWithParenthesizedTag(t *testing.T) {
	v := Value{Type: TypeMultiSZ, Data: []byte{0x01, 0x00}}
	s, err := v.GetString()
	require.NoError(t, err)
	require.Equal(t, "hex(7):01,00", s)
}

func TestGetStringStrictRejectsNonString(t *testing.T) {
	v := Value{Type: TypeDWORD, Data: []byte{1, 0, 0, 0}}
	_, err := v.GetStringStrict()
	require.Error(t, err)
}

func TestGetMultiStringArrayDropsTrailingEmpty(t *testing.T) {
	data := append(append(utf16LE("a"), utf16LE("b")...), 0, 0)
	v := Value{Type: TypeMultiSZ, Data: data}
	arr, err := v.GetMultiStringArray()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, arr)
}

func TestGetCommaStringArrayTrimsLeft(t *testing.T) {
	v := Value{Type: TypeSZ, Data: utf16LE("a, b,  c")}
	arr, err := v.GetCommaStringArray()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, arr)
}
