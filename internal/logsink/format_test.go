package logsink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexProducesFixedWidthUppercase(t *testing.T) {
	cases := []struct {
		value     uint64
		byteWidth int
		want      string
	}{
		{0, 4, "00000000"},
		{0xBEEF, 2, "BEEF"},
		{0xdeadbeef, 4, "DEADBEEF"},
		{0x1, 8, "0000000000000001"},
	}
	for _, c := range cases {
		out, err := Hex{Value: c.value, ByteWidth: c.byteWidth}.AppendTo(nil)
		require.NoError(t, err)
		require.Equal(t, c.want, string(out))
		require.Len(t, out, c.byteWidth*2)
	}
}

func TestPadLeftPadsShortValues(t *testing.T) {
	out, err := Pad{Width: 5, Fill: '0', Inner: Int(42)}.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, "00042", string(out))
}

func TestPadLeavesWideValuesUnchanged(t *testing.T) {
	out, err := Pad{Width: 2, Fill: ' ', Inner: Int(123456)}.AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, "123456", string(out))
}

func TestWriteConcatenatesInOrder(t *testing.T) {
	sink := NewMemorySink()
	require.NoError(t, Write(sink, Str("pid="), Int(4), Str(" name="), Str("ntoskrnl.exe")))
	require.Equal(t, "pid=4 name=ntoskrnl.exe", sink.String())
}

func TestWritelnAppendsCRLF(t *testing.T) {
	sink := NewMemorySink()
	require.NoError(t, Writeln(sink, Str("line")))
	require.Equal(t, "line\r\n", sink.String())
}

func TestWStrTranscodesUTF16(t *testing.T) {
	// "AB" as UTF-16LE code units.
	out, err := WStr([]uint16{'A', 'B'}).AppendTo(nil)
	require.NoError(t, err)
	require.Equal(t, "AB", string(out))
}

func TestWStrRejectsLoneSurrogate(t *testing.T) {
	_, err := WStr([]uint16{0xD800}).AppendTo(nil)
	require.Error(t, err)
}

func TestFileSinkWritesExactContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Instalog.txt")
	fs, err := OpenFileSink(path)
	require.NoError(t, err)
	require.NoError(t, Write(fs, Str("hello")))
	require.NoError(t, fs.Close())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(got))
}
