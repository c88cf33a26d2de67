package file

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTextUTF16LEBOM(t *testing.T) {
	raw := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	require.Equal(t, "hi", decodeText(raw))
}

func TestDecodeTextUTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hi")...)
	require.Equal(t, "hi", decodeText(raw))
}

func TestDecodeTextHeuristicUTF16LENoBOM(t *testing.T) {
	raw := []byte{'h', 0, 'i', 0, ' ', 0, 't', 0, 'h', 0, 'e', 0, 'r', 0, 'e', 0}
	require.Equal(t, "hi there", decodeText(raw))
}

func TestDecodeTextPlainASCII(t *testing.T) {
	require.Equal(t, "plain text", decodeText([]byte("plain text")))
}

func TestSplitLinesHandlesCRLFAndLF(t *testing.T) {
	lines := splitLines("a\r\nb\nc\rd")
	require.Equal(t, []string{"a", "b", "c", "d"}, lines)
}
