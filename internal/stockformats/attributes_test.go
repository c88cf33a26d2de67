package stockformats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttributeGlyphsPlainFileIsAllClearAndWritable(t *testing.T) {
	g := AttributeGlyphs(0)
	require.Len(t, g, 8)
	require.Equal(t, "------w-", g)
}

func TestAttributeGlyphsDirectoryReadOnlyReparse(t *testing.T) {
	attrs := uint32(attrDirectory | attrReadOnly | attrReparsePoint)
	require.Equal(t, "d-----rr", AttributeGlyphs(attrs))
}

func TestAttributeGlyphsEachBitIndependently(t *testing.T) {
	require.Equal(t, byte('c'), AttributeGlyphs(attrCompressed)[1])
	require.Equal(t, byte('s'), AttributeGlyphs(attrSystem)[2])
	require.Equal(t, byte('h'), AttributeGlyphs(attrHidden)[3])
	require.Equal(t, byte('a'), AttributeGlyphs(attrArchive)[4])
	require.Equal(t, byte('t'), AttributeGlyphs(attrTemporary)[5])
}
