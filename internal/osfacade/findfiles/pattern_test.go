package findfiles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitPatternWithDirectory(t *testing.T) {
	dir, glob := splitPattern(`C:\Windows\System32\*`)
	require.Equal(t, `C:\Windows\System32\`, dir)
	require.Equal(t, "*", glob)
}

func TestSplitPatternBare(t *testing.T) {
	dir, glob := splitPattern("*.exe")
	require.Equal(t, "", dir)
	require.Equal(t, "*.exe", glob)
}
