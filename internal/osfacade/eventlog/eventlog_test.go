package eventlog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelString(t *testing.T) {
	require.Equal(t, "Critical", Critical.String())
	require.Equal(t, "Error", Error.String())
	require.Equal(t, "Warning", Warning.String())
	require.Equal(t, "Information", Information.String())
	require.Equal(t, "Other", Other.String())
}

func TestStripProviderPrefixStripsMicrosoftWindows(t *testing.T) {
	require.Equal(t, "Kernel-General", stripProviderPrefix("Microsoft-Windows-Kernel-General"))
}

func TestStripProviderPrefixLeavesOthersAlone(t *testing.T) {
	require.Equal(t, "MyCustomSource", stripProviderPrefix("MyCustomSource"))
}
