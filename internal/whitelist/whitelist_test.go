package whitelist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadBytesSortsAndFoldsCase(t *testing.T) {
	data := []byte("Zeta\nAlpha\nalpha\nBeta\n")
	l := LoadBytes(data)
	require.Equal(t, 3, l.Len())
	require.True(t, l.IsMember("ALPHA"))
	require.True(t, l.IsMember("beta"))
	require.False(t, l.IsMember("gamma"))
}

func TestLoadBytesAppliesPrefixRewrite(t *testing.T) {
	data := []byte(`c:\windows\system32\ntoskrnl.exe`)
	l := LoadBytes(data, Rewrite{From: `c:\windows\`, To: `d:\windows\`})
	require.True(t, l.IsMember(`D:\Windows\System32\Ntoskrnl.exe`))
	require.False(t, l.IsMember(`C:\Windows\System32\Ntoskrnl.exe`))
}

func TestProcessWhitelistEmbedsAndRewrites(t *testing.T) {
	l, err := ProcessWhitelist(`D:\Windows`)
	require.NoError(t, err)
	require.True(t, l.IsMember(`D:\Windows\System32\Ntoskrnl.exe`))
}

func TestServiceWhitelistEmbedsFingerprints(t *testing.T) {
	l, err := ServiceWhitelist(`C:\Windows`)
	require.NoError(t, err)
	require.True(t, l.IsMember(`netsvcs;C:\Windows\System32\Svchost.exe;EventLog;Windows Event Log`))
}
