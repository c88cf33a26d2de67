package process

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecutablePathSpecialCasesSystemIdle(t *testing.T) {
	r := Record{PID: 0}
	path, err := r.ExecutablePath(`C:\Windows`)
	require.NoError(t, err)
	require.Equal(t, "System Idle Process", path)
}

func TestExecutablePathSpecialCasesSystemProcess(t *testing.T) {
	r := Record{PID: 4}
	path, err := r.ExecutablePath(`C:\Windows`)
	require.NoError(t, err)
	require.Equal(t, `C:\Windows\System32\Ntoskrnl.exe`, path)
}
