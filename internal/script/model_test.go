package script

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryLookupCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&Definition{Command: "RunningProcesses", DisplayName: "Running Processes"})

	def, ok := r.Lookup("runningprocesses")
	require.True(t, ok)
	require.Equal(t, "RunningProcesses", def.Command)

	_, ok = r.Lookup("nope")
	require.False(t, ok)
}

func TestPriorityOrdering(t *testing.T) {
	require.True(t, Memory < DiskPersistent)
	require.True(t, DiskPersistent < Wmi)
	require.True(t, Wmi < Whitelisting)
	require.True(t, Whitelisting < Scanning)
}
