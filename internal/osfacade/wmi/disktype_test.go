package wmi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskTypeNameKnownCodes(t *testing.T) {
	require.Equal(t, "LOCAL", DiskTypeName(3))
	require.Equal(t, "CDROM", DiskTypeName(5))
	require.Equal(t, "RAM", DiskTypeName(6))
}

func TestDiskTypeNameUnknownCode(t *testing.T) {
	require.Equal(t, "UNKNOWN(99)", DiskTypeName(99))
}
