package oserr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(AccessDenied, "OpenProcess", cause)

	require.ErrorContains(t, err, "OpenProcess")
	require.ErrorContains(t, err, "underlying")
	require.ErrorIs(t, err, cause)
}

func TestIsMatchesByKindOnly(t *testing.T) {
	a := New(FileNotFound, "probe A")
	b := New(FileNotFound, "probe B")
	c := New(PathNotFound, "probe C")

	require.ErrorIs(t, a, b)
	require.False(t, errors.Is(a, c))
}

func TestExitCodePacksKindIntoLowByte(t *testing.T) {
	err := New(AccessDenied, "")
	require.Equal(t, int(AccessDenied), ExitCode(err))
	require.Equal(t, 1, ExitCode(errors.New("not an oserr.Error")))
}

func TestFromRawKeepsRawCode(t *testing.T) {
	err := FromRaw(0x80070005, "CoCreateInstance")
	require.Equal(t, Other, err.Kind)
	require.Equal(t, uint32(0x80070005), err.Raw)
	require.Contains(t, err.Error(), "0x80070005")
}
