package strcodec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneralEscapeBasics(t *testing.T) {
	require.Equal(t, "##", GeneralEscape("#", '#', 0))
	require.Equal(t, "[#]", GeneralEscape("[]", '#', ']'))
	require.Equal(t, "start # end", GeneralEscape("start  end", '#', 0))
}

func TestHttpEscapeHidesHttpPrefix(t *testing.T) {
	require.Equal(t, "htt#p://example", HttpEscape("http://example", '#', 0))
	require.Equal(t, "nothing to see", HttpEscape("nothing to see", '#', 0))
}

func TestGeneralEscapeLeavesPrintableAsciiAlone(t *testing.T) {
	s := "C:\\Windows\\System32\\ntoskrnl.exe"
	require.Equal(t, s, GeneralEscape(s, '#', 0))
}

func TestGeneralEscapeRoundTripsThroughUnescape(t *testing.T) {
	samples := []string{
		"plain",
		"has  two  spaces",
		" leading and trailing ",
		"control\tchars\nhere\r",
		"http://example.com and HTTP://OTHER",
		"#already#escaped#looking#",
	}
	for _, s := range samples {
		escaped := GeneralEscape(s, '#', 0)
		decoded, err := UnescapeAll(escaped)
		require.NoError(t, err)
		require.Equal(t, s, decoded, "round trip failed for %q (escaped=%q)", s, escaped)
	}
}

func TestUnescapeStopsAtUnescapedDelimiter(t *testing.T) {
	decoded, idx, err := Unescape("merged]tail", 0, '#', ']')
	require.NoError(t, err)
	require.Equal(t, "merged", decoded)
	require.Equal(t, 6, idx)
}

func TestUnescapePassesThroughAnEscapedDelimiter(t *testing.T) {
	decoded, idx, err := Unescape("merged#]tail", 0, '#', ']')
	require.NoError(t, err)
	require.Equal(t, "merged]tail", decoded)
	require.Equal(t, len("merged#]tail"), idx)
}

func TestUnescapeFailsOnDanglingEscape(t *testing.T) {
	_, _, err := Unescape("trailing#", 0, '#', 0)
	require.Error(t, err)
}

func TestUnescapeFailsOnMalformedHex(t *testing.T) {
	_, _, err := Unescape("#xZZ", 0, '#', 0)
	require.Error(t, err)

	_, _, err = Unescape("#x1", 0, '#', 0)
	require.Error(t, err)
}

func TestHeaderWidthInvariant(t *testing.T) {
	h := Header("RunningProcesses", 50)
	require.Len(t, h, 50)

	long := Header("AVeryLongSectionNameThatExceedsTheConfiguredWidthEntirely", 50)
	require.Equal(t, "AVeryLongSectionNameThatExceedsTheConfiguredWidthEntirely", long)
}

func TestCmdLineUnescapeVundoStyle(t *testing.T) {
	out, idx, err := CmdLineUnescape(`"start\"end"after`, 0)
	require.NoError(t, err)
	require.Equal(t, `start"end`, out)
	require.Equal(t, 'a', rune(`"start\"end"after`[idx]))
}

func TestCmdLineUnescapeRejectsMissingOpeningQuote(t *testing.T) {
	_, _, err := CmdLineUnescape("no quote here", 0)
	require.Error(t, err)
}

func TestCmdLineUnescapeRejectsEmptyInput(t *testing.T) {
	_, _, err := CmdLineUnescape("", 0)
	require.Error(t, err)
}
