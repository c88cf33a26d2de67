package script

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/oserr"
)

func newTestRegistry() *Registry {
	r := NewRegistry()
	r.Register(&Definition{Command: "runningprocesses", DisplayName: "Running Processes", Priority: Scanning})
	r.Register(&Definition{Command: "loadpoints", DisplayName: "Load Points", Priority: Scanning})
	r.Register(&Definition{Command: "foo", DisplayName: "Foo", Priority: Memory})
	return r
}

func noopHandler(sink logsink.Sink, argument string, options []string) error { return nil }

func TestParseSingleSectionNoOptions(t *testing.T) {
	s, err := Parse(":RunningProcesses\n", newTestRegistry())
	require.NoError(t, err)
	secs := s.Sections()
	require.Len(t, secs, 1)
	require.Equal(t, "runningprocesses", secs[0].Definition.Command)
	require.Equal(t, "", secs[0].Argument)
	require.Empty(t, secs[0].Options)
}

func TestParseCommandCaseFoldedAndArgumentPreservesInteriorWhitespace(t *testing.T) {
	s, err := Parse(":Foo   bar  baz\n", newTestRegistry())
	require.NoError(t, err)
	secs := s.Sections()
	require.Len(t, secs, 1)
	require.Equal(t, "bar  baz", secs[0].Argument)
}

func TestParseOptionsAccumulateUnderSection(t *testing.T) {
	s, err := Parse(":Foo\nopt1\nopt2\n", newTestRegistry())
	require.NoError(t, err)
	secs := s.Sections()
	require.Equal(t, []string{"opt1", "opt2"}, secs[0].Options)
}

func TestParseBlankLinesDropped(t *testing.T) {
	s, err := Parse(":Foo\n\n   \nopt1\n", newTestRegistry())
	require.NoError(t, err)
	require.Equal(t, []string{"opt1"}, s.Sections()[0].Options)
}

func TestParseDuplicateSectionsMergeOptionsInSourceOrder(t *testing.T) {
	s, err := Parse(":Foo\nopt1\n:Loadpoints\nx\n:Foo\nopt2\n", newTestRegistry())
	require.NoError(t, err)
	secs := s.Sections()
	require.Len(t, secs, 2) // Foo merges across its two occurrences

	var foo *Section
	for _, sec := range secs {
		if sec.Definition.Command == "foo" {
			foo = sec
		}
	}
	require.NotNil(t, foo)
	require.Equal(t, []string{"opt1", "opt2"}, foo.Options)
	require.Equal(t, 0, foo.ParseIndex) // first occurrence's index kept
}

func TestParseUnknownSectionFails(t *testing.T) {
	_, err := Parse(":Nope\n", newTestRegistry())
	require.Error(t, err)
	var e *oserr.Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, oserr.UnknownScriptSection, e.Kind)
}

func TestOrderedSortsByPriorityThenParseIndex(t *testing.T) {
	s, err := Parse(":RunningProcesses\n:Loadpoints\n:Foo\n", newTestRegistry())
	require.NoError(t, err)
	ordered := s.Ordered()
	require.Len(t, ordered, 3)
	require.Equal(t, "foo", ordered[0].Definition.Command) // Memory priority sorts first
	require.Equal(t, "runningprocesses", ordered[1].Definition.Command)
	require.Equal(t, "loadpoints", ordered[2].Definition.Command)
}

func TestSplitLinesHandlesCRLFAndLoneCR(t *testing.T) {
	lines := splitLines("a\r\nb\rc\nd")
	require.Equal(t, []string{"a", "b", "c", "d"}, lines)
}

func TestDefaultScriptParsesCleanly(t *testing.T) {
	r := NewRegistry()
	for _, cmd := range []string{"runningprocesses", "loadpoints", "servicesdrivers", "findstarm", "eventviewer", "machinespecifications", "restorepoints", "installedprograms"} {
		r.Register(&Definition{Command: cmd, DisplayName: cmd, Priority: Scanning, Execute: noopHandler})
	}
	s, err := Parse(DefaultScript, r)
	require.NoError(t, err)
	require.Len(t, s.Sections(), 8)
}
