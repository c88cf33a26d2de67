package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/script"
	"github.com/billyoneal/instalog-go/internal/stockformats"
)

func TestRunEmitsHeaderSectionBannersAndFooter(t *testing.T) {
	registry := script.NewRegistry()
	var executed []string
	registry.Register(&script.Definition{
		Command:     "alpha",
		DisplayName: "Alpha Section",
		Priority:    script.Scanning,
		Execute: func(sink logsink.Sink, argument string, options []string) error {
			executed = append(executed, "alpha")
			return logsink.Writeln(sink, logsink.Str("alpha body"))
		},
	})
	registry.Register(&script.Definition{
		Command:     "beta",
		DisplayName: "Beta Section",
		Priority:    script.Memory,
		Execute: func(sink logsink.Sink, argument string, options []string) error {
			executed = append(executed, "beta")
			return nil
		},
	})

	scr, err := script.Parse(":Alpha\n:Beta\n", registry)
	require.NoError(t, err)

	sink := logsink.NewMemorySink()
	var messages []string
	ui := &recordingUI{onLog: func(s string) { messages = append(messages, s) }}

	exec := New(sink, ui)
	err = exec.Run(scr, stockformats.HeaderInfo{Version: "1.0"})
	require.NoError(t, err)

	require.Equal(t, []string{"beta", "alpha"}, executed) // Memory priority runs before Scanning
	require.Equal(t, []string{"Starting Execution", "Executing Beta Section", "Executing Alpha Section"}, messages)
	require.True(t, ui.finished)

	out := sink.String()
	require.True(t, strings.HasPrefix(out, "Instalog 1.0"))
	require.Contains(t, out, "Beta Section")
	require.Contains(t, out, "Alpha Section")
	require.Contains(t, out, "alpha body")
	require.Contains(t, out, "Instalog 1.0 finished at")
}

func TestRunRecoversFromSectionHandlerErrorAndContinues(t *testing.T) {
	registry := script.NewRegistry()
	var executed []string
	registry.Register(&script.Definition{
		Command:     "broken",
		DisplayName: "Broken",
		Priority:    script.Memory,
		Execute: func(sink logsink.Sink, argument string, options []string) error {
			executed = append(executed, "broken")
			return errBoom
		},
	})
	registry.Register(&script.Definition{
		Command:     "after",
		DisplayName: "After",
		Priority:    script.Scanning,
		Execute: func(sink logsink.Sink, argument string, options []string) error {
			executed = append(executed, "after")
			return nil
		},
	})
	scr, err := script.Parse(":Broken\n:After\n", registry)
	require.NoError(t, err)

	sink := logsink.NewMemorySink()
	exec := New(sink, NoopUI{})
	err = exec.Run(scr, stockformats.HeaderInfo{Version: "1.0"})
	require.NoError(t, err)

	require.Equal(t, []string{"broken", "after"}, executed)
	require.Contains(t, sink.String(), "Section failed: "+errBoom.Error())
}

type recordingUI struct {
	onLog    func(string)
	finished bool
}

func (r *recordingUI) ReportProgressPercent(uint8) {}
func (r *recordingUI) ReportFinished()             { r.finished = true }
func (r *recordingUI) LogMessage(s string) {
	if r.onLog != nil {
		r.onLog(s)
	}
}

var errBoom = simpleError("boom")

type simpleError string

func (e simpleError) Error() string { return string(e) }
