package report

import (
	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
	"github.com/billyoneal/instalog-go/internal/script"
	"github.com/billyoneal/instalog-go/internal/stockformats"
	"github.com/billyoneal/instalog-go/internal/strcodec"
)

// Executor runs a parsed Script against a single LogSink, driving a
// UserInterface with progress/finish notifications (§4.7).
type Executor struct {
	Sink logsink.Sink
	UI   UserInterface
}

// New returns an Executor writing to sink and notifying ui.
func New(sink logsink.Sink, ui UserInterface) *Executor {
	return &Executor{Sink: sink, UI: ui}
}

// Run executes every section of scr in priority/parse-index order,
// emitting header, per-section banners, and footer. header's RunAt and
// TimezoneBiasMin are overwritten with the executor's own captured start
// time; every other field is the caller's responsibility to populate
// (version string, user name, plugin versions, OS facts).
func (e *Executor) Run(scr *script.Script, header stockformats.HeaderInfo) error {
	e.UI.LogMessage("Starting Execution")

	startTime := wintime.LocalTimeNow()
	header.RunAt = startTime
	if bias, err := wintime.TimezoneBiasMinutes(); err == nil {
		header.TimezoneBiasMin = bias
	}

	if err := logsink.Write(e.Sink, logsink.Str(stockformats.Header(header)), logsink.Newline); err != nil {
		return err
	}

	for _, sec := range scr.Ordered() {
		e.UI.LogMessage("Executing " + sec.Definition.DisplayName)

		if err := logsink.Writeln(e.Sink); err != nil {
			return err
		}
		if err := logsink.Writeln(e.Sink, logsink.Str(strcodec.Header(sec.Definition.DisplayName, strcodec.DefaultHeaderWidth))); err != nil {
			return err
		}
		if err := logsink.Writeln(e.Sink); err != nil {
			return err
		}

		if err := sec.Definition.Execute(e.Sink, sec.Argument, sec.Options); err != nil {
			if werr := logsink.Writeln(e.Sink, logsink.Str("Section failed: "+err.Error())); werr != nil {
				return werr
			}
		}
	}

	if err := logsink.Writeln(e.Sink); err != nil {
		return err
	}

	finishTime := wintime.LocalTimeNow()
	elapsed := finishTime.Sub(startTime).Seconds()
	if err := logsink.Writeln(e.Sink, logsink.Str(stockformats.Footer(header.Version, finishTime, elapsed))); err != nil {
		return err
	}

	e.UI.ReportFinished()
	return nil
}
