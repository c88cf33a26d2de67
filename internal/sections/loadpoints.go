//go:build windows

package sections

import "github.com/billyoneal/instalog-go/internal/logsink"

// LoadPointsReport is a placeholder: the original report's autorun-point
// enumeration (Run keys, services-as-loadpoints, Winlogon notify packages,
// Explorer shell extensions) is out of scope for this report.
func (c *Context) LoadPointsReport(sink logsink.Sink, argument string, options []string) error {
	return logsink.Writeln(sink, logsink.Str("Loadpoints report is not implemented in this build."))
}
