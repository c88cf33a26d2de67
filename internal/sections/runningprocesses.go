//go:build windows

package sections

import (
	"strings"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/osfacade/process"
	"github.com/billyoneal/instalog-go/internal/osfacade/scopes"
	"github.com/billyoneal/instalog-go/internal/pathresolve"
	"github.com/billyoneal/instalog-go/internal/strcodec"
)

// specialRenderFullCmdLine is the fixed set of prettified paths whose line
// renders the full command line instead of the bare path, per §4.8.
func (c *Context) specialRenderFullCmdLine(prettified string) bool {
	candidates := []string{
		c.WindowsDir + `\System32\Svchost.exe`,
		c.WindowsDir + `\System32\Svchost`,
		c.WindowsDir + `\System32\Rundll32.exe`,
		c.WindowsDir + `\Syswow64\Rundll32.exe`,
	}
	for _, cand := range candidates {
		if strings.EqualFold(prettified, cand) {
			return true
		}
	}
	return false
}

// RunningProcesses implements the RunningProcesses scanning section.
func (c *Context) RunningProcesses(sink logsink.Sink, argument string, options []string) error {
	priv, err := scopes.EnablePrivilege("SeDebugPrivilege")
	if err == nil {
		defer priv.Close()
	}

	records, err := process.Enumerate()
	if err != nil {
		return err
	}

	for _, rec := range records {
		path, err := rec.ExecutablePath(c.WindowsDir)
		if err != nil {
			if err := logsink.Writeln(sink, logsink.Str("Could not open process PID="), logsink.Uint(uint64(rec.PID))); err != nil {
				return err
			}
			continue
		}

		path = strings.TrimPrefix(path, `\??\`)
		if c.ProcessWhitelist.IsMember(path) {
			continue
		}

		pretty := pathresolve.Prettify(path)

		line := pretty
		if c.specialRenderFullCmdLine(pretty) {
			if cmdLine, err := rec.CommandLine(c.WindowsDir); err == nil && cmdLine != "" {
				line = cmdLine
			}
		}

		if err := logsink.Writeln(sink, logsink.Str(strcodec.GeneralEscape(line, strcodec.DefaultEscape, strcodec.DefaultEnd))); err != nil {
			return err
		}
	}
	return nil
}
