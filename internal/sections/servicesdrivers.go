//go:build windows

package sections

import (
	"sort"
	"strconv"
	"strings"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/osfacade/service"
)

// ServicesDrivers implements the ServicesDrivers scanning section.
func (c *Context) ServicesDrivers(sink logsink.Sink, argument string, options []string) error {
	scanner, err := service.Connect(c.Resolver, c.WindowsDir)
	if err != nil {
		return err
	}
	defer scanner.Close()

	records, err := scanner.Enumerate()
	if err != nil {
		return err
	}

	var lines []string
	for _, rec := range records {
		if rec.SvchostDamaged {
			continue
		}
		fingerprint := rec.SvchostGroup + ";" + strings.ToLower(rec.FilePath) + ";" + strings.ToLower(rec.Name) + ";" + strings.ToLower(rec.DisplayName)
		if c.ServiceWhitelist.IsMember(fingerprint) {
			continue
		}

		driverFlag := ""
		if rec.IsDriver {
			driverFlag = "D"
		}

		target := decorateFile(rec.FilePath)
		if rec.SvchostGroup != "" && rec.HostDLLErr == nil {
			target = rec.SvchostGroup + "->" + decorateFile(rec.HostDLL)
		}

		line := string(rec.State) + strconv.FormatUint(uint64(rec.StartType), 10) + driverFlag +
			" " + rec.Name + ";" + rec.DisplayName + ";" + target
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool {
		return strings.ToLower(lines[i]) < strings.ToLower(lines[j])
	})

	for _, line := range lines {
		if err := logsink.Writeln(sink, logsink.Str(line)); err != nil {
			return err
		}
	}
	return nil
}
