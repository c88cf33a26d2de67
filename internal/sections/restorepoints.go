//go:build windows

package sections

import (
	"sort"
	"strconv"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/osfacade/wmi"
	"github.com/billyoneal/instalog-go/internal/strcodec"
)

// RestorePoints implements the RestorePoints scanning section.
func (c *Context) RestorePoints(sink logsink.Sink, argument string, options []string) error {
	points, err := wmi.QueryRestorePoints()
	if err != nil {
		return err
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].SequenceNumber < points[j].SequenceNumber
	})

	for _, p := range points {
		desc := strcodec.GeneralEscape(p.Description, strcodec.DefaultEscape, strcodec.DefaultEnd)
		line := strconv.FormatUint(uint64(p.SequenceNumber), 10) + ": " + p.CreationTime + " " + desc
		if err := logsink.Writeln(sink, logsink.Str(line)); err != nil {
			return err
		}
	}
	return nil
}
