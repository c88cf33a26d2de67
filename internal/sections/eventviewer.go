//go:build windows

package sections

import (
	"strconv"
	"strings"
	"time"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/osfacade/eventlog"
	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
	"github.com/billyoneal/instalog-go/internal/stockformats"
	"github.com/billyoneal/instalog-go/internal/strcodec"
)

var eventViewerExcludedIDs = map[uint32]bool{1000: true, 8023: true, 10010: true}

const eventViewerLookback = 7 * 24 * time.Hour

// openSystemEventLog tries the XML/modern surface first, falling back to
// the legacy surface on construction failure, matching the facade's
// documented fallback contract.
func openSystemEventLog() (eventlog.EventLog, error) {
	if xml, err := eventlog.OpenXML("System", "Event/System[Level=1 or Level=2]"); err == nil {
		return xml, nil
	}
	return eventlog.OpenLegacy("System")
}

// EventViewer implements the EventViewer scanning section.
func (c *Context) EventViewer(sink logsink.Sink, argument string, options []string) error {
	log, err := openSystemEventLog()
	if err != nil {
		return err
	}
	defer log.Close()

	records, err := log.ReadEvents()
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-eventViewerLookback).Unix()

	for _, rec := range records {
		if rec.Level != eventlog.Critical && rec.Level != eventlog.Error {
			continue
		}
		if int64(rec.Timestamp) < cutoff {
			continue
		}
		if eventViewerExcludedIDs[rec.EventID] {
			continue
		}

		desc := strcodec.GeneralEscape(rec.Description, strcodec.DefaultEscape, strcodec.DefaultEnd)
		desc = strings.TrimSuffix(desc, "#r#n")

		line := stockformats.Date(wintime.FiletimeFromSecondsSince1970(rec.Timestamp)) + ", " + rec.Level.String() +
			": " + rec.Source + " [" + strconv.FormatUint(uint64(rec.EventID), 10) + "] " + desc
		if err := logsink.Writeln(sink, logsink.Str(line)); err != nil {
			return err
		}
	}
	return nil
}
