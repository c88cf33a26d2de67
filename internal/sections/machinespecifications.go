//go:build windows

package sections

import (
	"strconv"
	"time"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
	"github.com/billyoneal/instalog-go/internal/osfacade/wmi"
	"github.com/billyoneal/instalog-go/internal/stockformats"
)

// MachineSpecifications implements the MachineSpecifications scanning
// section.
func (c *Context) MachineSpecifications(sink logsink.Sink, argument string, options []string) error {
	os, err := wmi.QueryOperatingSystem()
	if err != nil {
		return err
	}
	if err := logsink.Writeln(sink, logsink.Str("Boot Device: "+os.SystemDrive)); err != nil {
		return err
	}
	if err := logsink.Writeln(sink, logsink.Str("Install Date: "+os.InstallDate)); err != nil {
		return err
	}

	if err := c.emitBootedAt(sink); err != nil {
		return err
	}

	board, err := wmi.QueryBaseBoard()
	if err == nil {
		if err := logsink.Writeln(sink, logsink.Str("Motherboard: "+board.Manufacturer+" "+board.Product)); err != nil {
			return err
		}
	}

	cpu, err := wmi.QueryProcessor()
	if err == nil {
		if err := logsink.Writeln(sink, logsink.Str("Processor: "+cpu.Name)); err != nil {
			return err
		}
	}

	disks, err := wmi.QueryLogicalDisks()
	if err != nil {
		return err
	}
	for _, d := range disks {
		line := d.DeviceID + " is " + wmi.DiskTypeName(d.DriveType)
		if d.Size != nil && d.FreeSpace != nil {
			const gib = 1024 * 1024 * 1024
			totalGiB := *d.Size / gib
			freeGiB := *d.FreeSpace / gib
			line += " - " + strconv.FormatUint(totalGiB, 10) + " GiB total, " + strconv.FormatUint(freeGiB, 10) + " GiB free"
		}
		if err := logsink.Writeln(sink, logsink.Str(line)); err != nil {
			return err
		}
	}
	return nil
}

// emitBootedAt computes the boot instant from GetTickCount64 (uptime)
// and the local timezone bias, per the facade's NT SystemTimeOfDayInformation
// contract simplified to the publicly documented uptime counter.
func (c *Context) emitBootedAt(sink logsink.Sink) error {
	uptime := time.Duration(windows.GetTickCount64()) * time.Millisecond
	bootUnix := time.Now().Unix() - int64(uptime.Seconds())

	bias, _ := wintime.TimezoneBiasMinutes()
	bootTime := wintime.FiletimeFromSecondsSince1970(uint32(bootUnix)).WithBias(bias)

	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60

	line := "Booted at: " + stockformats.Date(bootTime) + " (Up " +
		strconv.Itoa(days) + " Days " + strconv.Itoa(hours) + " Hours " + strconv.Itoa(minutes) + " Minutes)"
	return logsink.Writeln(sink, logsink.Str(line))
}
