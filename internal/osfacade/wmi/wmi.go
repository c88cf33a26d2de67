//go:build windows

// Package wmi backs MachineSpecifications and RestorePoints with typed WMI
// queries over the StackExchange/wmi client, which in turn drives its COM
// calls through go-ole under a caller-supplied single-threaded apartment
// (see internal/osfacade/scopes.ComApartmentScope).
package wmi

import (
	"github.com/StackExchange/wmi"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// OperatingSystem mirrors the Win32_OperatingSystem fields
// MachineSpecifications needs.
type OperatingSystem struct {
	SystemDrive    string
	InstallDate    string
	Caption        string
	Version        string
	BuildNumber    string
	ServicePackMajorVersion uint16
	OSArchitecture string
	FreePhysicalMemory    uint64 // KB
	TotalVisibleMemorySize uint64 // KB
}

// BaseBoard mirrors Win32_BaseBoard.
type BaseBoard struct {
	Manufacturer string
	Product      string
}

// Processor mirrors Win32_Processor.
type Processor struct {
	Name string
}

// LogicalDisk mirrors Win32_LogicalDisk.
type LogicalDisk struct {
	DeviceID  string
	DriveType uint32
	Size      *uint64
	FreeSpace *uint64
}

// RestorePoint mirrors SystemRestore.
type RestorePoint struct {
	SequenceNumber  uint32
	CreationTime    string
	Description     string
}

// QueryOperatingSystem runs a Win32_OperatingSystem query and returns the
// single expected row.
func QueryOperatingSystem() (OperatingSystem, error) {
	var rows []OperatingSystem
	if err := wmi.Query("SELECT SystemDrive, InstallDate, Caption, Version, BuildNumber, ServicePackMajorVersion, OSArchitecture, FreePhysicalMemory, TotalVisibleMemorySize FROM Win32_OperatingSystem", &rows); err != nil {
		return OperatingSystem{}, oserr.Wrap(oserr.Other, "wmi.QueryOperatingSystem", err)
	}
	if len(rows) == 0 {
		return OperatingSystem{}, oserr.New(oserr.Other, "wmi.QueryOperatingSystem: no rows")
	}
	return rows[0], nil
}

// QueryBaseBoard runs a Win32_BaseBoard query.
func QueryBaseBoard() (BaseBoard, error) {
	var rows []BaseBoard
	if err := wmi.Query("SELECT Manufacturer, Product FROM Win32_BaseBoard", &rows); err != nil {
		return BaseBoard{}, oserr.Wrap(oserr.Other, "wmi.QueryBaseBoard", err)
	}
	if len(rows) == 0 {
		return BaseBoard{}, oserr.New(oserr.Other, "wmi.QueryBaseBoard: no rows")
	}
	return rows[0], nil
}

// QueryProcessor runs a Win32_Processor query and returns the first CPU.
func QueryProcessor() (Processor, error) {
	var rows []Processor
	if err := wmi.Query("SELECT Name FROM Win32_Processor", &rows); err != nil {
		return Processor{}, oserr.Wrap(oserr.Other, "wmi.QueryProcessor", err)
	}
	if len(rows) == 0 {
		return Processor{}, oserr.New(oserr.Other, "wmi.QueryProcessor: no rows")
	}
	return rows[0], nil
}

// QueryLogicalDisks runs a Win32_LogicalDisk query.
func QueryLogicalDisks() ([]LogicalDisk, error) {
	var rows []LogicalDisk
	if err := wmi.Query("SELECT DeviceID, DriveType, Size, FreeSpace FROM Win32_LogicalDisk", &rows); err != nil {
		return nil, oserr.Wrap(oserr.Other, "wmi.QueryLogicalDisks", err)
	}
	return rows, nil
}

// QueryRestorePoints runs a SystemRestore query in the WMI
// root\default namespace, where the System Restore provider lives.
func QueryRestorePoints() ([]RestorePoint, error) {
	var rows []RestorePoint
	if err := wmi.QueryNamespace("SELECT SequenceNumber, CreationTime, Description FROM SystemRestore", &rows, `root\default`); err != nil {
		return nil, oserr.Wrap(oserr.Other, "wmi.QueryRestorePoints", err)
	}
	return rows, nil
}
