package wmi

import "fmt"

// DiskTypeName maps the WMI Win32_LogicalDisk DriveType code to its
// display name.
func DiskTypeName(driveType uint32) string {
	switch driveType {
	case 0:
		return "UNKNOWN"
	case 1:
		return "NOROOT"
	case 2:
		return "REMOVABLE"
	case 3:
		return "LOCAL"
	case 4:
		return "NETWORK"
	case 5:
		return "CDROM"
	case 6:
		return "RAM"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", driveType)
	}
}
