package stockformats

import (
	"strconv"
	"strings"

	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
)

// BootMode annotates the header when the machine was started in safe mode.
type BootMode int

const (
	BootModeNormal BootMode = iota
	BootModeSafeMinimal
	BootModeSafeNetwork
)

// HeaderInfo carries every fact the script header line-block (§6.3) needs.
type HeaderInfo struct {
	Version         string
	BootMode        BootMode
	RunByUser       string
	RunAt           wintime.Packed
	TimezoneBiasMin int
	IEVersion       string
	JavaVersion     string
	FlashVersion    string
	AdobeVersion    string
	WindowsEdition  string
	WindowsArch     string
	Major, Minor    int
	Build           int
	ServicePack     int
	FreeMemoryMB    uint64
	TotalMemoryMB   uint64
}

// Header renders the fixed multi-line banner that opens every report:
// version, optional safe-boot annotation, run-by/run-at line, browser
// plugin versions, and the Windows edition/version/memory line.
func Header(info HeaderInfo) string {
	var b strings.Builder
	b.WriteString("Instalog ")
	b.WriteString(info.Version)
	b.WriteString("\r\n")

	switch info.BootMode {
	case BootModeSafeMinimal:
		b.WriteString("MINIMAL\r\n")
	case BootModeSafeNetwork:
		b.WriteString("NETWORK\r\n")
	}

	b.WriteString("Run By ")
	b.WriteString(info.RunByUser)
	b.WriteString(" on ")
	b.WriteString(DateWithMillis(info.RunAt))
	b.WriteString(" [")
	b.WriteString(GMTOffset(info.TimezoneBiasMin))
	b.WriteString("]\r\n")

	b.WriteString("IE: ")
	b.WriteString(info.IEVersion)
	b.WriteString(" Java: ")
	b.WriteString(info.JavaVersion)
	b.WriteString(" Flash: ")
	b.WriteString(info.FlashVersion)
	b.WriteString(" Adobe: ")
	b.WriteString(info.AdobeVersion)
	b.WriteString("\r\n")

	b.WriteString("Windows ")
	b.WriteString(info.WindowsEdition)
	b.WriteByte(' ')
	b.WriteString(info.WindowsArch)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(info.Major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(info.Minor))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(info.Build))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(info.ServicePack))
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(info.FreeMemoryMB, 10))
	b.WriteByte('/')
	b.WriteString(strconv.FormatUint(info.TotalMemoryMB, 10))
	b.WriteString(" MB Free")

	return b.String()
}

// Footer renders the single closing line: version, finish timestamp, and
// elapsed generation time in seconds.
func Footer(version string, finishedAt wintime.Packed, elapsedSeconds float64) string {
	return "Instalog " + version + " finished at " + DateWithMillis(finishedAt) +
		" (Generation took " + strconv.FormatFloat(elapsedSeconds, 'f', 3, 64) + " seconds)"
}
