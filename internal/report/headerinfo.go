//go:build windows

package report

import (
	"os"
	"strconv"
	"strings"

	"github.com/billyoneal/instalog-go/internal/osfacade/registry"
	"github.com/billyoneal/instalog-go/internal/osfacade/wmi"
	"github.com/billyoneal/instalog-go/internal/stockformats"
)

const (
	keyQueryValue = 0x0001

	ieVersionKey      = `\Registry\Machine\Software\Microsoft\Internet Explorer`
	javaVersionKey    = `\Registry\Machine\Software\JavaSoft\Java Runtime Environment`
	flashVersionKey   = `\Registry\Machine\Software\Macromedia\FlashPlayer`
	adobeVersionKey   = `\Registry\Machine\Software\Adobe\Acrobat Reader`
	safeBootOptionKey = `\Registry\Machine\System\CurrentControlSet\Control\SafeBoot\Option`
)

// BuildHeaderInfo gathers the facts the report banner (§6.3) needs: OS
// identity and memory from WMI, plugin versions and safe-boot state from
// the registry, and the invoking user from the environment. Every lookup
// is best-effort; a missing plugin or inaccessible key yields an empty
// field rather than aborting the run.
func BuildHeaderInfo(version string, is64Bit bool) stockformats.HeaderInfo {
	info := stockformats.HeaderInfo{
		Version:     version,
		RunByUser:   os.Getenv("USERNAME"),
		IEVersion:   readRegistryString(ieVersionKey, "svcVersion"),
		JavaVersion: readRegistryString(javaVersionKey, "CurrentVersion"),
		FlashVersion: strings.ReplaceAll(readRegistryString(flashVersionKey, "CurrentVersion"), ",", "."),
		AdobeVersion: readRegistryString(adobeVersionKey, "CurrentVersion"),
		BootMode:     safeBootMode(),
	}

	if is64Bit {
		info.WindowsArch = "64-bit"
	} else {
		info.WindowsArch = "32-bit"
	}

	if osInfo, err := wmi.QueryOperatingSystem(); err == nil {
		info.WindowsEdition = osInfo.Caption
		info.Major, info.Minor = parseOSVersion(osInfo.Version)
		info.Build, _ = strconv.Atoi(osInfo.BuildNumber)
		info.ServicePack = int(osInfo.ServicePackMajorVersion)
		info.FreeMemoryMB = osInfo.FreePhysicalMemory / 1024
		info.TotalMemoryMB = osInfo.TotalVisibleMemorySize / 1024
	}

	return info
}

func parseOSVersion(version string) (major, minor int) {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) > 0 {
		major, _ = strconv.Atoi(parts[0])
	}
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}

func safeBootMode() stockformats.BootMode {
	key, err := registry.Open(safeBootOptionKey, keyQueryValue)
	if err != nil {
		return stockformats.BootModeNormal
	}
	defer key.Close()

	val, err := key.GetValue("")
	if err != nil {
		return stockformats.BootModeNormal
	}
	s, err := val.GetString()
	if err != nil {
		return stockformats.BootModeNormal
	}
	switch strings.ToLower(s) {
	case "network":
		return stockformats.BootModeSafeNetwork
	case "minimal":
		return stockformats.BootModeSafeMinimal
	default:
		return stockformats.BootModeNormal
	}
}

func readRegistryString(path, valueName string) string {
	key, err := registry.Open(path, keyQueryValue)
	if err != nil {
		return ""
	}
	defer key.Close()

	val, err := key.GetValue(valueName)
	if err != nil {
		return ""
	}
	s, err := val.GetString()
	if err != nil {
		return ""
	}
	return s
}
