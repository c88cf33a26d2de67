//go:build windows

package sections

import (
	"sort"
	"strconv"
	"strings"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/osfacade/registry"
	"github.com/billyoneal/instalog-go/internal/strcodec"
)

const (
	keyQueryValue       = 0x0001
	keyEnumerateSubKeys = 0x0008
	uninstallKeyAccess  = keyQueryValue | keyEnumerateSubKeys
)

var uninstallKeyPaths = []string{
	`\Registry\Machine\Software\Microsoft\Windows\CurrentVersion\Uninstall`,
	`\Registry\Machine\Software\Wow6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

// InstalledPrograms implements the InstalledPrograms scanning section.
func (c *Context) InstalledPrograms(sink logsink.Sink, argument string, options []string) error {
	roots := uninstallKeyPaths
	if !c.Is64Bit {
		roots = roots[:1]
	}

	var lines []string
	for _, root := range roots {
		entries, err := installedProgramLines(root)
		if err != nil {
			continue
		}
		lines = append(lines, entries...)
	}

	sort.Slice(lines, func(i, j int) bool { return lowerLess(lines[i], lines[j]) })

	for _, line := range lines {
		if err := logsink.Writeln(sink, logsink.Str(line)); err != nil {
			return err
		}
	}
	return nil
}

func installedProgramLines(rootPath string) ([]string, error) {
	root, err := registry.Open(rootPath, uninstallKeyAccess)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	names, err := root.EnumerateSubkeyNames()
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, name := range names {
		sub, err := registry.Open(rootPath+`\`+name, keyQueryValue)
		if err != nil {
			continue
		}
		line, ok := installedProgramLine(sub)
		sub.Close()
		if ok {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func installedProgramLine(key *registry.Key) (string, bool) {
	if _, err := key.GetValue("ParentKeyName"); err == nil {
		return "", false
	}
	if v, err := key.GetValue("SystemComponent"); err == nil {
		if n, err := v.GetDWORD(); err == nil && n == 1 {
			return "", false
		}
	}
	nameVal, err := key.GetValue("DisplayName")
	if err != nil {
		return "", false
	}
	displayName, err := nameVal.GetString()
	if err != nil || displayName == "" {
		return "", false
	}

	line := strcodec.GeneralEscape(displayName, strcodec.DefaultEscape, strcodec.DefaultEnd)

	major, haveMajor := versionComponent(key, "VersionMajor")
	minor, haveMinor := versionComponent(key, "VersionMinor")
	if haveMajor && haveMinor {
		line += " (version " + strconv.FormatUint(uint64(major), 10) + "." + strconv.FormatUint(uint64(minor), 10) + ")"
	}
	return line, true
}

func versionComponent(key *registry.Key, name string) (uint32, bool) {
	v, err := key.GetValue(name)
	if err != nil {
		return 0, false
	}
	if n, err := v.GetDWORD(); err == nil {
		return n, true
	}
	if s, err := v.GetString(); err == nil {
		if n, perr := strconv.ParseUint(s, 10, 32); perr == nil {
			return uint32(n), true
		}
	}
	return 0, false
}

func lowerLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
