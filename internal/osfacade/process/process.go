// Package process enumerates running processes and lazily resolves each
// one's executable path and command line by reading its PEB.
package process

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// Record is a lazily resolved process: only the PID is captured at
// enumeration time, matching the cost profile of the native snapshot
// (resolving every process's path up front would be needlessly slow for
// sections that only need a subset).
type Record struct {
	PID uint32
}

// Enumerate takes a snapshot of every running process and returns one
// Record per PID, in the order the OS reported them.
func Enumerate() ([]Record, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, oserr.FromWindowsError("process.Enumerate", err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var out []Record
	if err := windows.Process32First(snap, &entry); err != nil {
		return nil, oserr.FromWindowsError("process.Enumerate: Process32First", err)
	}
	for {
		out = append(out, Record{PID: entry.ProcessID})
		if err := windows.Process32Next(snap, &entry); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, oserr.FromWindowsError("process.Enumerate: Process32Next", err)
		}
	}
	return out, nil
}

// systemIdlePID and the PID 4 convention are well-known fixed points:
// the kernel itself never has a resolvable image path.
const systemIdlePID = 0

// ExecutablePath resolves the process's image path. PID 0 and PID 4 are
// handled as fixed special cases; other PIDs are opened for
// VM-read+query and their PEB is walked. windowsDir names the system
// directory for the PID-4 special case.
func (r Record) ExecutablePath(windowsDir string) (string, error) {
	switch r.PID {
	case systemIdlePID:
		return "System Idle Process", nil
	case 4:
		return windowsDir + `\System32\Ntoskrnl.exe`, nil
	}
	return r.readProcessParameter(windowsDir, pebFieldImagePathName)
}

// CommandLine resolves the process's recorded command line, the same way
// as ExecutablePath but reading the adjacent UNICODE_STRING field.
func (r Record) CommandLine(windowsDir string) (string, error) {
	return r.readProcessParameter(windowsDir, pebFieldCommandLine)
}

type pebField int

const (
	pebFieldImagePathName pebField = iota
	pebFieldCommandLine
)

func (r Record) readProcessParameter(windowsDir string, field pebField) (string, error) {
	h, err := windows.OpenProcess(
		windows.PROCESS_VM_READ|windows.PROCESS_QUERY_INFORMATION,
		false, r.PID)
	if err != nil {
		if err == windows.ERROR_ACCESS_DENIED {
			return r.readViaLimitedQuery(field)
		}
		return "", oserr.FromWindowsError("process.readProcessParameter: OpenProcess", err)
	}
	defer windows.CloseHandle(h)

	peb, err := readPEBAddress(h)
	if err != nil {
		return "", err
	}
	params, err := readProcessParameters(h, peb)
	if err != nil {
		return "", err
	}
	switch field {
	case pebFieldImagePathName:
		return readUnicodeString(h, params.imagePathName)
	default:
		return readUnicodeString(h, params.commandLine)
	}
}

// readViaLimitedQuery falls back to QueryFullProcessImageName, available
// without VM-read rights, for the executable path only. Command lines
// are not retrievable this way; callers get an AccessDenied OsError.
func (r Record) readViaLimitedQuery(field pebField) (string, error) {
	if field != pebFieldImagePathName {
		return "", oserr.New(oserr.AccessDenied, "process.readViaLimitedQuery: command line unavailable")
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, r.PID)
	if err != nil {
		return "", oserr.FromWindowsError("process.readViaLimitedQuery: OpenProcess", err)
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", oserr.FromWindowsError("process.readViaLimitedQuery: QueryFullProcessImageName", err)
	}
	return windows.UTF16ToString(buf[:size]), nil
}
