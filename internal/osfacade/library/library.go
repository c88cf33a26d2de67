// Package library wraps dynamic module loading: plain executable/DLL
// loading for symbol resolution, and data-only loading for formatted
// message lookup (used by the legacy event log facade).
package library

import (
	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// Library is a loaded module handle. The zero value is not valid; use
// Open.
type Library struct {
	handle windows.Handle
}

// Open loads name with the given LoadLibraryEx flags (0 for ordinary
// executable loading).
func Open(name string, flags uintptr) (*Library, error) {
	h, err := windows.LoadLibraryEx(name, 0, flags)
	if err != nil {
		return nil, oserr.FromWindowsError("library.Open: "+name, err)
	}
	return &Library{handle: h}, nil
}

// Close releases the module handle.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := windows.FreeLibrary(l.handle)
	l.handle = 0
	if err != nil {
		return oserr.FromWindowsError("library.Close", err)
	}
	return nil
}

// Handle exposes the raw module handle for callers that need it directly
// (e.g. FormatMessage's hModule argument).
func (l *Library) Handle() windows.Handle { return l.handle }

// ProcAddress resolves name to a raw function pointer. Callers wrap the
// returned uintptr with the syscall signature they expect.
func (l *Library) ProcAddress(name string) (uintptr, error) {
	addr, err := windows.GetProcAddress(l.handle, name)
	if err != nil {
		return 0, oserr.FromWindowsError("library.ProcAddress: "+name, err)
	}
	return addr, nil
}

const (
	LoadLibraryAsDatafile      uintptr = windows.LOAD_LIBRARY_AS_DATAFILE
	LoadLibraryAsImageResource uintptr = windows.LOAD_LIBRARY_AS_IMAGE_RESOURCE
	DontResolveDllReferences   uintptr = 0x00000001
)
