package library

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// FormattedMessageLoader opens a module as a resource-only image so its
// message table can be used to render %1-style parameterized strings
// (used by the legacy event log facade's description formatting).
type FormattedMessageLoader struct {
	lib *Library
}

// OpenFormattedMessageLoader loads name as a data-file-only image; no code
// is executed, only resources are mapped.
func OpenFormattedMessageLoader(name string) (*FormattedMessageLoader, error) {
	lib, err := Open(name, LoadLibraryAsDatafile|LoadLibraryAsImageResource)
	if err != nil {
		return nil, err
	}
	return &FormattedMessageLoader{lib: lib}, nil
}

// Close releases the underlying module.
func (f *FormattedMessageLoader) Close() error { return f.lib.Close() }

// Format renders messageID from the loaded module's message table,
// substituting args into the %1, %2, … placeholders array-style.
func (f *FormattedMessageLoader) Format(messageID uint32, args []string) (string, error) {
	argPtrs := make([]*uint16, len(args))
	for i, a := range args {
		p, err := windows.UTF16PtrFromString(a)
		if err != nil {
			return "", oserr.Wrap(oserr.InvalidUtf16, "FormattedMessageLoader.Format", err)
		}
		argPtrs[i] = p
	}

	const flags = windows.FORMAT_MESSAGE_FROM_HMODULE | windows.FORMAT_MESSAGE_ARGUMENT_ARRAY

	buf := make([]uint16, 8192)
	var argsPtr *byte
	if len(argPtrs) > 0 {
		argsPtr = (*byte)(unsafe.Pointer(&argPtrs[0]))
	}
	n, err := windows.FormatMessage(flags, uintptr(f.lib.Handle()), messageID, 0, buf, argsPtr)
	if err != nil {
		return "", oserr.FromWindowsError("FormattedMessageLoader.Format", err)
	}
	return windows.UTF16ToString(buf[:n]), nil
}
