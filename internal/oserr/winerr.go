package oserr

import (
	"errors"

	"golang.org/x/sys/windows"
)

// FromWindowsError translates a Win32 last-error value (typically obtained
// from a failed golang.org/x/sys/windows call) into the taxonomy. It is the
// single point every facade funnels syscall failures through.
func FromWindowsError(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var errno windows.Errno
	if !errors.As(err, &errno) {
		return Wrap(Other, op, err)
	}
	switch errno {
	case windows.ERROR_FILE_NOT_FOUND:
		return Wrap(FileNotFound, op, err)
	case windows.ERROR_PATH_NOT_FOUND:
		return Wrap(PathNotFound, op, err)
	case windows.ERROR_ACCESS_DENIED:
		return Wrap(AccessDenied, op, err)
	case windows.ERROR_ALREADY_EXISTS, windows.ERROR_FILE_EXISTS:
		return Wrap(AlreadyExists, op, err)
	case windows.ERROR_INVALID_PARAMETER:
		return Wrap(InvalidParameter, op, err)
	case windows.ERROR_MOD_NOT_FOUND:
		return Wrap(ModuleNotFound, op, err)
	case windows.ERROR_PROC_NOT_FOUND:
		return Wrap(ProcedureNotFound, op, err)
	default:
		return &Error{Kind: Other, Message: op, Raw: uint32(errno), Cause: err}
	}
}

// FromNTStatus converts an NTSTATUS value to the taxonomy by first mapping
// it to its Win32 equivalent via RtlNtStatusToDosError, then reusing the
// Win32 table.
func FromNTStatus(op string, status windows.NTStatus) *Error {
	if status == windows.STATUS_SUCCESS {
		return nil
	}
	win32 := status.Errno()
	return FromWindowsError(op, win32)
}

// FromHRESULT converts a COM/WMI HRESULT failure into the taxonomy. Most
// HRESULTs do not have a clean Win32 analogue; callers that want a specific
// Kind should check known constants before falling back to this.
func FromHRESULT(op string, hr uint32) *Error {
	if hr == 0 {
		return nil
	}
	const facilityWin32 = 0x80070000
	if hr&0xFFFF0000 == facilityWin32 {
		return FromWindowsError(op, windows.Errno(hr&0xFFFF))
	}
	return FromRaw(hr, op)
}
