package process

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// processBasicInformation mirrors PROCESS_BASIC_INFORMATION's layout on
// both 32 and 64-bit targets; only PebBaseAddress is consumed here.
type processBasicInformation struct {
	ExitStatus                   uintptr
	PebBaseAddress               uintptr
	AffinityMask                 uintptr
	BasePriority                 uintptr
	UniqueProcessID              uintptr
	InheritedFromUniqueProcessID uintptr
}

// unicodeString mirrors the native UNICODE_STRING layout.
type unicodeString struct {
	Length        uint16
	MaximumLength uint16
	_             uint32 // alignment padding on 64-bit
	Buffer        uintptr
}

type processParameters struct {
	imagePathName unicodeString
	commandLine   unicodeString
}

const processBasicInformationClass = 0

var (
	ntdll                        = windows.NewLazySystemDLL("ntdll.dll")
	procNtQueryInformationProcess = ntdll.NewProc("NtQueryInformationProcess")
)

func readPEBAddress(h windows.Handle) (uintptr, error) {
	var info processBasicInformation
	var retLen uint32
	r0, _, _ := procNtQueryInformationProcess.Call(
		uintptr(h),
		uintptr(processBasicInformationClass),
		uintptr(unsafe.Pointer(&info)),
		unsafe.Sizeof(info),
		uintptr(unsafe.Pointer(&retLen)),
	)
	if status := windows.NTStatus(r0); status != windows.STATUS_SUCCESS {
		return 0, oserr.FromNTStatus("process.readPEBAddress", status)
	}
	return info.PebBaseAddress, nil
}

// pebOffsetProcessParameters is the offset of ProcessParameters within
// the PEB structure on 64-bit Windows.
const pebOffsetProcessParameters = 0x20

// ruppOffsetImagePathName and ruppOffsetCommandLine are the
// offsets of the two UNICODE_STRING fields within
// RTL_USER_PROCESS_PARAMETERS on 64-bit Windows.
const (
	ruppOffsetImagePathName = 0x60
	ruppOffsetCommandLine   = 0x70
)

func readProcessParameters(h windows.Handle, peb uintptr) (processParameters, error) {
	var paramsAddr uintptr
	if err := readMemory(h, peb+pebOffsetProcessParameters, unsafe.Pointer(&paramsAddr), unsafe.Sizeof(paramsAddr)); err != nil {
		return processParameters{}, err
	}

	var out processParameters
	if err := readMemory(h, paramsAddr+ruppOffsetImagePathName, unsafe.Pointer(&out.imagePathName), unsafe.Sizeof(out.imagePathName)); err != nil {
		return processParameters{}, err
	}
	if err := readMemory(h, paramsAddr+ruppOffsetCommandLine, unsafe.Pointer(&out.commandLine), unsafe.Sizeof(out.commandLine)); err != nil {
		return processParameters{}, err
	}
	return out, nil
}

func readMemory(h windows.Handle, addr uintptr, dst unsafe.Pointer, size uintptr) error {
	var read uintptr
	if err := windows.ReadProcessMemory(h, addr, (*byte)(dst), size, &read); err != nil {
		return oserr.FromWindowsError("process.readMemory", err)
	}
	if read != size {
		return oserr.New(oserr.InvalidParameter, "process.readMemory: short read")
	}
	return nil
}

func readUnicodeString(h windows.Handle, s unicodeString) (string, error) {
	if s.Length == 0 {
		return "", nil
	}
	buf := make([]uint16, s.Length/2)
	if err := readMemory(h, s.Buffer, unsafe.Pointer(&buf[0]), uintptr(s.Length)); err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf), nil
}
