//go:build windows

package registry

import (
	"sort"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

var (
	ntdll               = windows.NewLazySystemDLL("ntdll.dll")
	procNtOpenKey       = ntdll.NewProc("NtOpenKey")
	procNtCreateKey     = ntdll.NewProc("NtCreateKey")
	procNtClose         = ntdll.NewProc("NtClose")
	procNtDeleteKey     = ntdll.NewProc("NtDeleteKey")
	procNtQueryKey      = ntdll.NewProc("NtQueryKey")
	procNtEnumerateKey  = ntdll.NewProc("NtEnumerateKey")
	procNtEnumerateVal  = ntdll.NewProc("NtEnumerateValueKey")
	procNtQueryValueKey = ntdll.NewProc("NtQueryValueKey")
	procNtSetValueKey   = ntdll.NewProc("NtSetValueKey")
)

// unicodeString mirrors the native UNICODE_STRING layout.
type unicodeString struct {
	Length        uint16
	MaximumLength uint16
	_             uint32 // padding to align Buffer on amd64
	Buffer        *uint16
}

func newUnicodeString(s string) (*unicodeString, []uint16, error) {
	u16, err := windows.UTF16FromString(s)
	if err != nil {
		return nil, nil, oserr.Wrap(oserr.InvalidUtf16, "registry.newUnicodeString", err)
	}
	// Exclude the implicit NUL terminator from Length, matching native
	// object-manager path semantics.
	n := uint16((len(u16) - 1) * 2)
	us := &unicodeString{Length: n, MaximumLength: n, Buffer: &u16[0]}
	return us, u16, nil
}

type objectAttributes struct {
	Length                   uint32
	RootDirectory            windows.Handle
	ObjectName               *unicodeString
	Attributes               uint32
	SecurityDescriptor       uintptr
	SecurityQualityOfService uintptr
}

const objAttrCaseInsensitive = 0x00000040

// Key is a live handle to an open registry key, addressed by its native NT
// path (e.g. `\Registry\Machine\Software\Microsoft`).
type Key struct {
	h    windows.Handle
	path string
}

// Open opens path (a full native NT registry path) for the given desired
// access (a combination of windows.KEY_* bits).
func Open(path string, access uint32) (*Key, error) {
	us, u16, err := newUnicodeString(path)
	if err != nil {
		return nil, err
	}
	_ = u16 // keep backing array alive through the syscall below

	oa := objectAttributes{
		ObjectName: us,
		Attributes: objAttrCaseInsensitive,
	}
	oa.Length = uint32(unsafe.Sizeof(oa))

	var h windows.Handle
	status, _, _ := procNtOpenKey.Call(
		uintptr(unsafe.Pointer(&h)),
		uintptr(access),
		uintptr(unsafe.Pointer(&oa)),
	)
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return nil, oserr.FromNTStatus("registry.Open: "+path, windows.NTStatus(status))
	}
	return &Key{h: h, path: path}, nil
}

// Create opens path, creating it (and any missing intermediate keys are
// NOT created — NtCreateKey only creates the leaf) if it does not exist.
func Create(path string, access uint32) (*Key, error) {
	us, u16, err := newUnicodeString(path)
	if err != nil {
		return nil, err
	}
	_ = u16

	oa := objectAttributes{
		ObjectName: us,
		Attributes: objAttrCaseInsensitive,
	}
	oa.Length = uint32(unsafe.Sizeof(oa))

	var h windows.Handle
	var disposition uint32
	status, _, _ := procNtCreateKey.Call(
		uintptr(unsafe.Pointer(&h)),
		uintptr(access),
		uintptr(unsafe.Pointer(&oa)),
		0, 0, 0,
		uintptr(unsafe.Pointer(&disposition)),
	)
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return nil, oserr.FromNTStatus("registry.Create: "+path, windows.NTStatus(status))
	}
	return &Key{h: h, path: path}, nil
}

// Close releases the key handle. Safe on a never-opened zero value.
func (k *Key) Close() error {
	if k == nil || k.h == 0 {
		return nil
	}
	status, _, _ := procNtClose.Call(uintptr(k.h))
	k.h = 0
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return oserr.FromNTStatus("registry.Key.Close", windows.NTStatus(status))
	}
	return nil
}

// Delete deletes the key itself. The key must have no subkeys.
func (k *Key) Delete() error {
	status, _, _ := procNtDeleteKey.Call(uintptr(k.h))
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return oserr.FromNTStatus("registry.Key.Delete: "+k.path, windows.NTStatus(status))
	}
	return nil
}

// Name returns the full canonical native path of the key, as reported by
// NtQueryKey rather than the path it was opened with (they agree unless a
// symlink was traversed).
func (k *Key) Name() (string, error) {
	var neededBytes uint32
	// KeyNameInformation = 3
	status, _, _ := procNtQueryKey.Call(uintptr(k.h), 3, 0, 0, uintptr(unsafe.Pointer(&neededBytes)))
	if windows.NTStatus(status) != windows.STATUS_BUFFER_TOO_SMALL {
		if windows.NTStatus(status) != windows.STATUS_SUCCESS {
			return "", oserr.FromNTStatus("registry.Key.Name: NtQueryKey size probe", windows.NTStatus(status))
		}
	}
	buf := make([]byte, neededBytes)
	var actual uint32
	status, _, _ = procNtQueryKey.Call(
		uintptr(k.h), 3,
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)),
		uintptr(unsafe.Pointer(&actual)),
	)
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return "", oserr.FromNTStatus("registry.Key.Name: NtQueryKey", windows.NTStatus(status))
	}
	// KEY_NAME_INFORMATION { ULONG NameLength; WCHAR Name[1]; }
	nameLen := *(*uint32)(unsafe.Pointer(&buf[0]))
	nameBytes := buf[4 : 4+nameLen]
	u16 := make([]uint16, nameLen/2)
	for i := range u16 {
		u16[i] = uint16(nameBytes[2*i]) | uint16(nameBytes[2*i+1])<<8
	}
	return windows.UTF16ToString(u16), nil
}

// EnumerateSubkeyNames returns the names of every immediate child key, in
// enumeration order.
func (k *Key) EnumerateSubkeyNames() ([]string, error) {
	var names []string
	for index := uint32(0); ; index++ {
		name, err := k.enumKeyAt(index)
		if err != nil {
			if isNoMoreEntries(err) {
				break
			}
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (k *Key) enumKeyAt(index uint32) (string, error) {
	var neededBytes uint32
	// KeyBasicInformation = 0
	status, _, _ := procNtEnumerateKey.Call(uintptr(k.h), uintptr(index), 0, 0, 0, uintptr(unsafe.Pointer(&neededBytes)))
	if windows.NTStatus(status) == windows.STATUS_NO_MORE_ENTRIES {
		return "", oserr.New(oserr.FileNotFound, "registry.enumKeyAt: no more entries")
	}
	buf := make([]byte, neededBytes)
	var actual uint32
	status, _, _ = procNtEnumerateKey.Call(
		uintptr(k.h), uintptr(index), 0,
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)),
		uintptr(unsafe.Pointer(&actual)),
	)
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return "", oserr.FromNTStatus("registry.enumKeyAt", windows.NTStatus(status))
	}
	// KEY_BASIC_INFORMATION { LARGE_INTEGER LastWriteTime; ULONG TitleIndex;
	//                         ULONG NameLength; WCHAR Name[1]; }
	nameLen := *(*uint32)(unsafe.Pointer(&buf[12]))
	nameBytes := buf[16 : 16+nameLen]
	u16 := make([]uint16, nameLen/2)
	for i := range u16 {
		u16[i] = uint16(nameBytes[2*i]) | uint16(nameBytes[2*i+1])<<8
	}
	return windows.UTF16ToString(u16), nil
}

func isNoMoreEntries(err error) bool {
	e, ok := err.(*oserr.Error)
	return ok && e.Kind == oserr.FileNotFound
}

// EnumerateSubkeys opens every immediate child with access, returning one
// Key per child name. A child that fails to open is represented by a nil
// Key paired with its error rather than aborting the whole enumeration.
func (k *Key) EnumerateSubkeys(access uint32) ([]SubkeyResult, error) {
	names, err := k.EnumerateSubkeyNames()
	if err != nil {
		return nil, err
	}
	out := make([]SubkeyResult, 0, len(names))
	for _, name := range names {
		child, err := Open(k.path+`\`+name, access)
		out = append(out, SubkeyResult{Name: name, Key: child, Err: err})
	}
	return out, nil
}

// SubkeyResult is one element of EnumerateSubkeys: the child's name, and
// either a live Key or the error that prevented opening it.
type SubkeyResult struct {
	Name string
	Key  *Key
	Err  error
}

// EnumerateValues returns every value under the key, sorted by
// ValueAndData.Name.
func (k *Key) EnumerateValues() ([]ValueAndData, error) {
	var out []ValueAndData
	for index := uint32(0); ; index++ {
		vad, err := k.enumValueAt(index)
		if err != nil {
			if isNoMoreEntries(err) {
				break
			}
			return nil, err
		}
		out = append(out, vad)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (k *Key) enumValueAt(index uint32) (ValueAndData, error) {
	var neededBytes uint32
	// KeyValueFullInformation = 1
	status, _, _ := procNtEnumerateVal.Call(uintptr(k.h), uintptr(index), 1, 0, 0, uintptr(unsafe.Pointer(&neededBytes)))
	if windows.NTStatus(status) == windows.STATUS_NO_MORE_ENTRIES {
		return ValueAndData{}, oserr.New(oserr.FileNotFound, "registry.enumValueAt: no more entries")
	}
	buf := make([]byte, neededBytes)
	var actual uint32
	status, _, _ = procNtEnumerateVal.Call(
		uintptr(k.h), uintptr(index), 1,
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)),
		uintptr(unsafe.Pointer(&actual)),
	)
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return ValueAndData{}, oserr.FromNTStatus("registry.enumValueAt", windows.NTStatus(status))
	}
	return parseKeyValueFullInformation(buf), nil
}

// KEY_VALUE_FULL_INFORMATION { ULONG TitleIndex; ULONG Type; ULONG
// DataOffset; ULONG DataLength; ULONG NameLength; WCHAR Name[1]; ...Data }
func parseKeyValueFullInformation(buf []byte) ValueAndData {
	typ := *(*uint32)(unsafe.Pointer(&buf[4]))
	dataOffset := *(*uint32)(unsafe.Pointer(&buf[8]))
	dataLength := *(*uint32)(unsafe.Pointer(&buf[12]))
	nameLength := *(*uint32)(unsafe.Pointer(&buf[16]))
	nameBytes := buf[20 : 20+nameLength]
	u16 := make([]uint16, nameLength/2)
	for i := range u16 {
		u16[i] = uint16(nameBytes[2*i]) | uint16(nameBytes[2*i+1])<<8
	}
	data := make([]byte, dataLength)
	copy(data, buf[dataOffset:dataOffset+dataLength])
	return ValueAndData{
		Name:  windows.UTF16ToString(u16),
		Value: Value{Type: Type(typ), Data: data},
	}
}

// GetValue reads a single named value.
func (k *Key) GetValue(name string) (Value, error) {
	us, u16, err := newUnicodeString(name)
	if err != nil {
		return Value{}, err
	}
	_ = u16

	var neededBytes uint32
	// KeyValuePartialInformation = 2
	status, _, _ := procNtQueryValueKey.Call(
		uintptr(k.h), uintptr(unsafe.Pointer(us)), 2, 0, 0, uintptr(unsafe.Pointer(&neededBytes)),
	)
	if windows.NTStatus(status) != windows.STATUS_BUFFER_TOO_SMALL && windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return Value{}, oserr.FromNTStatus("registry.GetValue: "+name, windows.NTStatus(status))
	}
	buf := make([]byte, neededBytes)
	var actual uint32
	status, _, _ = procNtQueryValueKey.Call(
		uintptr(k.h), uintptr(unsafe.Pointer(us)), 2,
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)),
		uintptr(unsafe.Pointer(&actual)),
	)
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return Value{}, oserr.FromNTStatus("registry.GetValue: "+name, windows.NTStatus(status))
	}
	// KEY_VALUE_PARTIAL_INFORMATION { ULONG TitleIndex; ULONG Type;
	//                                 ULONG DataLength; UCHAR Data[1]; }
	typ := *(*uint32)(unsafe.Pointer(&buf[4]))
	dataLength := *(*uint32)(unsafe.Pointer(&buf[8]))
	data := make([]byte, dataLength)
	copy(data, buf[12:12+dataLength])
	return Value{Type: Type(typ), Data: data}, nil
}

// SetValue writes a named value.
func (k *Key) SetValue(name string, typ Type, data []byte) error {
	us, u16, err := newUnicodeString(name)
	if err != nil {
		return err
	}
	_ = u16

	var dataPtr uintptr
	if len(data) > 0 {
		dataPtr = uintptr(unsafe.Pointer(&data[0]))
	}
	status, _, _ := procNtSetValueKey.Call(
		uintptr(k.h), uintptr(unsafe.Pointer(us)), 0,
		uintptr(typ), dataPtr, uintptr(len(data)),
	)
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return oserr.FromNTStatus("registry.SetValue: "+name, windows.NTStatus(status))
	}
	return nil
}

// SizeInfo reports the key's last-write time (packed native file-time),
// subkey count, and value count.
type SizeInfo struct {
	LastWriteTime uint64
	SubkeyCount   uint32
	ValueCount    uint32
}

// SizeInfo queries KeyFullInformation for the counts and last-write time.
func (k *Key) SizeInfo() (SizeInfo, error) {
	var neededBytes uint32
	// KeyFullInformation = 2
	procNtQueryKey.Call(uintptr(k.h), 2, 0, 0, uintptr(unsafe.Pointer(&neededBytes)))
	if neededBytes == 0 {
		neededBytes = 256
	}
	buf := make([]byte, neededBytes)
	var actual uint32
	status, _, _ := procNtQueryKey.Call(
		uintptr(k.h), 2,
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)),
		uintptr(unsafe.Pointer(&actual)),
	)
	if windows.NTStatus(status) != windows.STATUS_SUCCESS {
		return SizeInfo{}, oserr.FromNTStatus("registry.SizeInfo", windows.NTStatus(status))
	}
	// KEY_FULL_INFORMATION starts with LARGE_INTEGER LastWriteTime (8),
	// LONG TitleIndex (4), ULONG ClassOffset (4), ULONG ClassLength (4),
	// ULONG SubKeys (4), ULONG MaxNameLen (4), ULONG MaxClassLen (4),
	// ULONG Values (4), ...
	lastWrite := *(*uint64)(unsafe.Pointer(&buf[0]))
	subKeys := *(*uint32)(unsafe.Pointer(&buf[20]))
	values := *(*uint32)(unsafe.Pointer(&buf[32]))
	return SizeInfo{LastWriteTime: lastWrite, SubkeyCount: subKeys, ValueCount: values}, nil
}

// IsValid reports whether the key holds a live handle.
func (k *Key) IsValid() bool { return k != nil && k.h != 0 }
