//go:build windows

// Package file wraps per-file metadata and content access: an owning
// handle type plus the static helpers (exists, is_directory, company
// resource lookup, …) the scanning sections and path resolver both need.
package file

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
)

// Attributes is the Win32 FILE_ATTRIBUTE_* bitmap.
type Attributes uint32

// ExtendedAttributes bundles the four facts the report's default-file and
// file-listing lines need about one on-disk file.
type ExtendedAttributes struct {
	Created    wintime.Packed
	Accessed   wintime.Packed
	Written    wintime.Packed
	Size       uint64
	Attributes Attributes
}

// File is an owning handle acquired via CreateFile.
type File struct {
	h windows.Handle
}

// Open acquires a read handle to path, allowing other readers/writers
// (diagnostic tooling must not lock files it's merely inspecting).
func Open(path string) (*File, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, oserr.Wrap(oserr.InvalidUtf16, "file.Open: "+path, err)
	}
	h, err := windows.CreateFile(p,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil, windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS, 0)
	if err != nil {
		return nil, oserr.FromWindowsError("file.Open: "+path, err)
	}
	return &File{h: h}, nil
}

// Close releases the handle.
func (f *File) Close() error {
	if f == nil || f.h == windows.InvalidHandle || f.h == 0 {
		return nil
	}
	err := windows.CloseHandle(f.h)
	f.h = windows.InvalidHandle
	if err != nil {
		return oserr.FromWindowsError("file.Close", err)
	}
	return nil
}

// Size returns the current file size in bytes.
func (f *File) Size() (uint64, error) {
	var size int64
	if err := windows.GetFileSizeEx(f.h, &size); err != nil {
		return 0, oserr.FromWindowsError("file.Size", err)
	}
	return uint64(size), nil
}

// Attributes returns the file's attribute bitmap.
func (f *File) Attributes() (Attributes, error) {
	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(f.h, &info); err != nil {
		return 0, oserr.FromWindowsError("file.Attributes", err)
	}
	return Attributes(info.FileAttributes), nil
}

// ExtendedAttributes returns creation/access/write times, size, and
// attributes in a single call.
func (f *File) ExtendedAttributes() (ExtendedAttributes, error) {
	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(f.h, &info); err != nil {
		return ExtendedAttributes{}, oserr.FromWindowsError("file.ExtendedAttributes", err)
	}
	size := uint64(info.FileSizeHigh)<<32 | uint64(info.FileSizeLow)
	return ExtendedAttributes{
		Created:    wintime.FromFileTime(info.CreationTime),
		Accessed:   wintime.FromFileTime(info.LastAccessTime),
		Written:    wintime.FromFileTime(info.LastWriteTime),
		Size:       size,
		Attributes: Attributes(info.FileAttributes),
	}, nil
}

// ReadBytes reads up to n bytes from the current file position.
func (f *File) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	var read uint32
	if err := windows.ReadFile(f.h, buf, &read, nil); err != nil {
		return nil, oserr.FromWindowsError("file.ReadBytes", err)
	}
	return buf[:read], nil
}

// WriteBytes writes buf at the current file position. Used only by
// callers that opened the handle for write access.
func (f *File) WriteBytes(buf []byte) error {
	var written uint32
	if err := windows.WriteFile(f.h, buf, &written, nil); err != nil {
		return oserr.FromWindowsError("file.WriteBytes", err)
	}
	return nil
}

// ReadAllLines reads the file to EOF, detects UTF-16 by heuristic (a BOM,
// or every high byte NUL among the first 64 bytes), transcodes to
// UTF-8, strips a UTF-8 BOM, and splits on any run of \r/\n.
func (f *File) ReadAllLines() ([]string, error) {
	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	raw, err := f.ReadBytes(int(size))
	if err != nil {
		return nil, err
	}
	return splitLines(decodeText(raw)), nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	return err == nil && attrs != windows.INVALID_FILE_ATTRIBUTES
}

// IsDirectory reports whether path names an existing directory.
func IsDirectory(path string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil || attrs == windows.INVALID_FILE_ATTRIBUTES {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0
}

// IsExclusiveFile reports whether path exists and is not a directory.
func IsExclusiveFile(path string) bool {
	return Exists(path) && !IsDirectory(path)
}

// IsExecutable opens path and checks for the two-byte "MZ" signature.
func IsExecutable(path string) bool {
	f, err := Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	sig, err := f.ReadBytes(2)
	return err == nil && len(sig) == 2 && sig[0] == 'M' && sig[1] == 'Z'
}

// GetSize is the static equivalent of File.Size.
func GetSize(path string) (uint64, error) {
	f, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.Size()
}

// GetAttributes is the static equivalent of File.Attributes, implemented
// without opening a handle (GetFileAttributes alone is enough).
func GetAttributes(path string) (Attributes, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, oserr.Wrap(oserr.InvalidUtf16, "file.GetAttributes: "+path, err)
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return 0, oserr.FromWindowsError("file.GetAttributes: "+path, err)
	}
	return Attributes(attrs), nil
}

// GetExtendedAttributes is the static equivalent of
// File.ExtendedAttributes.
func GetExtendedAttributes(path string) (ExtendedAttributes, error) {
	f, err := Open(path)
	if err != nil {
		return ExtendedAttributes{}, err
	}
	defer f.Close()
	return f.ExtendedAttributes()
}

// Delete removes path.
func Delete(path string) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return oserr.Wrap(oserr.InvalidUtf16, "file.Delete: "+path, err)
	}
	if err := windows.DeleteFile(p); err != nil {
		return oserr.FromWindowsError("file.Delete: "+path, err)
	}
	return nil
}

// Company reads the localized \StringFileInfo\040904B0\CompanyName
// version resource from path. Returns "" (not an error) if the file
// carries no version resource.
func Company(path string) (string, error) {
	size, err := windows.GetFileVersionInfoSize(path, nil)
	if err != nil || size == 0 {
		return "", nil
	}
	data := make([]byte, size)
	if err := windows.GetFileVersionInfo(path, 0, size, unsafe.Pointer(&data[0])); err != nil {
		return "", nil
	}

	var block *uint16
	var blockLen uint32
	subBlock, err := windows.UTF16PtrFromString(`\StringFileInfo\040904B0\CompanyName`)
	if err != nil {
		return "", nil
	}
	if err := windows.VerQueryValue(unsafe.Pointer(&data[0]), subBlock, unsafe.Pointer(&block), &blockLen); err != nil || block == nil {
		return "", nil
	}
	u16 := unsafe.Slice(block, blockLen)
	return trimUTF16NUL(windows.UTF16ToString(u16)), nil
}

func trimUTF16NUL(s string) string {
	if i := strings.IndexRune(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}
