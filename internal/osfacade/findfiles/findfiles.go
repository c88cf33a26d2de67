//go:build windows

// Package findfiles walks directories matching a glob pattern, optionally
// recursively, yielding search-relative FindFilesRecord values one at a
// time.
package findfiles

import (
	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
)

// Options is a bitmask of FindFiles behaviors.
type Options uint32

const (
	// RecursiveSearch descends into every subdirectory that is not a
	// reparse point and not "." or "..".
	RecursiveSearch Options = 1 << iota
	// IncludeDotDirectories includes "." and ".." in results; by default
	// they are excluded.
	IncludeDotDirectories
)

// Record is one matched file or directory, with a search-relative name
// (e.g. "drivers\etc\hosts" when the pattern was rooted at "System32\*").
type Record struct {
	Name       string
	Created    wintime.Packed
	Accessed   wintime.Packed
	Written    wintime.Packed
	Size       uint64
	Attributes uint32
}

// IsDirectory reports whether the record names a directory.
func (r Record) IsDirectory() bool {
	return r.Attributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0
}

type frame struct {
	handle  windows.Handle
	prefix  string // search-relative prefix, e.g. `drivers\etc\`
	dir     string // absolute directory this frame is enumerating
	pending *windows.Win32finddata
}

// FindFiles walks pattern (e.g. `C:\Windows\System32\*`), optionally
// recursing into subdirectories. Iteration is pull-based via Next/
// NextSuccess; construction failure is reported immediately rather than
// deferred to the first Next call.
type FindFiles struct {
	opts    Options
	pattern string
	root    string
	base    string // directory portion of pattern, with trailing backslash

	stack   []frame
	current Record
	haveRec bool
	lastErr error
}

// Open begins a search for pattern with the given options.
func Open(pattern string, opts Options) (*FindFiles, error) {
	dir, base := splitPattern(pattern)
	ff := &FindFiles{opts: opts, pattern: pattern, base: base, root: dir}
	h, data, err := findFirst(pattern)
	if err != nil {
		return nil, err
	}
	ff.stack = []frame{{handle: h, prefix: "", dir: dir}}
	ff.consume(data)
	return ff, nil
}

func findFirst(pattern string) (windows.Handle, *windows.Win32finddata, error) {
	p, err := windows.UTF16PtrFromString(pattern)
	if err != nil {
		return 0, nil, oserr.Wrap(oserr.InvalidUtf16, "findfiles.findFirst: "+pattern, err)
	}
	var data windows.Win32finddata
	h, err := windows.FindFirstFile(p, &data)
	if err != nil {
		return 0, nil, oserr.FromWindowsError("findfiles.findFirst: "+pattern, err)
	}
	return h, &data, nil
}

// Next advances to the next record, successful or not. It returns false
// once every active search handle is exhausted.
func (ff *FindFiles) Next() bool {
	ff.haveRec = false
	for len(ff.stack) > 0 {
		idx := len(ff.stack) - 1
		top := &ff.stack[idx]

		if top.pending != nil {
			data := top.pending
			top.pending = nil
			return ff.consumeAt(idx, data)
		}

		var data windows.Win32finddata
		err := windows.FindNextFile(top.handle, &data)
		if err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				windows.FindClose(top.handle)
				ff.stack = ff.stack[:idx]
				continue
			}
			ff.lastErr = oserr.FromWindowsError("findfiles.Next", err)
			windows.FindClose(top.handle)
			ff.stack = ff.stack[:idx]
			return true
		}
		return ff.consumeAt(idx, &data)
	}
	return false
}

// consume stashes the record returned by the initial FindFirstFile call as
// the root frame's pending hit, so the first Next() call surfaces it.
func (ff *FindFiles) consume(data *windows.Win32finddata) {
	ff.stack[0].pending = data
}

func (ff *FindFiles) consumeAt(frameIdx int, data *windows.Win32finddata) bool {
	name := windows.UTF16ToString(data.FileName[:])
	isDir := data.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0
	isDot := name == "." || name == ".."

	if isDot && ff.opts&IncludeDotDirectories == 0 {
		return ff.Next()
	}

	top := ff.stack[frameIdx]
	rec := Record{
		Name:       top.prefix + name,
		Created:    wintime.FromFileTime(data.CreationTime),
		Accessed:   wintime.FromFileTime(data.LastAccessTime),
		Written:    wintime.FromFileTime(data.LastWriteTime),
		Size:       uint64(data.FileSizeHigh)<<32 | uint64(data.FileSizeLow),
		Attributes: data.FileAttributes,
	}
	ff.current = rec
	ff.haveRec = true
	ff.lastErr = nil

	if ff.opts&RecursiveSearch != 0 && isDir && !isDot &&
		data.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT == 0 {
		ff.pushDirectory(top.dir+name+`\`, top.prefix+name+`\`)
	}
	return true
}

// pushDirectory opens dir for enumeration and stashes its first hit as
// pending, so the next Next() call surfaces it without reentering
// consumeAt while the caller's own record is still being returned.
func (ff *FindFiles) pushDirectory(dir, prefix string) {
	h, data, err := findFirst(dir + ff.base)
	if err != nil {
		// Access-denied or similar entering a subdirectory: report once,
		// continue with the sibling that triggered this push.
		ff.lastErr = err
		return
	}
	ff.stack = append(ff.stack, frame{handle: h, prefix: prefix, dir: dir, pending: data})
}

// NextSuccess advances past individual-record errors until a success or
// end of the whole search.
func (ff *FindFiles) NextSuccess() bool {
	for ff.Next() {
		if ff.haveRec {
			return true
		}
	}
	return false
}

// LastError reports the last outcome as an OsError. It is nil after a
// Next/NextSuccess call that produced a record, unless that record is a
// directory whose recursive search could not be opened; then it holds
// that error.
func (ff *FindFiles) LastError() error { return ff.lastErr }

// GetRecord returns the current record, or fails if the cursor is not
// currently positioned on a success.
func (ff *FindFiles) GetRecord() (Record, error) {
	if !ff.haveRec {
		return Record{}, oserr.New(oserr.InvalidParameter, "findfiles.GetRecord: not on a successful record")
	}
	return ff.current, nil
}

// Close releases every active search handle.
func (ff *FindFiles) Close() {
	for _, fr := range ff.stack {
		windows.FindClose(fr.handle)
	}
	ff.stack = nil
}
