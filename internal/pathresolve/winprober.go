//go:build windows

package pathresolve

import (
	"os"

	"golang.org/x/sys/windows"
)

// WinProber backs Prober with the real filesystem and the real Windows
// short-name expansion API.
type WinProber struct{}

func (WinProber) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (WinProber) ExpandShortPath(short string) (string, bool) {
	p, err := windows.UTF16PtrFromString(short)
	if err != nil {
		return "", false
	}
	buf := make([]uint16, 260)
	n, err := windows.GetLongPathName(p, &buf[0], uint32(len(buf)))
	if err != nil {
		return "", false
	}
	if int(n) > len(buf) {
		buf = make([]uint16, n)
		if _, err := windows.GetLongPathName(p, &buf[0], uint32(len(buf))); err != nil {
			return "", false
		}
	}
	long := windows.UTF16ToString(buf)
	if long == short {
		return "", false
	}
	return long, true
}

// WindowsDirectory returns the running machine's Windows directory (e.g.
// `C:\Windows`), the same value NewForLocalMachine uses internally.
func WindowsDirectory() (string, error) {
	buf := make([]uint16, 260)
	n, err := windows.GetWindowsDirectory(&buf[0], uint32(len(buf)))
	if err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf[:n]), nil
}

// NewForLocalMachine builds a Resolver backed by real syscalls, using the
// running machine's Windows directory.
func NewForLocalMachine() (*Resolver, error) {
	windowsDir, err := WindowsDirectory()
	if err != nil {
		return nil, err
	}
	return New(windowsDir, WinProber{}), nil
}
