package scopes

import (
	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// FsRedirectScope disables the WOW64 file-system redirector for the
// lifetime of the scope, so a 32-bit process can see the real
// System32 directory instead of SysWOW64. No-op when running natively
// 64-bit or when the redirector API is unavailable (pre-WOW64 systems).
type FsRedirectScope struct {
	oldValue uintptr
	active   bool
}

// DisableRedirection disables WOW64 redirection if applicable.
func DisableRedirection() (*FsRedirectScope, error) {
	s := &FsRedirectScope{}
	is32, err := isWow64Process()
	if err != nil || !is32 {
		return s, nil
	}
	if err := windows.Wow64DisableWow64FsRedirection(&s.oldValue); err != nil {
		return nil, oserr.FromWindowsError("scopes.DisableRedirection", err)
	}
	s.active = true
	return s, nil
}

// Close restores the redirector to its previous state.
func (s *FsRedirectScope) Close() error {
	if s == nil || !s.active {
		return nil
	}
	s.active = false
	if err := windows.Wow64RevertWow64FsRedirection(s.oldValue); err != nil {
		return oserr.FromWindowsError("scopes.FsRedirectScope.Close", err)
	}
	return nil
}

// IsWow64 reports whether the current process is a 32-bit process running
// under WOW64 emulation on a 64-bit system.
func IsWow64() (bool, error) {
	return isWow64Process()
}

func isWow64Process() (bool, error) {
	proc, err := windows.GetCurrentProcess()
	if err != nil {
		return false, err
	}
	var wow64 bool
	if err := windows.IsWow64Process(proc, &wow64); err != nil {
		return false, err
	}
	return wow64, nil
}
