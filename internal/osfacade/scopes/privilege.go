// Package scopes implements RAII-style process-wide state toggles:
// enabling a token privilege, disabling WOW64 file-system redirection,
// and entering a single-threaded COM apartment. Each is acquired on
// construction and restored on Close, regardless of how the caller's
// scope exits.
package scopes

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// PrivilegeScope enables a named token privilege for the lifetime of the
// scope and restores its prior state on Close.
type PrivilegeScope struct {
	token       windows.Token
	luid        windows.LUID
	wasEnabled  bool
	neverOpened bool
}

// EnablePrivilege looks up name (e.g. "SeDebugPrivilege") and enables it
// on the current process token.
func EnablePrivilege(name string) (*PrivilegeScope, error) {
	var token windows.Token
	proc, err := windows.GetCurrentProcess()
	if err != nil {
		return nil, oserr.FromWindowsError("scopes.EnablePrivilege: GetCurrentProcess", err)
	}
	if err := windows.OpenProcessToken(proc, windows.TOKEN_ADJUST_PRIVILEGES|windows.TOKEN_QUERY, &token); err != nil {
		return nil, oserr.FromWindowsError("scopes.EnablePrivilege: OpenProcessToken", err)
	}

	var luid windows.LUID
	if err := windows.LookupPrivilegeValue(nil, windows.StringToUTF16Ptr(name), &luid); err != nil {
		token.Close()
		return nil, oserr.FromWindowsError("scopes.EnablePrivilege: LookupPrivilegeValue", err)
	}

	wasEnabled, err := adjustPrivilege(token, luid, true)
	if err != nil {
		token.Close()
		return nil, err
	}

	return &PrivilegeScope{token: token, luid: luid, wasEnabled: wasEnabled}, nil
}

// Close restores the privilege to its prior enabled/disabled state and
// releases the token handle. Safe to call on a scope that never
// successfully opened.
func (p *PrivilegeScope) Close() error {
	if p == nil || p.neverOpened {
		return nil
	}
	_, err := adjustPrivilege(p.token, p.luid, p.wasEnabled)
	p.token.Close()
	p.neverOpened = true
	if err != nil {
		return err
	}
	return nil
}

func adjustPrivilege(token windows.Token, luid windows.LUID, enable bool) (wasEnabled bool, err error) {
	var previous windows.Tokenprivileges
	var tp windows.Tokenprivileges
	tp.PrivilegeCount = 1
	tp.Privileges[0].Luid = luid
	if enable {
		tp.Privileges[0].Attributes = windows.SE_PRIVILEGE_ENABLED
	}

	var retLen uint32
	if err := windows.AdjustTokenPrivileges(token, false, &tp, uint32(unsafe.Sizeof(previous)), &previous, &retLen); err != nil {
		return false, oserr.FromWindowsError("scopes.adjustPrivilege", err)
	}
	// PreviousState lists only privileges whose state changed; an empty
	// list means the privilege already had the requested state.
	if previous.PrivilegeCount > 0 {
		wasEnabled = previous.Privileges[0].Attributes&windows.SE_PRIVILEGE_ENABLED != 0
	} else {
		wasEnabled = enable
	}
	return wasEnabled, nil
}
