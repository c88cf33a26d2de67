//go:build windows

// Package sections implements the seven scanning-section handlers (§4.8)
// plus the LoadPointsReport placeholder: each wires the OS facades
// together and registers itself as a script.Definition.
package sections

import (
	"github.com/billyoneal/instalog-go/internal/pathresolve"
	"github.com/billyoneal/instalog-go/internal/whitelist"
)

// Context bundles the process-wide facts and loaded whitelists every
// section handler needs. One Context is built at startup and shared
// read-only across every section invocation.
type Context struct {
	WindowsDir string // e.g. `C:\Windows`, no trailing backslash
	SystemDrive string
	Is64Bit    bool

	Resolver         *pathresolve.Resolver
	ProcessWhitelist *whitelist.List
	ServiceWhitelist *whitelist.List
}

// NewContext loads the embedded whitelists for windowsDir and returns a
// ready Context.
func NewContext(windowsDir, systemDrive string, is64Bit bool, resolver *pathresolve.Resolver) (*Context, error) {
	procWL, err := whitelist.ProcessWhitelist(windowsDir)
	if err != nil {
		return nil, err
	}
	svcWL, err := whitelist.ServiceWhitelist(windowsDir)
	if err != nil {
		return nil, err
	}
	return &Context{
		WindowsDir:       windowsDir,
		SystemDrive:      systemDrive,
		Is64Bit:          is64Bit,
		Resolver:         resolver,
		ProcessWhitelist: procWL,
		ServiceWhitelist: svcWL,
	}, nil
}
