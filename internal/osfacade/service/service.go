//go:build windows

// Package service enumerates the Service Control Manager's database and
// builds the per-service record the ServicesDrivers section renders,
// including svchost-group damage detection and host-DLL resolution.
package service

import (
	"strings"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"

	"github.com/billyoneal/instalog-go/internal/oserr"
	"github.com/billyoneal/instalog-go/internal/osfacade/registry"
	"github.com/billyoneal/instalog-go/internal/pathresolve"
)

// StateGlyph is the single-character state rendering used in report
// output: R(unning)/S(topped)/P(aused)/C(ontinue-pending), with a
// trailing '?' appended for any other pending transition.
type StateGlyph string

// Record is everything ServicesDrivers needs to render one line.
type Record struct {
	Name         string
	DisplayName  string
	State        StateGlyph
	StartType    uint32 // mgr.StartAutomatic, StartManual, StartDisabled, …
	IsDriver     bool
	FilePath     string
	SvchostGroup string // non-empty only for Svchost.exe-hosted services
	HostDLL      string // resolved ServiceDll, empty if not applicable
	HostDLLErr   error
	SvchostDamaged bool
}

// Scanner owns the SCM handle and the resolver used to canonicalize every
// service's binary path.
type Scanner struct {
	m          *mgr.Mgr
	resolver   *pathresolve.Resolver
	windowsDir string
}

// Connect opens the local Service Control Manager.
func Connect(resolver *pathresolve.Resolver, windowsDir string) (*Scanner, error) {
	m, err := mgr.Connect()
	if err != nil {
		return nil, oserr.Wrap(oserr.Other, "service.Connect", err)
	}
	return &Scanner{m: m, resolver: resolver, windowsDir: strings.TrimRight(windowsDir, `\`)}, nil
}

// Close releases the SCM handle.
func (s *Scanner) Close() error {
	if s == nil || s.m == nil {
		return nil
	}
	return s.m.Disconnect()
}

// Enumerate lists the SERVICE_WIN32 entries that mgr.ListServices returns,
// in every state, and builds a Record for each. Kernel and file-system
// drivers (SERVICE_DRIVER) are not listed.
func (s *Scanner) Enumerate() ([]Record, error) {
	names, err := s.m.ListServices()
	if err != nil {
		return nil, oserr.Wrap(oserr.Other, "service.Enumerate: ListServices", err)
	}

	out := make([]Record, 0, len(names))
	for _, name := range names {
		rec, err := s.describe(name)
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *Scanner) describe(name string) (Record, error) {
	svcHandle, err := s.m.OpenService(name)
	if err != nil {
		return Record{}, oserr.Wrap(oserr.Other, "service.describe: OpenService "+name, err)
	}
	defer svcHandle.Close()

	status, err := svcHandle.Query()
	if err != nil {
		return Record{}, oserr.Wrap(oserr.Other, "service.describe: Query "+name, err)
	}
	cfg, err := svcHandle.Config()
	if err != nil {
		return Record{}, oserr.Wrap(oserr.Other, "service.describe: Config "+name, err)
	}

	rec := Record{
		Name:        name,
		DisplayName: cfg.DisplayName,
		State:       stateGlyph(status),
		StartType:   cfg.StartType,
		IsDriver:    cfg.ServiceType&(windowsServiceKernelDriver|windowsServiceFileSystemDriver) != 0,
	}

	rec.FilePath = s.resolveFilePath(name, cfg.BinaryPathName, rec.IsDriver)
	s.fillSvchostDetails(&rec, cfg.BinaryPathName)
	return rec, nil
}

// windowsServiceKernelDriver/FileSystemDriver mirror the Win32 SERVICE_*
// type bits; svc/mgr.Config.ServiceType is the raw DWORD so we test the
// bits directly rather than pull in a parallel enum.
const (
	windowsServiceKernelDriver     = 0x00000001
	windowsServiceFileSystemDriver = 0x00000002
)

func stateGlyph(status svc.Status) StateGlyph {
	switch status.State {
	case svc.Running:
		return "R"
	case svc.Stopped:
		return "S"
	case svc.Paused:
		return "P"
	case svc.ContinuePending:
		return "C"
	case svc.StartPending, svc.StopPending, svc.PausePending:
		return StateGlyph(string(pendingBaseGlyph(status.State)) + "?")
	default:
		return "?"
	}
}

func pendingBaseGlyph(state svc.State) byte {
	switch state {
	case svc.StartPending:
		return 'R'
	case svc.StopPending:
		return 'S'
	case svc.PausePending:
		return 'P'
	default:
		return '?'
	}
}

// resolveFilePath synthesizes the default path for drivers/services whose
// BinaryPathName is empty, then resolves the result through the path
// canonicalizer.
func (s *Scanner) resolveFilePath(name, binaryPathName string, isDriver bool) string {
	raw := binaryPathName
	if raw == "" {
		if isDriver {
			raw = s.windowsDir + `\System32\Drivers\` + name + `.sys`
		} else {
			raw = s.windowsDir + `\System32\` + name + `.exe`
		}
	}
	resolved, _ := s.resolver.ResolveFromCommandLine(raw)
	return resolved
}

var svchostPath = `\System32\Svchost.exe`

// fillSvchostDetails detects whether rec's resolved path is the system
// svchost.exe, and if so extracts the "-k GROUP" token, checks the group's
// registered service list for svchost damage, and resolves the service's
// host DLL.
func (s *Scanner) fillSvchostDetails(rec *Record, binaryPathName string) {
	if !strings.EqualFold(rec.FilePath, s.windowsDir+svchostPath) {
		return
	}
	rec.SvchostGroup = extractSvchostGroup(binaryPathName)
	if rec.SvchostGroup != "" {
		rec.SvchostDamaged = s.isSvchostDamaged(rec.Name, rec.SvchostGroup)
	}
	rec.HostDLL, rec.HostDLLErr = s.resolveHostDLL(rec.Name)
}

// extractSvchostGroup pulls the argument following a "-k" (case
// insensitive) token out of a svchost.exe command line.
func extractSvchostGroup(cmdLine string) string {
	fields := strings.Fields(cmdLine)
	for i, f := range fields {
		if strings.EqualFold(f, "-k") && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

const svchostGroupsKeyPath = `\Registry\Machine\Software\Microsoft\Windows NT\CurrentVersion\Svchost`

func (s *Scanner) isSvchostDamaged(serviceName, group string) bool {
	key, err := registry.Open(svchostGroupsKeyPath, keyQueryValue)
	if err != nil {
		return false
	}
	defer key.Close()

	v, err := key.GetValue(group)
	if err != nil {
		return false
	}
	members, err := v.GetMultiStringArray()
	if err != nil {
		return false
	}
	for _, m := range members {
		if strings.EqualFold(m, serviceName) {
			return false
		}
	}
	return true
}

const keyQueryValue = 0x0001 // KEY_QUERY_VALUE

// resolveHostDLL opens the service's Parameters subkey (falling back to
// the service's own key) and resolves its ServiceDll value.
func (s *Scanner) resolveHostDLL(name string) (string, error) {
	base := `\Registry\Machine\System\CurrentControlSet\Services\` + name
	paramsKey, err := registry.Open(base+`\Parameters`, keyQueryValue)
	path := base
	if err == nil {
		defer paramsKey.Close()
		path = base + `\Parameters`
	} else {
		paramsKey, err = registry.Open(base, keyQueryValue)
		if err != nil {
			return "", oserr.Wrap(oserr.Other, "service.resolveHostDLL: "+name, err)
		}
		defer paramsKey.Close()
	}

	v, err := paramsKey.GetValue("ServiceDll")
	if err != nil {
		return "", oserr.Wrap(oserr.Other, "service.resolveHostDLL: ServiceDll in "+path, err)
	}
	raw, err := v.GetStringStrict()
	if err != nil {
		return "", err
	}
	resolved, _ := s.resolver.ResolveFromCommandLine(raw)
	return resolved, nil
}
