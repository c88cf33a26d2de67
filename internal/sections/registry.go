//go:build windows

package sections

import "github.com/billyoneal/instalog-go/internal/script"

// NewRegistry builds the fixed script.Registry binding every scripted
// command token to its handler on ctx, the set the default script and
// any user-supplied script are validated against.
func (c *Context) NewRegistry() *script.Registry {
	reg := script.NewRegistry()
	reg.Register(&script.Definition{
		Command: "RunningProcesses", DisplayName: "Running Processes",
		Priority: script.Scanning, Execute: c.RunningProcesses,
	})
	reg.Register(&script.Definition{
		Command: "Loadpoints", DisplayName: "Loadpoints",
		Priority: script.Scanning, Execute: c.LoadPointsReport,
	})
	reg.Register(&script.Definition{
		Command: "ServicesDrivers", DisplayName: "Services/Drivers",
		Priority: script.Scanning, Execute: c.ServicesDrivers,
	})
	reg.Register(&script.Definition{
		Command: "FindStarM", DisplayName: "Find3M",
		Priority: script.Scanning, Execute: c.FindStarM,
	})
	reg.Register(&script.Definition{
		Command: "EventViewer", DisplayName: "Event Viewer",
		Priority: script.Scanning, Execute: c.EventViewer,
	})
	reg.Register(&script.Definition{
		Command: "MachineSpecifications", DisplayName: "Machine Specifications",
		Priority: script.Scanning, Execute: c.MachineSpecifications,
	})
	reg.Register(&script.Definition{
		Command: "RestorePoints", DisplayName: "Restore Points",
		Priority: script.Scanning, Execute: c.RestorePoints,
	})
	reg.Register(&script.Definition{
		Command: "InstalledPrograms", DisplayName: "Installed Programs",
		Priority: script.Scanning, Execute: c.InstalledPrograms,
	})
	return reg
}
