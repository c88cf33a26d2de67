package script

// DefaultScript is the fixed script the entry point runs when the user
// supplies no --script override, matching the original's compiled-in
// default section order.
const DefaultScript = `:RunningProcesses
:Loadpoints
:ServicesDrivers
:FindStarM
:EventViewer
:MachineSpecifications
:RestorePoints
:InstalledPrograms
`
