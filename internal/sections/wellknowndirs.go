//go:build windows

package sections

import "os"

// wellKnownDirs resolves the fixed set of named roots FindStarM's pass
// lists reference. The Program Files and ProgramData roots fall back to a
// path under SystemDrive when their environment variable is unset; AppData
// and UserProfile have no fallback and stay empty, which scanDir skips.
type wellKnownDirs struct {
	SystemDrive          string
	SystemRoot           string
	System32             string
	SysWow64             string
	ProgramFiles         string
	ProgramFilesX86      string
	CommonProgramFiles   string
	CommonProgramFilesX86 string
	AppData              string
	UserProfile          string
	AllUsersProfile      string
}

func (c *Context) wellKnownDirs() wellKnownDirs {
	return wellKnownDirs{
		SystemDrive:           c.SystemDrive,
		SystemRoot:            c.WindowsDir,
		System32:              c.WindowsDir + `\System32`,
		SysWow64:              c.WindowsDir + `\SysWOW64`,
		ProgramFiles:          envOr("ProgramFiles", c.SystemDrive+`\Program Files`),
		ProgramFilesX86:       envOr("ProgramFiles(x86)", c.SystemDrive+`\Program Files (x86)`),
		CommonProgramFiles:    envOr("CommonProgramFiles", c.SystemDrive+`\Program Files\Common Files`),
		CommonProgramFilesX86: envOr("CommonProgramFiles(x86)", c.SystemDrive+`\Program Files (x86)\Common Files`),
		AppData:               envOr("APPDATA", ""),
		UserProfile:           envOr("USERPROFILE", ""),
		AllUsersProfile:       envOr("ALLUSERSPROFILE", c.SystemDrive+`\ProgramData`),
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
