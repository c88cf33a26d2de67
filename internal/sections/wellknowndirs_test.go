//go:build windows

package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWellKnownDirsFallsBackWhenEnvUnset(t *testing.T) {
	t.Setenv("ProgramFiles", "")
	t.Setenv("ALLUSERSPROFILE", "")

	ctx := &Context{WindowsDir: `C:\Windows`, SystemDrive: `C:`}
	dirs := ctx.wellKnownDirs()

	assert.Equal(t, `C:\Program Files`, dirs.ProgramFiles)
	assert.Equal(t, `C:\ProgramData`, dirs.AllUsersProfile)
	assert.Equal(t, `C:\Windows\System32`, dirs.System32)
}

func TestWellKnownDirsPrefersEnv(t *testing.T) {
	t.Setenv("ProgramFiles", `D:\Apps`)

	ctx := &Context{WindowsDir: `C:\Windows`, SystemDrive: `C:`}
	dirs := ctx.wellKnownDirs()

	assert.Equal(t, `D:\Apps`, dirs.ProgramFiles)
}
