package pathresolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProber is an in-memory filesystem keyed by uppercased path, so tests
// exercise the resolution pipeline without touching a real disk.
type fakeProber struct {
	files map[string]bool
	short map[string]string
}

func newFakeProber() *fakeProber {
	return &fakeProber{files: map[string]bool{}, short: map[string]string{}}
}

func (f *fakeProber) add(path string) { f.files[strings.ToUpper(path)] = true }

func (f *fakeProber) Exists(path string) bool { return f.files[strings.ToUpper(path)] }

func (f *fakeProber) ExpandShortPath(short string) (string, bool) {
	long, ok := f.short[strings.ToUpper(short)]
	return long, ok
}

const windowsDir = `C:\Windows`

func TestResolveRundll32UnwrapsToTargetExecutable(t *testing.T) {
	fp := newFakeProber()
	fp.add(`C:\Windows\System32\Rundll32.exe`)
	fp.add(`C:\Windows\System32\Ntoskrnl.exe`)
	r := New(windowsDir, fp)
	t.Setenv("PATH", `C:\Windows\System32`)

	resolved, exclusive := r.ResolveFromCommandLine(`rundll32 ntoskrnl,ShellExecute`)
	require.True(t, exclusive)
	require.Equal(t, `C:\Windows\System32\ntoskrnl.EXE`, resolved)
}

func TestResolveExtensionlessPathViaPathext(t *testing.T) {
	fp := newFakeProber()
	fp.add(`C:\Windows\System32\Ntoskrnl.exe`)
	r := New(windowsDir, fp)

	resolved, exclusive := r.ResolveFromCommandLine(`C:\Windows\System32\ntoskrnl`)
	require.True(t, exclusive)
	require.Equal(t, `C:\Windows\System32\ntoskrnl.EXE`, resolved)
}

func TestResolveStripsNtAndSystemPrefixes(t *testing.T) {
	fp := newFakeProber()
	fp.add(`C:\Windows\System32\drivers\etc\hosts`)
	r := New(windowsDir, fp)

	resolved, exclusive := r.ResolveFromCommandLine(`\??\system32\drivers\etc\hosts`)
	require.True(t, exclusive)
	require.Equal(t, `C:\Windows\System32\drivers\etc\hosts`, resolved)
}

func TestResolveQuotedCommandLineWithArguments(t *testing.T) {
	fp := newFakeProber()
	fp.add(`C:\Program Files\Vendor\app.exe`)
	r := New(windowsDir, fp)

	resolved, exclusive := r.ResolveFromCommandLine(`"C:\Program Files\Vendor\app.exe" --flag value`)
	require.True(t, exclusive)
	require.Equal(t, `C:\Program Files\Vendor\app.exe`, resolved)
}

func TestResolveUnquotedPathWithSpacesWalksBreakpoints(t *testing.T) {
	fp := newFakeProber()
	fp.add(`C:\Program Files\Vendor\app.exe`)
	r := New(windowsDir, fp)

	resolved, exclusive := r.ResolveFromCommandLine(`C:\Program Files\Vendor\app.exe --flag`)
	require.True(t, exclusive)
	require.Equal(t, `C:\Program Files\Vendor\app.exe`, resolved)
}

func TestResolveExpandsShortPath(t *testing.T) {
	fp := newFakeProber()
	fp.add(`C:\PROGRA~1\app.exe`)
	fp.add(`C:\Program Files\app.exe`)
	fp.short[strings.ToUpper(`C:\PROGRA~1\app.exe`)] = `C:\Program Files\app.exe`
	r := New(windowsDir, fp)

	resolved, exclusive := r.ResolveFromCommandLine(`C:\PROGRA~1\app.exe`)
	require.True(t, exclusive)
	require.Equal(t, `C:\Program Files\app.exe`, resolved)
}

func TestResolveFailsWhenNothingExists(t *testing.T) {
	r := New(windowsDir, newFakeProber())

	resolved, exclusive := r.ResolveFromCommandLine(`C:\nowhere\ghost.exe`)
	require.False(t, exclusive)
	require.Equal(t, `C:\nowhere\ghost.exe`, resolved)
}

func TestResolveCachesNegativeLookups(t *testing.T) {
	fp := newFakeProber()
	r := New(windowsDir, fp)

	_, ok := r.ResolveFromCommandLine(`C:\missing\thing.exe`)
	require.False(t, ok)
	require.Contains(t, r.negative, strings.ToUpper(`C:\missing\thing.exe`))
}

func TestRundllRecursesOnceOnNestedComma(t *testing.T) {
	r := New(windowsDir, newFakeProber())
	got := r.applyRundllCheck(`C:\Windows\System32\Rundll32.exe,shell32.dll,Control_RunDLL,desk.cpl`)
	require.Equal(t, `C:\Windows\System32\Rundll32.exe`, got)
}

func TestAppendJoinsWithSingleSeparatorRegardlessOfInput(t *testing.T) {
	require.Equal(t, `C:\a\b`, Append(`C:\a`, `b`))
	require.Equal(t, `C:\a\b`, Append(`C:\a\`, `\b`))
	require.Equal(t, `C:\a\\b\c`, Append(`C:\a\\b`, `c`))
}

func TestPrettifyIsIdempotentAndPreservesDriveLetterCase(t *testing.T) {
	in := `C:\WINDOWS\System32\Ntoskrnl.EXE`
	once := Prettify(in)
	twice := Prettify(once)
	require.Equal(t, once, twice)
	require.Equal(t, byte('C'), once[0])
}
