// Package pathresolve turns loosely specified program references —
// command-line fragments, rundll32 invocations, native/NT paths, bare
// basenames — into canonical on-disk paths.
package pathresolve

import (
	"os"
	"strings"

	"github.com/billyoneal/instalog-go/internal/strcodec"
)

// Prober answers the two filesystem questions the resolver needs. The
// production Resolver backs it with real syscalls; tests back it with a
// fake in-memory filesystem so the pipeline logic is exercised without a
// live Windows machine.
type Prober interface {
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
	// ExpandShortPath consults the OS for the long form of an 8.3 path.
	// It returns ok=false and leaves long unspecified if the short path
	// cannot be resolved (including: it wasn't actually a short path).
	ExpandShortPath(short string) (long string, ok bool)
}

// Resolver holds the process-wide state the resolution pipeline needs: the
// Windows directory (for prefix rewrites) and a small negative cache of
// "does this file exist?" probes that failed, so a single run does not
// repeat expensive nonexistent lookups. Positive results are never cached,
// since the filesystem can change meaningfully mid-scan.
type Resolver struct {
	prober     Prober
	windowsDir string // e.g. `C:\Windows`, no trailing backslash
	negative   map[string]struct{}
}

// New builds a Resolver for the given Windows directory and filesystem
// prober.
func New(windowsDir string, prober Prober) *Resolver {
	return &Resolver{
		prober:     prober,
		windowsDir: strings.TrimRight(windowsDir, `\`),
		negative:   make(map[string]struct{}),
	}
}

func (r *Resolver) exists(path string) bool {
	key := strings.ToUpper(path)
	if _, miss := r.negative[key]; miss {
		return false
	}
	if r.prober.Exists(path) {
		return true
	}
	r.negative[key] = struct{}{}
	return false
}

// ResolveFromCommandLine transforms path toward a canonical existing file
// and reports whether the result exists and does not end in a backslash.
// An existing directory named without a trailing backslash also reports
// true; no file-versus-directory check is made. On failure it returns the
// path in its last in-progress form and false.
func (r *Resolver) ResolveFromCommandLine(path string) (string, bool) {
	path = expandPercentVars(path)

	if strings.HasPrefix(path, `"`) {
		return r.resolveQuoted(path)
	}

	path = stripNtPrefixes(path)
	path = r.rewriteSystemPrefixes(path)
	path = r.applyRundllCheck(path)

	prefixDirs := []string{""}
	if !hasDriveLetter(path) {
		prefixDirs = append(prefixDirs, pathDirs()...)
	}
	for _, dir := range prefixDirs {
		var prefix string
		if dir != "" {
			prefix = strings.TrimRight(dir, `\`) + `\`
		}
		if resolved, ok := r.walkSpacesRundllAware(path, prefix); ok {
			return r.finish(resolved)
		}
	}

	return path, false
}

func (r *Resolver) resolveQuoted(path string) (string, bool) {
	arg0, after, err := strcodec.CmdLineUnescape(path, 0)
	if err != nil {
		return path, false
	}
	if isRundll32Path(arg0, r.windowsDir) && after < len(path) {
		if target := r.secondToken(path, after); target != "" {
			if resolved, ok := r.resolveRundllTarget(target); ok {
				return resolved, true
			}
		}
	}
	return r.finish(arg0)
}

// walkSpacesRundllAware is walkSpacesIn, plus: if the breakpoint that
// resolves (under prefixDir) turns out to be rundll32.exe itself (the
// unquoted "rundll32 target,proc" form), the remainder of path past that
// breakpoint is taken as the rundll target and resolved in its place.
func (r *Resolver) walkSpacesRundllAware(path, prefixDir string) (string, bool) {
	for _, end := range spaceBreakpoints(path) {
		candidate := prefixDir + path[:end]
		hit, ok := r.tryCandidate(candidate)
		if !ok {
			continue
		}
		if isRundll32Path(hit, r.windowsDir) && end < len(path) {
			if target := r.secondToken(path, end); target != "" {
				if resolved, ok := r.resolveRundllTarget(target); ok {
					return resolved, true
				}
			}
		}
		return hit, true
	}
	return path, false
}

// resolveRundllTarget truncates target at its first comma (the export
// name) and resolves what remains first as written, then (when it has no
// drive letter) under each PATH directory, trying PATHEXT extensions at
// each step.
func (r *Resolver) resolveRundllTarget(target string) (string, bool) {
	if idx := strings.IndexByte(target, ','); idx >= 0 {
		target = target[:idx]
	}
	if resolved, ok := r.walkSpaces(target); ok {
		return r.finish(resolved)
	}
	if resolved, ok := r.walkSpacesWithPath(target); ok {
		return r.finish(resolved)
	}
	return target, false
}

// secondToken extracts the argument following a token that ends at index
// after: if it is itself quoted, unquote it with the Microsoft argv rule;
// otherwise take the run of non-space bytes after skipping leading spaces.
func (r *Resolver) secondToken(path string, after int) string {
	i := after
	for i < len(path) && path[i] == ' ' {
		i++
	}
	if i >= len(path) {
		return ""
	}
	if path[i] == '"' {
		tok, _, err := strcodec.CmdLineUnescape(path, i)
		if err != nil {
			return ""
		}
		return tok
	}
	end := i
	for end < len(path) && path[end] != ' ' {
		end++
	}
	return path[i:end]
}

func (r *Resolver) finish(path string) (string, bool) {
	if long, ok := r.prober.ExpandShortPath(path); ok {
		path = long
	}
	return path, r.prober.Exists(path) && !isDirish(path)
}

// isDirish is the only directory test finish applies: a path ending in a
// backslash counts as a directory. Prober.Exists is true for directories
// too, so a directory path without a trailing backslash is not caught.
func isDirish(path string) bool { return strings.HasSuffix(path, `\`) }

func hasDriveLetter(path string) bool {
	return len(path) >= 2 && path[1] == ':' && isASCIILetter(path[0])
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// expandPercentVars expands every %VAR% token using the process
// environment. Windows environment variable names are case-insensitive;
// os.Getenv already honors that on Windows.
func expandPercentVars(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '%' {
			out.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i+1:], '%')
		if end < 0 {
			out.WriteString(s[i:])
			break
		}
		name := s[i+1 : i+1+end]
		if val, ok := os.LookupEnv(name); ok {
			out.WriteString(val)
		} else {
			out.WriteString(s[i : i+1+end+1])
		}
		i += end + 2
	}
	return out.String()
}
