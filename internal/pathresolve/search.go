package pathresolve

import (
	"os"
	"strings"
)

// pathext returns the configured executable extensions, defaulting to the
// standard Windows set if PATHEXT is unset.
func pathext() []string {
	raw := os.Getenv("PATHEXT")
	if raw == "" {
		raw = ".COM;.EXE;.BAT;.CMD"
	}
	return strings.Split(raw, ";")
}

// pathDirs returns the directories on PATH, in order.
func pathDirs() []string {
	raw := os.Getenv("PATH")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, string(os.PathListSeparator))
}

// walkSpaces walks forward across spaces in path, and at each space
// position tries the prefix as a literal file, then with each PATHEXT
// extension appended. The first filesystem hit wins. This accepts the
// first match even when the real file name contains a space before its
// extension; that imprecision is intentional and matches the original
// tool's behavior.
func (r *Resolver) walkSpaces(path string) (string, bool) {
	return r.walkSpacesIn(path, "")
}

// walkSpacesWithPath repeats walkSpaces with each PATH directory
// prepended, used only when the bare path did not resolve and does not
// begin with a drive letter.
func (r *Resolver) walkSpacesWithPath(path string) (string, bool) {
	if hasDriveLetter(path) {
		return path, false
	}
	for _, dir := range pathDirs() {
		if dir == "" {
			continue
		}
		if resolved, ok := r.walkSpacesIn(path, strings.TrimRight(dir, `\`)+`\`); ok {
			return resolved, ok
		}
	}
	return path, false
}

func (r *Resolver) walkSpacesIn(path, prefixDir string) (string, bool) {
	positions := spaceBreakpoints(path)
	for _, end := range positions {
		candidate := prefixDir + path[:end]
		if hit, ok := r.tryCandidate(candidate); ok {
			return hit, true
		}
	}
	return path, false
}

// spaceBreakpoints returns, in order, the end index of each prefix of path
// that ends exactly before a space, followed by len(path) itself (the
// whole string, which has no trailing space to stop at).
func spaceBreakpoints(path string) []int {
	var out []int
	for i := 0; i < len(path); i++ {
		if path[i] == ' ' {
			out = append(out, i)
		}
	}
	out = append(out, len(path))
	return out
}

func (r *Resolver) tryCandidate(candidate string) (string, bool) {
	if r.exists(candidate) {
		return candidate, true
	}
	for _, ext := range pathext() {
		withExt := candidate + ext
		if r.exists(withExt) {
			return withExt, true
		}
	}
	return "", false
}
