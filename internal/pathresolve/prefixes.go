package pathresolve

import "strings"

// stripNtPrefixes removes, in order, a leading `\`, a leading `??\`, a
// leading `\?\`, and a leading case-insensitive `globalroot\`. Each strip
// is tried once; the step does not loop.
func stripNtPrefixes(path string) string {
	path = trimPrefixCI(path, `\`)
	path = trimPrefixCI(path, `??\`)
	path = trimPrefixCI(path, `\?\`)
	path = trimPrefixCI(path, `globalroot\`)
	return path
}

func trimPrefixCI(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):]
	}
	return s
}

// rewriteSystemPrefixes applies case-insensitive prefix rewrites:
// system32\, systemroot\, and %systemroot%\ all become ⟨Windows⟩\System32\
// or ⟨Windows⟩\ as appropriate.
func (r *Resolver) rewriteSystemPrefixes(path string) string {
	rewrites := []struct {
		prefix      string
		replacement string
	}{
		{`system32\`, r.windowsDir + `\System32\`},
		{`systemroot\`, r.windowsDir + `\`},
		{`%systemroot%\`, r.windowsDir + `\`},
	}
	for _, rw := range rewrites {
		if len(path) >= len(rw.prefix) && strings.EqualFold(path[:len(rw.prefix)], rw.prefix) {
			return rw.replacement + path[len(rw.prefix):]
		}
	}
	return path
}

// isRundll32Path reports whether arg0 resolves (case-insensitively) to the
// system rundll32.exe path.
func isRundll32Path(arg0, windowsDir string) bool {
	candidate := strings.TrimSuffix(strings.ToLower(arg0), ".exe")
	system := strings.ToLower(windowsDir + `\System32\Rundll32`)
	return candidate == system
}

// applyRundllCheck unwraps a single level of rundll32 indirection: if path
// case-insensitively starts with ⟨Windows⟩\System32\rundll32 (optionally
// `.exe`), keep only the substring up to the first comma and recurse once
// on it. Deeply nested rundll32 chains are not unwrapped further; this is
// intentional, matching the original tool's behavior.
func (r *Resolver) applyRundllCheck(path string) string {
	prefix := r.windowsDir + `\System32\Rundll32`
	if len(path) < len(prefix) || !strings.EqualFold(path[:len(prefix)], prefix) {
		return path
	}
	rest := path[len(prefix):]
	if !(rest == "" || strings.EqualFold(rest, ".exe") || strings.HasPrefix(strings.ToLower(rest), ".exe,") || strings.HasPrefix(rest, ",")) {
		return path
	}
	if idx := strings.IndexByte(path, ','); idx >= 0 {
		return r.applyRundllCheck(path[:idx])
	}
	return path
}
