package findfiles

import "strings"

// splitPattern separates a search pattern into its directory portion
// (with trailing backslash, possibly empty) and glob portion, e.g.
// `C:\Windows\System32\*` -> (`C:\Windows\System32\`, `*`).
func splitPattern(pattern string) (dir, glob string) {
	if idx := strings.LastIndexByte(pattern, '\\'); idx >= 0 {
		return pattern[:idx+1], pattern[idx+1:]
	}
	return "", pattern
}
