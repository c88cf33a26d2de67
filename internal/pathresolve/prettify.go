package pathresolve

import "strings"

// Append joins a and b with a single backslash, trimming any existing
// trailing separator on a and leading separator on b first. It never
// collapses separators that appear elsewhere in either argument.
func Append(a, b string) string {
	a = strings.TrimRight(a, `\`)
	b = strings.TrimLeft(b, `\`)
	if a == "" {
		return `\` + b
	}
	return a + `\` + b
}

// Prettify lowercases every byte of s except the drive letter (position 0,
// when followed by ':') and the byte immediately following each backslash.
// Applying Prettify twice yields the same result as applying it once.
func Prettify(s string) string {
	b := []byte(s)
	for i := range b {
		if i == 0 && hasDriveLetter(s) {
			continue
		}
		if i > 0 && b[i-1] == '\\' {
			continue
		}
		b[i] = toLowerASCII(b[i])
	}
	return string(b)
}

func toLowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
