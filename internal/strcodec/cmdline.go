package strcodec

import (
	"strings"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// CmdLineUnescape implements the Microsoft argv[0] quoting rule: s[pos:]
// must begin with a `"`; inside, a run of n backslashes
// followed by a `"` emits floor(n/2) backslashes and, if n is odd, a
// literal `"` that stays inside the quoted region; any other run ending in
// `"` closes the region. Non-backslash, non-quote bytes copy through
// unchanged. Returns the decoded token and the index one past the closing
// quote.
func CmdLineUnescape(s string, pos int) (string, int, error) {
	if pos >= len(s) || s[pos] != '"' {
		return "", 0, oserr.New(oserr.MalformedEscapedSequence, "command line token does not start with a quote")
	}
	i := pos + 1
	var out strings.Builder
	for i < len(s) {
		if s[i] == '\\' {
			backslashes := 0
			for i < len(s) && s[i] == '\\' {
				backslashes++
				i++
			}
			if i < len(s) && s[i] == '"' {
				out.WriteString(strings.Repeat(`\`, backslashes/2))
				if backslashes%2 == 1 {
					out.WriteByte('"')
					i++
					continue
				}
				// Even number of backslashes: this quote closes the region.
				i++
				return out.String(), i, nil
			}
			out.WriteString(strings.Repeat(`\`, backslashes))
			continue
		}
		if s[i] == '"' {
			return out.String(), i + 1, nil
		}
		out.WriteByte(s[i])
		i++
	}
	return "", 0, oserr.New(oserr.MalformedEscapedSequence, "unterminated command line token")
}
