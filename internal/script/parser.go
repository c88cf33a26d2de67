package script

import (
	"strings"

	"github.com/billyoneal/instalog-go/internal/oserr"
)

// Parse tokenizes text per the script surface: lines beginning with ':'
// introduce a section (the token up to the first whitespace is its
// command, the remainder is its argument, with interior whitespace
// preserved); every following line up to the next ':'-line or end of
// input is an option line for that section. Blank lines (entirely
// whitespace) are dropped. Duplicate (command, argument) pairs merge
// their option lists in source order, keeping the first occurrence's
// parse index. Unknown commands fail with oserr.UnknownScriptSection.
func Parse(text string, registry *Registry) (*Script, error) {
	script := newScript()

	var (
		currentDef  *Definition
		currentArg  string
		currentOpts []string
		haveSection bool
		nextIndex   int
	)

	flush := func() {
		if haveSection {
			script.add(currentDef, currentArg, currentOpts, nextIndex)
			nextIndex++
		}
	}

	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			flush()

			command, argument := splitCommandLine(line[1:])
			def, ok := registry.Lookup(command)
			if !ok {
				return nil, oserr.New(oserr.UnknownScriptSection, command)
			}
			currentDef = def
			currentArg = argument
			currentOpts = nil
			haveSection = true
			continue
		}
		if haveSection {
			currentOpts = append(currentOpts, line)
		}
	}
	flush()

	return script, nil
}

// splitLines splits text on any run of \r and \n, the way the script
// surface's line model requires (CRLF, LF, and lone CR all count as line
// breaks).
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\r' || text[i] == '\n' {
			lines = append(lines, text[start:i])
			for i+1 < len(text) && (text[i+1] == '\r' || text[i+1] == '\n') {
				i++
			}
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}

// splitCommandLine splits a section header's text (after the leading ':')
// into its command token (up to the first whitespace, case-folded by the
// caller via Registry.Lookup) and its argument (the remainder after the
// first run of whitespace, preserving interior whitespace).
func splitCommandLine(s string) (command, argument string) {
	i := 0
	for i < len(s) && !isSpace(s[i]) {
		i++
	}
	command = s[:i]
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	argument = s[i:]
	return command, argument
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
