// Package whitelist implements the case-folded, prefix-rewritten,
// binary-searched membership lists consulted by the process and service
// scanners.
package whitelist

import (
	"bufio"
	"bytes"
	"io/fs"
	"slices"
	"sort"
	"strings"
)

// Rewrite rewrites any entry that starts with From (case-insensitively) by
// replacing that prefix with To, applied in order at load time.
type Rewrite struct {
	From string
	To   string
}

// List is a sorted, case-folded set of patterns with no wildcard support:
// membership is exact match after folding the candidate the same way.
type List struct {
	entries []string // sorted, lowercase
}

// Load reads newline-separated patterns from name within fsys, applies
// rewrites in order to every line, case-folds the result, and sorts it for
// binary-search membership tests.
func Load(fsys fs.FS, name string, rewrites ...Rewrite) (*List, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.ToLower(line)
		for _, rw := range rewrites {
			from := strings.ToLower(rw.From)
			if strings.HasPrefix(line, from) {
				line = strings.ToLower(rw.To) + line[len(from):]
				break
			}
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	sort.Strings(entries)
	return &List{entries: slices.Compact(entries)}, nil
}

// LoadBytes is Load without an fs.FS indirection, for embedded resources
// already materialized as a byte slice.
func LoadBytes(data []byte, rewrites ...Rewrite) *List {
	var entries []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		line = strings.ToLower(line)
		for _, rw := range rewrites {
			from := strings.ToLower(rw.From)
			if strings.HasPrefix(line, from) {
				line = strings.ToLower(rw.To) + line[len(from):]
				break
			}
		}
		entries = append(entries, line)
	}
	sort.Strings(entries)
	return &List{entries: slices.Compact(entries)}
}

// IsMember reports whether x, case-folded, is present in the list.
func (l *List) IsMember(x string) bool {
	x = strings.ToLower(x)
	i := sort.SearchStrings(l.entries, x)
	return i < len(l.entries) && l.entries[i] == x
}

// Len reports the number of entries, for diagnostics and tests.
func (l *List) Len() int { return len(l.entries) }
