//go:build windows

package sections

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/billyoneal/instalog-go/internal/logsink"
	"github.com/billyoneal/instalog-go/internal/osfacade/file"
	"github.com/billyoneal/instalog-go/internal/osfacade/findfiles"
	"github.com/billyoneal/instalog-go/internal/stockformats"
)

const find3MCreationCutoff = 90 * 24 * time.Hour
const createdLast30Window = 30 * 24 * time.Hour
const updateRunMinLength = 12
const updateRunGap = wintimeSecond

// wintimeSecond is one second expressed in 100ns ticks, the unit
// findstarm's "adjacent creation times differ by <= 1 second" rule uses.
const wintimeSecond = 10_000_000

var find3MExecutableExts = map[string]bool{
	"bat": true, "reg": true, "vbs": true, "wsf": true, "vbe": true,
	"msi": true, "msp": true, "com": true, "pif": true, "ren": true,
	"vir": true, "tmp": true, "dll": true, "scr": true, "sys": true,
	"exe": true, "bin": true, "drv": true,
}

// pass2DirectoryExts is the Pass 2 "must be a directory with this
// extension" set.
var pass2DirectoryExts = map[string]bool{
	"bat": true, "cmd": true, "reg": true, "vbs": true, "wsf": true,
	"vbe": true, "msi": true, "msp": true,
}

// pass2ExecutableExts is the Pass 2 "must be an executable file with this
// extension" set, distinct from find3MExecutableExts.
var pass2ExecutableExts = map[string]bool{
	"com": true, "pif": true, "ren": true, "vir": true, "tmp": true,
	"dll": true, "scr": true, "sys": true, "exe": true, "bin": true,
	"dat": true, "drv": true,
}

// find3MFontExts is the Pass 6 (Fonts) extension set.
var find3MFontExts = map[string]bool{
	"com": true, "pif": true, "ren": true, "vir": true, "tmp": true,
	"dll": true, "scr": true, "sys": true, "exe": true, "bin": true,
	"dat": true, "drv": true,
}

// pass5Dirs is the fixed 15-entry directory list Pass 5 scans recursively.
var pass5Dirs = []string{
	"java", "msapps", "pif", "Registration", "help", "web", "pchealth",
	"srchasst", "tasks", "apppatch", "Internet Logs", "Media", "prefetch",
	"cursors", "inf",
}

// FindStarM implements the Created-Last-30 and Find3M scanning passes.
func (c *Context) FindStarM(sink logsink.Sink, argument string, options []string) error {
	dirs := c.wellKnownDirs()

	created30 := c.createdLast30(dirs)
	find3m := c.find3M(dirs)

	find3m = subtractByOrder(find3m, created30)

	if err := emitFindStarMSet(sink, "Created-Last-30", created30); err != nil {
		return err
	}
	return emitFindStarMSet(sink, "Find3M", find3m)
}

func emitFindStarMSet(sink logsink.Sink, label string, recs []stockformats.FileListingRecord) error {
	recs = sortFindStarM(recs)
	recs = collapseUpdateRuns(recs)

	if err := logsink.Writeln(sink, logsink.Str(label+":")); err != nil {
		return err
	}

	total := len(recs)
	if total > 100 {
		recs = recs[:100]
	}
	for _, rec := range recs {
		if err := logsink.Writeln(sink, logsink.Str(stockformats.FileListingLine(rec))); err != nil {
			return err
		}
	}
	if total > 100 {
		return logsink.Writeln(sink, logsink.Str("Too many files to show"))
	}
	return nil
}

func (c *Context) createdLast30(dirs wellKnownDirs) []stockformats.FileListingRecord {
	roots := []string{
		dirs.System32 + `\drivers`,
		dirs.System32 + `\wbem`,
		dirs.System32,
		dirs.SystemRoot + `\system`,
		dirs.SystemRoot,
		c.SystemDrive,
		c.SystemDrive + `\temp`,
		dirs.UserProfile,
		dirs.CommonProgramFiles,
		dirs.ProgramFiles,
		dirs.AppData,
		dirs.AllUsersProfile,
	}
	if c.Is64Bit {
		roots = append(roots, dirs.SysWow64, dirs.ProgramFilesX86, dirs.CommonProgramFilesX86)
	}

	cutoff := time.Now().Add(-createdLast30Window)
	var out []stockformats.FileListingRecord
	for _, root := range roots {
		if root == "" {
			continue
		}
		out = append(out, scanDir(root, false, func(rec findfiles.Record, path string) bool {
			return !rec.IsDirectory() && rec.Created.ToTime().After(cutoff)
		})...)
	}
	return out
}

func (c *Context) find3M(dirs wellKnownDirs) []stockformats.FileListingRecord {
	cutoff := time.Now().Add(-find3MCreationCutoff)
	executableFilter := func(rec findfiles.Record, path string) bool {
		return !rec.IsDirectory() && find3MExecutableExts[extOf(path)] && file.IsExecutable(path)
	}
	executableWithCutoff := func(rec findfiles.Record, path string) bool {
		return executableFilter(rec, path) && rec.Created.ToTime().After(cutoff)
	}

	var out []stockformats.FileListingRecord

	pass1aRoots := []string{dirs.ProgramFiles, dirs.CommonProgramFiles}
	if c.Is64Bit {
		pass1aRoots = append(pass1aRoots, dirs.ProgramFilesX86, dirs.CommonProgramFilesX86)
	}
	for _, root := range pass1aRoots {
		out = append(out, scanDir(root, false, executableFilter)...)
	}

	pass1bRoots := []string{dirs.AppData, c.SystemDrive, dirs.SystemRoot, dirs.System32, dirs.UserProfile, dirs.AllUsersProfile}
	if c.Is64Bit {
		pass1bRoots = append(pass1bRoots, dirs.SysWow64)
	}
	for _, root := range pass1bRoots {
		out = append(out, scanDir(root, false, executableWithCutoff)...)
	}

	pass2Roots := []string{
		dirs.SystemRoot + `\system`,
		dirs.System32 + `\Wbem`,
		dirs.SystemRoot + `\System32\GroupPolicy\Machine\Scripts\Shutdown`,
		dirs.SystemRoot + `\System32\GroupPolicy\User\Scripts\Logoff`,
	}
	if c.Is64Bit {
		pass2Roots = append(pass2Roots,
			dirs.SysWow64+`\Drivers`,
			dirs.SysWow64+`\Wbem`,
		)
	}
	pass2Filter := func(rec findfiles.Record, path string) bool {
		if !rec.Created.ToTime().After(cutoff) {
			return false
		}
		ext := extOf(path)
		if rec.IsDirectory() {
			return pass2DirectoryExts[ext]
		}
		return pass2ExecutableExts[ext] && file.IsExecutable(path)
	}
	for _, root := range pass2Roots {
		out = append(out, scanDir(root, true, pass2Filter)...)
	}

	isExecutableOnly := func(rec findfiles.Record, path string) bool {
		return !rec.IsDirectory() && file.IsExecutable(path)
	}
	out = append(out, scanDir(dirs.System32+`\Spool\prtprocs\w32x86`, true, isExecutableOnly)...)

	for _, dir := range pass5Dirs {
		out = append(out, scanDir(dirs.SystemRoot+`\`+dir, true, executableWithCutoff)...)
	}

	out = append(out, scanDir(dirs.SystemRoot+`\Fonts`, true, func(rec findfiles.Record, path string) bool {
		if rec.IsDirectory() {
			return false
		}
		if rec.Size >= 1500 && rec.Size <= 2000 {
			return true
		}
		return find3MFontExts[extOf(path)] && rec.Size >= 1500 && file.IsExecutable(path)
	})...)

	return out
}

// scanDir enumerates root (non-recursively or recursively) for entries
// matching keep, converting hits to stockformats.FileListingRecord.
func scanDir(root string, recursive bool, keep func(findfiles.Record, string) bool) []stockformats.FileListingRecord {
	if root == "" {
		return nil
	}
	opts := findfiles.Options(0)
	if recursive {
		opts = findfiles.RecursiveSearch
	}
	ff, err := findfiles.Open(root+`\*`, opts)
	if err != nil {
		return nil
	}
	defer ff.Close()

	var out []stockformats.FileListingRecord
	for ff.NextSuccess() {
		rec, err := ff.GetRecord()
		if err != nil {
			continue
		}
		path := root + `\` + rec.Name
		if !keep(rec, path) {
			continue
		}
		attrs, _ := file.GetAttributes(path)
		out = append(out, stockformats.FileListingRecord{
			Created:    rec.Created,
			Modified:   rec.Written,
			Size:       rec.Size,
			Attributes: attrs,
			Path:       path,
		})
	}
	return out
}

func extOf(path string) string {
	ext := filepath.Ext(path)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// sortFindStarM orders by creation time desc, then modification time
// desc, size desc, attribute-glyph string desc, path desc.
func sortFindStarM(recs []stockformats.FileListingRecord) []stockformats.FileListingRecord {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Created != b.Created {
			return a.Created > b.Created
		}
		if a.Modified != b.Modified {
			return a.Modified > b.Modified
		}
		if a.Size != b.Size {
			return a.Size > b.Size
		}
		ag := stockformats.AttributeGlyphs(uint32(a.Attributes))
		bg := stockformats.AttributeGlyphs(uint32(b.Attributes))
		if ag != bg {
			return ag > bg
		}
		return a.Path > b.Path
	})
	return recs
}

// collapseUpdateRuns removes any contiguous run of 12 or more records
// whose adjacent creation times differ by one second or less, a signature
// of an OS update burst rather than individually meaningful activity.
func collapseUpdateRuns(recs []stockformats.FileListingRecord) []stockformats.FileListingRecord {
	var out []stockformats.FileListingRecord
	i := 0
	for i < len(recs) {
		j := i + 1
		for j < len(recs) {
			diff := int64(recs[j-1].Created) - int64(recs[j].Created)
			if diff < 0 {
				diff = -diff
			}
			if diff > updateRunGap {
				break
			}
			j++
		}
		runLen := j - i
		if runLen < updateRunMinLength {
			out = append(out, recs[i:j]...)
		}
		i = j
	}
	return out
}

// subtractByOrder removes from find3m every record that also appears in
// created30, comparing by the same fields the final sort order uses.
func subtractByOrder(find3m, created30 []stockformats.FileListingRecord) []stockformats.FileListingRecord {
	seen := make(map[stockformats.FileListingRecord]bool, len(created30))
	for _, r := range created30 {
		seen[r] = true
	}
	var out []stockformats.FileListingRecord
	for _, r := range find3m {
		if !seen[r] {
			out = append(out, r)
		}
	}
	return out
}
