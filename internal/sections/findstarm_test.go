//go:build windows

package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
	"github.com/billyoneal/instalog-go/internal/stockformats"
)

func rec(created wintime.Packed, path string) stockformats.FileListingRecord {
	return stockformats.FileListingRecord{Created: created, Modified: created, Path: path}
}

func TestSortFindStarMOrdersByCreatedDesc(t *testing.T) {
	recs := []stockformats.FileListingRecord{
		rec(100, "a"), rec(300, "b"), rec(200, "c"),
	}
	sorted := sortFindStarM(recs)
	assert.Equal(t, []string{"b", "c", "a"}, pathsOf(sorted))
}

func TestSortFindStarMTieBreaksBySizeDesc(t *testing.T) {
	a := rec(100, "a.exe")
	a.Size = 10
	b := rec(100, "b.exe")
	b.Size = 20
	sorted := sortFindStarM([]stockformats.FileListingRecord{a, b})
	assert.Equal(t, []string{"b.exe", "a.exe"}, pathsOf(sorted))
}

func TestCollapseUpdateRunsRemovesLongBurst(t *testing.T) {
	var recs []stockformats.FileListingRecord
	for i := 0; i < 12; i++ {
		recs = append(recs, rec(wintime.Packed(1000-i), "burst"))
	}
	recs = append(recs, rec(1000+5*wintimeSecond, "kept"))
	out := collapseUpdateRuns(recs)
	assert.Equal(t, []string{"kept"}, pathsOf(out))
}

func TestCollapseUpdateRunsKeepsShortRun(t *testing.T) {
	recs := []stockformats.FileListingRecord{
		rec(1000, "a"), rec(999, "b"), rec(998, "c"),
	}
	out := collapseUpdateRuns(recs)
	assert.Len(t, out, 3)
}

func TestSubtractByOrderRemovesOverlap(t *testing.T) {
	created30 := []stockformats.FileListingRecord{rec(100, "shared")}
	find3m := []stockformats.FileListingRecord{rec(100, "shared"), rec(200, "unique")}
	out := subtractByOrder(find3m, created30)
	assert.Equal(t, []string{"unique"}, pathsOf(out))
}

func TestExtOfLowercasesAndStripsDot(t *testing.T) {
	assert.Equal(t, "exe", extOf(`C:\Windows\System32\Foo.EXE`))
	assert.Equal(t, "", extOf(`C:\Windows\System32\noext`))
}

func pathsOf(recs []stockformats.FileListingRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Path
	}
	return out
}
