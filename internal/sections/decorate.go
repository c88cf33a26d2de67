//go:build windows

package sections

import (
	"github.com/billyoneal/instalog-go/internal/osfacade/file"
	"github.com/billyoneal/instalog-go/internal/stockformats"
)

// decorateFile renders path with the default-file decoration (§6.3):
// `<path> [<size> <default-date> <company>]`, `[x]` if it does not
// resolve to an existing file, `[?]` if attributes could not be read.
func decorateFile(path string) string {
	if !file.IsExclusiveFile(path) {
		return stockformats.DefaultFileLine(path, false, nil, "")
	}
	ext, err := file.GetExtendedAttributes(path)
	if err != nil {
		return stockformats.DefaultFileLine(path, true, nil, "")
	}
	company, _ := file.Company(path)
	return stockformats.DefaultFileLine(path, true, &ext, company)
}
