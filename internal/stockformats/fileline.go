//go:build windows

package stockformats

import (
	"github.com/billyoneal/instalog-go/internal/osfacade/file"
	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
	"github.com/billyoneal/instalog-go/internal/strcodec"
)

// DefaultFileLine renders `<path> [<size> <default-date> <company>]`. If
// resolved is false (the path reference did not resolve to an existing
// file), it renders `<path> [x]`. If ext is nil (attributes could not be
// read from an otherwise-resolved path), it renders `<path> [?]`.
func DefaultFileLine(path string, resolved bool, ext *file.ExtendedAttributes, company string) string {
	if !resolved {
		return path + " [x]"
	}
	if ext == nil {
		return path + " [?]"
	}
	return path + " [" + formatUint(ext.Size) + " " + Date(ext.Written) + " " + company + "]"
}

// FileListingRecord is the tuple FileListingLine needs; it deliberately
// avoids depending on any one facade's record shape so callers (FindStarM,
// Created-Last-30) can build it from whichever enumerator they used.
type FileListingRecord struct {
	Created    wintime.Packed
	Modified   wintime.Packed
	Size       uint64
	Attributes file.Attributes
	Path       string
}

// FileListingLine renders `<created> . <modified> <size>(width 10) <attr
// glyphs> <escaped path>`, the row format used by FindStarM output.
func FileListingLine(rec FileListingRecord) string {
	size := formatUint(rec.Size)
	for len(size) < 10 {
		size = " " + size
	}
	path := strcodec.GeneralEscape(rec.Path, strcodec.DefaultEscape, strcodec.DefaultEnd)
	return Date(rec.Created) + " . " + Date(rec.Modified) + " " + size + " " +
		AttributeGlyphs(uint32(rec.Attributes)) + " " + path
}

func formatUint(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
