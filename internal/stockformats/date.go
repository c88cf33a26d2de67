// Package stockformats implements the report's fixed output shapes (§6.3):
// date rendering, file-attribute glyphs, the default-file line, the
// file-listing line, and the script header/footer banner.
package stockformats

import (
	"fmt"

	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
)

// Date renders p as "YYYY-MM-DD HH:MM:SS", zero-padded, in UTC.
func Date(p wintime.Packed) string {
	t := p.ToTime()
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// DateWithMillis renders p as Date, with a four-digit sub-second field
// appended after a decimal point (the full native sub-second resolution,
// not a millisecond truncation).
func DateWithMillis(p wintime.Packed) string {
	return fmt.Sprintf("%s.%04d", Date(p), p.SubsecondField4())
}

// GMTOffset renders a timezone bias in minutes as "GMT+H:MM" / "GMT-H:MM".
func GMTOffset(biasMinutes int) string {
	sign := "+"
	if biasMinutes < 0 {
		sign = "-"
		biasMinutes = -biasMinutes
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, biasMinutes/60, biasMinutes%60)
}
