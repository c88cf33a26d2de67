// Package wintime converts between the native 64-bit file-time
// representation (100ns ticks since 1601-01-01) and Unix-epoch seconds,
// and exposes the timezone bias used when rendering local timestamps.
package wintime

import (
	"time"

	"golang.org/x/sys/windows"
)

// epochDiffSeconds is the number of seconds between the file-time epoch
// (1601-01-01) and the Unix epoch (1970-01-01).
const epochDiffSeconds = 11644473600

const ticksPerSecond = 10_000_000

// Packed is the native file-time value as a single 64-bit tick count
// (high<<32 | low in Win32 FILETIME terms).
type Packed uint64

// FromFileTime packs a windows.Filetime into a Packed tick count.
func FromFileTime(ft windows.Filetime) Packed {
	return Packed(uint64(ft.HighDateTime)<<32 | uint64(ft.LowDateTime))
}

// ToFileTime unpacks a Packed tick count back into a windows.Filetime.
func (p Packed) ToFileTime() windows.Filetime {
	return windows.Filetime{
		LowDateTime:  uint32(p),
		HighDateTime: uint32(p >> 32),
	}
}

// SecondsSince1970 converts a packed file-time to Unix-epoch seconds,
// truncating the sub-second remainder.
func SecondsSince1970(p Packed) int64 {
	return int64(p/ticksPerSecond) - epochDiffSeconds
}

// FiletimeFromSecondsSince1970 is the inverse of SecondsSince1970.
func FiletimeFromSecondsSince1970(secs uint32) Packed {
	return Packed((int64(secs) + epochDiffSeconds) * ticksPerSecond)
}

// SystemTimeFromSecondsSince1970 returns the UTC calendar breakdown of
// secs, for callers that need to format a field-by-field date.
func SystemTimeFromSecondsSince1970(secs uint32) time.Time {
	return time.Unix(int64(secs)-epochDiffSeconds+epochDiffSeconds, 0).UTC()
}

// ToTime returns p's UTC calendar breakdown as a time.Time, truncated to
// whole seconds.
func (p Packed) ToTime() time.Time {
	return time.Unix(SecondsSince1970(p), 0).UTC()
}

// SubsecondField4 returns p's sub-second remainder as a four-digit field
// (ten-thousandths of a second), the full-resolution fraction the report's
// date formatting appends after a decimal point.
func (p Packed) SubsecondField4() int {
	return int(uint64(p)%ticksPerSecond) / 1000
}

// Sub returns the elapsed duration between earlier and p (each a 100ns
// tick count), as a time.Duration.
func (p Packed) Sub(earlier Packed) time.Duration {
	return time.Duration(int64(p)-int64(earlier)) * 100 * time.Nanosecond
}

// WithBias shifts p by biasMinutes minutes, so a UTC-instant Packed value
// renders as a local wall-clock time through ToTime/Date without relying
// on the process's own timezone setting.
func (p Packed) WithBias(biasMinutes int) Packed {
	return p + Packed(int64(biasMinutes)*60*ticksPerSecond)
}

// LocalTimeNow returns the current moment as a Packed file-time.
func LocalTimeNow() Packed {
	var ft windows.Filetime
	windows.GetSystemTimeAsFileTime(&ft)
	return FromFileTime(ft)
}

// TimezoneBiasMinutes returns the active UTC offset, in minutes, adjusted
// for whether daylight saving is currently in effect.
func TimezoneBiasMinutes() (int, error) {
	var info windows.Timezoneinformation
	code, err := windows.GetTimeZoneInformation(&info)
	if err != nil {
		return 0, err
	}
	bias := info.Bias
	switch code {
	case windows.TIME_ZONE_ID_STANDARD:
		bias += info.StandardBias
	case windows.TIME_ZONE_ID_DAYLIGHT:
		bias += info.DaylightBias
	}
	return int(-bias), nil
}
