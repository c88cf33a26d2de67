package stockformats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
)

func packedFor(t time.Time, extraTicks uint64) wintime.Packed {
	secs := uint32(t.Unix())
	return wintime.FiletimeFromSecondsSince1970(secs) + wintime.Packed(extraTicks)
}

func TestDateFormatsZeroPadded(t *testing.T) {
	p := packedFor(time.Date(2024, 3, 5, 9, 7, 2, 0, time.UTC), 0)
	require.Equal(t, "2024-03-05 09:07:02", Date(p))
}

func TestDateWithMillisAppendsFourDigitSubsecondField(t *testing.T) {
	p := packedFor(time.Date(2024, 3, 5, 9, 7, 2, 0, time.UTC), 1234*1000)
	require.Equal(t, "2024-03-05 09:07:02.1234", DateWithMillis(p))
}

func TestGMTOffsetPositiveAndNegative(t *testing.T) {
	require.Equal(t, "GMT+5:30", GMTOffset(330))
	require.Equal(t, "GMT-8:00", GMTOffset(-480))
	require.Equal(t, "GMT+0:00", GMTOffset(0))
}
