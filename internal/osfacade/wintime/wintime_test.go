package wintime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecondsSince1970RoundTrips(t *testing.T) {
	const secs = 1_700_000_000
	p := FiletimeFromSecondsSince1970(secs)
	require.Equal(t, int64(secs), SecondsSince1970(p))
}

func TestSecondsSince1970OfZeroIsEpochDiff(t *testing.T) {
	require.Equal(t, int64(-epochDiffSeconds), SecondsSince1970(0))
}

func TestPackedRoundTripsThroughFiletime(t *testing.T) {
	p := FiletimeFromSecondsSince1970(123456789)
	ft := p.ToFileTime()
	require.Equal(t, p, FromFileTime(ft))
}
