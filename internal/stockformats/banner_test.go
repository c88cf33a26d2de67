package stockformats

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/billyoneal/instalog-go/internal/osfacade/wintime"
)

func TestHeaderOmitsBootModeLineWhenNormal(t *testing.T) {
	info := HeaderInfo{
		Version:   "1.0",
		BootMode:  BootModeNormal,
		RunByUser: "alice",
		RunAt:     packedFor(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0),
	}
	h := Header(info)
	require.True(t, strings.HasPrefix(h, "Instalog 1.0\r\nRun By alice on "))
	require.NotContains(t, h, "MINIMAL")
	require.NotContains(t, h, "NETWORK")
}

func TestHeaderIncludesSafeBootAnnotation(t *testing.T) {
	info := HeaderInfo{Version: "1.0", BootMode: BootModeSafeMinimal, RunAt: wintime.Packed(0)}
	require.Contains(t, Header(info), "MINIMAL\r\n")
}

func TestFooterFormatsElapsedSeconds(t *testing.T) {
	f := Footer("1.0", wintime.Packed(0), 3.5)
	require.Contains(t, f, "Instalog 1.0 finished at")
	require.Contains(t, f, "Generation took 3.500 seconds")
}
