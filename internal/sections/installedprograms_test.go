//go:build windows

package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerLessIsCaseInsensitive(t *testing.T) {
	assert.True(t, lowerLess("Adobe Reader", "zlib"))
	assert.True(t, lowerLess("adobe", "Adobe Reader"))
	assert.False(t, lowerLess("Zlib", "Adobe"))
}
