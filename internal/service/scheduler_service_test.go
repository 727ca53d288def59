package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("08:30")
	require.NoError(t, err)
	assert.Equal(t, "0 30 8 * * *", spec)

	for _, bad := range []string{"", "8", "24:00", "10:60", "aa:bb"} {
		_, err := buildDailySpec(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}
