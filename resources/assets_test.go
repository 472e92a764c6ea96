package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogoIsCached(t *testing.T) {
	first, err := Logo(LogoActive)
	require.NoError(t, err)
	second := MustLogo(LogoActive)

	assert.Same(t, first, second)
	assert.NotEmpty(t, first.Content())
}

func TestLogoMissing(t *testing.T) {
	_, err := Logo("missing.png")
	assert.ErrorContains(t, err, "load resource logo/missing.png")
}

func TestChimeIsWAV(t *testing.T) {
	data := Chime()
	require.Greater(t, len(data), 44)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}
