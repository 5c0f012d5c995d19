package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyOptions(options ...RendererBuilderOption) *renderer {
	r := &renderer{}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func TestSampleCountDefaultsTo4x(t *testing.T) {
	assert.Equal(t, MSAA4x, applyOptions().sampleCount())
}

func TestWithMSAAOverridesSampleCount(t *testing.T) {
	assert.Equal(t, MSAAOff, applyOptions(WithMSAA(MSAAOff)).sampleCount())
	assert.Equal(t, MSAA8x, applyOptions(WithMSAA(MSAA4x), WithMSAA(MSAA8x)).sampleCount())
}

func TestWithForceSoftwareRenderer(t *testing.T) {
	assert.False(t, applyOptions().forceFallbackAdapter)
	assert.True(t, applyOptions(WithForceSoftwareRenderer(true)).forceFallbackAdapter)
}

func TestWithPresentMode(t *testing.T) {
	r := applyOptions(WithPresentMode(PresentModeUncapped))
	require.NotNil(t, r.pendingPresentMode)
	assert.Equal(t, PresentModeUncapped, *r.pendingPresentMode)
}

func TestParseMSAASampleCount(t *testing.T) {
	for _, samples := range []int{1, 4, 8, 16} {
		count, err := ParseMSAASampleCount(samples)
		require.NoError(t, err)
		assert.Equal(t, MSAASampleCount(samples), count)
	}
	for _, samples := range []int{0, 2, 3, 32, -4} {
		_, err := ParseMSAASampleCount(samples)
		assert.Error(t, err, "samples=%d", samples)
	}
}
