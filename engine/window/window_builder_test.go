package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowDefaults(t *testing.T) {
	w := newEngineWindow()

	assert.Equal(t, "oxy-forward", w.title)
	assert.Equal(t, 1280, w.width)
	assert.Equal(t, 720, w.height)
	assert.NotNil(t, w.input)
}

func TestWindowOptionsApplyInOrder(t *testing.T) {
	w := newEngineWindow(
		WithTitle("demo"),
		WithWidth(800),
		WithWidth(1024),
		WithHeight(768),
		WithMinSize(320, 240),
		WithMaxSize(1920, 1080),
	)

	assert.Equal(t, "demo", w.title)
	assert.Equal(t, 1024, w.width)
	assert.Equal(t, 768, w.height)
	assert.Equal(t, 320, w.minWidth)
	assert.Equal(t, 240, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)
}

func TestInitialSizeClampedToLimits(t *testing.T) {
	small := newEngineWindow(WithWidth(100), WithHeight(50), WithMinSize(320, 240))
	assert.Equal(t, 320, small.width)
	assert.Equal(t, 240, small.height)

	large := newEngineWindow(WithWidth(4000), WithHeight(3000), WithMaxSize(1920, 1080))
	assert.Equal(t, 1920, large.width)
	assert.Equal(t, 1080, large.height)
}

func TestMaxSizeNeverBelowMinSize(t *testing.T) {
	w := newEngineWindow(WithMinSize(800, 600), WithMaxSize(640, 480))

	assert.Equal(t, 800, w.maxWidth)
	assert.Equal(t, 600, w.maxHeight)
	assert.Equal(t, 800, w.width)
	assert.Equal(t, 600, w.height)
}
