package profiler

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-forward/engine/frame"
	"github.com/stretchr/testify/assert"
)

func TestTickLogsAverageDraws(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithLogger(log.New(&buf, "", 0)), WithInterval(time.Hour))

	var stats frame.Stats
	stats.Draws[frame.PassDepth] = 4
	stats.Draws[frame.PassPointLights] = 8
	stats.Markers = 5

	assert.False(t, p.Tick(stats))
	assert.Empty(t, buf.String())

	stats.Draws[frame.PassPointLights] = 4
	stats.Markers = 3
	p.updateInterval = 0
	assert.True(t, p.Tick(stats))

	out := buf.String()
	assert.Contains(t, out, "[Profiler] FPS:")
	assert.Contains(t, out, frame.PassDepth.String()+"=4.0")
	assert.Contains(t, out, frame.PassPointLights.String()+"=6.0")
	assert.Contains(t, out, "lights=4.0")
	assert.NotContains(t, out, frame.PassSkybox.String()+"=")
}

func TestTickResetsAfterLogging(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(WithLogger(log.New(&buf, "", 0)), WithInterval(0))

	assert.True(t, p.Tick(frame.Stats{}))
	assert.Contains(t, buf.String(), "Draws: none")
	assert.Equal(t, 0, p.frameCount)
	assert.Equal(t, 0, p.markers)
}
