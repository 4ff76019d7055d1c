package audio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopeValueAt(t *testing.T) {
	env := Envelope{
		{Time: 0, Value: 0.05, Ramp: RampSet},
		{Time: 2, Value: 0.05, Ramp: RampLinear},
		{Time: 3, Value: 0, Ramp: RampLinear},
	}

	assert.InDelta(t, 0.05, env.ValueAt(-1), 1e-9)
	assert.InDelta(t, 0.05, env.ValueAt(0), 1e-9)
	assert.InDelta(t, 0.05, env.ValueAt(1.5), 1e-9)
	assert.InDelta(t, 0.025, env.ValueAt(2.5), 1e-9)
	assert.InDelta(t, 0.0, env.ValueAt(3), 1e-9)
	assert.InDelta(t, 0.0, env.ValueAt(10), 1e-9)
}

func TestEnvelopeExponentialRamp(t *testing.T) {
	env := Envelope{
		{Time: 0.5, Value: 800, Ramp: RampSet},
		{Time: 0.7, Value: 1200, Ramp: RampExponential},
	}

	assert.InDelta(t, 800, env.ValueAt(0.5), 1e-6)
	assert.InDelta(t, 1200, env.ValueAt(0.7), 1e-6)
	// Geometric midpoint, not arithmetic.
	assert.InDelta(t, math.Sqrt(800*1200), env.ValueAt(0.6), 1e-6)
	// Holds the last value past the ramp.
	assert.InDelta(t, 1200, env.ValueAt(0.9), 1e-6)
}

func TestConstantEnvelope(t *testing.T) {
	env := Constant(0.3)
	assert.InDelta(t, 0.3, env.ValueAt(0), 1e-9)
	assert.InDelta(t, 0.3, env.ValueAt(123), 1e-9)
}

func TestNewTimelineValidation(t *testing.T) {
	_, err := NewTimeline(0, 44100, 2)
	assert.Error(t, err)

	_, err = NewTimeline(1, 0, 2)
	assert.Error(t, err)

	tl, err := NewTimeline(1.5, 44100, 2)
	assert.NoError(t, err)
	assert.Equal(t, 66150, tl.Frames())
	assert.InDelta(t, 1.5, tl.Duration(), 1e-9)
}

func TestSchedulePCMSumsIntoAllChannels(t *testing.T) {
	tl, err := NewTimeline(1, 100, 2)
	assert.NoError(t, err)

	tl.SchedulePCM([]float32{0.5, 0.25}, 0)
	tl.SchedulePCM([]float32{0.1}, 0) // additive

	left, err := tl.Render(0)
	assert.NoError(t, err)
	right, err := tl.Render(1)
	assert.NoError(t, err)

	assert.InDelta(t, 0.6, float64(left[0]), 1e-6)
	assert.InDelta(t, 0.25, float64(left[1]), 1e-6)
	assert.InDelta(t, 0.0, float64(left[2]), 1e-9)
	assert.Equal(t, left[0], right[0])
}

func TestSchedulePCMOffsetAndTruncation(t *testing.T) {
	tl, err := NewTimeline(0.1, 100, 1) // 10 frames
	assert.NoError(t, err)

	samples := make([]float32, 20)
	for i := range samples {
		samples[i] = 1
	}
	tl.SchedulePCM(samples, 0.05) // starts at frame 5, rest dropped

	out, err := tl.Render(0)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, float64(out[4]), 1e-9)
	assert.InDelta(t, 1.0, float64(out[5]), 1e-9)
	assert.InDelta(t, 1.0, float64(out[9]), 1e-9)
	assert.Len(t, out, 10)
}

func TestScheduleToneRespectsWindowAndGain(t *testing.T) {
	tl, err := NewTimeline(1, 1000, 1)
	assert.NoError(t, err)

	tl.ScheduleTone(Constant(50), Constant(0.5), 0.2, 0.4)

	out, err := tl.Render(0)
	assert.NoError(t, err)

	// Silent outside the active window.
	for frame := 0; frame < 200; frame++ {
		assert.Zero(t, out[frame])
	}
	for frame := 400; frame < 1000; frame++ {
		assert.Zero(t, out[frame])
	}

	// Active inside, bounded by the gain.
	var peak float64
	for frame := 200; frame < 400; frame++ {
		if v := math.Abs(float64(out[frame])); v > peak {
			peak = v
		}
	}
	assert.Greater(t, peak, 0.4)
	assert.LessOrEqual(t, peak, 0.5+1e-6)
}

func TestRenderChannelOutOfRange(t *testing.T) {
	tl, err := NewTimeline(1, 100, 2)
	assert.NoError(t, err)

	_, err = tl.Render(2)
	assert.Error(t, err)
	_, err = tl.Render(-1)
	assert.Error(t, err)
}
