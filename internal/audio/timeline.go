package audio

import (
	"fmt"
	"math"
)

// RampKind selects how an envelope approaches a point's value from the
// previous point.
type RampKind int

const (
	RampSet RampKind = iota // jump to the value at the point's time
	RampLinear
	RampExponential
)

// EnvelopePoint is one scheduled value of a time-varying parameter.
type EnvelopePoint struct {
	Time  float64
	Value float64
	Ramp  RampKind
}

// Envelope is an ordered list of scheduled parameter values. Points
// must be sorted by time. Before the first point the first value holds,
// after the last point the last value holds.
type Envelope []EnvelopePoint

// ValueAt evaluates the envelope at time t.
func (e Envelope) ValueAt(t float64) float64 {
	if len(e) == 0 {
		return 0
	}
	if t <= e[0].Time {
		return e[0].Value
	}
	for i := 1; i < len(e); i++ {
		p := e[i]
		if t > p.Time {
			continue
		}
		prev := e[i-1]
		switch p.Ramp {
		case RampLinear:
			frac := (t - prev.Time) / (p.Time - prev.Time)
			return prev.Value + (p.Value-prev.Value)*frac
		case RampExponential:
			// Audio-style exponential ramp; both endpoints must be
			// non-zero and same-signed for this to be meaningful.
			if prev.Value == 0 || p.Value/prev.Value <= 0 {
				return p.Value
			}
			frac := (t - prev.Time) / (p.Time - prev.Time)
			return prev.Value * math.Pow(p.Value/prev.Value, frac)
		default:
			// RampSet holds the previous value until the point's time.
			if t < p.Time {
				return prev.Value
			}
			return p.Value
		}
	}
	return e[len(e)-1].Value
}

// Constant is a single-point envelope.
func Constant(v float64) Envelope {
	return Envelope{{Time: 0, Value: v, Ramp: RampSet}}
}

// Timeline is an offline rendering buffer: a fixed-length multi-channel
// float canvas that layers are summed into. One Timeline serves exactly
// one mix invocation; it holds no state beyond its sample data.
type Timeline struct {
	sampleRate int
	channels   int
	frames     int
	data       [][]float32 // per channel
}

// NewTimeline allocates a silent timeline of the given duration.
func NewTimeline(duration float64, sampleRate, channels int) (*Timeline, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("timeline: non-positive duration %f", duration)
	}
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("timeline: invalid format %d Hz / %d ch", sampleRate, channels)
	}

	frames := int(math.Round(duration * float64(sampleRate)))
	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}
	return &Timeline{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		data:       data,
	}, nil
}

// Duration returns the timeline length in seconds.
func (tl *Timeline) Duration() float64 {
	return float64(tl.frames) / float64(tl.sampleRate)
}

// Frames returns the timeline length in sample frames.
func (tl *Timeline) Frames() int {
	return tl.frames
}

// SchedulePCM sums a mono sample buffer (already at the timeline's
// rate) into every channel starting at the given time, unity gain.
// Samples running past the end of the timeline are dropped.
func (tl *Timeline) SchedulePCM(samples []float32, start float64) {
	offset := int(math.Round(start * float64(tl.sampleRate)))
	for i, s := range samples {
		frame := offset + i
		if frame < 0 {
			continue
		}
		if frame >= tl.frames {
			break
		}
		for c := 0; c < tl.channels; c++ {
			tl.data[c][frame] += s
		}
	}
}

// ScheduleTone sums a sine oscillator into every channel, active from
// start to stop. Frequency and gain are evaluated per sample from their
// envelopes; phase accumulates over the instantaneous frequency so
// frequency ramps glide instead of clicking.
func (tl *Timeline) ScheduleTone(freq, gain Envelope, start, stop float64) {
	startFrame := int(math.Round(start * float64(tl.sampleRate)))
	stopFrame := int(math.Round(stop * float64(tl.sampleRate)))
	if stopFrame > tl.frames {
		stopFrame = tl.frames
	}

	phase := 0.0
	dt := 1.0 / float64(tl.sampleRate)
	for frame := startFrame; frame < stopFrame; frame++ {
		if frame < 0 {
			continue
		}
		t := float64(frame) * dt
		s := float32(math.Sin(phase) * gain.ValueAt(t))
		phase += 2 * math.Pi * freq.ValueAt(t) * dt
		for c := 0; c < tl.channels; c++ {
			tl.data[c][frame] += s
		}
	}
}

// Render completes the timeline and returns the samples of one channel.
// Rendering is synchronous-to-completion; there is no partial output.
func (tl *Timeline) Render(channel int) ([]float32, error) {
	if channel < 0 || channel >= tl.channels {
		return nil, fmt.Errorf("timeline: channel %d out of range (have %d)", channel, tl.channels)
	}
	return tl.data[channel], nil
}
