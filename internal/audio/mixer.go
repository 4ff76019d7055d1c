package audio

import (
	"context"
	"fmt"
	"math"

	"videoflow/internal/types"
	"videoflow/log"
	apperrors "videoflow/pkg/errors"

	"go.uber.org/zap"
)

const (
	// MixSampleRate is the offline render rate of the mixed output.
	MixSampleRate = 44100
	// NarrationSampleRate is the rate narration providers synthesize at.
	NarrationSampleRate = 24000

	mixChannels = 2
	tailSeconds = 1.0

	bedFrequency = 110.0 // low drone, A2
	bedGain      = 0.05
)

// MixResult is a finished per-scene audio asset: a self-contained WAV
// container plus how it was produced. Degraded marks a narration-only
// fallback where the background and effect layers were lost.
type MixResult struct {
	WAV        []byte
	SampleRate int
	Duration   float64
	Effect     string
	Degraded   bool
}

// Mixer builds per-scene audio by layering narration, a background bed
// and an optional transient effect on an offline timeline. Collaborators
// are injected; the mixer holds no per-call state, so concurrent
// invocations are safe.
type Mixer struct {
	Classifier types.ChatCompleter
	Synth      types.SpeechSynthesizer

	// render is swappable for tests that force the fallback path.
	render func(speech types.SpeechResult, effect string) ([]byte, error)
}

func NewMixer(classifier types.ChatCompleter, synth types.SpeechSynthesizer) *Mixer {
	return &Mixer{
		Classifier: classifier,
		Synth:      synth,
	}
}

// MixSceneAudio produces the mixed clip for one scene. Narration
// synthesis failure is the only hard error; everything after it
// degrades to a narration-only result.
func (m *Mixer) MixSceneAudio(ctx context.Context, text, visualPrompt, voice string) (MixResult, error) {
	effect := ClassifyEffect(ctx, m.Classifier, visualPrompt)
	log.GetLogger().Info("mixer selected effect",
		zap.String("effect", effect),
		zap.String("visual_prompt", visualPrompt))

	speech, err := m.Synth.Synthesize(ctx, text, voice, BuildNarrationPrompt(text, voice, visualPrompt))
	if err != nil {
		return MixResult{}, apperrors.Wrap(apperrors.CodeSynthesisFailed, "Speech synthesis failed", err)
	}

	render := m.render
	if render == nil {
		render = renderMix
	}

	wav, renderErr := render(speech, effect)
	if renderErr == nil {
		return MixResult{
			WAV:        wav,
			SampleRate: MixSampleRate,
			Duration:   speech.Duration() + tailSeconds,
			Effect:     effect,
		}, nil
	}

	log.GetLogger().Warn("mix render failed, falling back to narration only", zap.Error(renderErr))
	return m.narrationOnly(ctx, text, voice)
}

// narrationOnly re-runs plain synthesis (no visual context) and wraps
// the result as-is, matching the pre-mixer output shape.
func (m *Mixer) narrationOnly(ctx context.Context, text, voice string) (MixResult, error) {
	speech, err := m.Synth.Synthesize(ctx, text, voice, "")
	if err != nil {
		return MixResult{}, apperrors.Wrap(apperrors.CodeSynthesisFailed, "Speech synthesis failed", err)
	}

	return MixResult{
		WAV:        EncodeWAV(speech.PCM, speech.SampleRate, 1),
		SampleRate: speech.SampleRate,
		Duration:   speech.Duration(),
		Effect:     EffectSilence,
		Degraded:   true,
	}, nil
}

// renderMix composes the three layers on an offline timeline and
// encodes channel 0 as mono 16-bit WAV.
func renderMix(speech types.SpeechResult, effect string) ([]byte, error) {
	if speech.SampleRate <= 0 {
		return nil, fmt.Errorf("mixer: invalid narration sample rate %d", speech.SampleRate)
	}
	if len(speech.PCM)%2 != 0 {
		return nil, fmt.Errorf("mixer: narration PCM not 16-bit aligned (%d bytes)", len(speech.PCM))
	}

	narrationDuration := speech.Duration()
	totalDuration := narrationDuration + tailSeconds

	tl, err := NewTimeline(totalDuration, MixSampleRate, mixChannels)
	if err != nil {
		return nil, err
	}

	// Voice layer: narration at t=0, unity gain.
	voice := ResampleLinear(PCM16ToFloat32(speech.PCM), speech.SampleRate, MixSampleRate)
	tl.SchedulePCM(voice, 0)

	// Background bed: held low through the narration, then a linear
	// fade to silence over the tail (ducking envelope).
	tl.ScheduleTone(
		Constant(bedFrequency),
		Envelope{
			{Time: 0, Value: bedGain, Ramp: RampSet},
			{Time: narrationDuration, Value: bedGain, Ramp: RampLinear},
			{Time: totalDuration, Value: 0, Ramp: RampLinear},
		},
		0, totalDuration,
	)

	// Effect layer: short placeholder chirp after a fixed lead-in.
	// Kept inside the narration span so it never bleeds into the tail.
	if cue, ok := lookupEffectCue(effect); ok && narrationDuration > cue.start {
		end := math.Min(cue.end, narrationDuration)
		tl.ScheduleTone(
			Envelope{
				{Time: cue.start, Value: cue.startFreq, Ramp: RampSet},
				{Time: cue.sweepEnd, Value: cue.endFreq, Ramp: RampExponential},
			},
			Envelope{
				{Time: cue.start, Value: cue.startGain, Ramp: RampSet},
				{Time: cue.end, Value: cue.endGain, Ramp: RampExponential},
			},
			cue.start, end,
		)
	}

	rendered, err := tl.Render(0)
	if err != nil {
		return nil, err
	}

	return EncodeWAV(Float32ToPCM16(rendered), MixSampleRate, 1), nil
}

// BuildNarrationPrompt wraps narration text in a director-style context
// prompt so expressive synthesis providers can act the scene instead of
// reading it flat.
func BuildNarrationPrompt(text, voiceName, visualContext string) string {
	sceneDescription := visualContext
	if len(sceneDescription) <= 5 {
		sceneDescription = "A professional recording studio environment."
	}

	return fmt.Sprintf(`# AUDIO PROFILE: %s
## "Professional Video Narrator"

## THE SCENE: Visual Context
%s

### DIRECTOR'S NOTES
Style:
* The "Vocal Smile": Friendly, engaging, and professional.
* Dynamics: Clear projection, good articulation.
* Tone: Optimistic and authoritative.

Pace: Moderate, natural conversational pace.

### SAMPLE CONTEXT
Narrating a video segment.

#### TRANSCRIPT
%s`, voiceName, sceneDescription, text)
}
