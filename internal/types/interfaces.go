package types

import "context"

// ChatCompleter produces a text completion for a prompt pair. Used for
// effect-keyword classification and script rewriting.
type ChatCompleter interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SpeechResult is raw narration audio as returned by a synthesis provider.
type SpeechResult struct {
	PCM        []byte // signed 16-bit little-endian mono samples
	SampleRate int
}

// Duration reports the narration length in seconds.
func (r SpeechResult) Duration() float64 {
	if r.SampleRate <= 0 {
		return 0
	}
	return float64(len(r.PCM)/2) / float64(r.SampleRate)
}

// SpeechSynthesizer turns narration text into PCM audio. Providers
// return 24000 Hz mono 16-bit samples; contextPrompt carries optional
// scene-setting detail and may be empty.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice, contextPrompt string) (SpeechResult, error)
}
