package audio

import (
	"context"
	"fmt"
	"strings"

	"videoflow/internal/types"
	"videoflow/log"

	"go.uber.org/zap"
)

// EffectSilence disables the transient effect layer.
const EffectSilence = "silence"

// effectVocabulary is the closed set of effect keywords the classifier
// may select. Anything else collapses to silence.
var effectVocabulary = map[string]bool{
	"whoosh":      true,
	"pop":         true,
	"typing":      true,
	"nature":      true,
	"city":        true,
	"office":      true,
	EffectSilence: true,
}

// effectCue describes the placeholder transient layer for one keyword:
// a short chirp after a fixed lead-in. Real sample playback keyed by
// the keyword would slot in here.
type effectCue struct {
	startFreq, endFreq   float64
	startGain, endGain   float64
	start, sweepEnd, end float64
}

// placeholderCue is the chirp every non-silence keyword currently
// resolves to. TODO: replace with per-keyword sample playback once the
// SFX asset library lands.
var placeholderCue = effectCue{
	startFreq: 800, endFreq: 1200,
	startGain: 0.1, endGain: 0.01,
	start: 0.5, sweepEnd: 0.7, end: 0.9,
}

// lookupEffectCue resolves an effect keyword to its transient cue.
func lookupEffectCue(keyword string) (effectCue, bool) {
	if keyword == EffectSilence || !effectVocabulary[keyword] {
		return effectCue{}, false
	}
	return placeholderCue, true
}

const sfxPromptTemplate = `Analyze this visual description: "%s".
Suggest ONE single sound effect keyword from this list: [whoosh, pop, typing, nature, city, office, silence].
Return ONLY the keyword.`

// NormalizeEffectKeyword lowercases, strips non-letters and coerces
// anything outside the vocabulary to silence.
func NormalizeEffectKeyword(raw string) string {
	keyword := strings.ToLower(strings.TrimSpace(raw))
	keyword = strings.Map(func(r rune) rune {
		if r < 'a' || r > 'z' {
			return -1
		}
		return r
	}, keyword)

	if !effectVocabulary[keyword] {
		return EffectSilence
	}
	return keyword
}

// ClassifyEffect asks the chat collaborator for an effect keyword
// matching the visual description. Classification failures are not
// errors; they degrade to silence.
func ClassifyEffect(ctx context.Context, completer types.ChatCompleter, visualPrompt string) string {
	if completer == nil {
		return EffectSilence
	}

	answer, err := completer.ChatCompletion(ctx, "", fmt.Sprintf(sfxPromptTemplate, visualPrompt))
	if err != nil {
		log.GetLogger().Warn("effect classification failed, using silence", zap.Error(err))
		return EffectSilence
	}

	return NormalizeEffectKeyword(answer)
}
