package tts

import (
	"strings"

	"videoflow/internal/types"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// catalog lists the narration voices the wizard offers, mapped to the
// provider that serves each of them.
var catalog = []types.Voice{
	{Id: "alloy", Name: "Alloy", Gender: "female", Provider: "openai"},
	{Id: "echo", Name: "Echo", Gender: "male", Provider: "openai"},
	{Id: "fable", Name: "Fable", Gender: "male", Provider: "openai"},
	{Id: "onyx", Name: "Onyx", Gender: "male", Provider: "openai"},
	{Id: "nova", Name: "Nova", Gender: "female", Provider: "openai"},
	{Id: "shimmer", Name: "Shimmer", Gender: "female", Provider: "openai"},
	{Id: "male-qn-qingse", Name: "Qingse", Gender: "male", Provider: "minimax"},
	{Id: "female-shaonv", Name: "Shaonv", Gender: "female", Provider: "minimax"},
}

// Voices returns the selectable voice catalog.
func Voices() []types.Voice {
	out := make([]types.Voice, len(catalog))
	copy(out, catalog)
	return out
}

// ResolveVoice finds a catalog entry by exact id, case-insensitive.
func ResolveVoice(id string) (types.Voice, bool) {
	normalized := strings.ToLower(strings.TrimSpace(id))
	for _, v := range catalog {
		if v.Id == normalized {
			return v, true
		}
	}
	return types.Voice{}, false
}

// SuggestVoice returns the catalog entry closest to the requested id by
// edit distance, for routing near-misses and error messages.
func SuggestVoice(id string) (types.Voice, int) {
	normalized := strings.ToLower(strings.TrimSpace(id))

	best := catalog[0]
	bestDistance := -1
	for _, v := range catalog {
		d := levenshtein.DistanceForStrings([]rune(normalized), []rune(v.Id), levenshtein.DefaultOptions)
		if bestDistance < 0 || d < bestDistance {
			best = v
			bestDistance = d
		}
	}
	return best, bestDistance
}
