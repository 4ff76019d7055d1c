// Package script turns loosely-structured production scripts into
// ordered scene records. Parsing is tolerant by design: malformed
// blocks degrade to defaults instead of raising errors.
package script

import (
	"regexp"
	"strconv"
	"strings"

	"videoflow/internal/types"

	"github.com/google/uuid"
)

const (
	// DefaultDuration is used when a block carries no usable timestamp
	// range.
	DefaultDuration = 6

	// DefaultVisualPrompt substitutes for a missing Visual line so
	// downstream image generation always has something to work with.
	DefaultVisualPrompt = "A photorealistic wide shot of the subject, set in a professional environment. The scene is illuminated by cinematic lighting, creating a polished atmosphere. Captured with a high-resolution camera."

	// blankNarration keeps TextSegment non-empty when no VO line was
	// extracted.
	blankNarration = " "
)

var (
	sceneMarkerRegexp = regexp.MustCompile(`(?i)Scene\s+\d+`)
	timeRangeRegexp   = regexp.MustCompile(`\((\d+:?\d*)-(\d+:?\d*)\)`)
	voRegexp          = regexp.MustCompile(`VO:\s*"?([^"\n]+)"?`)
	visualRegexp      = regexp.MustCompile(`Visual:\s*([^\n]+)`)
)

// ParseScenes splits a script on "Scene N" markers and extracts one
// scene per block. Text before the first marker is treated as preamble
// and discarded. Blocks with neither narration nor visual text are
// dropped; order indexes are assigned from the emitted sequence, so
// they stay contiguous from 0 regardless of drops. A script with no
// markers yields an empty slice, never an error.
func ParseScenes(script string) []types.Scene {
	blocks := sceneMarkerRegexp.Split(script, -1)
	if len(blocks) > 0 {
		blocks = blocks[1:]
	}

	scenes := make([]types.Scene, 0, len(blocks))
	for _, block := range blocks {
		text := extractNarration(block)
		visual := extractVisual(block)
		if text == "" && visual == "" {
			continue
		}
		if text == "" {
			text = blankNarration
		}
		if visual == "" {
			visual = DefaultVisualPrompt
		}

		scenes = append(scenes, types.Scene{
			Id:           "scene-" + uuid.NewString(),
			OrderIndex:   len(scenes),
			TextSegment:  text,
			VisualPrompt: visual,
			Duration:     extractDuration(block),
		})
	}

	return scenes
}

// extractDuration derives seconds from a "(start-end)" timestamp pair.
// Each side may be raw seconds or minutes:seconds; only the trailing
// numeric component counts. Missing, malformed or non-positive values
// fall back to DefaultDuration.
func extractDuration(block string) int {
	match := timeRangeRegexp.FindStringSubmatch(block)
	if match == nil {
		return DefaultDuration
	}

	start, okStart := trailingSeconds(match[1])
	end, okEnd := trailingSeconds(match[2])
	if !okStart || !okEnd {
		return DefaultDuration
	}

	duration := end - start
	if duration <= 0 {
		return DefaultDuration
	}
	return duration
}

func trailingSeconds(token string) (int, bool) {
	parts := strings.Split(token, ":")
	seconds, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, false
	}
	return seconds, true
}

func extractNarration(block string) string {
	match := voRegexp.FindStringSubmatch(block)
	if match == nil {
		return ""
	}
	return strings.Trim(strings.TrimSpace(match[1]), `"`)
}

// extractVisual prefers the single-line Visual pattern and falls back
// to everything after the literal marker when the strict pattern
// misses (e.g. the description starts on the next line).
func extractVisual(block string) string {
	if match := visualRegexp.FindStringSubmatch(block); match != nil {
		return strings.TrimSpace(match[1])
	}

	if _, after, found := strings.Cut(block, "Visual:"); found {
		return strings.TrimSpace(after)
	}
	return ""
}
