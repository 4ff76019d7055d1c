package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleScript = `My Great Video

Scene 1 (00:00-00:04): Intro
VO: "Hello there."
Visual: A city skyline at dawn.

Scene 2: No Timing
VO: "Second line."
`

func TestParseScenesSample(t *testing.T) {
	scenes := ParseScenes(sampleScript)

	assert.Len(t, scenes, 2)

	assert.Equal(t, 0, scenes[0].OrderIndex)
	assert.Equal(t, "Hello there.", scenes[0].TextSegment)
	assert.Equal(t, "A city skyline at dawn.", scenes[0].VisualPrompt)
	assert.Equal(t, 4, scenes[0].Duration)

	assert.Equal(t, 1, scenes[1].OrderIndex)
	assert.Equal(t, "Second line.", scenes[1].TextSegment)
	assert.Equal(t, DefaultVisualPrompt, scenes[1].VisualPrompt)
	assert.Equal(t, DefaultDuration, scenes[1].Duration)
}

func TestParseScenesDeterministic(t *testing.T) {
	first := ParseScenes(sampleScript)
	second := ParseScenes(sampleScript)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		// Ids are fresh per parse; everything else must be identical.
		assert.NotEqual(t, first[i].Id, second[i].Id)
		assert.Equal(t, first[i].OrderIndex, second[i].OrderIndex)
		assert.Equal(t, first[i].TextSegment, second[i].TextSegment)
		assert.Equal(t, first[i].VisualPrompt, second[i].VisualPrompt)
		assert.Equal(t, first[i].Duration, second[i].Duration)
	}
}

func TestParseScenesNoMarkers(t *testing.T) {
	assert.Empty(t, ParseScenes("just a title line\nwith no scenes at all"))
	assert.Empty(t, ParseScenes(""))
}

func TestParseScenesDiscardsPreamble(t *testing.T) {
	scenes := ParseScenes("Intro paragraph that mentions nothing.\nScene 1\nVO: \"Line.\"\n")
	assert.Len(t, scenes, 1)
	assert.Equal(t, "Line.", scenes[0].TextSegment)
}

func TestParseScenesDropsEmptyBlocks(t *testing.T) {
	input := `Scene 1: Just A Title

Scene 2
VO: "Kept."
Visual: A desk.

Scene 3: Another bare title
`
	scenes := ParseScenes(input)

	assert.Len(t, scenes, 1)
	// Order index comes from the emitted sequence, not block position.
	assert.Equal(t, 0, scenes[0].OrderIndex)
	assert.Equal(t, "Kept.", scenes[0].TextSegment)
}

func TestParseScenesOrderIndexContiguity(t *testing.T) {
	input := `Scene 1
title only

Scene 2
VO: "a"

Scene 3
nothing here either

Scene 4
Visual: something

Scene 5
VO: "b"
`
	scenes := ParseScenes(input)

	assert.Len(t, scenes, 3)
	for i, scene := range scenes {
		assert.Equal(t, i, scene.OrderIndex)
	}
}

func TestParseScenesDuration(t *testing.T) {
	testCases := []struct {
		name  string
		block string
		want  int
	}{
		{name: "simple range", block: "Scene 1 (00:00-00:04)\nVO: \"x\"\n", want: 4},
		{name: "end before start defaults", block: "Scene 1 (00:10-00:08)\nVO: \"x\"\n", want: DefaultDuration},
		{name: "zero length defaults", block: "Scene 1 (00:05-00:05)\nVO: \"x\"\n", want: DefaultDuration},
		{name: "missing range defaults", block: "Scene 1: No Timing\nVO: \"x\"\n", want: DefaultDuration},
		{name: "raw seconds", block: "Scene 1 (2-9)\nVO: \"x\"\n", want: 7},
		{name: "trailing component only", block: "Scene 1 (00:03-00:08)\nVO: \"x\"\n", want: 5},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			scenes := ParseScenes(tc.block)
			assert.Len(t, scenes, 1)
			assert.Equal(t, tc.want, scenes[0].Duration)
		})
	}
}

func TestParseScenesBlankNarrationPlaceholder(t *testing.T) {
	scenes := ParseScenes("Scene 1\nVisual: An empty stage.\n")

	assert.Len(t, scenes, 1)
	assert.Equal(t, " ", scenes[0].TextSegment)
	assert.Equal(t, "An empty stage.", scenes[0].VisualPrompt)
}

func TestParseScenesVisualOnNextLine(t *testing.T) {
	scenes := ParseScenes("Scene 1\nVO: \"Hi.\"\nVisual:\nA mountain pass at dusk.\n")

	assert.Len(t, scenes, 1)
	assert.Equal(t, "A mountain pass at dusk.", scenes[0].VisualPrompt)
}

func TestParseScenesVisualMarkerWithNoText(t *testing.T) {
	// A bare marker yields no visual, so the default template kicks in.
	scenes := ParseScenes("Scene 1\nVO: \"Hi.\"\nVisual:   \n")

	assert.Len(t, scenes, 1)
	assert.Equal(t, DefaultVisualPrompt, scenes[0].VisualPrompt)
}

func TestParseScenesUnquotedNarration(t *testing.T) {
	scenes := ParseScenes("Scene 1\nVO: Plain unquoted words\n")

	assert.Len(t, scenes, 1)
	assert.Equal(t, "Plain unquoted words", scenes[0].TextSegment)
}

func TestParseScenesCaseInsensitiveMarker(t *testing.T) {
	scenes := ParseScenes("scene 1\nVO: \"lower.\"\n\nSCENE 2\nVO: \"upper.\"\n")

	assert.Len(t, scenes, 2)
	assert.Equal(t, "lower.", scenes[0].TextSegment)
	assert.Equal(t, "upper.", scenes[1].TextSegment)
}
