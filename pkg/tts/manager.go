// Package tts routes narration synthesis across the configured
// providers by voice id.
package tts

import (
	"context"
	"errors"

	"videoflow/config"
	"videoflow/internal/types"
	"videoflow/log"
	"videoflow/pkg/minimax"
	"videoflow/pkg/openai"

	"go.uber.org/zap"
)

// maxVoiceSuggestDistance bounds how far a typo'd voice id may be from
// a catalog entry before we stop second-guessing the caller.
const maxVoiceSuggestDistance = 2

// CompositeSynthesizer manages multiple synthesis providers and routes
// requests by voice id.
type CompositeSynthesizer struct {
	Openai  *openai.Client
	Minimax *minimax.Client
	Default types.SpeechSynthesizer
}

func NewCompositeSynthesizer() *CompositeSynthesizer {
	c := &CompositeSynthesizer{}

	// OpenAI TTS reuses the LLM key when no dedicated one is set.
	apiKey := config.Conf.Tts.Openai.ApiKey
	if apiKey == "" {
		apiKey = config.Conf.Llm.ApiKey
	}
	if apiKey != "" {
		c.Openai = openai.NewClient(config.Conf.Tts.Openai.BaseUrl, apiKey, config.Conf.App.Proxy)
		if config.Conf.Tts.Openai.Model != "" {
			c.Openai.SpeechModel = config.Conf.Tts.Openai.Model
		}
	}

	if config.Conf.Tts.Minimax.ApiKey != "" {
		c.Minimax = minimax.NewClient(
			config.Conf.Tts.Minimax.ApiKey,
			config.Conf.Tts.Minimax.GroupId,
			config.Conf.Tts.Minimax.Model,
		)
	}

	switch config.Conf.Tts.Provider {
	case "minimax":
		if c.Minimax != nil {
			c.Default = c.Minimax
		}
	default:
		if c.Openai != nil {
			c.Default = c.Openai
		}
	}
	if c.Default == nil {
		if c.Openai != nil {
			c.Default = c.Openai
		} else if c.Minimax != nil {
			c.Default = c.Minimax
		}
	}

	return c
}

// Synthesize implements types.SpeechSynthesizer, routing to the
// provider that owns the requested voice.
func (c *CompositeSynthesizer) Synthesize(ctx context.Context, text, voice, contextPrompt string) (types.SpeechResult, error) {
	entry, ok := ResolveVoice(voice)
	if !ok {
		// Tolerate near-miss voice ids instead of failing outright.
		if suggestion, distance := SuggestVoice(voice); distance >= 0 && distance <= maxVoiceSuggestDistance {
			log.GetLogger().Info("routing near-miss voice id to closest catalog entry",
				zap.String("voice", voice),
				zap.String("matched", suggestion.Id),
				zap.Int("distance", distance))
			entry = suggestion
			voice = suggestion.Id
			ok = true
		}
	}

	if ok {
		if provider := c.providerFor(entry.Provider); provider != nil {
			return provider.Synthesize(ctx, text, voice, contextPrompt)
		}
	}

	if c.Default == nil {
		return types.SpeechResult{}, errors.New("tts: no synthesis provider configured")
	}

	log.GetLogger().Info("routing to default synthesis provider", zap.String("voice", voice))
	return c.Default.Synthesize(ctx, text, voice, contextPrompt)
}

func (c *CompositeSynthesizer) providerFor(name string) types.SpeechSynthesizer {
	switch name {
	case "openai":
		if c.Openai != nil {
			return c.Openai
		}
	case "minimax":
		if c.Minimax != nil {
			return c.Minimax
		}
	}
	return nil
}
