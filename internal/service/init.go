package service

import (
	"videoflow/config"
	"videoflow/internal/audio"
	"videoflow/internal/types"
	"videoflow/pkg/openai"
	"videoflow/pkg/tts"
)

type Service struct {
	ChatCompleter types.ChatCompleter
	TtsClient     types.SpeechSynthesizer
	Mixer         *audio.Mixer
}

func NewService() *Service {
	chatCompleter := openai.NewClient(config.Conf.Llm.BaseUrl, config.Conf.Llm.ApiKey, config.Conf.App.Proxy)

	// Composite TTS client routes voices to their providers dynamically
	ttsClient := tts.NewCompositeSynthesizer()

	return &Service{
		ChatCompleter: chatCompleter,
		TtsClient:     ttsClient,
		Mixer:         audio.NewMixer(chatCompleter, ttsClient),
	}
}
