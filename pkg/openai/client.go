package openai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"videoflow/internal/types"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultChatModel   = "gpt-4o-mini"
	defaultSpeechModel = "tts-1"

	// CreateSpeech with the pcm response format returns 24 kHz mono
	// 16-bit samples, which is exactly what the mixer expects.
	speechSampleRate = 24000
)

// Client wraps the OpenAI API for chat completion and speech synthesis.
type Client struct {
	client *openai.Client

	ChatModel   string
	SpeechModel string
}

func NewClient(baseUrl, apiKey, proxyAddr string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		cfg.BaseURL = baseUrl
	}

	transport := &http.Transport{}
	if proxyAddr != "" {
		if proxyUrl, err := url.Parse(proxyAddr); err == nil {
			transport.Proxy = http.ProxyURL(proxyUrl)
		}
	}

	// No client timeout: synthesis of long narration can run a while.
	cfg.HTTPClient = &http.Client{
		Transport: transport,
	}

	return &Client{
		client:      openai.NewClientWithConfig(cfg),
		ChatModel:   defaultChatModel,
		SpeechModel: defaultSpeechModel,
	}
}

// ChatCompletion implements types.ChatCompleter.
func (c *Client) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.ChatModel,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty chat completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Synthesize implements types.SpeechSynthesizer. The context prompt is
// accepted for prompt-aware providers but ignored here: tts-1 speaks
// its input verbatim, so only the narration text goes on the wire.
func (c *Client) Synthesize(ctx context.Context, text, voice, contextPrompt string) (types.SpeechResult, error) {
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(c.SpeechModel),
		Input:          text,
		Voice:          openai.SpeechVoice(strings.ToLower(voice)),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		return types.SpeechResult{}, err
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return types.SpeechResult{}, err
	}
	if len(pcm) == 0 {
		return types.SpeechResult{}, errors.New("openai: no audio data returned")
	}

	return types.SpeechResult{PCM: pcm, SampleRate: speechSampleRate}, nil
}
