// Package mocks provides mock implementations of core interfaces for testing.
package mocks

import (
	"context"

	"videoflow/internal/types"

	"github.com/stretchr/testify/mock"
)

// MockChatCompleter is a mock implementation of types.ChatCompleter
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

// MockSpeechSynthesizer is a mock implementation of types.SpeechSynthesizer
type MockSpeechSynthesizer struct {
	mock.Mock
}

func (m *MockSpeechSynthesizer) Synthesize(ctx context.Context, text, voice, contextPrompt string) (types.SpeechResult, error) {
	args := m.Called(ctx, text, voice, contextPrompt)
	if args.Get(0) == nil {
		return types.SpeechResult{}, args.Error(1)
	}
	return args.Get(0).(types.SpeechResult), args.Error(1)
}
