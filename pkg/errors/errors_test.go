package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	// Test without cause
	err := New(CodeScriptEmpty, "Test error")
	assert.Equal(t, "[1100] Test error", err.Error())

	// Test with cause
	cause := errors.New("underlying error")
	errWithCause := Wrap(CodeScriptEmpty, "Test error", cause)
	assert.Contains(t, errWithCause.Error(), "underlying error")
	assert.Contains(t, errWithCause.Error(), "1100")
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(CodeSynthesisFailed, "Speech synthesis failed", cause)

	// Test Unwrap
	assert.Equal(t, cause, err.Unwrap())

	// Test errors.Is
	assert.True(t, errors.Is(err, cause))
}

func TestIs(t *testing.T) {
	err := New(CodeSynthesisFailed, "Speech synthesis failed")

	assert.True(t, Is(err, CodeSynthesisFailed))
	assert.False(t, Is(err, CodeMixRenderFailed))

	// Test with regular error
	regularErr := errors.New("regular error")
	assert.False(t, Is(regularErr, CodeSynthesisFailed))
}

func TestGetCode(t *testing.T) {
	// AppError
	appErr := New(CodeLLMQuotaExceeded, "Quota exceeded")
	assert.Equal(t, CodeLLMQuotaExceeded, GetCode(appErr))

	// Regular error returns CodeUnknown
	regularErr := errors.New("regular error")
	assert.Equal(t, CodeUnknown, GetCode(regularErr))
}

func TestGetMessage(t *testing.T) {
	// AppError
	appErr := New(CodeFileNotFound, "File not found")
	assert.Equal(t, "File not found", GetMessage(appErr))

	// Regular error returns error message
	regularErr := errors.New("regular error message")
	assert.Equal(t, "regular error message", GetMessage(regularErr))
}

func TestWrapWithDetail(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapWithDetail(CodeSynthesisFailed, "Synthesis failed", "voice: Aoede", cause)

	assert.Equal(t, CodeSynthesisFailed, err.Code)
	assert.Equal(t, "Synthesis failed", err.Message)
	assert.Equal(t, "voice: Aoede", err.Detail)
	assert.Equal(t, cause, err.Cause)
}

func TestPredefinedErrors(t *testing.T) {
	// Verify predefined errors have correct codes
	assert.Equal(t, CodeInvalidParams, ErrInvalidParams.Code)
	assert.Equal(t, CodeScriptEmpty, ErrScriptEmpty.Code)
	assert.Equal(t, CodeClassifyFailed, ErrClassifyFailed.Code)
	assert.Equal(t, CodeSynthesisFailed, ErrSynthesisFailed.Code)
	assert.Equal(t, CodeDBError, ErrDBError.Code)
}
