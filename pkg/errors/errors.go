// Package errors provides structured error handling for the application.
// It defines AppError type with error codes for consistent API responses.
package errors

import (
	"errors"
	"fmt"
)

// Error codes organized by category
const (
	// General errors (1000-1099)
	CodeSuccess       = 0
	CodeUnknown       = 1000
	CodeInvalidParams = 1001
	CodeNotFound      = 1002
	CodeUnauthorized  = 1003

	// Script errors (1100-1199)
	CodeScriptEmpty   = 1100
	CodeRewriteFailed = 1101

	// Classification errors (1300-1399)
	CodeClassifyFailed   = 1300
	CodeLLMQuotaExceeded = 1301

	// Speech synthesis errors (1400-1449)
	CodeSynthesisFailed = 1400
	CodeVoiceNotFound   = 1401
	CodeTTSQuota        = 1402

	// Mixing errors (1450-1499)
	CodeMixRenderFailed = 1450
	CodeMixEncodeFailed = 1451

	// Storage errors (1500-1599)
	CodeDBError        = 1500
	CodeFileNotFound   = 1501
	CodeFileWriteError = 1502
)

// AppError represents a structured application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code int, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetail wraps an error with additional detail
func WrapWithDetail(code int, message string, detail string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Detail:  detail,
		Cause:   cause,
	}
}

// Is checks if the target error is an AppError with the specified code
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts error code from error, returns CodeUnknown if not AppError
func GetCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetMessage extracts message from error
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Predefined common errors
var (
	ErrInvalidParams = New(CodeInvalidParams, "Invalid parameters")
	ErrNotFound      = New(CodeNotFound, "Resource not found")
	ErrUnauthorized  = New(CodeUnauthorized, "Unauthorized")

	// Script
	ErrScriptEmpty   = New(CodeScriptEmpty, "Script is empty")
	ErrRewriteFailed = New(CodeRewriteFailed, "Script rewrite failed")

	// Classification
	ErrClassifyFailed   = New(CodeClassifyFailed, "Effect classification failed")
	ErrLLMQuotaExceeded = New(CodeLLMQuotaExceeded, "LLM quota exceeded")

	// Speech synthesis
	ErrSynthesisFailed = New(CodeSynthesisFailed, "Speech synthesis failed")
	ErrVoiceNotFound   = New(CodeVoiceNotFound, "Voice not found")

	// Mixing
	ErrMixRenderFailed = New(CodeMixRenderFailed, "Mix render failed")
	ErrMixEncodeFailed = New(CodeMixEncodeFailed, "Mix encode failed")

	// Storage
	ErrDBError      = New(CodeDBError, "Database error")
	ErrFileNotFound = New(CodeFileNotFound, "File not found")
)
