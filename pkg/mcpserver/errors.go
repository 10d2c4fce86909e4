package mcpserver

import (
	"errors"
	"fmt"
)

// ToolError represents a tool execution error that should be returned to the
// client as part of the CallToolResult with IsError: true. This allows LLMs
// to see the error and potentially retry or self-correct.
//
// Translated grid diagnostics set Message only; the category is implicit in
// the phrasing. Code is reserved for machine-checkable failures such as
// argument validation.
type ToolError struct {
	Message string
	Code    string
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

// NewToolError creates a new tool error with the given message
func NewToolError(message string) *ToolError {
	return &ToolError{Message: message}
}

// ValidationError is a convenience function for creating validation tool errors
func ValidationError(message string) *ToolError {
	return &ToolError{Message: message, Code: "VALIDATION_ERROR"}
}

// Sentinel errors for configuration validation
var (
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrEmptyVersion  = errors.New("version cannot be empty")
	ErrEmptyToolName = errors.New("tool name cannot be empty")
	ErrNilSchema     = errors.New("schema cannot be nil")
	ErrNilServer     = errors.New("server cannot be nil")
	ErrNilGrid       = errors.New("grid client cannot be nil")
	ErrNilLogger     = errors.New("logger cannot be nil")
	ErrInvalidJSON   = errors.New("tool returned invalid JSON")
)
