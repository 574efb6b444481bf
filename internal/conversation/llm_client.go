package conversation

import (
	"context"
	"time"
)

const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is a single conversational turn. Source is only set on user
// turns and records the channel the message arrived through.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Source    string    `json:"source,omitempty"`
}

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// ToolParam describes one parameter of a callable tool.
type ToolParam struct {
	Type        string
	Description string
	Enum        []string
}

// ToolDefinition is a JSON-schema style declaration of a tool the model may
// call instead of answering in plain text.
type ToolDefinition struct {
	Name        string
	Description string
	Params      map[string]ToolParam
	Required    []string
}

// ToolCall is a model-issued request to run a named tool with arguments.
type ToolCall struct {
	Name string
	Args map[string]any
}

type LLMRequest struct {
	Model       string
	System      []string
	Messages    []ChatMessage
	Tools       []ToolDefinition
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

// LLMResponse carries either plain text or a set of requested tool calls.
// When ToolCalls is non-empty the turn must be resolved by the dispatcher
// before anything is shown to the patient.
type LLMResponse struct {
	Text       string
	ToolCalls  []ToolCall
	Usage      TokenUsage
	StopReason string
}

type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}
