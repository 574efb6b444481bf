package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

type bedrockConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockLLMClient implements LLMClient on the Bedrock Converse API, with
// tool declarations mapped to Converse tool specifications.
type BedrockLLMClient struct {
	api bedrockConverseAPI
}

func NewBedrockLLMClient(api bedrockConverseAPI) *BedrockLLMClient {
	if api == nil {
		panic("conversation: bedrock converse client cannot be nil")
	}
	return &BedrockLLMClient{api: api}
}

func (c *BedrockLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return LLMResponse{}, errors.New("conversation: bedrock model id is required")
	}

	systemBlocks := make([]brtypes.SystemContentBlock, 0, len(req.System))
	for _, block := range req.System {
		if strings.TrimSpace(block) == "" {
			continue
		}
		systemBlocks = append(systemBlocks, &brtypes.SystemContentBlockMemberText{Value: block})
	}

	messages := make([]brtypes.Message, 0, len(req.Messages))
	for _, msg := range req.Messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}

		switch msg.Role {
		case ChatRoleSystem:
			systemBlocks = append(systemBlocks, &brtypes.SystemContentBlockMemberText{Value: content})
			continue
		case ChatRoleUser:
			messages = append(messages, brtypes.Message{
				Role: brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: content},
				},
			})
		case ChatRoleAssistant:
			messages = append(messages, brtypes.Message{
				Role: brtypes.ConversationRoleAssistant,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberText{Value: content},
				},
			})
		default:
			return LLMResponse{}, fmt.Errorf("conversation: unsupported role %q", msg.Role)
		}
	}

	inference := &brtypes.InferenceConfiguration{}
	if req.MaxTokens > 0 {
		inference.MaxTokens = aws.Int32(req.MaxTokens)
	}
	// Allow callers to omit temperature by passing a negative value.
	if req.Temperature >= 0 {
		inference.Temperature = aws.Float32(req.Temperature)
	}
	if req.TopP != 0 {
		inference.TopP = aws.Float32(req.TopP)
	}
	if inference.MaxTokens == nil && inference.Temperature == nil && inference.TopP == nil {
		inference = nil
	}

	input := &bedrockruntime.ConverseInput{
		ModelId:         aws.String(req.Model),
		System:          systemBlocks,
		Messages:        messages,
		InferenceConfig: inference,
	}
	if len(req.Tools) > 0 {
		input.ToolConfig = &brtypes.ToolConfiguration{Tools: toBedrockTools(req.Tools)}
	}

	out, err := c.api.Converse(ctx, input)
	if err != nil {
		return LLMResponse{}, err
	}

	text, toolCalls, err := bedrockExtractOutput(out)
	if err != nil {
		return LLMResponse{}, err
	}

	resp := LLMResponse{
		Text:      strings.TrimSpace(text),
		ToolCalls: toolCalls,
	}
	if out.StopReason != "" {
		resp.StopReason = string(out.StopReason)
	}
	if out.Usage != nil {
		resp.Usage = TokenUsage{
			InputTokens:  int32OrZero(out.Usage.InputTokens),
			OutputTokens: int32OrZero(out.Usage.OutputTokens),
			TotalTokens:  int32OrZero(out.Usage.TotalTokens),
		}
	}
	return resp, nil
}

func toBedrockTools(tools []ToolDefinition) []brtypes.Tool {
	out := make([]brtypes.Tool, 0, len(tools))
	for _, tool := range tools {
		props := make(map[string]any, len(tool.Params))
		for name, param := range tool.Params {
			schema := map[string]any{"type": param.Type}
			if param.Description != "" {
				schema["description"] = param.Description
			}
			if len(param.Enum) > 0 {
				schema["enum"] = param.Enum
			}
			props[name] = schema
		}
		inputSchema := map[string]any{
			"type":       "object",
			"properties": props,
			"required":   tool.Required,
		}
		out = append(out, &brtypes.ToolMemberToolSpec{
			Value: brtypes.ToolSpecification{
				Name:        aws.String(tool.Name),
				Description: aws.String(tool.Description),
				InputSchema: &brtypes.ToolInputSchemaMemberJson{
					Value: document.NewLazyDocument(inputSchema),
				},
			},
		})
	}
	return out
}

func bedrockExtractOutput(out *bedrockruntime.ConverseOutput) (string, []ToolCall, error) {
	if out == nil {
		return "", nil, errors.New("conversation: bedrock response is nil")
	}
	msgOut, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", nil, errors.New("conversation: bedrock response did not include a message output")
	}
	if len(msgOut.Value.Content) == 0 {
		return "", nil, errors.New("conversation: bedrock response message was empty")
	}

	var builder strings.Builder
	var toolCalls []ToolCall
	for _, block := range msgOut.Value.Content {
		switch b := block.(type) {
		case *brtypes.ContentBlockMemberText:
			builder.WriteString(b.Value)
		case *brtypes.ContentBlockMemberToolUse:
			call := ToolCall{Name: aws.ToString(b.Value.Name)}
			if b.Value.Input != nil {
				// The smithy document decoder does not accept a plain map
				// target, so go through its JSON form.
				data, err := b.Value.Input.MarshalSmithyDocument()
				if err != nil {
					return "", nil, fmt.Errorf("conversation: failed to read tool input: %w", err)
				}
				var args map[string]any
				if err := json.Unmarshal(data, &args); err != nil {
					return "", nil, fmt.Errorf("conversation: failed to decode tool input: %w", err)
				}
				call.Args = args
			}
			toolCalls = append(toolCalls, call)
		}
	}

	outText := builder.String()
	if strings.TrimSpace(outText) == "" && len(toolCalls) == 0 {
		return "", nil, errors.New("conversation: bedrock response contained no usable content blocks")
	}
	return outText, toolCalls, nil
}

func int32OrZero(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
