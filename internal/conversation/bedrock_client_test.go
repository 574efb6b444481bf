package conversation

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

type fakeConverseAPI struct {
	in  *bedrockruntime.ConverseInput
	out *bedrockruntime.ConverseOutput
	err error
}

func (f *fakeConverseAPI) Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.in = params
	return f.out, f.err
}

func textOutput(text string) *bedrockruntime.ConverseOutput {
	return &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{
			Value: brtypes.Message{
				Role:    brtypes.ConversationRoleAssistant,
				Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: text}},
			},
		},
		StopReason: brtypes.StopReasonEndTurn,
	}
}

func TestBedrockCompleteText(t *testing.T) {
	api := &fakeConverseAPI{out: textOutput("hola")}
	c := NewBedrockLLMClient(api)

	resp, err := c.Complete(context.Background(), LLMRequest{
		Model:       "model-id",
		System:      []string{"instrucción"},
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: "buenas"}},
		Temperature: -1,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Text != "hola" {
		t.Fatalf("text = %q", resp.Text)
	}
	if resp.StopReason != string(brtypes.StopReasonEndTurn) {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}

	if aws.ToString(api.in.ModelId) != "model-id" {
		t.Fatalf("model id = %q", aws.ToString(api.in.ModelId))
	}
	if len(api.in.System) != 1 || len(api.in.Messages) != 1 {
		t.Fatalf("system/messages = %d/%d", len(api.in.System), len(api.in.Messages))
	}
	// Negative temperature means "do not send inference config".
	if api.in.InferenceConfig != nil {
		t.Fatalf("unexpected inference config: %+v", api.in.InferenceConfig)
	}
}

func TestBedrockToolDeclarations(t *testing.T) {
	api := &fakeConverseAPI{out: textOutput("ok")}
	c := NewBedrockLLMClient(api)

	_, err := c.Complete(context.Background(), LLMRequest{
		Model:       "model-id",
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: "hola"}},
		Tools:       AppointmentTools(),
		Temperature: -1,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if api.in.ToolConfig == nil || len(api.in.ToolConfig.Tools) != 2 {
		t.Fatalf("tool config not forwarded: %+v", api.in.ToolConfig)
	}
	spec, ok := api.in.ToolConfig.Tools[0].(*brtypes.ToolMemberToolSpec)
	if !ok {
		t.Fatalf("unexpected tool type %T", api.in.ToolConfig.Tools[0])
	}
	if aws.ToString(spec.Value.Name) != ToolGetAvailableSlots {
		t.Fatalf("first tool = %q", aws.ToString(spec.Value.Name))
	}
}

func TestBedrockExtractToolUse(t *testing.T) {
	api := &fakeConverseAPI{out: &bedrockruntime.ConverseOutput{
		Output: &brtypes.ConverseOutputMemberMessage{
			Value: brtypes.Message{
				Role: brtypes.ConversationRoleAssistant,
				Content: []brtypes.ContentBlock{
					&brtypes.ContentBlockMemberToolUse{Value: brtypes.ToolUseBlock{
						ToolUseId: aws.String("t1"),
						Name:      aws.String(ToolBookAppointment),
						Input: document.NewLazyDocument(map[string]any{
							"patientName": "Juana Pérez",
							"date":        "2024-07-01",
						}),
					}},
				},
			},
		},
		StopReason: brtypes.StopReasonToolUse,
	}}
	c := NewBedrockLLMClient(api)

	resp, err := c.Complete(context.Background(), LLMRequest{
		Model:       "model-id",
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: "reservá"}},
		Temperature: -1,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("tool calls = %+v", resp.ToolCalls)
	}
	call := resp.ToolCalls[0]
	if call.Name != ToolBookAppointment {
		t.Fatalf("tool = %q", call.Name)
	}
	if call.Args["patientName"] != "Juana Pérez" {
		t.Fatalf("args = %+v", call.Args)
	}
}

func TestBedrockRejectsEmptyResponse(t *testing.T) {
	api := &fakeConverseAPI{out: &bedrockruntime.ConverseOutput{}}
	c := NewBedrockLLMClient(api)

	_, err := c.Complete(context.Background(), LLMRequest{
		Model:       "model-id",
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: "hola"}},
		Temperature: -1,
	})
	if err == nil {
		t.Fatal("expected an error for a response without message output")
	}
}
