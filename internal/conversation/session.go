package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// FallbackReply is shown whenever the external model cannot be reached. The
// error never surfaces to the patient; the conversation simply continues.
const FallbackReply = "Lo siento, tuve un problema de conexión. ¿Podrías repetir eso?"

var (
	// ErrEmptyMessage is returned for blank user input
	ErrEmptyMessage = errors.New("conversation: message is empty")

	// ErrSendInFlight is returned when a send overlaps an outstanding one.
	// The session allows at most one in-flight turn; callers are expected to
	// disable input while a request is outstanding.
	ErrSendInFlight = errors.New("conversation: a send is already in flight")
)

// Turn result kinds.
const (
	TurnText      = "text"
	TurnToolCalls = "toolCalls"
)

// TurnResult is the outcome of forwarding one user turn to the model: either
// plain assistant text or a set of tool calls to dispatch.
type TurnResult struct {
	Kind      string
	Text      string
	ToolCalls []ToolCall
}

// Session wraps one ongoing exchange with the model, preserving context
// across turns. History lives only as long as the session; nothing here is
// persisted.
type Session struct {
	id     string
	llm    LLMClient
	model  string
	system string
	tools  []ToolDefinition
	now    func() time.Time

	sendMu sync.Mutex // serializes turns; TryLock rejects overlapping sends

	mu      sync.RWMutex
	turns   []ChatMessage // model context, includes synthetic system-authored notes
	visible []ChatMessage // what the patient sees
}

// NewSession creates a session configured with the fixed system instruction
// and tool set. An optional greeting is shown to the patient without being
// part of the model context.
func NewSession(id string, llm LLMClient, model, system string, tools []ToolDefinition, greeting string) *Session {
	if llm == nil {
		panic("conversation: llm client cannot be nil")
	}
	s := &Session{
		id:     id,
		llm:    llm,
		model:  model,
		system: system,
		tools:  tools,
		now:    time.Now,
	}
	if greeting != "" {
		s.visible = append(s.visible, ChatMessage{
			Role:      ChatRoleAssistant,
			Content:   greeting,
			Timestamp: s.now().UTC(),
		})
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Send forwards one user turn to the model. The channel tag is prepended as
// a structured annotation so the model can adapt its tone. Transport and
// model failures are swallowed: the patient gets the fixed fallback line and
// the conversation stays usable.
func (s *Session) Send(ctx context.Context, text, channel string) (TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return TurnResult{}, ErrEmptyMessage
	}
	if !s.sendMu.TryLock() {
		return TurnResult{}, ErrSendInFlight
	}
	defer s.sendMu.Unlock()

	s.append(
		ChatMessage{Role: ChatRoleUser, Content: text, Timestamp: s.now().UTC(), Source: channel},
		ChatMessage{Role: ChatRoleUser, Content: fmt.Sprintf("[Canal: %s] El paciente dice: %s", channel, text)},
	)

	resp, err := s.complete(ctx)
	if err != nil {
		// Drop the turn from the model context so the next send does not
		// replay two consecutive user messages.
		s.popTurn()
		return TurnResult{Kind: TurnText, Text: s.fallback()}, nil
	}

	if len(resp.ToolCalls) > 0 {
		// Record the tool request as an assistant turn. Converse-style APIs
		// reject histories where two user messages follow each other, and the
		// synthetic notes that resolve the calls arrive with the user role.
		names := make([]string, 0, len(resp.ToolCalls))
		for _, call := range resp.ToolCalls {
			names = append(names, call.Name)
		}
		s.appendTurn(ChatMessage{
			Role:    ChatRoleAssistant,
			Content: fmt.Sprintf("[Acción solicitada: %s]", strings.Join(names, ", ")),
		})
		return TurnResult{Kind: TurnToolCalls, ToolCalls: resp.ToolCalls}, nil
	}

	s.append(
		ChatMessage{Role: ChatRoleAssistant, Content: resp.Text, Timestamp: s.now().UTC()},
		ChatMessage{Role: ChatRoleAssistant, Content: resp.Text},
	)
	return TurnResult{Kind: TurnText, Text: resp.Text}, nil
}

// sendSystem feeds a synthetic system-authored note into the exchange so the
// model can phrase the outcome naturally to the patient. The note itself is
// never shown; the resulting assistant text is.
func (s *Session) sendSystem(ctx context.Context, note string) string {
	s.appendTurn(ChatMessage{Role: ChatRoleUser, Content: note})

	resp, err := s.complete(ctx)
	if err != nil || len(resp.ToolCalls) > 0 || strings.TrimSpace(resp.Text) == "" {
		s.popTurn()
		return s.fallback()
	}

	s.append(
		ChatMessage{Role: ChatRoleAssistant, Content: resp.Text, Timestamp: s.now().UTC()},
		ChatMessage{Role: ChatRoleAssistant, Content: resp.Text},
	)
	return resp.Text
}

func (s *Session) complete(ctx context.Context) (LLMResponse, error) {
	s.mu.RLock()
	msgs := make([]ChatMessage, len(s.turns))
	copy(msgs, s.turns)
	s.mu.RUnlock()

	return s.llm.Complete(ctx, LLMRequest{
		Model:       s.model,
		System:      []string{s.system},
		Messages:    msgs,
		Tools:       s.tools,
		Temperature: -1,
	})
}

// fallback appends the apology line to the visible history and returns it.
func (s *Session) fallback() string {
	s.mu.Lock()
	s.visible = append(s.visible, ChatMessage{
		Role:      ChatRoleAssistant,
		Content:   FallbackReply,
		Timestamp: s.now().UTC(),
	})
	s.mu.Unlock()
	return FallbackReply
}

func (s *Session) append(visible, turn ChatMessage) {
	s.mu.Lock()
	s.visible = append(s.visible, visible)
	s.turns = append(s.turns, turn)
	s.mu.Unlock()
}

func (s *Session) appendTurn(turn ChatMessage) {
	s.mu.Lock()
	s.turns = append(s.turns, turn)
	s.mu.Unlock()
}

// popTurn discards the most recent model-context turn.
func (s *Session) popTurn() {
	s.mu.Lock()
	if n := len(s.turns); n > 0 {
		s.turns = s.turns[:n-1]
	}
	s.mu.Unlock()
}

// History returns a copy of the visible chat history.
func (s *Session) History() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.visible))
	copy(out, s.visible)
	return out
}

// HistorySince returns the visible messages appended after index n.
func (s *Session) HistorySince(n int) []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n >= len(s.visible) {
		return nil
	}
	out := make([]ChatMessage, len(s.visible)-n)
	copy(out, s.visible[n:])
	return out
}

// VisibleLen returns the current visible history length.
func (s *Session) VisibleLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visible)
}
