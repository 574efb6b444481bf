package conversation

import (
	"context"
	"sync"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/observability/metrics"
	"github.com/drojedanicolas-commits/drojedanicolas/pkg/logging"
)

// DefaultGreeting opens every new patient session.
const DefaultGreeting = "¡Hola! 👨‍⚕️ Soy la asistente del Dr. Rodríguez. ¿En qué puedo ayudarte hoy? ¿Buscabas un turno para Traumatología o Posturología?"

// Service owns the session registry and drives the full
// send → dispatch → follow-up loop for each patient turn.
type Service struct {
	llm        LLMClient
	model      string
	system     string
	tools      []ToolDefinition
	greeting   string
	dispatcher *Dispatcher
	metrics    *metrics.ConversationMetrics
	logger     *logging.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures the service.
type Option func(*Service)

// WithGreeting overrides the opening assistant message for new sessions.
func WithGreeting(greeting string) Option {
	return func(s *Service) { s.greeting = greeting }
}

// WithMetrics attaches conversation metrics.
func WithMetrics(m *metrics.ConversationMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the conversational booking service.
func NewService(llm LLMClient, model, system string, tools []ToolDefinition, dispatcher *Dispatcher, logger *logging.Logger, opts ...Option) *Service {
	if llm == nil {
		panic("conversation: llm client cannot be nil")
	}
	if dispatcher == nil {
		panic("conversation: dispatcher cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		llm:        llm,
		model:      model,
		system:     system,
		tools:      tools,
		greeting:   DefaultGreeting,
		dispatcher: dispatcher,
		logger:     logger,
		sessions:   make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessMessage forwards one user turn for the given session and returns the
// assistant messages it produced, in order. Tool calls are dispatched
// sequentially, each yielding its own follow-up assistant turn.
func (s *Service) ProcessMessage(ctx context.Context, sessionID, text, channel string) ([]ChatMessage, error) {
	sess := s.session(sessionID)
	mark := sess.VisibleLen()

	res, err := sess.Send(ctx, text, channel)
	if err != nil {
		return nil, err
	}

	switch res.Kind {
	case TurnToolCalls:
		s.metrics.ObserveTurn(channel, "tool_calls")
		for _, call := range res.ToolCalls {
			s.dispatcher.Dispatch(ctx, sess, call, channel)
		}
	default:
		result := "text"
		if res.Text == FallbackReply {
			result = "fallback"
		}
		s.metrics.ObserveTurn(channel, result)
	}

	return sess.HistorySince(mark), nil
}

// History returns the visible chat history for a session, including the
// greeting. Unknown session ids yield an empty history.
func (s *Service) History(sessionID string) []ChatMessage {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return sess.History()
}

// EndSession discards a session and its history.
func (s *Service) EndSession(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// session returns the existing session or creates one with the configured
// system instruction, tool set and greeting.
func (s *Service) session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := NewSession(id, s.llm, s.model, s.system, s.tools, s.greeting)
	s.sessions[id] = sess
	s.logger.Debug("conversation: session created", "session_id", id)
	return sess
}
