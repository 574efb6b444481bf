package conversation

import (
	"context"
	"time"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/observability/metrics"
)

// InstrumentedLLMClient records round-trip latency under the provider that
// actually served the request. Wrapping each provider before chaining them
// keeps the labels honest when the fallback engages.
type InstrumentedLLMClient struct {
	inner    LLMClient
	provider string
	metrics  *metrics.ConversationMetrics
}

// NewInstrumentedLLMClient wraps an LLM client with latency metrics.
func NewInstrumentedLLMClient(inner LLMClient, provider string, m *metrics.ConversationMetrics) *InstrumentedLLMClient {
	if inner == nil {
		panic("conversation: inner LLM client cannot be nil")
	}
	return &InstrumentedLLMClient{inner: inner, provider: provider, metrics: m}
}

func (c *InstrumentedLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	start := time.Now()
	resp, err := c.inner.Complete(ctx, req)
	c.metrics.ObserveLLMLatency(c.provider, time.Since(start).Seconds())
	return resp, err
}
