package conversation

import (
	"context"
	"errors"
	"testing"
)

func TestFallbackUsesPrimaryWhenHealthy(t *testing.T) {
	primary := &stubLLMClient{responses: []LLMResponse{{Text: "primary"}}}
	fallback := &stubLLMClient{responses: []LLMResponse{{Text: "fallback"}}}
	c := NewFallbackLLMClient(primary, fallback, "fallback-model", nil)

	resp, err := c.Complete(context.Background(), LLMRequest{Model: "primary-model"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Text != "primary" {
		t.Fatalf("text = %q", resp.Text)
	}
	if fallback.calls() != 0 {
		t.Fatalf("fallback was called %d times", fallback.calls())
	}
}

func TestFallbackRetriesWithSwappedModel(t *testing.T) {
	primary := &stubLLMClient{errs: []error{errors.New("throttled")}}
	fallback := &stubLLMClient{responses: []LLMResponse{{Text: "fallback"}}}
	c := NewFallbackLLMClient(primary, fallback, "fallback-model", nil)

	resp, err := c.Complete(context.Background(), LLMRequest{Model: "primary-model"})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if resp.Text != "fallback" {
		t.Fatalf("text = %q", resp.Text)
	}
	if got := fallback.lastRequest().Model; got != "fallback-model" {
		t.Fatalf("fallback model = %q", got)
	}
}

func TestFallbackWithoutFallbackPropagatesError(t *testing.T) {
	primary := &stubLLMClient{errs: []error{errors.New("throttled")}}
	c := NewFallbackLLMClient(primary, nil, "", nil)

	if _, err := c.Complete(context.Background(), LLMRequest{}); err == nil {
		t.Fatal("expected the primary error to surface")
	}
}

func TestFallbackBothFail(t *testing.T) {
	primary := &stubLLMClient{errs: []error{errors.New("primary down")}}
	fallback := &stubLLMClient{errs: []error{errors.New("fallback down")}}
	c := NewFallbackLLMClient(primary, fallback, "fallback-model", nil)

	_, err := c.Complete(context.Background(), LLMRequest{})
	if err == nil || err.Error() != "fallback down" {
		t.Fatalf("expected the fallback error, got %v", err)
	}
}
