package assist

import (
	"context"
	"log/slog"
	"sync"
)

// StubInvoker is a deterministic Invoker for tests. Reply is returned for
// every Generate call unless ReplyFunc is set; Err short-circuits both
// methods. Calls records every Generate invocation.
type StubInvoker struct {
	Reply     string
	ReplyFunc func(model Model, messages []*Message) (string, error)
	Vector    []float32
	Err       error

	mu    sync.Mutex
	Calls []StubCall
}

// StubCall captures one Generate invocation.
type StubCall struct {
	Model    Model
	Messages []*Message
	Config   *GenerateConfig
}

func (s *StubInvoker) Generate(ctx context.Context, model Model, messages []*Message, cfg *GenerateConfig) (string, error) {
	s.mu.Lock()
	s.Calls = append(s.Calls, StubCall{Model: model, Messages: messages, Config: cfg})
	s.mu.Unlock()

	if s.Err != nil {
		return "", s.Err
	}
	if s.ReplyFunc != nil {
		return s.ReplyFunc(model, messages)
	}
	return s.Reply, nil
}

func (s *StubInvoker) Embed(ctx context.Context, texts []string, taskType string) ([][]float32, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	vec := s.Vector
	if vec == nil {
		vec = []float32{0.1, 0.2, 0.3}
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = vec
	}
	return out, nil
}

// NewForTesting creates an Assistant wired to a stub invoker, without a
// real client.
func NewForTesting(stub *StubInvoker) *Assistant {
	if stub == nil {
		stub = &StubInvoker{Reply: "ok"}
	}
	return NewWithInvoker(stub, nil, slog.Default())
}
