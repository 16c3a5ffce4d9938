package service

import (
	"context"
	"fmt"

	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/llm"
	"ai-helpdesk-be/pkg/vectorstore"

	"github.com/ThreeDotsLabs/watermill/message"
)

// noopLogger satisfies logger.ILogger without producing output.
type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

// stubLLM replays a canned response and records what it was asked.
type stubLLM struct {
	response string
	err      error
	calls    int
	history  []llm.Message
	options  llm.Options
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.calls++
	s.history = history
	s.options = llm.Options{}
	for _, opt := range options {
		opt(&s.options)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// stubEmbedder hashes nothing: every text maps to the same fixed vector.
type stubEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (s *stubEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: s.vector},
	}, nil
}

// stubStore returns preset hits and records the requested k.
type stubStore struct {
	hits  []vectorstore.Hit
	err   error
	lastK int
}

func (s *stubStore) Build(ctx context.Context, docs []vectorstore.Document, embedder embedding.EmbeddingProvider) error {
	return nil
}

func (s *stubStore) Search(ctx context.Context, vector []float32, k int) ([]vectorstore.Hit, error) {
	s.lastK = k
	if s.err != nil {
		return nil, s.err
	}
	return s.hits, nil
}

// capturingPublisher collects published messages per topic.
type capturingPublisher struct {
	published map[string][]*message.Message
	err       error
}

func newCapturingPublisher() *capturingPublisher {
	return &capturingPublisher{published: make(map[string][]*message.Message)}
}

func (p *capturingPublisher) Publish(topic string, messages ...*message.Message) error {
	if p.err != nil {
		return p.err
	}
	p.published[topic] = append(p.published[topic], messages...)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

var errStub = fmt.Errorf("stub failure")
