package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"ai-helpdesk-be/internal/constant"
	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/pkg/embedding"
	"ai-helpdesk-be/pkg/guard"
	"ai-helpdesk-be/pkg/llm"
	"ai-helpdesk-be/pkg/vectorstore"
)

const snippetLen = 200

// IRagService answers questions over the loaded docs corpus.
type IRagService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
}

type ragService struct {
	store       vectorstore.Store
	embedder    embedding.EmbeddingProvider
	llmProvider llm.LLMProvider
	denylist    *guard.Denylist
	logger      logger.ILogger
	defaultK    int
}

func NewRagService(
	store vectorstore.Store,
	embedder embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	denylist *guard.Denylist,
	log logger.ILogger,
	defaultK int,
) IRagService {
	if defaultK < 1 {
		defaultK = 5
	}
	return &ragService{
		store:       store,
		embedder:    embedder,
		llmProvider: llmProvider,
		denylist:    denylist,
		logger:      log,
		defaultK:    defaultK,
	}
}

// Ask runs the full retrieval pipeline: denylist gate, query embedding,
// top-k search, then a context-grounded completion. The gate runs before any
// model call so denylisted questions cost zero API requests.
func (s *ragService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	if s.denylist.Blocked(request.Question) {
		s.logger.Warn("rag", "question blocked by denylist", nil)
		return &dto.AskResponse{
			Answer:    constant.RagRefusalMessage,
			Citations: []string{},
			Refused:   true,
		}, nil
	}

	k := request.K
	if k == 0 {
		k = s.defaultK
	}

	queryResp, err := s.embedder.Generate(request.Question, embedding.TaskRetrievalQuery)
	if err != nil {
		s.logger.Error("rag", "query embedding failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: embedding: %v", ErrUpstream, err)
	}

	hits, err := s.store.Search(ctx, queryResp.Embedding.Values, k)
	if err != nil {
		s.logger.Error("rag", "vector search failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: search: %v", ErrUpstream, err)
	}

	answer, err := s.generate(ctx, hits, request.Question)
	if err != nil {
		s.logger.Error("rag", "generation failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: generation: %v", ErrUpstream, err)
	}

	resp := &dto.AskResponse{
		Answer:    answer,
		Citations: citations(hits),
	}
	for _, h := range hits {
		resp.Hits = append(resp.Hits, dto.RetrievedHit{
			DocID:   h.Document.ID,
			Score:   h.Score,
			Snippet: snippet(h.Document.Text),
		})
	}

	s.logger.Info("rag", "question answered", map[string]interface{}{
		"k":         k,
		"hits":      len(hits),
		"citations": resp.Citations,
	})
	return resp, nil
}

// generate concatenates the retrieved texts in rank order (blank-line
// separated) and asks the chat model for a grounded answer.
func (s *ragService) generate(ctx context.Context, hits []vectorstore.Hit, question string) (string, error) {
	texts := make([]string, 0, len(hits))
	for _, h := range hits {
		texts = append(texts, h.Document.Text)
	}
	contextBlock := strings.Join(texts, "\n\n")

	messages := []llm.Message{
		{Role: "system", Content: constant.RagSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Context:\n%s\n\nQuestion:\n%s", contextBlock, question)},
	}
	return s.llmProvider.Chat(ctx, messages, llm.WithMaxTokens(200))
}

// citations returns the unique document ids among the hits, preserving rank
// order so the strongest source is listed first.
func citations(hits []vectorstore.Hit) []string {
	seen := make(map[string]struct{}, len(hits))
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.Document.ID]; ok {
			continue
		}
		seen[h.Document.ID] = struct{}{}
		out = append(out, h.Document.ID)
	}
	return out
}

func snippet(text string) string {
	if len(text) <= snippetLen {
		return text
	}
	// Back up to a rune boundary so the cut never splits a multibyte
	// character.
	n := snippetLen
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	return text[:n] + "..."
}
