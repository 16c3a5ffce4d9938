package embedding

import (
	"github.com/patrickmn/go-cache"
)

// CachedProvider decorates an EmbeddingProvider with an in-process cache.
// Embeddings are deterministic per model version, so a cache hit is always
// valid for the process lifetime. Keeps repeated queries (and rebuild runs)
// from paying the hosted-API round trip twice.
type CachedProvider struct {
	inner EmbeddingProvider
	cache *cache.Cache
}

func NewCachedProvider(inner EmbeddingProvider) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	key := taskType + "\x00" + text
	if x, found := p.cache.Get(key); found {
		return x.(*EmbeddingResponse), nil
	}

	resp, err := p.inner.Generate(text, taskType)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, resp, cache.DefaultExpiration)
	return resp, nil
}

// Len returns the number of cached embeddings.
func (p *CachedProvider) Len() int {
	return p.cache.ItemCount()
}
