package kb

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 512

// CachedMatcher memoises Match results by normalised label. Results are
// identical to the wrapped catalog's; the cache only saves the alias scan for
// labels the classifier repeats.
type CachedMatcher struct {
	cat   *Catalog
	cache *lru.Cache[string, MatchResult]
}

// NewCachedMatcher wraps cat with an LRU of the given size (512 if size <= 0).
func NewCachedMatcher(cat *Catalog, size int) (*CachedMatcher, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, MatchResult](size)
	if err != nil {
		return nil, err
	}
	return &CachedMatcher{cat: cat, cache: cache}, nil
}

func (m *CachedMatcher) Match(label string) MatchResult {
	key := NormalizeLabel(label)
	if res, ok := m.cache.Get(key); ok {
		return res
	}
	res := m.cat.Match(label)
	m.cache.Add(key, res)
	return res
}

// Catalog returns the wrapped catalog.
func (m *CachedMatcher) Catalog() *Catalog { return m.cat }

// Len reports how many labels are currently memoised.
func (m *CachedMatcher) Len() int { return m.cache.Len() }
