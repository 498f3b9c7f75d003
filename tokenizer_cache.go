// Copyright 2025 Antfly, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dropset

import (
	"sync/atomic"
	"time"

	"github.com/antflydb/dropset/lib/tokenize"
	"github.com/cespare/xxhash/v2"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// TokenizeCacheTTL is the default TTL for cached tokenizations.
const TokenizeCacheTTL = 2 * time.Minute

// CachedTokenizer wraps a tokenizer with caching. Answer texts and short
// questions repeat constantly across a dataset ("1", "2", "touchdown"), so
// the cache saves a large share of the tokenization work under parallel
// workers. Safe for concurrent use.
type CachedTokenizer struct {
	inner  tokenize.Tokenizer
	cache  *ttlcache.Cache[uint64, []string]
	sf     *singleflight.Group
	logger *zap.Logger

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCachedTokenizer wraps inner with a TTL cache.
func NewCachedTokenizer(inner tokenize.Tokenizer, ttl time.Duration, logger *zap.Logger) *CachedTokenizer {
	if ttl <= 0 {
		ttl = TokenizeCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cache := ttlcache.New(
		ttlcache.WithTTL[uint64, []string](ttl),
	)
	go cache.Start()

	return &CachedTokenizer{
		inner:  inner,
		cache:  cache,
		sf:     &singleflight.Group{},
		logger: logger,
	}
}

// Tokenize returns the cached token sequence for text, computing it once for
// concurrent identical requests.
func (c *CachedTokenizer) Tokenize(text string) []string {
	key := xxhash.Sum64String(text)

	if item := c.cache.Get(key); item != nil {
		c.hits.Add(1)
		RecordCacheHit("tokenize")
		return item.Value()
	}

	// Singleflight keyed by the text itself so a hash collision cannot merge
	// two different texts.
	tokens, _, _ := c.sf.Do(text, func() (any, error) {
		c.misses.Add(1)
		RecordCacheMiss("tokenize")

		result := c.inner.Tokenize(text)
		c.cache.Set(key, result, ttlcache.DefaultTTL)
		return result, nil
	})
	return tokens.([]string)
}

// Stats returns hit/miss counts for logging.
func (c *CachedTokenizer) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Close stops the cache's expiry loop.
func (c *CachedTokenizer) Close() {
	hits, misses := c.Stats()
	if hits > 0 || misses > 0 {
		c.logger.Debug("Tokenization cache stats",
			zap.Uint64("hits", hits),
			zap.Uint64("misses", misses),
			zap.Int("items", c.cache.Len()))
	}
	c.cache.Stop()
}
