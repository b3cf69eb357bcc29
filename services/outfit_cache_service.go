// services/outfit_cache_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// Generated suggestions stay valid for a short window only, ratings and
// wardrobe edits roll the key over before the TTL matters.
const outfitCacheTTL = 7 * time.Minute

// OutfitCacheKey builds the cache key for one generation run. Any change
// to the wardrobe or the taste profile yields a new key.
func OutfitCacheKey(userID uint, occasion string, wardrobeHash string, tasteVersion int) string {
	return fmt.Sprintf("outfit:%d:%s:%s:%d", userID, occasion, wardrobeHash, tasteVersion)
}

type OutfitCacheServiceProvider interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, payload string) error
}

// OutfitCacheService keeps serialized generation results in an in-process
// Ristretto cache behind eko/gocache.
type OutfitCacheService struct {
	cache *cache.Cache[string]
}

func NewOutfitCacheService() (*OutfitCacheService, error) {
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e6,
		MaxCost:     1 << 26, // 64MB
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}

	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)
	fmt.Println("Initialized OutfitCacheService with Ristretto cache!")
	return &OutfitCacheService{
		cache: cache.New[string](ristrettoStore),
	}, nil
}

func (s *OutfitCacheService) Get(ctx context.Context, key string) (string, bool) {
	payload, err := s.cache.Get(ctx, key)
	if err != nil || payload == "" {
		return "", false
	}
	return payload, true
}

func (s *OutfitCacheService) Set(ctx context.Context, key string, payload string) error {
	return s.cache.Set(ctx, key, payload, store.WithExpiration(outfitCacheTTL))
}
