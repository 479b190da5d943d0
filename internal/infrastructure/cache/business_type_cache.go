package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/catalog"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	keyActiveBusinessTypes = "business_types:active"
	keyAllBusinessTypes    = "business_types:all"
)

// BusinessTypeCacheConfig configures the business type L1 cache
type BusinessTypeCacheConfig struct {
	TTL     time.Duration
	MaxCost int64
}

// CachedBusinessTypeRepository decorates a BusinessTypeRepository with an
// in-process ristretto cache for the list queries. Concurrent misses for the
// same list share one database load. Every write drops the cached lists.
type CachedBusinessTypeRepository struct {
	catalog.BusinessTypeRepository
	lists  *ristretto.Cache[string, []catalog.BusinessType]
	ttl    time.Duration
	group  singleflight.Group
	logger *zap.Logger
}

// NewCachedBusinessTypeRepository wraps inner with a cache
func NewCachedBusinessTypeRepository(inner catalog.BusinessTypeRepository, cfg BusinessTypeCacheConfig, logger *zap.Logger) (*CachedBusinessTypeRepository, error) {
	if cfg.MaxCost <= 0 {
		cfg.MaxCost = 8 << 20
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	lists, err := ristretto.NewCache(&ristretto.Config[string, []catalog.BusinessType]{
		NumCounters: 1000,
		MaxCost:     cfg.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create business type cache: %w", err)
	}
	return &CachedBusinessTypeRepository{
		BusinessTypeRepository: inner,
		lists:                  lists,
		ttl:                    cfg.TTL,
		logger:                 logger,
	}, nil
}

// FindAll serves the list from cache when possible
func (r *CachedBusinessTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]catalog.BusinessType, error) {
	key := keyAllBusinessTypes
	if activeOnly {
		key = keyActiveBusinessTypes
	}
	if cached, ok := r.lists.Get(key); ok {
		return cloneBusinessTypes(cached), nil
	}

	v, err, shared := r.group.Do(key, func() (any, error) {
		list, err := r.BusinessTypeRepository.FindAll(ctx, activeOnly)
		if err != nil {
			return nil, err
		}
		r.lists.SetWithTTL(key, list, businessTypeCost(list), r.ttl)
		r.lists.Wait()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.logger.Debug("business type load shared", zap.String("key", key))
	}
	return cloneBusinessTypes(v.([]catalog.BusinessType)), nil
}

// Save writes through and invalidates
func (r *CachedBusinessTypeRepository) Save(ctx context.Context, bt *catalog.BusinessType) error {
	defer r.Invalidate()
	return r.BusinessTypeRepository.Save(ctx, bt)
}

// Reorder writes through and invalidates
func (r *CachedBusinessTypeRepository) Reorder(ctx context.Context, ids []uuid.UUID) error {
	defer r.Invalidate()
	return r.BusinessTypeRepository.Reorder(ctx, ids)
}

// SetActive writes through and invalidates
func (r *CachedBusinessTypeRepository) SetActive(ctx context.Context, ids []uuid.UUID, active bool) (int64, error) {
	defer r.Invalidate()
	return r.BusinessTypeRepository.SetActive(ctx, ids, active)
}

// Invalidate drops every cached list
func (r *CachedBusinessTypeRepository) Invalidate() {
	r.lists.Del(keyActiveBusinessTypes)
	r.lists.Del(keyAllBusinessTypes)
}

// Close releases the cache's goroutines
func (r *CachedBusinessTypeRepository) Close() {
	r.lists.Close()
}

// cost approximates the memory held by a list
func businessTypeCost(list []catalog.BusinessType) int64 {
	cost := int64(64)
	for _, bt := range list {
		cost += int64(128 + len(bt.Name) + len(bt.DisplayName) + len(bt.Description) + len(bt.Icon) + len(bt.Color))
	}
	return cost
}

// callers may mutate what they get back
func cloneBusinessTypes(list []catalog.BusinessType) []catalog.BusinessType {
	out := make([]catalog.BusinessType, len(list))
	copy(out, list)
	return out
}

var _ catalog.BusinessTypeRepository = (*CachedBusinessTypeRepository)(nil)
