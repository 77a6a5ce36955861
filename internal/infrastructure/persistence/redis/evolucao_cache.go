package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evolucao-hub/evolucao-academica/internal/domain/evolucao"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/historico"
	"github.com/evolucao-hub/evolucao-academica/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVOLUTION REPORT CACHE
// ══════════════════════════════════════════════════════════════════════════════

// EvolucaoCache caches computed evolution reports keyed by student and
// curriculum. Satisfies the application layer's cache port.
type EvolucaoCache struct {
	cache *Cache
	ttl   time.Duration
}

// NewEvolucaoCache creates a new EvolucaoCache with the given TTL.
func NewEvolucaoCache(cache *Cache, ttl time.Duration) *EvolucaoCache {
	return &EvolucaoCache{cache: cache, ttl: ttl}
}

func chaveEvolucao(nusp historico.NUSP, curriculoID string) string {
	return fmt.Sprintf("%s%s:%s", PrefixEvolucao, nusp, curriculoID)
}

// Get returns the cached report, or shared.ErrNotFound on a miss.
func (ec *EvolucaoCache) Get(ctx context.Context, nusp historico.NUSP, curriculoID string) (*evolucao.Evolucao, error) {
	var ev evolucao.Evolucao
	err := ec.cache.Get(ctx, chaveEvolucao(nusp, curriculoID), &ev)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

// Set stores the report with the configured TTL.
func (ec *EvolucaoCache) Set(ctx context.Context, ev *evolucao.Evolucao) error {
	return ec.cache.Set(ctx, chaveEvolucao(ev.NUSP, ev.CurriculoID), ev, ec.ttl)
}

// Invalidate removes every cached report for a curriculum. Called when the
// curriculum or its rule tables change.
func (ec *EvolucaoCache) Invalidate(ctx context.Context, curriculoID string) error {
	return ec.cache.DeleteByPattern(ctx, PrefixEvolucao+"*:"+curriculoID)
}
