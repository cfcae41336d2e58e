package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// SolverCache специализированный кэш для результатов решателя.
// Ключом служит дайджест канонического представления задачи плюс правило
// выбора входящей дуги.
type SolverCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSolveResult кэшированный результат решения
type CachedSolveResult struct {
	Status     string            `json:"status"`
	TotalCost  int64             `json:"total_cost"`
	Pivots     int               `json:"pivots"`
	Flows      []CachedArcFlow   `json:"flows,omitempty"`
	Potentials []CachedPotential `json:"potentials,omitempty"`
	ComputedAt time.Time         `json:"computed_at"`
}

// CachedArcFlow поток на дуге
type CachedArcFlow struct {
	Arc  int   `json:"arc"`
	Flow int64 `json:"flow"`
}

// CachedPotential потенциал узла
type CachedPotential struct {
	Node      int   `json:"node"`
	Potential int64 `json:"potential"`
}

// NewSolverCache создаёт кэш для результатов решателя
func NewSolverCache(cache Cache, defaultTTL time.Duration) *SolverCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SolverCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get получает кэшированный результат
func (sc *SolverCache) Get(ctx context.Context, problemHash, pivotRule string) (*CachedSolveResult, bool, error) {
	key := BuildSolveKey(problemHash, pivotRule)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Повреждённый кэш — удаляем, ошибку удаления игнорируем намеренно
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck // best effort cleanup
		return nil, false, nil
	}

	return &result, true, nil
}

// Set сохраняет результат в кэш
func (sc *SolverCache) Set(ctx context.Context, problemHash, pivotRule string, result *CachedSolveResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, BuildSolveKey(problemHash, pivotRule), data, ttl)
}

// Close закрывает нижележащий кэш
func (sc *SolverCache) Close() error {
	return sc.cache.Close()
}
