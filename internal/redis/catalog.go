package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"corporate/internal/domain"
)

// catalogKey holds the serialized service-tier catalog.
const catalogKey = "cache:service_types"

// CatalogTTL bounds how stale the cached catalog can get. The catalog is
// seeded once and effectively immutable, so a generous TTL is fine.
const CatalogTTL = 5 * time.Minute

// CatalogStore caches the service-tier catalog in Redis so quotation
// requests do not hit PostgreSQL for a read-only three-row table.
type CatalogStore struct {
	client *redis.Client
}

// NewCatalogStore creates a new CatalogStore.
func NewCatalogStore(client *redis.Client) *CatalogStore {
	return &CatalogStore{client: client}
}

// Get retrieves the cached catalog. A cache miss returns nil, nil.
func (s *CatalogStore) Get(ctx context.Context) ([]domain.ServiceType, error) {
	data, err := s.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var types []domain.ServiceType
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// Set stores the catalog in cache.
func (s *CatalogStore) Set(ctx context.Context, types []domain.ServiceType) error {
	data, err := json.Marshal(types)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, catalogKey, data, CatalogTTL).Err()
}
