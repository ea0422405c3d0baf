package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/kvstore"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/metrics"
)

// Storage keys, one per entity family
const (
	KeyFertilizers          = "fertilizers"
	KeySeeds                = "seeds"
	KeyPackaging            = "packaging"
	KeyStorageLocations     = "storage_locations"
	KeyHarvests             = "harvests"
	KeySales                = "sales"
	KeyUsageRecords         = "usage_records"
	KeyEquipment            = "equipment"
	KeyMaintenanceSchedules = "maintenance_schedules"
	KeyMaintenanceRecords   = "maintenance_records"
)

// UserNamespace returns the kvstore namespace holding one user's collections
func UserNamespace(userID string) string {
	return "user:" + userID
}

// Collection is whole-collection read/replace persistence for one entity
// family. Every save supplies the full collection and supersedes whatever was
// stored under the family key. Suitable for small per-user collections only;
// anything store-backed or remote uses per-record operations instead (see
// database/postgres).
type Collection[T any] struct {
	store     kvstore.Store
	namespace string
	key       string
}

// NewCollection creates a collection bound to a namespace and family key
func NewCollection[T any](store kvstore.Store, namespace, key string) *Collection[T] {
	return &Collection[T]{store: store, namespace: namespace, key: key}
}

// GetAll returns the persisted collection. A missing key or a payload that
// fails to parse yields an empty collection; parse failures are logged but
// never surfaced, favoring availability over strict consistency.
func (c *Collection[T]) GetAll(ctx context.Context) []T {
	log := logger.FromContext(ctx)

	raw, ok, err := c.store.Get(ctx, c.namespace, c.key)
	if err != nil {
		log.Error("Failed to read collection, treating as empty",
			"namespace", c.namespace, "key", c.key, "error", err)
		return []T{}
	}
	if !ok {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Error("Failed to parse persisted collection, treating as empty",
			"namespace", c.namespace, "key", c.key, "error", err)
		metrics.CollectionParseErrors.WithLabelValues(c.key).Inc()
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// SaveAll replaces the entire persisted collection. The write is a single Set,
// so callers never observe a partial collection. A storage failure is returned
// wrapping domain.ErrStorage rather than swallowed.
func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	log := logger.FromContext(ctx)

	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", domain.ErrStorage, c.key, err)
	}

	if err := c.store.Set(ctx, c.namespace, c.key, string(payload)); err != nil {
		log.Error("Failed to persist collection",
			"namespace", c.namespace, "key", c.key, "count", len(items), "error", err)
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	metrics.CollectionSaves.WithLabelValues(c.key).Inc()
	return nil
}

// Clear removes the persisted collection entirely
func (c *Collection[T]) Clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.namespace, c.key); err != nil {
		return fmt.Errorf("clear %s: %w", c.key, err)
	}
	return nil
}
