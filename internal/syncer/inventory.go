package syncer

import (
	"context"
	"fmt"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/worker"
)

// RemoteInventory is the per-record remote store the countable inventory
// families mirror into. database/postgres.InventoryStore is the production
// implementation.
type RemoteInventory interface {
	UpsertFertilizer(ctx context.Context, item domain.FertilizerItem) error
	DeleteFertilizer(ctx context.Context, userID, itemID string) error
	UpsertSeed(ctx context.Context, item domain.SeedItem) error
	DeleteSeed(ctx context.Context, userID, itemID string) error
	UpsertPackaging(ctx context.Context, item domain.PackagingItem) error
	DeletePackaging(ctx context.Context, userID, itemID string) error
	UpsertStorageLocation(ctx context.Context, loc domain.StorageLocation) error
	DeleteStorageLocation(ctx context.Context, userID, locationID string) error
}

// Inventory mirrors device-side replace-all saves into the remote store as
// per-record upserts and deletes, off the request path via the worker pool.
// The device collection is the source of truth: every record in the saved
// collection is upserted, and records present before the save but absent from
// it are deleted remotely.
type Inventory struct {
	remote RemoteInventory
	pool   *worker.Pool
}

// NewInventory creates an inventory syncer over the remote store
func NewInventory(remote RemoteInventory, pool *worker.Pool) *Inventory {
	return &Inventory{remote: remote, pool: pool}
}

// SyncFertilizers mirrors a fertilizer save. It returns false when the job
// was dropped because the pool is full or stopped; the next save re-mirrors
// the full collection, so a dropped sync heals itself.
func (s *Inventory) SyncFertilizers(userID string, previous, current []domain.FertilizerItem) bool {
	removed := removedIDs(previous, current, func(it domain.FertilizerItem) string { return it.ID })
	return s.enqueue("fertilizers", func(ctx context.Context) error {
		for _, it := range current {
			it.UserID = userID
			if err := s.remote.UpsertFertilizer(ctx, it); err != nil {
				return fmt.Errorf("sync fertilizers: %w", err)
			}
		}
		for _, id := range removed {
			if err := s.remote.DeleteFertilizer(ctx, userID, id); err != nil {
				return fmt.Errorf("sync fertilizers: %w", err)
			}
		}
		return nil
	})
}

// SyncSeeds mirrors a seed save
func (s *Inventory) SyncSeeds(userID string, previous, current []domain.SeedItem) bool {
	removed := removedIDs(previous, current, func(it domain.SeedItem) string { return it.ID })
	return s.enqueue("seeds", func(ctx context.Context) error {
		for _, it := range current {
			it.UserID = userID
			if err := s.remote.UpsertSeed(ctx, it); err != nil {
				return fmt.Errorf("sync seeds: %w", err)
			}
		}
		for _, id := range removed {
			if err := s.remote.DeleteSeed(ctx, userID, id); err != nil {
				return fmt.Errorf("sync seeds: %w", err)
			}
		}
		return nil
	})
}

// SyncPackaging mirrors a packaging save
func (s *Inventory) SyncPackaging(userID string, previous, current []domain.PackagingItem) bool {
	removed := removedIDs(previous, current, func(it domain.PackagingItem) string { return it.ID })
	return s.enqueue("packaging", func(ctx context.Context) error {
		for _, it := range current {
			it.UserID = userID
			if err := s.remote.UpsertPackaging(ctx, it); err != nil {
				return fmt.Errorf("sync packaging: %w", err)
			}
		}
		for _, id := range removed {
			if err := s.remote.DeletePackaging(ctx, userID, id); err != nil {
				return fmt.Errorf("sync packaging: %w", err)
			}
		}
		return nil
	})
}

// SyncStorageLocations mirrors a storage-location save
func (s *Inventory) SyncStorageLocations(userID string, previous, current []domain.StorageLocation) bool {
	removed := removedIDs(previous, current, func(l domain.StorageLocation) string { return l.ID })
	return s.enqueue("storage_locations", func(ctx context.Context) error {
		for _, loc := range current {
			loc.UserID = userID
			if err := s.remote.UpsertStorageLocation(ctx, loc); err != nil {
				return fmt.Errorf("sync storage locations: %w", err)
			}
		}
		for _, id := range removed {
			if err := s.remote.DeleteStorageLocation(ctx, userID, id); err != nil {
				return fmt.Errorf("sync storage locations: %w", err)
			}
		}
		return nil
	})
}

func (s *Inventory) enqueue(family string, job func(context.Context) error) bool {
	if s.pool.Enqueue(worker.JobFunc(job)) {
		return true
	}
	logger.FromContext(context.Background()).Warn(LogMsgSyncDropped, "family", family)
	return false
}

// removedIDs returns the ids present in previous but absent from current
func removedIDs[T any](previous, current []T, id func(T) string) []string {
	kept := make(map[string]struct{}, len(current))
	for _, it := range current {
		kept[id(it)] = struct{}{}
	}
	var removed []string
	for _, it := range previous {
		if _, ok := kept[id(it)]; !ok {
			removed = append(removed, id(it))
		}
	}
	return removed
}
