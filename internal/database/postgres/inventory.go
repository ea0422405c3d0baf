package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
)

// InventoryStore syncs inventory records to the remote store. Unlike the
// device-side replace-all collections, every operation here is per record:
// the remote relational store never takes whole-collection writes.
type InventoryStore struct {
	db *pgxpool.Pool
}

// NewInventoryStore creates a new InventoryStore
func NewInventoryStore(db *pgxpool.Pool) *InventoryStore {
	return &InventoryStore{db: db}
}

// UpsertFertilizer inserts or updates one fertilizer record
func (s *InventoryStore) UpsertFertilizer(ctx context.Context, item domain.FertilizerItem) error {
	query := `
		INSERT INTO fertilizer_items (item_id, user_id, name, quantity, unit, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (item_id) DO UPDATE
		SET name = EXCLUDED.name,
		    quantity = EXCLUDED.quantity,
		    unit = EXCLUDED.unit,
		    notes = EXCLUDED.notes,
		    updated_at = NOW()
	`
	_, err := s.db.Exec(ctx, query,
		item.ID, item.UserID, item.Name, item.Quantity, string(item.Unit), item.Notes, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert fertilizer %s: %w", item.ID, err)
	}
	return nil
}

// DeleteFertilizer removes one fertilizer record scoped to its owner
func (s *InventoryStore) DeleteFertilizer(ctx context.Context, userID, itemID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM fertilizer_items WHERE item_id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete fertilizer %s: %w", itemID, err)
	}
	return nil
}

// ListFertilizersByUser returns all fertilizer records owned by userID
func (s *InventoryStore) ListFertilizersByUser(ctx context.Context, userID string) ([]domain.FertilizerItem, error) {
	query := `
		SELECT item_id, user_id, name, quantity, unit, notes, created_at, updated_at
		FROM fertilizer_items
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fertilizers: %w", err)
	}
	defer rows.Close()

	var items []domain.FertilizerItem
	for rows.Next() {
		var item domain.FertilizerItem
		var unit string
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity,
			&unit, &item.Notes, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fertilizer row: %w", err)
		}
		item.Unit = domain.FertilizerUnit(unit)
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertSeed inserts or updates one seed record
func (s *InventoryStore) UpsertSeed(ctx context.Context, item domain.SeedItem) error {
	query := `
		INSERT INTO seed_items (item_id, user_id, name, quantity, unit, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (item_id) DO UPDATE
		SET name = EXCLUDED.name,
		    quantity = EXCLUDED.quantity,
		    unit = EXCLUDED.unit,
		    notes = EXCLUDED.notes,
		    updated_at = NOW()
	`
	_, err := s.db.Exec(ctx, query,
		item.ID, item.UserID, item.Name, item.Quantity, string(item.Unit), item.Notes, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert seed %s: %w", item.ID, err)
	}
	return nil
}

// DeleteSeed removes one seed record scoped to its owner
func (s *InventoryStore) DeleteSeed(ctx context.Context, userID, itemID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM seed_items WHERE item_id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete seed %s: %w", itemID, err)
	}
	return nil
}

// UpsertPackaging inserts or updates one packaging record
func (s *InventoryStore) UpsertPackaging(ctx context.Context, item domain.PackagingItem) error {
	query := `
		INSERT INTO packaging_items (item_id, user_id, name, quantity, unit, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (item_id) DO UPDATE
		SET name = EXCLUDED.name,
		    quantity = EXCLUDED.quantity,
		    unit = EXCLUDED.unit,
		    notes = EXCLUDED.notes,
		    updated_at = NOW()
	`
	_, err := s.db.Exec(ctx, query,
		item.ID, item.UserID, item.Name, item.Quantity, string(item.Unit), item.Notes, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert packaging %s: %w", item.ID, err)
	}
	return nil
}

// DeletePackaging removes one packaging record scoped to its owner
func (s *InventoryStore) DeletePackaging(ctx context.Context, userID, itemID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM packaging_items WHERE item_id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete packaging %s: %w", itemID, err)
	}
	return nil
}

// UpsertStorageLocation inserts or updates one storage location
func (s *InventoryStore) UpsertStorageLocation(ctx context.Context, loc domain.StorageLocation) error {
	if loc.Used < 0 || loc.Used > loc.Capacity {
		return fmt.Errorf("%w: used %f outside [0, %f]", domain.ErrValidation, loc.Used, loc.Capacity)
	}

	query := `
		INSERT INTO storage_locations (location_id, user_id, type, unit, capacity, used)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (location_id) DO UPDATE
		SET type = EXCLUDED.type,
		    unit = EXCLUDED.unit,
		    capacity = EXCLUDED.capacity,
		    used = EXCLUDED.used
	`
	_, err := s.db.Exec(ctx, query,
		loc.ID, loc.UserID, string(loc.Type), loc.Unit, loc.Capacity, loc.Used)
	if err != nil {
		return fmt.Errorf("failed to upsert storage location %s: %w", loc.ID, err)
	}
	return nil
}

// DeleteStorageLocation removes one storage location. Event records that
// reference the location keep their stored id; references are lookup-only.
func (s *InventoryStore) DeleteStorageLocation(ctx context.Context, userID, locationID string) error {
	_, err := s.db.Exec(ctx,
		`DELETE FROM storage_locations WHERE location_id = $1 AND user_id = $2`, locationID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete storage location %s: %w", locationID, err)
	}
	return nil
}
