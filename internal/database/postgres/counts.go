package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Countable tables. The whitelist keeps CountWhere from interpolating
// arbitrary identifiers into SQL.
const (
	TableFertilizers      = "fertilizer_items"
	TableSeeds            = "seed_items"
	TablePackaging        = "packaging_items"
	TableStorageLocations = "storage_locations"
)

var countableTables = map[string]struct{}{
	TableFertilizers:      {},
	TableSeeds:            {},
	TablePackaging:        {},
	TableStorageLocations: {},
}

// CountStore answers count-only queries so summary screens never materialize
// full collections from the remote store.
type CountStore struct {
	db *pgxpool.Pool
}

// NewCountStore creates a new CountStore
func NewCountStore(db *pgxpool.Pool) *CountStore {
	return &CountStore{db: db}
}

// CountWhere returns the number of records in table owned by userID
func (s *CountStore) CountWhere(ctx context.Context, table, userID string) (int, error) {
	if _, ok := countableTables[table]; !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, table)
	if err := s.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}
