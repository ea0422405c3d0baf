package aggregate

import (
	"context"
	"sync"

	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/database/postgres"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/logger"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/metrics"
)

// Counter answers count-only queries for one table scoped to a user
type Counter interface {
	CountWhere(ctx context.Context, table, userID string) (int, error)
}

// Counts holds the per-family record counts for one user. ForUser carries the
// user id captured when the fetch started; callers discard results whose
// ForUser no longer matches the active session (stale-response guard).
type Counts struct {
	Fertilizers      int    `json:"fertilizers"`
	Seeds            int    `json:"seeds"`
	Packaging        int    `json:"packaging"`
	StorageLocations int    `json:"storage_locations"`
	ForUser          string `json:"-"`
}

// Service derives summary counts without materializing full collections
type Service interface {
	GetCounts(ctx context.Context, userID string) (Counts, error)
}

type service struct {
	counter Counter
}

// NewService creates a new aggregation service
func NewService(counter Counter) Service {
	return &service{counter: counter}
}

// GetCounts fetches the four family counts concurrently. Without a user id it
// reports all zeros and ErrNotAuthenticated without issuing any query. A
// failed sub-query degrades that field to 0 and is logged; one family's
// failure never fails the view as a whole.
func (s *service) GetCounts(ctx context.Context, userID string) (Counts, error) {
	if userID == "" {
		return Counts{}, domain.ErrNotAuthenticated
	}

	log := logger.FromContext(ctx)
	counts := Counts{ForUser: userID}

	fetches := []struct {
		table string
		dest  *int
	}{
		{postgres.TableFertilizers, &counts.Fertilizers},
		{postgres.TableSeeds, &counts.Seeds},
		{postgres.TablePackaging, &counts.Packaging},
		{postgres.TableStorageLocations, &counts.StorageLocations},
	}

	var wg sync.WaitGroup
	for _, f := range fetches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.counter.CountWhere(ctx, f.table, userID)
			if err != nil {
				log.Warn("Count query failed, reporting zero",
					"table", f.table, "user_id", userID, "error", err)
				metrics.CountQueries.WithLabelValues(f.table, "error").Inc()
				return
			}
			metrics.CountQueries.WithLabelValues(f.table, "ok").Inc()
			*f.dest = n
		}()
	}
	wg.Wait()

	return counts, nil
}
