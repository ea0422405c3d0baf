package repository

import (
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/domain"
	"github.com/Alston23/farm-assist-app-werzad-sub002/internal/kvstore"
)

// Stores bundles one user's entity-family collections. All collections share
// the user's kvstore namespace; the user id is threaded in from the session
// and treated as read-only here.
type Stores struct {
	Fertilizers          *Collection[domain.FertilizerItem]
	Seeds                *Collection[domain.SeedItem]
	Packaging            *Collection[domain.PackagingItem]
	StorageLocations     *Collection[domain.StorageLocation]
	Harvests             *Collection[domain.Harvest]
	Sales                *Collection[domain.Sale]
	UsageRecords         *Collection[domain.UsageRecord]
	Equipment            *Collection[domain.Equipment]
	MaintenanceSchedules *Collection[domain.MaintenanceSchedule]
	MaintenanceRecords   *Collection[domain.MaintenanceRecord]
}

// NewStores creates the collection set for one user
func NewStores(store kvstore.Store, userID string) *Stores {
	ns := UserNamespace(userID)
	return &Stores{
		Fertilizers:          NewCollection[domain.FertilizerItem](store, ns, KeyFertilizers),
		Seeds:                NewCollection[domain.SeedItem](store, ns, KeySeeds),
		Packaging:            NewCollection[domain.PackagingItem](store, ns, KeyPackaging),
		StorageLocations:     NewCollection[domain.StorageLocation](store, ns, KeyStorageLocations),
		Harvests:             NewCollection[domain.Harvest](store, ns, KeyHarvests),
		Sales:                NewCollection[domain.Sale](store, ns, KeySales),
		UsageRecords:         NewCollection[domain.UsageRecord](store, ns, KeyUsageRecords),
		Equipment:            NewCollection[domain.Equipment](store, ns, KeyEquipment),
		MaintenanceSchedules: NewCollection[domain.MaintenanceSchedule](store, ns, KeyMaintenanceSchedules),
		MaintenanceRecords:   NewCollection[domain.MaintenanceRecord](store, ns, KeyMaintenanceRecords),
	}
}
