package domain

import (
	"fmt"
	"time"
)

// FertilizerUnit is the closed set of units a fertilizer quantity may use
type FertilizerUnit string

const (
	FertilizerUnitLbs     FertilizerUnit = "lbs"
	FertilizerUnitKg      FertilizerUnit = "kg"
	FertilizerUnitBags    FertilizerUnit = "bags"
	FertilizerUnitGallons FertilizerUnit = "gallons"
	FertilizerUnitLiters  FertilizerUnit = "liters"
)

// SeedUnit is the closed set of units a seed quantity may use
type SeedUnit string

const (
	SeedUnitLbs     SeedUnit = "lbs"
	SeedUnitKg      SeedUnit = "kg"
	SeedUnitPackets SeedUnit = "packets"
	SeedUnitBushels SeedUnit = "bushels"
)

// PackagingUnit is the closed set of units a packaging quantity may use
type PackagingUnit string

const (
	PackagingUnitPieces  PackagingUnit = "pieces"
	PackagingUnitBoxes   PackagingUnit = "boxes"
	PackagingUnitRolls   PackagingUnit = "rolls"
	PackagingUnitBundles PackagingUnit = "bundles"
)

// FertilizerItem is a fertilizer inventory record scoped to its owner
type FertilizerItem struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Name      string         `json:"name"`
	Quantity  float64        `json:"quantity"`
	Unit      FertilizerUnit `json:"unit"`
	Notes     string         `json:"notes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Validate enforces the record's quantity bound
func (i FertilizerItem) Validate() error {
	if i.Quantity < 0 {
		return fmt.Errorf("%w: fertilizer quantity must not be negative", ErrValidation)
	}
	return nil
}

// SeedItem is a seed inventory record scoped to its owner
type SeedItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      SeedUnit  `json:"unit"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate enforces the record's quantity bound
func (i SeedItem) Validate() error {
	if i.Quantity < 0 {
		return fmt.Errorf("%w: seed quantity must not be negative", ErrValidation)
	}
	return nil
}

// PackagingItem is a packaging-supplies inventory record scoped to its owner
type PackagingItem struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	Quantity  float64       `json:"quantity"`
	Unit      PackagingUnit `json:"unit"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Validate enforces the record's quantity bound
func (i PackagingItem) Validate() error {
	if i.Quantity < 0 {
		return fmt.Errorf("%w: packaging quantity must not be negative", ErrValidation)
	}
	return nil
}

// StorageLocationType identifies the kind of storage a location provides
type StorageLocationType string

const (
	StorageTypeSilo      StorageLocationType = "silo"
	StorageTypeBarn      StorageLocationType = "barn"
	StorageTypeColdRoom  StorageLocationType = "cold_room"
	StorageTypeWarehouse StorageLocationType = "warehouse"
	StorageTypeShed      StorageLocationType = "shed"
)

// StorageLocation is a capacity-tracked storage space.
// Invariant: 0 <= Used <= Capacity.
type StorageLocation struct {
	ID       string              `json:"id"`
	UserID   string              `json:"user_id"`
	Type     StorageLocationType `json:"type"`
	Unit     string              `json:"unit"`
	Capacity float64             `json:"capacity"`
	Used     float64             `json:"used"`
}

// Available returns the remaining capacity of the location.
func (l StorageLocation) Available() float64 {
	return l.Capacity - l.Used
}

// Validate enforces the capacity invariant
func (l StorageLocation) Validate() error {
	if l.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrValidation)
	}
	if l.Used < 0 || l.Used > l.Capacity {
		return fmt.Errorf("%w: used %g outside [0, %g]", ErrValidation, l.Used, l.Capacity)
	}
	return nil
}
