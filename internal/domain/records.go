package domain

import "time"

// Event records are immutable after creation. They reference items and storage
// locations by id only; deleting a referenced StorageLocation does not
// invalidate records that name it.

// Harvest captures a yield event
type Harvest struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	CropName          string    `json:"crop_name"`
	Quantity          float64   `json:"quantity"`
	Unit              string    `json:"unit"`
	StorageLocationID string    `json:"storage_location_id,omitempty"`
	HarvestedAt       time.Time `json:"harvested_at"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Sale captures a sale transaction
type Sale struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ItemName     string    `json:"item_name"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"price_per_unit"`
	Buyer        string    `json:"buyer,omitempty"`
	SoldAt       time.Time `json:"sold_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// Total returns the sale amount.
func (s Sale) Total() float64 {
	return s.Quantity * s.PricePerUnit
}

// UsageRecord captures consumption of an inventory item
type UsageRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	Purpose   string    `json:"purpose,omitempty"`
	UsedAt    time.Time `json:"used_at"`
	CreatedAt time.Time `json:"created_at"`
}
