package domain

import "time"

// EquipmentStatus represents the operational state of a piece of equipment
type EquipmentStatus string

const (
	EquipmentStatusOperational EquipmentStatus = "operational"
	EquipmentStatusMaintenance EquipmentStatus = "maintenance"
	EquipmentStatusBroken      EquipmentStatus = "broken"
	EquipmentStatusRetired     EquipmentStatus = "retired"
)

// Equipment is a machine or tool owned by the farm
type Equipment struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Model        string          `json:"model,omitempty"`
	Status       EquipmentStatus `json:"status"`
	PurchaseDate *time.Time      `json:"purchase_date,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// MaintenanceSchedule is a recurring maintenance plan for a piece of equipment.
// EquipmentID is a lookup reference, not ownership.
type MaintenanceSchedule struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	EquipmentID  string     `json:"equipment_id"`
	Task         string     `json:"task"`
	IntervalDays int        `json:"interval_days"`
	NextDueAt    *time.Time `json:"next_due_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// MaintenanceRecord is a completed maintenance event. ScheduleID is set when
// the work fulfilled a schedule; it stays valid even if the schedule is gone.
type MaintenanceRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	EquipmentID string    `json:"equipment_id"`
	ScheduleID  string    `json:"schedule_id,omitempty"`
	Task        string    `json:"task"`
	Cost        float64   `json:"cost,omitempty"`
	PerformedAt time.Time `json:"performed_at"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
