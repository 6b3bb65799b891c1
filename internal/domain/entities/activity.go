package entities

import "time"

// ActivityLog records a farming action (watering, fertilizing, ...) on a crop.
type ActivityLog struct {
	ID           int64     `json:"id" db:"id"`
	CropID       int64     `json:"crop_id" db:"crop_id"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	Description  string    `json:"description" db:"description"`
	Quantity     float64   `json:"quantity" db:"quantity"`
	Unit         string    `json:"unit" db:"unit"`
	Notes        string    `json:"notes" db:"notes"`
	PerformedAt  time.Time `json:"performed_at" db:"performed_at"`
}
