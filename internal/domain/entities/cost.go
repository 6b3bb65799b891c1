package entities

import "time"

// CropCost records an expense against a crop.
type CropCost struct {
	ID          int64     `json:"id" db:"id"`
	CropID      int64     `json:"crop_id" db:"crop_id"`
	ExpenseType string    `json:"expense_type" db:"expense_type"`
	Title       string    `json:"title" db:"title"`
	Amount      float64   `json:"amount" db:"amount"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CostSummary aggregates spending for a crop.
type CostSummary struct {
	CropID int64              `json:"crop_id"`
	Total  float64            `json:"total"`
	ByType map[string]float64 `json:"by_type"`
}
