package entities

import "time"

// Crop represents a cultivated plot owned by a user. The AI core treats
// crops as read-only input.
type Crop struct {
	ID           int64      `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Name         string     `json:"name" db:"name"`
	CropType     string     `json:"crop_type" db:"crop_type"`
	Variety      string     `json:"variety" db:"variety"`
	PlantingDate *time.Time `json:"planting_date" db:"planting_date"`
	HarvestDate  string     `json:"harvest_date" db:"harvest_date"`
	GrowthStage  string     `json:"growth_stage" db:"growth_stage"`
	Area         string     `json:"area" db:"area"`
	SoilType     string     `json:"soil_type" db:"soil_type"`
	Notes        string     `json:"notes" db:"notes"`
	State        string     `json:"state" db:"state"`
	District     string     `json:"district" db:"district"`
	Location     string     `json:"location" db:"location"`
	Zipcode      string     `json:"zipcode" db:"zipcode"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
