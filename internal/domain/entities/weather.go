package entities

import "time"

// WeatherAlert is a weather-derived advisory tied to a crop. Alerts are
// produced externally and are read-only input to context assembly.
type WeatherAlert struct {
	ID            int64     `json:"id" db:"id"`
	CropID        int64     `json:"crop_id" db:"crop_id"`
	AlertType     string    `json:"alert_type" db:"alert_type"`
	Description   string    `json:"description" db:"description"`
	Temperature   float64   `json:"temperature" db:"temperature"`
	Humidity      float64   `json:"humidity" db:"humidity"`
	Precipitation float64   `json:"precipitation" db:"precipitation"`
	WindSpeed     float64   `json:"wind_speed" db:"wind_speed"`
	IsCritical    bool      `json:"is_critical" db:"is_critical"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
