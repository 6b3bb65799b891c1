package entities

// UserStats summarizes platform usage, either platform-wide or per user.
type UserStats struct {
	AIConsultations int     `json:"ai_consultations"`
	ActiveCrops     int     `json:"active_crops"`
	CostSavings     float64 `json:"cost_savings"`
	AccuracyRate    int     `json:"accuracy_rate"`
}
