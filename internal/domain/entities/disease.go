package entities

import "time"

// DiseaseDetection is the stored result of an image analysis for a crop.
// Confidence is persisted as a 0-1 fraction; the analysis API reports an
// integer percentage.
type DiseaseDetection struct {
	ID              int64     `json:"id" db:"id"`
	CropID          int64     `json:"crop_id" db:"crop_id"`
	DiseaseName     string    `json:"disease_name" db:"disease_name"`
	Confidence      float64   `json:"confidence" db:"confidence"`
	Severity        string    `json:"severity" db:"severity"`
	ImagePath       string    `json:"image_path" db:"image_path"`
	Recommendations string    `json:"recommendations" db:"recommendations"`
	DetectedAt      time.Time `json:"detected_at" db:"detected_at"`
}

// DiseaseAnalysis is the machine-parseable analysis result returned to
// clients. This six-field shape is the externally-depended-upon contract.
type DiseaseAnalysis struct {
	Disease     string   `json:"disease"`
	Cause       string   `json:"cause"`
	Confidence  int      `json:"confidence"`
	Severity    string   `json:"severity"`
	Precautions []string `json:"precautions"`
	Treatment   []string `json:"treatment"`

	// DetectionID references the persisted detection row, when one was created.
	DetectionID int64 `json:"detection_id,omitempty"`
}
