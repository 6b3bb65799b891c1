package entities

// CropContext is the structured, time-windowed snapshot of a crop's recent
// state used to ground model responses. A nil Crop means the crop was not
// found and the context is empty.
type CropContext struct {
	Crop       *Crop               `json:"crop"`
	Activities []*ActivityLog      `json:"activities"`
	Diseases   []*DiseaseDetection `json:"diseases"`
	Weather    []*WeatherAlert     `json:"weather"`
}

// IsEmpty reports whether the snapshot carries no crop data.
func (c *CropContext) IsEmpty() bool {
	return c == nil || c.Crop == nil
}
