package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/farmersguild/backend/internal/domain/entities"
	"github.com/farmersguild/backend/internal/domain/repositories"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

// Lookback windows and caps for context assembly.
const (
	activityWindow = 7 * 24 * time.Hour
	diseaseWindow  = 30 * 24 * time.Hour
	weatherWindow  = 7 * 24 * time.Hour

	activityLimit = 10
	diseaseLimit  = 5
	weatherLimit  = 5
)

// emptyContextText is returned when the crop does not exist.
const emptyContextText = "No crop data available."

// CropContextService assembles a bounded snapshot of a crop's recent state
// and renders it as plain text for model grounding.
type CropContextService struct {
	crops      repositories.CropRepository
	activities repositories.ActivityLogRepository
	diseases   repositories.DiseaseDetectionRepository
	weather    repositories.WeatherAlertRepository
}

// NewCropContextService creates a new crop context service
func NewCropContextService(
	crops repositories.CropRepository,
	activities repositories.ActivityLogRepository,
	diseases repositories.DiseaseDetectionRepository,
	weather repositories.WeatherAlertRepository,
) *CropContextService {
	return &CropContextService{
		crops:      crops,
		activities: activities,
		diseases:   diseases,
		weather:    weather,
	}
}

// GetCropContext builds the structured snapshot for a crop. A missing crop
// yields an empty snapshot, not an error. Each history fetch degrades to an
// empty collection on failure so a data issue in one history type never
// blocks chat availability.
func (s *CropContextService) GetCropContext(ctx context.Context, cropID int64) (*entities.CropContext, error) {
	crop, err := s.crops.GetByID(ctx, cropID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return &entities.CropContext{}, nil
		}
		return nil, err
	}

	now := time.Now().UTC()
	snapshot := &entities.CropContext{Crop: crop}

	activities, err := s.activities.ListRecent(ctx, cropID, now.Add(-activityWindow), activityLimit)
	if err != nil {
		log.Printf("Warning: could not fetch activities for crop %d: %v", cropID, err)
	} else {
		snapshot.Activities = activities
	}

	diseases, err := s.diseases.ListRecent(ctx, cropID, now.Add(-diseaseWindow), diseaseLimit)
	if err != nil {
		log.Printf("Warning: could not fetch diseases for crop %d: %v", cropID, err)
	} else {
		snapshot.Diseases = diseases
	}

	weather, err := s.weather.ListRecent(ctx, cropID, now.Add(-weatherWindow), weatherLimit)
	if err != nil {
		log.Printf("Warning: could not fetch weather alerts for crop %d: %v", cropID, err)
	} else {
		snapshot.Weather = weather
	}

	return snapshot, nil
}

// FormatContext renders the snapshot as the plain-text block embedded in
// model instructions.
func (s *CropContextService) FormatContext(snapshot *entities.CropContext) string {
	return formatContextAt(snapshot, time.Now().UTC())
}

// formatContextAt renders against a single reference time so relative-day
// labels stay self-consistent within one render pass.
func formatContextAt(snapshot *entities.CropContext, now time.Time) string {
	if snapshot.IsEmpty() {
		return emptyContextText
	}

	crop := snapshot.Crop

	var b strings.Builder
	b.WriteString("CROP INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", crop.Name)
	fmt.Fprintf(&b, "- Variety: %s\n", orDefault(crop.Variety, "Not specified"))
	if crop.PlantingDate != nil {
		fmt.Fprintf(&b, "- Days Since Planting: %d\n", daysAgo(*crop.PlantingDate, now))
	} else {
		b.WriteString("- Days Since Planting: Unknown\n")
	}
	fmt.Fprintf(&b, "- Area: %s\n", orDefault(crop.Area, "Not specified"))
	fmt.Fprintf(&b, "- Location: %s\n", orDefault(crop.Location, "Not specified"))
	fmt.Fprintf(&b, "- District: %s\n", orDefault(crop.District, "Not specified"))
	fmt.Fprintf(&b, "- State: %s\n", orDefault(crop.State, "Not specified"))
	fmt.Fprintf(&b, "- Harvest Date: %s\n", orDefault(crop.HarvestDate, "Not specified"))
	fmt.Fprintf(&b, "- Notes: %s\n", orDefault(crop.Notes, "None"))

	b.WriteString("\nRECENT ACTIVITIES (Last 7 days):\n")
	if len(snapshot.Activities) == 0 {
		b.WriteString("- No recent activities recorded\n")
	} else {
		for _, activity := range snapshot.Activities {
			fmt.Fprintf(&b, "- %s: %s", activity.ActivityType, activity.Description)
			if activity.Quantity != 0 {
				fmt.Fprintf(&b, " (%s %s)", formatQuantity(activity.Quantity), activity.Unit)
			}
			fmt.Fprintf(&b, " - %d days ago\n", daysAgo(activity.PerformedAt, now))
		}
	}

	b.WriteString("\nDISEASE DETECTIONS (Last 30 days):\n")
	if len(snapshot.Diseases) == 0 {
		b.WriteString("- No diseases detected\n")
	} else {
		for _, disease := range snapshot.Diseases {
			fmt.Fprintf(&b, "- %s (Confidence: %.1f%%, Severity: %s) - %d days ago\n",
				disease.DiseaseName, disease.Confidence*100, disease.Severity, daysAgo(disease.DetectedAt, now))
		}
	}

	b.WriteString("\nWEATHER ALERTS (Last 7 days):\n")
	if len(snapshot.Weather) == 0 {
		b.WriteString("- No weather alerts\n")
	} else {
		for _, alert := range snapshot.Weather {
			fmt.Fprintf(&b, "- %s: %s", alert.AlertType, alert.Description)
			if alert.IsCritical {
				b.WriteString(" (CRITICAL)")
			}
			fmt.Fprintf(&b, " - %d days ago\n", daysAgo(alert.CreatedAt, now))
		}
	}

	return strings.TrimSpace(b.String())
}

func daysAgo(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// formatQuantity renders 2.5 as "2.5" and 3 as "3", no trailing zeros.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
