package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/farmersguild/backend/internal/domain/entities"
	apperrors "github.com/farmersguild/backend/pkg/errors"
)

func daysBefore(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

func TestFormatContextAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("renders full snapshot", func(t *testing.T) {
		planted := daysBefore(now, 10)
		snapshot := &entities.CropContext{
			Crop: &entities.Crop{
				ID:           1,
				Name:         "Tomato Field A",
				Variety:      "Roma",
				PlantingDate: &planted,
				Area:         "2 acres",
				Location:     "Green Valley Farm",
				District:     "Kolhapur",
				State:        "Maharashtra",
				HarvestDate:  "2026-06-15",
				Notes:        "Drip irrigated",
			},
			Activities: []*entities.ActivityLog{
				{ActivityType: "watering", Description: "Deep watering", Quantity: 2.5, Unit: "liters", PerformedAt: daysBefore(now, 2)},
			},
			Diseases: []*entities.DiseaseDetection{
				{DiseaseName: "Leaf Spot", Confidence: 0.85, Severity: "Moderate", DetectedAt: daysBefore(now, 5)},
			},
			Weather: []*entities.WeatherAlert{
				{AlertType: "heavy_rain", Description: "Heavy rainfall expected", IsCritical: true, CreatedAt: daysBefore(now, 1)},
			},
		}

		expected := "CROP INFORMATION:\n" +
			"- Name: Tomato Field A\n" +
			"- Variety: Roma\n" +
			"- Days Since Planting: 10\n" +
			"- Area: 2 acres\n" +
			"- Location: Green Valley Farm\n" +
			"- District: Kolhapur\n" +
			"- State: Maharashtra\n" +
			"- Harvest Date: 2026-06-15\n" +
			"- Notes: Drip irrigated\n" +
			"\n" +
			"RECENT ACTIVITIES (Last 7 days):\n" +
			"- watering: Deep watering (2.5 liters) - 2 days ago\n" +
			"\n" +
			"DISEASE DETECTIONS (Last 30 days):\n" +
			"- Leaf Spot (Confidence: 85.0%, Severity: Moderate) - 5 days ago\n" +
			"\n" +
			"WEATHER ALERTS (Last 7 days):\n" +
			"- heavy_rain: Heavy rainfall expected (CRITICAL) - 1 days ago"

		assert.Equal(t, expected, formatContextAt(snapshot, now))
	})

	t.Run("empty snapshot renders placeholder", func(t *testing.T) {
		assert.Equal(t, "No crop data available.", formatContextAt(&entities.CropContext{}, now))
		var nilSnapshot *entities.CropContext
		assert.Equal(t, "No crop data available.", formatContextAt(nilSnapshot, now))
	})

	t.Run("missing planting date renders Unknown", func(t *testing.T) {
		snapshot := &entities.CropContext{
			Crop: &entities.Crop{Name: "Wheat Plot", Variety: "Sharbati"},
		}
		rendered := formatContextAt(snapshot, now)
		assert.Contains(t, rendered, "- Days Since Planting: Unknown\n")
	})

	t.Run("missing optional fields render defaults", func(t *testing.T) {
		snapshot := &entities.CropContext{Crop: &entities.Crop{Name: "Bare Crop"}}
		rendered := formatContextAt(snapshot, now)
		assert.Contains(t, rendered, "- Variety: Not specified\n")
		assert.Contains(t, rendered, "- Area: Not specified\n")
		assert.Contains(t, rendered, "- Location: Not specified\n")
		assert.Contains(t, rendered, "- District: Not specified\n")
		assert.Contains(t, rendered, "- State: Not specified\n")
		assert.Contains(t, rendered, "- Harvest Date: Not specified\n")
		assert.Contains(t, rendered, "- Notes: None\n")
	})

	t.Run("empty histories render placeholder lines", func(t *testing.T) {
		snapshot := &entities.CropContext{Crop: &entities.Crop{Name: "Quiet Crop"}}
		rendered := formatContextAt(snapshot, now)
		assert.Contains(t, rendered, "RECENT ACTIVITIES (Last 7 days):\n- No recent activities recorded\n")
		assert.Contains(t, rendered, "DISEASE DETECTIONS (Last 30 days):\n- No diseases detected\n")
		assert.Contains(t, rendered, "WEATHER ALERTS (Last 7 days):\n- No weather alerts")
	})

	t.Run("zero quantity drops the quantity suffix", func(t *testing.T) {
		snapshot := &entities.CropContext{
			Crop: &entities.Crop{Name: "Field B"},
			Activities: []*entities.ActivityLog{
				{ActivityType: "weeding", Description: "Manual weeding", Quantity: 0, PerformedAt: daysBefore(now, 1)},
			},
		}
		rendered := formatContextAt(snapshot, now)
		assert.Contains(t, rendered, "- weeding: Manual weeding - 1 days ago")
	})

	t.Run("whole number quantity has no trailing zeros", func(t *testing.T) {
		snapshot := &entities.CropContext{
			Crop: &entities.Crop{Name: "Field C"},
			Activities: []*entities.ActivityLog{
				{ActivityType: "fertilizing", Description: "NPK application", Quantity: 3, Unit: "kg", PerformedAt: daysBefore(now, 3)},
			},
		}
		rendered := formatContextAt(snapshot, now)
		assert.Contains(t, rendered, "- fertilizing: NPK application (3 kg) - 3 days ago")
	})

	t.Run("non-critical weather alert has no marker", func(t *testing.T) {
		snapshot := &entities.CropContext{
			Crop: &entities.Crop{Name: "Field D"},
			Weather: []*entities.WeatherAlert{
				{AlertType: "high_wind", Description: "Gusts up to 40 km/h", IsCritical: false, CreatedAt: daysBefore(now, 2)},
			},
		}
		rendered := formatContextAt(snapshot, now)
		assert.Contains(t, rendered, "- high_wind: Gusts up to 40 km/h - 2 days ago")
		assert.NotContains(t, rendered, "(CRITICAL)")
	})
}

func TestGetCropContext(t *testing.T) {
	ctx := context.Background()

	t.Run("missing crop yields empty snapshot", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("GetByID", ctx, int64(404)).Return(nil, apperrors.NewNotFoundError("crop not found"))

		service := NewCropContextService(crops, new(MockActivityLogRepository), new(MockDiseaseDetectionRepository), new(MockWeatherAlertRepository))

		snapshot, err := service.GetCropContext(ctx, 404)
		assert.NoError(t, err)
		assert.True(t, snapshot.IsEmpty())
		assert.Equal(t, "No crop data available.", service.FormatContext(snapshot))
	})

	t.Run("crop lookup failure propagates", func(t *testing.T) {
		crops := new(MockCropRepository)
		crops.On("GetByID", ctx, int64(1)).Return(nil, apperrors.NewInternalError("database error", errors.New("connection refused")))

		service := NewCropContextService(crops, new(MockActivityLogRepository), new(MockDiseaseDetectionRepository), new(MockWeatherAlertRepository))

		_, err := service.GetCropContext(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("history fetch failure degrades to empty section", func(t *testing.T) {
		crop := &entities.Crop{ID: 7, Name: "Tomato Field A"}

		crops := new(MockCropRepository)
		crops.On("GetByID", ctx, int64(7)).Return(crop, nil)

		activities := new(MockActivityLogRepository)
		activities.On("ListRecent", ctx, int64(7), mock.AnythingOfType("time.Time"), 10).
			Return([]*entities.ActivityLog{
				{ActivityType: "watering", Description: "Morning irrigation", PerformedAt: time.Now().UTC().Add(-25 * time.Hour)},
			}, nil)

		diseases := new(MockDiseaseDetectionRepository)
		diseases.On("ListRecent", ctx, int64(7), mock.AnythingOfType("time.Time"), 5).
			Return(nil, errors.New("relation does not exist"))

		weather := new(MockWeatherAlertRepository)
		weather.On("ListRecent", ctx, int64(7), mock.AnythingOfType("time.Time"), 5).
			Return([]*entities.WeatherAlert{
				{AlertType: "heat_wave", Description: "Temperatures above 40C", CreatedAt: time.Now().UTC().Add(-2 * time.Hour)},
			}, nil)

		service := NewCropContextService(crops, activities, diseases, weather)

		snapshot, err := service.GetCropContext(ctx, 7)
		assert.NoError(t, err)
		assert.Len(t, snapshot.Activities, 1)
		assert.Empty(t, snapshot.Diseases)
		assert.Len(t, snapshot.Weather, 1)

		rendered := service.FormatContext(snapshot)
		assert.Contains(t, rendered, "- No diseases detected")
		assert.Contains(t, rendered, "- watering: Morning irrigation")
		assert.Contains(t, rendered, "- heat_wave: Temperatures above 40C")
	})
}
