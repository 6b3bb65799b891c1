package routes

import (
	"net/http"

	"github.com/farmersguild/backend/internal/api/handlers"
	"github.com/farmersguild/backend/internal/api/middleware"
	"github.com/farmersguild/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	cropHandler     *handlers.CropHandler
	chatHandler     *handlers.ChatHandler
	diseaseHandler  *handlers.DiseaseHandler
	activityHandler *handlers.ActivityHandler
	costHandler     *handlers.CostHandler
	weatherHandler  *handlers.WeatherHandler
	statsHandler    *handlers.StatsHandler
	userHandler     *handlers.UserHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	cropHandler *handlers.CropHandler,
	chatHandler *handlers.ChatHandler,
	diseaseHandler *handlers.DiseaseHandler,
	activityHandler *handlers.ActivityHandler,
	costHandler *handlers.CostHandler,
	weatherHandler *handlers.WeatherHandler,
	statsHandler *handlers.StatsHandler,
	userHandler *handlers.UserHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		cropHandler:     cropHandler,
		chatHandler:     chatHandler,
		diseaseHandler:  diseaseHandler,
		activityHandler: activityHandler,
		costHandler:     costHandler,
		weatherHandler:  weatherHandler,
		statsHandler:    statsHandler,
		userHandler:     userHandler,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Crop endpoints
	r.mux.HandleFunc("POST /api/crops", r.cropHandler.CreateCrop)
	r.mux.HandleFunc("GET /api/crops", r.cropHandler.ListCrops)
	r.mux.HandleFunc("GET /api/crops/{id}", r.cropHandler.GetCrop)
	r.mux.HandleFunc("PUT /api/crops/{id}", r.cropHandler.UpdateCrop)
	r.mux.HandleFunc("DELETE /api/crops/{id}", r.cropHandler.DeleteCrop)

	// Crop AI endpoints
	r.mux.HandleFunc("POST /api/crops/{id}/chat", r.chatHandler.ChatWithCrop)
	r.mux.HandleFunc("DELETE /api/crops/{id}/chat", r.chatHandler.ClearHistory)
	r.mux.HandleFunc("GET /api/crops/{id}/context", r.chatHandler.GetCropContext)

	// Disease endpoints
	r.mux.HandleFunc("POST /api/disease/analyze", r.diseaseHandler.AnalyzeDisease)
	r.mux.HandleFunc("POST /api/disease/chat", r.diseaseHandler.ChatAboutDisease)
	r.mux.HandleFunc("GET /api/crops/{id}/detections", r.diseaseHandler.ListDetections)
	r.mux.HandleFunc("DELETE /api/detections/{id}", r.diseaseHandler.DeleteDetection)

	// Activity log endpoints
	r.mux.HandleFunc("POST /api/crops/{id}/activities", r.activityHandler.CreateActivity)
	r.mux.HandleFunc("GET /api/crops/{id}/activities", r.activityHandler.ListActivities)

	// Cost tracking endpoints
	r.mux.HandleFunc("POST /api/crops/{id}/costs", r.costHandler.CreateCost)
	r.mux.HandleFunc("GET /api/crops/{id}/costs", r.costHandler.ListCosts)
	r.mux.HandleFunc("GET /api/crops/{id}/costs/summary", r.costHandler.GetCostSummary)

	// Weather alert endpoints
	r.mux.HandleFunc("POST /api/crops/{id}/weather-alerts", r.weatherHandler.RecordAlert)
	r.mux.HandleFunc("GET /api/crops/{id}/weather-alerts", r.weatherHandler.ListAlerts)

	// Stats endpoints
	r.mux.HandleFunc("GET /api/stats/platform", r.statsHandler.GetPlatformStats)
	r.mux.HandleFunc("GET /api/stats/user", r.statsHandler.GetUserStats)

	// User endpoints
	r.mux.HandleFunc("POST /api/users", r.userHandler.CreateUser)
	r.mux.HandleFunc("GET /api/users/{id}", r.userHandler.GetUser)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
