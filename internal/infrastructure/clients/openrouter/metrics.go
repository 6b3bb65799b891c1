package openrouter

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type clientMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var metricsInit = false
var metrics clientMetrics

func ensureMetrics() {
	if metricsInit {
		return
	}
	meter := otel.Meter("github.com/farmersguild/backend/openrouter")

	requestCount, err := meter.Int64Counter(
		"ai.openrouter.request.count",
		metric.WithDescription("Number of OpenRouter requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.openrouter.request.duration",
		metric.WithDescription("OpenRouter request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.openrouter.request.errors",
		metric.WithDescription("Number of OpenRouter request errors"),
	)
	if err != nil {
		return
	}

	metrics = clientMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	metricsInit = true
}

func recordRequestMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureMetrics()
	if !metricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openrouter"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	metrics.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		metrics.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
