// Package metrics exposes request counters and latency histograms through an
// OpenTelemetry meter exported in Prometheus format.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type Metrics struct {
	HTTPRequests    metric.Int64Counter
	HTTPDuration    metric.Float64Histogram
	DomainRejection metric.Int64Counter
}

// Setup builds a meter provider on a private Prometheus registry and returns
// the instruments together with the /metrics handler for that registry.
// Each call is independent, so several servers can coexist in one process.
func Setup(serviceName string) (*Metrics, http.Handler, error) {
	reg := promclient.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	exporter, err := prometheus.New(prometheus.WithRegisterer(reg))
	if err != nil {
		return nil, nil, fmt.Errorf("metrics: creating prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(serviceName)

	m := &Metrics{}

	m.HTTPRequests, err = meter.Int64Counter(
		"scheduler_http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.HTTPDuration, err = meter.Float64Histogram(
		"scheduler_http_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.DomainRejection, err = meter.Int64Counter(
		"scheduler_rejected_requests_total",
		metric.WithDescription("Requests rejected with a 4xx domain error, by kind"),
	)
	if err != nil {
		return nil, nil, err
	}

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m, handler, nil
}

// RecordHTTPRequest counts one request. route is the matched pattern (for
// example /medias/{id}), not the raw path, so ids do not explode the label set.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	labels := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)

	m.HTTPRequests.Add(ctx, 1, labels)
	m.HTTPDuration.Record(ctx, duration.Seconds(), labels)

	if kind := rejectionKind(status); kind != "" {
		m.DomainRejection.Add(ctx, 1, metric.WithAttributes(
			attribute.String("route", route),
			attribute.String("kind", kind),
		))
	}
}

func rejectionKind(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusConflict:
		return "conflict"
	}
	return ""
}
