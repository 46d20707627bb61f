package transport

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	constants "cryopush/config"
	"cryopush/internal/catalog"
	"cryopush/internal/collector"
)

// OTLPPusher exports one cycle's samples over OTLP/HTTP. Each Push builds
// a short-lived meter provider, records every sample as a gauge, flushes
// and shuts down; the process is one-shot, so nothing long-lived is kept.
type OTLPPusher struct {
	endpoint string
	insecure bool
}

// NewOTLP creates an OTLP/HTTP pusher
func NewOTLP(endpoint string, insecure bool) (*OTLPPusher, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("OTLP endpoint is empty")
	}
	return &OTLPPusher{endpoint: endpoint, insecure: insecure}, nil
}

// Push exports the samples plus the heartbeat gauge
func (p *OTLPPusher) Push(ctx context.Context, result *collector.Result, instance string) error {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(p.endpoint),
		otlpmetrichttp.WithRetry(otlpmetrichttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     30 * time.Second,
			MaxElapsedTime:  2 * time.Minute,
		}),
		otlpmetrichttp.WithTimeout(constants.PUSH_TIMEOUT_SECONDS * time.Second),
	}
	if p.insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("cryopush"),
		semconv.HostName(instance),
	)

	// Interval far beyond the process lifetime; the explicit ForceFlush
	// below is the only export that happens.
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter,
				sdkmetric.WithInterval(time.Hour),
			),
		),
	)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		provider.Shutdown(shutdownCtx)
	}()

	meter := provider.Meter("cryopush/transport")

	for name, value := range result.Samples {
		gauge, err := meter.Float64Gauge(SafeMetricName(name),
			metric.WithDescription(catalog.Describe(name)),
		)
		if err != nil {
			return fmt.Errorf("failed to create gauge %s: %w", name, err)
		}
		gauge.Record(ctx, value, metric.WithAttributes(
			attribute.String("group", catalog.GroupOf(name)),
			attribute.String("instance", instance),
		))
	}

	heartbeat, err := meter.Float64Gauge(constants.HEARTBEAT_METRIC,
		metric.WithDescription(constants.HEARTBEAT_HELP),
	)
	if err != nil {
		return fmt.Errorf("failed to create heartbeat gauge: %w", err)
	}
	heartbeat.Record(ctx, float64(time.Now().UnixNano())/1e9, metric.WithAttributes(
		attribute.String("instance", instance),
	))

	if err := provider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("OTLP export to %s failed: %w", p.endpoint, err)
	}
	return nil
}
