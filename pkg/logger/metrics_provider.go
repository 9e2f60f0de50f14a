package logger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.31.0"
	"google.golang.org/grpc/credentials"
)

var ErrOTelMetricsDisabled = errors.New("OTel metrics exporter disabled")

const (
	defaultServiceName    = "sdatamanager"
	defaultExportInterval = 15 * time.Second
)

//nolint:gochecknoglobals // one exporter per process, flushed by Shutdown
var (
	meterProvider *sdkmetric.MeterProvider
	meterMu       sync.Mutex
)

// MetricsConfig describes the OTLP/gRPC metrics exporter. Attributes are
// attached to the resource so every series carries the node identity.
type MetricsConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Insecure       bool
	Headers        map[string]string
	TLS            *TLSConfig
	ExportInterval time.Duration
	Attributes     map[string]string
}

// InitializeMetrics installs a periodic OTLP MeterProvider as the otel global.
// A second call returns the provider from the first.
func InitializeMetrics(ctx context.Context, config MetricsConfig) (*sdkmetric.MeterProvider, error) {
	if strings.TrimSpace(config.Endpoint) == "" {
		return nil, ErrOTelMetricsDisabled
	}

	meterMu.Lock()
	defer meterMu.Unlock()

	if meterProvider != nil {
		return meterProvider, nil
	}

	opts, err := metricExporterOptions(config)
	if err != nil {
		return nil, err
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(metricResourceAttributes(config)...))
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics resource: %w", err)
	}

	interval := config.ExportInterval
	if interval <= 0 {
		interval = defaultExportInterval
	}

	meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(meterProvider)

	return meterProvider, nil
}

func metricExporterOptions(config MetricsConfig) ([]otlpmetricgrpc.Option, error) {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(strings.TrimSpace(config.Endpoint)),
	}

	switch {
	case config.Insecure:
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	case config.TLS != nil:
		tlsConfig, err := setupTLSConfig(config.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to setup metrics TLS configuration: %w", err)
		}

		opts = append(opts, otlpmetricgrpc.WithTLSCredentials(credentials.NewTLS(tlsConfig)))
	}

	if len(config.Headers) > 0 {
		opts = append(opts, otlpmetricgrpc.WithHeaders(config.Headers))
	}

	return opts, nil
}

// metricResourceAttributes returns service name and version followed by the
// configured attributes in key order. Blank values are dropped.
func metricResourceAttributes(config MetricsConfig) []attribute.KeyValue {
	serviceName := config.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(config.ServiceVersion),
	}

	keys := make([]string, 0, len(config.Attributes))
	for k, v := range config.Attributes {
		if strings.TrimSpace(v) != "" {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	for _, k := range keys {
		attrs = append(attrs, attribute.String(k, config.Attributes[k]))
	}

	return attrs
}

func shutdownMeterProvider(ctx context.Context) error {
	meterMu.Lock()
	defer meterMu.Unlock()

	if meterProvider == nil {
		return nil
	}

	err := meterProvider.Shutdown(ctx)
	meterProvider = nil

	return err
}
