package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitializeMetricsRequiresEndpoint(t *testing.T) {
	provider, err := InitializeMetrics(context.Background(), MetricsConfig{Endpoint: "  ", Insecure: true})
	require.ErrorIs(t, err, ErrOTelMetricsDisabled)
	assert.Nil(t, provider)
}

func TestMetricResourceAttributes(t *testing.T) {
	attrs := metricResourceAttributes(MetricsConfig{
		ServiceVersion: "v1.2.3",
		Attributes: map[string]string{
			"sdatamanager.node_role":     "member",
			"sdatamanager.chain_account": "cTNode1",
			"sdatamanager.group_account": "",
		},
	})

	require.Len(t, attrs, 4)
	assert.Equal(t, attribute.Key("service.name"), attrs[0].Key)
	assert.Equal(t, "sdatamanager", attrs[0].Value.AsString())
	assert.Equal(t, "v1.2.3", attrs[1].Value.AsString())
	assert.Equal(t, attribute.String("sdatamanager.chain_account", "cTNode1"), attrs[2])
	assert.Equal(t, attribute.String("sdatamanager.node_role", "member"), attrs[3])
}

func TestMetricExporterOptions(t *testing.T) {
	opts, err := metricExporterOptions(MetricsConfig{
		Endpoint: "otel-collector:4317",
		Insecure: true,
		Headers:  map[string]string{"x-tenant": "crust"},
	})
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	opts, err = metricExporterOptions(MetricsConfig{Endpoint: "otel-collector:4317"})
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestMetricExporterOptionsBadTLS(t *testing.T) {
	_, err := metricExporterOptions(MetricsConfig{
		Endpoint: "otel-collector:4317",
		TLS:      &TLSConfig{CAFile: "/nonexistent/ca.pem"},
	})
	require.Error(t, err)
}
