package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/gruntwork-io/assetsel/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
)

func TestNewTraceExporter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		opts         telemetry.Options
		expectedType any
		expectNil    bool
		expectErr    bool
	}{
		{
			name:      "none",
			opts:      telemetry.Options{TraceExporter: "none"},
			expectNil: true,
		},
		{
			name:      "empty",
			opts:      telemetry.Options{},
			expectNil: true,
		},
		{
			name:         "console",
			opts:         telemetry.Options{TraceExporter: "console"},
			expectedType: &stdouttrace.Exporter{},
		},
		{
			name:         "otlp http",
			opts:         telemetry.Options{TraceExporter: "otlpHttp", TraceExporterInsecureEndpoint: true},
			expectedType: &otlptrace.Exporter{},
		},
		{
			name:         "otlp grpc",
			opts:         telemetry.Options{TraceExporter: "otlpGrpc", TraceExporterInsecureEndpoint: true},
			expectedType: &otlptrace.Exporter{},
		},
		{
			name:         "http with endpoint",
			opts:         telemetry.Options{TraceExporter: "http", TraceExporterHTTPEndpoint: "localhost:4318"},
			expectedType: &otlptrace.Exporter{},
		},
		{
			name:      "http without endpoint",
			opts:      telemetry.Options{TraceExporter: "http"},
			expectErr: true,
		},
		{
			name:      "unknown",
			opts:      telemetry.Options{TraceExporter: "zipkin"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			exporter, err := telemetry.NewTraceExporter(context.Background(), &bytes.Buffer{}, &tc.opts)
			if tc.expectErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)

			if tc.expectNil {
				assert.Nil(t, exporter)
				return
			}

			assert.IsType(t, tc.expectedType, exporter)
		})
	}
}

func TestNewMetricsExporter(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		opts         telemetry.Options
		expectedType any
		expectNil    bool
	}{
		{
			name:         "otlp http",
			opts:         telemetry.Options{MetricExporter: "otlpHttp"},
			expectedType: &otlpmetrichttp.Exporter{},
		},
		{
			name:         "grpc http",
			opts:         telemetry.Options{MetricExporter: "grpcHttp", MetricExporterInsecureEndpoint: true},
			expectedType: &otlpmetricgrpc.Exporter{},
		},
		{
			name:      "none",
			opts:      telemetry.Options{MetricExporter: "none"},
			expectNil: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			exporter, err := telemetry.NewMetricsExporter(context.Background(), &bytes.Buffer{}, &tc.opts)
			require.NoError(t, err)

			if tc.expectNil {
				assert.Nil(t, exporter)
				return
			}

			assert.IsType(t, tc.expectedType, exporter)
		})
	}
}

func TestConsoleMetricsExporter(t *testing.T) {
	t.Parallel()

	exporter, err := telemetry.NewMetricsExporter(context.Background(), &bytes.Buffer{}, &telemetry.Options{MetricExporter: "console"})
	require.NoError(t, err)
	require.NotNil(t, exporter)

	assert.NoError(t, exporter.Shutdown(context.Background()))
}

func TestParseTraceParent(t *testing.T) {
	t.Parallel()

	spanContext, err := telemetry.ParseTraceParent("00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01")
	require.NoError(t, err)

	assert.True(t, spanContext.IsValid())
	assert.True(t, spanContext.IsRemote())
	assert.True(t, spanContext.IsSampled())
	assert.Equal(t, "0af7651916cd43dd8448eb211c80319c", spanContext.TraceID().String())
	assert.Equal(t, "b7ad6b7169203331", spanContext.SpanID().String())

	spanContext, err = telemetry.ParseTraceParent("00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-00")
	require.NoError(t, err)
	assert.False(t, spanContext.IsSampled())

	_, err = telemetry.ParseTraceParent("00-abc")
	require.Error(t, err)

	var parentErr *telemetry.ErrorInvalidTraceParent
	require.ErrorAs(t, err, &parentErr)

	_, err = telemetry.ParseTraceParent("00-zz-b7ad6b7169203331-01")
	require.Error(t, err)
}

func TestCollectWithoutExporters(t *testing.T) {
	t.Parallel()

	tlm, err := telemetry.NewTelemeter(context.Background(), "assetsel", "test", &bytes.Buffer{}, &telemetry.Options{})
	require.NoError(t, err)
	assert.Nil(t, tlm.Tracer)
	assert.Nil(t, tlm.Meter)

	called := false
	err = tlm.Collect(context.Background(), "noop", nil, func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	expected := errors.New("boom")
	err = telemetry.TelemeterFromContext(context.Background()).Collect(context.Background(), "noop", nil, func(ctx context.Context) error {
		return expected
	})
	require.ErrorIs(t, err, expected)

	require.NoError(t, tlm.Shutdown(context.Background()))
}

func TestCollectWithConsoleTracer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	tlm, err := telemetry.NewTelemeter(context.Background(), "assetsel", "test", &buf, &telemetry.Options{
		TraceExporter: "console",
		TraceParent:   "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01",
	})
	require.NoError(t, err)
	require.NotNil(t, tlm.Tracer)

	ctx := telemetry.ContextWithTelemeter(context.Background(), tlm)

	var traceParent string

	err = telemetry.TelemeterFromContext(ctx).Collect(ctx, "selection evaluate", map[string]any{"query": "key:a"}, func(ctx context.Context) error {
		traceParent = telemetry.TraceParentFromContext(ctx)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, traceParent, "0af7651916cd43dd8448eb211c80319c")

	require.NoError(t, tlm.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "selection evaluate")
}

func TestCleanMetricName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{input: "selection evaluate", expected: "selection_evaluate"},
		{input: "__graph--traverse__", expected: "graph_traverse"},
		{input: "parse", expected: "parse"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, telemetry.CleanMetricName(tc.input))
		})
	}
}
