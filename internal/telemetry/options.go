package telemetry

// Options holds the telemetry configuration assembled from CLI flags and environment variables.
type Options struct {
	// TraceExporter is one of none, console, otlpHttp, otlpGrpc, http.
	TraceExporter                 string
	TraceExporterHTTPEndpoint     string
	TraceExporterInsecureEndpoint bool
	// TraceParent propagates an external trace, in W3C traceparent form.
	TraceParent string

	// MetricExporter is one of none, console, otlpHttp, grpcHttp.
	MetricExporter                 string
	MetricExporterInsecureEndpoint bool
}
