// Package global provides CLI global flags.
package global

import (
	"github.com/gruntwork-io/assetsel/cli/flags"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/gruntwork-io/assetsel/pkg/log"
	"github.com/urfave/cli/v2"
)

const (
	// Logs related flags.

	LogLevelFlagName  = "log-level"
	LogFormatFlagName = "log-format"
	NoColorFlagName   = "no-color"

	// Telemetry flags.

	TelemetryTraceExporterFlagName                  = "telemetry-trace-exporter"
	TelemetryTraceExporterInsecureEndpointFlagName  = "telemetry-trace-exporter-insecure-endpoint"
	TelemetryTraceExporterHTTPEndpointFlagName      = "telemetry-trace-exporter-http-endpoint"
	TraceparentFlagName                             = "traceparent"
	TelemetryMetricExporterFlagName                 = "telemetry-metric-exporter"
	TelemetryMetricExporterInsecureEndpointFlagName = "telemetry-metric-exporter-insecure-endpoint"

	traceparentEnvVar = "TRACEPARENT"
)

// NewFlags creates and returns global flags common for all commands.
func NewFlags(opts *options.Options) []cli.Flag {
	return append(NewLogFlags(opts), NewTelemetryFlags(opts)...)
}

// NewLogFlags creates the flags that configure logging and colored output.
func NewLogFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        LogLevelFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(LogLevelFlagName),
			DefaultText: opts.LogLevel.String(),
			Usage:       "Sets the logging level: " + log.AllLevels.String() + ".",
		},
		&cli.StringFlag{
			Name:        LogFormatFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(LogFormatFlagName),
			Destination: &opts.LogFormat,
			Value:       opts.LogFormat,
			Usage:       "Sets the log format: text, json.",
		},
		&cli.BoolFlag{
			Name:        NoColorFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(NoColorFlagName),
			Destination: &opts.NoColor,
			Usage:       "Disable color output.",
		},
	}
}

// NewTelemetryFlags creates the flags that configure trace and metric exporters.
func NewTelemetryFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        TelemetryTraceExporterFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(TelemetryTraceExporterFlagName),
			Destination: &opts.Telemetry.TraceExporter,
			Usage:       "Enables telemetry tracing: none, console, otlpHttp, otlpGrpc, http.",
		},
		&cli.StringFlag{
			Name:        TelemetryTraceExporterHTTPEndpointFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(TelemetryTraceExporterHTTPEndpointFlagName),
			Destination: &opts.Telemetry.TraceExporterHTTPEndpoint,
			Usage:       "Endpoint of the http trace exporter.",
		},
		&cli.BoolFlag{
			Name:        TelemetryTraceExporterInsecureEndpointFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(TelemetryTraceExporterInsecureEndpointFlagName),
			Destination: &opts.Telemetry.TraceExporterInsecureEndpoint,
			Usage:       "Use an insecure connection to the trace exporter endpoint.",
		},
		&cli.StringFlag{
			Name:        TraceparentFlagName,
			EnvVars:     append(flags.EnvVarsWithPrefix(TraceparentFlagName), traceparentEnvVar),
			Destination: &opts.Telemetry.TraceParent,
			Usage:       "Parent trace in W3C traceparent form.",
		},
		&cli.StringFlag{
			Name:        TelemetryMetricExporterFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(TelemetryMetricExporterFlagName),
			Destination: &opts.Telemetry.MetricExporter,
			Usage:       "Enables telemetry metrics: none, console, otlpHttp, grpcHttp.",
		},
		&cli.BoolFlag{
			Name:        TelemetryMetricExporterInsecureEndpointFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(TelemetryMetricExporterInsecureEndpointFlagName),
			Destination: &opts.Telemetry.MetricExporterInsecureEndpoint,
			Usage:       "Use an insecure connection to the metric exporter endpoint.",
		},
	}
}
