// Package options provides a set of options that configure the behavior of the assetsel program.
package options

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/internal/telemetry"
	"github.com/gruntwork-io/assetsel/pkg/log"
)

const ContextKey ctxKey = iota

const (
	// OutputFormatText prints one asset per line.
	OutputFormatText = "text"
	// OutputFormatJSON prints a single JSON document.
	OutputFormatJSON = "json"

	defaultLogLevel  = log.InfoLevel
	defaultLogFormat = log.TextFormat
)

// OutputFormats lists the supported values of Options.OutputFormat.
var OutputFormats = []string{OutputFormatText, OutputFormatJSON}

type ctxKey byte

// Options represents options that configure the behavior of the assetsel program.
type Options struct {
	Logger    log.Logger
	Writer    io.Writer
	ErrWriter io.Writer

	// Telemetry configures the trace and metric exporters.
	Telemetry *telemetry.Options

	// RunID identifies this invocation in logs and spans.
	RunID string

	// Selection is the query given on the command line.
	Selection string

	// OutputFormat is either text or json.
	OutputFormat string

	LogFormat string

	// GraphFiles are the definition files the asset graph is loaded from.
	GraphFiles []string

	LogLevel log.Level

	// IncludeSources makes `*` and `not` cover external source assets.
	IncludeSources bool

	// Explain prints the analysis of the selection for the parse command.
	Explain bool

	NoColor bool
}

// NewOptions creates a new Options object with reasonable defaults for real usage.
func NewOptions() *Options {
	return NewOptionsWithWriters(os.Stdout, os.Stderr)
}

// NewOptionsWithWriters creates Options that print results to stdout and diagnostics to stderr.
func NewOptionsWithWriters(stdout, stderr io.Writer) *Options {
	return &Options{
		Logger:         log.New(log.WithOutput(stderr), log.WithLevel(defaultLogLevel)),
		Writer:         stdout,
		ErrWriter:      stderr,
		Telemetry:      &telemetry.Options{},
		RunID:          uuid.NewString(),
		OutputFormat:   OutputFormatText,
		LogFormat:      defaultLogFormat,
		LogLevel:       defaultLogLevel,
		IncludeSources: true,
	}
}

// Clone returns a copy of opts that can be modified without affecting the original.
func (opts *Options) Clone() *Options {
	newOpts := *opts
	newOpts.GraphFiles = slices.Clone(opts.GraphFiles)

	if opts.Logger != nil {
		newOpts.Logger = opts.Logger.Clone()
	}

	if opts.Telemetry != nil {
		telemetryOpts := *opts.Telemetry
		newOpts.Telemetry = &telemetryOpts
	}

	return &newOpts
}

// Validate reports every invalid setting at once.
func (opts *Options) Validate() error {
	var errs []error

	if !slices.Contains(OutputFormats, opts.OutputFormat) {
		errs = append(errs, errors.Errorf("invalid output format %q, supported formats: %s", opts.OutputFormat, strings.Join(OutputFormats, ", ")))
	}

	if _, err := log.ParseFormat(opts.LogFormat); err != nil {
		errs = append(errs, err)
	}

	for _, file := range opts.GraphFiles {
		if strings.TrimSpace(file) == "" {
			errs = append(errs, errors.New("graph file path must not be empty"))
		}
	}

	if opts.Writer == nil || opts.ErrWriter == nil {
		errs = append(errs, errors.New("output writers must be set"))
	}

	return errors.Join(errs...)
}

// ContextWithOptions returns a child context carrying opts.
func ContextWithOptions(ctx context.Context, opts *Options) context.Context {
	return context.WithValue(ctx, ContextKey, opts)
}

// OptionsFromContext returns the options stored in ctx, or nil.
func OptionsFromContext(ctx context.Context) *Options {
	if opts, ok := ctx.Value(ContextKey).(*Options); ok {
		return opts
	}

	return nil
}

// String renders the settings that affect results, for debug logging.
func (opts *Options) String() string {
	return fmt.Sprintf("run-id=%s graph-files=%v output-format=%s include-sources=%t", opts.RunID, opts.GraphFiles, opts.OutputFormat, opts.IncludeSources)
}
