// Package common provides the steps shared by the commands that parse selections and load asset graphs.
package common

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gruntwork-io/assetsel/config"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/internal/telemetry"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/gruntwork-io/assetsel/pkg/graph"
	"github.com/gruntwork-io/assetsel/pkg/selection"
	"golang.org/x/term"
)

const (
	// ExitCodeGeneralError is returned for any failure other than a rejected selection.
	ExitCodeGeneralError = 1
	// ExitCodeSelectionRejected is returned when the selection string fails to lex or parse.
	ExitCodeSelectionRejected = 2
)

// MissingSelectionError is returned when a command is run without a selection argument.
type MissingSelectionError struct {
	Command string
}

func (err MissingSelectionError) Error() string {
	return fmt.Sprintf("the %s command requires a selection argument, e.g. 'assetsel %s \"key:my_asset+\"'", err.Command, err.Command)
}

// UseColor reports whether output written to writer should be colored.
func UseColor(opts *options.Options, writer io.Writer) bool {
	if opts.NoColor {
		return false
	}

	file, ok := writer.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

// ParseSelection parses the selection in opts. A rejected selection is printed as a diagnostic
// to the error writer and returned with ExitCodeSelectionRejected.
func ParseSelection(ctx context.Context, opts *options.Options) (selection.Expression, selection.Selection, error) {
	var (
		expr selection.Expression
		sel  selection.Selection
	)

	err := selection.TraceSelectionParse(ctx, opts.Selection, func(_ context.Context) error {
		var err error

		if expr, err = selection.Parse(opts.Selection); err != nil {
			return err
		}

		sel, err = selection.Build(expr, selection.WithIncludeSources(opts.IncludeSources))

		return err
	})
	if err != nil {
		if selection.IsRejected(err) {
			fmt.Fprint(opts.ErrWriter, selection.FormatDiagnostic(err, UseColor(opts, opts.ErrWriter)))

			return nil, nil, errors.ErrorWithExitCode{Err: err, ExitCode: ExitCodeSelectionRejected}
		}

		return nil, nil, err
	}

	opts.Logger.Debugf("Parsed selection %s", sel)

	return expr, sel, nil
}

// LoadGraph loads the asset graph from the definition files in opts.
func LoadGraph(ctx context.Context, opts *options.Options) (*graph.AssetGraph, error) {
	return config.LoadGraph(ctx, opts.Logger, opts.GraphFiles,
		config.WithDiagnosticsWriter(opts.ErrWriter, !UseColor(opts, opts.ErrWriter)))
}

// Traced runs fn inside a telemetry span named after command, tagged with the run id.
func Traced(ctx context.Context, opts *options.Options, command string, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, "assetsel_"+command, map[string]any{
		"command": command,
		"run_id":  opts.RunID,
	}, fn)
}
