package main

import (
	"context"
	"os"

	"github.com/gruntwork-io/assetsel/cli"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/gruntwork-io/assetsel/pkg/log"
	"github.com/gruntwork-io/assetsel/pkg/selection"
)

// The main entrypoint for assetsel
func main() {
	opts := options.NewOptions()

	defer errors.Recover(checkForErrorsAndExit(opts))

	app := cli.NewApp(opts)

	ctx := log.ContextWithLogger(context.Background(), opts.Logger)
	err := app.RunContext(ctx, os.Args)

	checkForErrorsAndExit(opts)(err)
}

// If there is an error, display it in the console and exit with a non-zero exit code. Otherwise, exit 0.
func checkForErrorsAndExit(opts *options.Options) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		// rejected selections have already been printed as a diagnostic
		if !selection.IsRejected(err) {
			opts.Logger.Error(err.Error())
		}

		if errStack := errors.ErrorStack(err); errStack != "" {
			opts.Logger.Trace(errStack)
		}

		os.Exit(errors.ExitCode(err))
	}
}
