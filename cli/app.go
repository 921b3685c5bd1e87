// Package cli configures the assetsel CLI app and its commands.
package cli

import (
	"os"

	"github.com/gruntwork-io/assetsel/cli/commands"
	"github.com/gruntwork-io/assetsel/cli/flags/global"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/internal/telemetry"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/gruntwork-io/assetsel/pkg/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const AppName = "assetsel"

// Version is overridden at build time with `-ldflags "-X github.com/gruntwork-io/assetsel/cli.Version=..."`.
var Version = "dev"

// NewApp creates the assetsel CLI App.
func NewApp(opts *options.Options) *cli.App {
	var telemeter *telemetry.Telemeter

	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Select assets of a dependency graph with a small query language, e.g. 'tag:team=billing and +key:daily_revenue'."
	app.UsageText = "assetsel <command> [global options] <selection>"
	app.Version = Version
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Flags = global.NewFlags(opts)
	app.Commands = commands.NewCommands(opts)
	app.Before = func(ctx *cli.Context) error {
		return initialSetup(ctx, opts, &telemeter)
	}
	app.After = func(ctx *cli.Context) error {
		return telemeter.Shutdown(ctx.Context)
	}
	cli.OsExiter = osExiter

	return app
}

func initialSetup(ctx *cli.Context, opts *options.Options, telemeter **telemetry.Telemeter) error {
	if ctx.IsSet(global.LogLevelFlagName) {
		level, err := log.ParseLevel(ctx.String(global.LogLevelFlagName))
		if err != nil {
			return err
		}

		opts.LogLevel = level
	}

	formatter, err := log.ParseFormat(opts.LogFormat)
	if err != nil {
		return errors.New(err)
	}

	if opts.NoColor || !isTerminal(opts.ErrWriter) {
		formatter.DisableColors()
	}

	opts.Logger = log.New(
		log.WithOutput(opts.ErrWriter),
		log.WithLevel(opts.LogLevel),
		log.WithFormatter(formatter),
	)

	tlm, err := telemetry.NewTelemeter(ctx.Context, AppName, Version, opts.ErrWriter, opts.Telemetry)
	if err != nil {
		return err
	}

	*telemeter = tlm

	ctx.Context = telemetry.ContextWithTelemeter(ctx.Context, tlm)
	ctx.Context = log.ContextWithLogger(ctx.Context, opts.Logger)
	ctx.Context = options.ContextWithOptions(ctx.Context, opts)

	opts.Logger.WithField(log.FieldKeyRunID, opts.RunID).Debugf("%s version %s", AppName, Version)

	return nil
}

func isTerminal(writer any) bool {
	file, ok := writer.(*os.File)

	return ok && term.IsTerminal(int(file.Fd()))
}

func osExiter(exitCode int) {
	// Do nothing. We just need to override this function, as the default value calls os.Exit, which
	// kills the app (or any automated test) dead in its tracks.
}
