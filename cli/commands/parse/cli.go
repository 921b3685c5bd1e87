// Package parse provides the `assetsel parse` command, which prints how a selection is understood without loading a graph.
package parse

import (
	"context"

	"github.com/gruntwork-io/assetsel/cli/commands/common"
	"github.com/gruntwork-io/assetsel/cli/flags"
	"github.com/gruntwork-io/assetsel/cli/flags/shared"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName = "parse"

	ExplainFlagName = "explain"
)

func NewFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		shared.NewFormatFlag(opts),
		shared.NewExcludeSourcesFlag(opts),
		&cli.BoolFlag{
			Name:        ExplainFlagName,
			EnvVars:     flags.EnvVarsWithPrefix(ExplainFlagName),
			Destination: &opts.Explain,
			Usage:       "Also print what evaluating the selection involves.",
		},
	}
}

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Usage:     "Print the syntax tree and selection built from a selection string.",
		ArgsUsage: "<selection>",
		Flags:     NewFlags(opts),
		Action: errors.WithPanicHandling(func(ctx *cli.Context) error {
			if !ctx.Args().Present() {
				return errors.New(common.MissingSelectionError{Command: CommandName})
			}

			opts.Selection = ctx.Args().First()

			if err := opts.Validate(); err != nil {
				return err
			}

			return common.Traced(ctx.Context, opts, CommandName, func(ctx context.Context) error {
				return Run(ctx, opts)
			})
		}),
	}
}
