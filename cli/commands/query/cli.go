// Package query provides the `assetsel query` command, which prints the assets a selection matches.
package query

import (
	"context"

	"github.com/gruntwork-io/assetsel/cli/commands/common"
	"github.com/gruntwork-io/assetsel/cli/flags/shared"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName  = "query"
	CommandAlias = "select"
)

func NewFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		shared.NewGraphFlag(opts),
		shared.NewFormatFlag(opts),
		shared.NewExcludeSourcesFlag(opts),
	}
}

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:      CommandName,
		Aliases:   []string{CommandAlias},
		Usage:     "Print the assets matched by a selection.",
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
