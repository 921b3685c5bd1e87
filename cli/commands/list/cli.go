// Package list provides the `assetsel list` command, which prints every asset of the loaded graph.
package list

import (
	"context"

	"github.com/gruntwork-io/assetsel/cli/commands/common"
	"github.com/gruntwork-io/assetsel/cli/flags/shared"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/urfave/cli/v2"
)

const (
	CommandName  = "list"
	CommandAlias = "ls"
)

func NewFlags(opts *options.Options) []cli.Flag {
	return []cli.Flag{
		shared.NewGraphFlag(opts),
		shared.NewFormatFlag(opts),
	}
}

func NewCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:    CommandName,
		Aliases: []string{CommandAlias},
		Usage:   "List every asset of the graph with its attributes.",
		Flags:   NewFlags(opts),
		Action: errors.WithPanicHandling(func(ctx *cli.Context) error {
			if err := opts.Validate(); err != nil {
				return err
			}

			return common.Traced(ctx.Context, opts, CommandName, func(ctx context.Context) error {
				return Run(ctx, opts)
			})
		}),
	}
}
