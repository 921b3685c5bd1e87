// Package commands assembles the assetsel subcommands.
package commands

import (
	"github.com/gruntwork-io/assetsel/cli/commands/list"
	"github.com/gruntwork-io/assetsel/cli/commands/parse"
	"github.com/gruntwork-io/assetsel/cli/commands/query"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/urfave/cli/v2"
)

// NewCommands returns every subcommand, sharing opts.
func NewCommands(opts *options.Options) []*cli.Command {
	return []*cli.Command{
		query.NewCommand(opts),
		parse.NewCommand(opts),
		list.NewCommand(opts),
	}
}
