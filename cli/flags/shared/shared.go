// Package shared provides flags that are used by more than one command.
package shared

import (
	"slices"
	"strings"

	"github.com/gruntwork-io/assetsel/cli/flags"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/urfave/cli/v2"
)

const (
	GraphFlagName  = "graph"
	GraphFlagAlias = "g"

	FormatFlagName = "format"

	ExcludeSourcesFlagName = "exclude-sources"
)

// NewGraphFlag creates the repeatable --graph flag naming the definition files to load.
func NewGraphFlag(opts *options.Options) cli.Flag {
	return &cli.StringSliceFlag{
		Name:    GraphFlagName,
		Aliases: []string{GraphFlagAlias},
		EnvVars: flags.EnvVarsWithPrefix(GraphFlagName),
		Usage:   "Path to an asset graph definition file (.hcl, .json, .yaml). May be repeated.",
		Action: func(_ *cli.Context, paths []string) error {
			opts.GraphFiles = paths
			return nil
		},
	}
}

// NewFormatFlag creates the --format flag.
func NewFormatFlag(opts *options.Options) cli.Flag {
	return &cli.StringFlag{
		Name:        FormatFlagName,
		EnvVars:     flags.EnvVarsWithPrefix(FormatFlagName),
		Destination: &opts.OutputFormat,
		Value:       opts.OutputFormat,
		Usage:       "Output format. Valid values: " + strings.Join(options.OutputFormats, ", ") + ".",
		Action: func(_ *cli.Context, val string) error {
			if !slices.Contains(options.OutputFormats, val) {
				return errors.Errorf("invalid --%s %q, supported formats: %s", FormatFlagName, val, strings.Join(options.OutputFormats, ", "))
			}

			return nil
		},
	}
}

// NewExcludeSourcesFlag creates the --exclude-sources flag.
func NewExcludeSourcesFlag(opts *options.Options) cli.Flag {
	return &cli.BoolFlag{
		Name:    ExcludeSourcesFlagName,
		EnvVars: flags.EnvVarsWithPrefix(ExcludeSourcesFlagName),
		Usage:   "Do not let '*' and 'not' select external source assets.",
		Action: func(_ *cli.Context, exclude bool) error {
			opts.IncludeSources = !exclude
			return nil
		},
	}
}
