package query

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gruntwork-io/assetsel/cli/commands/common"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/gruntwork-io/assetsel/pkg/graph"
	"github.com/gruntwork-io/assetsel/pkg/selection"
	"github.com/mgutz/ansi"
)

// Result is the JSON document printed with `--format json`.
type Result struct {
	Selection string   `json:"selection"`
	Assets    []string `json:"assets"`
}

func Run(ctx context.Context, opts *options.Options) error {
	_, sel, err := common.ParseSelection(ctx, opts)
	if err != nil {
		return err
	}

	assetGraph, err := common.LoadGraph(ctx, opts)
	if err != nil {
		return err
	}

	keys, err := selection.Evaluate(ctx, opts.Logger, sel, assetGraph)
	if err != nil {
		return err
	}

	opts.Logger.Debugf("Selection %q matched %d of %d assets", opts.Selection, keys.Len(), assetGraph.Len())

	switch opts.OutputFormat {
	case options.OutputFormatJSON:
		return outputJSON(opts.Writer, opts.Selection, keys)
	case options.OutputFormatText:
		return outputText(opts.Writer, assetGraph, keys, NewColorizer(common.UseColor(opts, opts.Writer)))
	default:
		return errors.New("invalid format: " + opts.OutputFormat)
	}
}

func outputJSON(w io.Writer, query string, keys *graph.KeySet) error {
	jsonBytes, err := json.MarshalIndent(Result{Selection: query, Assets: keys.Strings()}, "", "  ")
	if err != nil {
		return errors.New(err)
	}

	if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
		return errors.New(err)
	}

	return nil
}

func outputText(w io.Writer, assetGraph graph.Graph, keys *graph.KeySet, colorizer *Colorizer) error {
	for _, key := range keys.Keys() {
		node, err := assetGraph.Node(key)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintln(w, colorizer.Colorize(node)); err != nil {
			return errors.New(err)
		}
	}

	return nil
}

// Colorizer paints asset keys by kind of asset.
type Colorizer struct {
	assetColorizer    func(string) string
	sourceColorizer   func(string) string
	locationColorizer func(string) string
}

// NewColorizer returns a Colorizer, or one that leaves text untouched when color is off.
func NewColorizer(shouldColor bool) *Colorizer {
	if !shouldColor {
		return &Colorizer{
			assetColorizer:    func(s string) string { return s },
			sourceColorizer:   func(s string) string { return s },
			locationColorizer: func(s string) string { return s },
		}
	}

	return &Colorizer{
		assetColorizer:    ansi.ColorFunc("blue+bh"),
		sourceColorizer:   ansi.ColorFunc("yellow+h"),
		locationColorizer: ansi.ColorFunc("white+d"),
	}
}

// Colorize renders `key (code_location)`, marking external sources.
func (c *Colorizer) Colorize(node *graph.Node) string {
	key := c.assetColorizer(string(node.Key))
	if node.External {
		key = c.sourceColorizer(string(node.Key) + " [source]")
	}

	if node.CodeLocation == "" {
		return key
	}

	return key + " " + c.locationColorizer("("+node.CodeLocation+")")
}
