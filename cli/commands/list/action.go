package list

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/gruntwork-io/assetsel/cli/commands/common"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/gruntwork-io/assetsel/pkg/graph"
	"github.com/mgutz/ansi"
)

// Asset is the printable form of a graph node.
type Asset struct {
	Tags         map[string]string `json:"tags,omitempty"`
	Key          string            `json:"key"`
	Group        string            `json:"group,omitempty"`
	CodeLocation string            `json:"code_location,omitempty"`
	Owners       []string          `json:"owners,omitempty"`
	Kinds        []string          `json:"kinds,omitempty"`
	Deps         []string          `json:"deps,omitempty"`
	External     bool              `json:"external,omitempty"`
}

func Run(ctx context.Context, opts *options.Options) error {
	assetGraph, err := common.LoadGraph(ctx, opts)
	if err != nil {
		return err
	}

	assets, err := listAssets(assetGraph)
	if err != nil {
		return err
	}

	switch opts.OutputFormat {
	case options.OutputFormatJSON:
		return outputJSON(opts.Writer, assets)
	case options.OutputFormatText:
		return outputText(opts.Writer, assets, common.UseColor(opts, opts.Writer))
	default:
		return errors.New("invalid format: " + opts.OutputFormat)
	}
}

// listAssets returns every node sorted by key.
func listAssets(g graph.Graph) ([]*Asset, error) {
	keys, err := g.Keys()
	if err != nil {
		return nil, err
	}

	assets := make([]*Asset, 0, len(keys))

	for _, key := range graph.NewKeySet(keys...).Keys() {
		node, err := g.Node(key)
		if err != nil {
			return nil, err
		}

		upstream, err := g.Upstream(key)
		if err != nil {
			return nil, err
		}

		deps := make([]string, 0, len(upstream))
		for _, dep := range upstream {
			deps = append(deps, string(dep))
		}

		assets = append(assets, &Asset{
			Key:          string(node.Key),
			Group:        node.Group,
			CodeLocation: node.CodeLocation,
			Tags:         node.Tags,
			Owners:       node.Owners,
			Kinds:        node.Kinds,
			Deps:         deps,
			External:     node.External,
		})
	}

	return assets, nil
}

func outputJSON(w io.Writer, assets []*Asset) error {
	jsonBytes, err := json.MarshalIndent(assets, "", "  ")
	if err != nil {
		return errors.New(err)
	}

	if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
		return errors.New(err)
	}

	return nil
}

func outputText(w io.Writer, assets []*Asset, shouldColor bool) error {
	paint := func(text, _ string) string { return text }
	if shouldColor {
		paint = ansi.Color
	}

	for _, asset := range assets {
		line := paint(asset.Key, "blue+bh")
		if attrs := formatAttributes(asset); attrs != "" {
			line += " " + paint(attrs, "white+d")
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return errors.New(err)
		}
	}

	return nil
}

// formatAttributes renders the set attributes of asset in selection syntax, e.g. `group:g owner:o`.
func formatAttributes(asset *Asset) string {
	var parts []string

	if asset.External {
		parts = append(parts, "[source]")
	}

	if asset.CodeLocation != "" {
		parts = append(parts, "code_location:"+asset.CodeLocation)
	}

	if asset.Group != "" {
		parts = append(parts, "group:"+asset.Group)
	}

	for _, owner := range asset.Owners {
		parts = append(parts, fmt.Sprintf("owner:%q", owner))
	}

	for _, kind := range asset.Kinds {
		parts = append(parts, "kind:"+kind)
	}

	for _, key := range slices.Sorted(maps.Keys(asset.Tags)) {
		if value := asset.Tags[key]; value != "" {
			parts = append(parts, fmt.Sprintf("tag:%s=%s", key, value))
		} else {
			parts = append(parts, "tag:"+key)
		}
	}

	if len(asset.Deps) > 0 {
		parts = append(parts, "deps:"+strings.Join(asset.Deps, ","))
	}

	return strings.Join(parts, " ")
}
