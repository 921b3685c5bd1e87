// Package config reads asset graph definitions from HCL, JSON and YAML files.
package config

import (
	"path/filepath"
	"strings"

	"github.com/gruntwork-io/assetsel/pkg/graph"
)

// GraphDefinition is the decoded content of a single definition file.
type GraphDefinition struct {
	// CodeLocation applies to every asset in the file that does not set its own. Defaults to the file stem.
	CodeLocation string             `hcl:"code_location,optional" mapstructure:"code_location"`
	Assets       []*AssetDefinition `hcl:"asset,block" mapstructure:"assets"`
	Path         string             `mapstructure:"-"`
}

// AssetDefinition describes one asset and its upstream dependencies.
type AssetDefinition struct {
	Tags         map[string]string `hcl:"tags,optional" mapstructure:"tags"`
	Key          string            `hcl:"key,label" mapstructure:"key"`
	Group        string            `hcl:"group,optional" mapstructure:"group"`
	CodeLocation string            `hcl:"code_location,optional" mapstructure:"code_location"`
	Owners       []string          `hcl:"owners,optional" mapstructure:"owners"`
	Kinds        []string          `hcl:"kinds,optional" mapstructure:"kinds"`
	Deps         []string          `hcl:"deps,optional" mapstructure:"deps"`
}

// DefaultCodeLocation returns the code location assigned to assets of the file at path.
func DefaultCodeLocation(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Nodes converts the definition into graph nodes and their upstream dependencies.
func (def *GraphDefinition) Nodes() ([]*graph.Node, map[graph.NodeKey][]graph.NodeKey) {
	location := def.CodeLocation
	if location == "" {
		location = DefaultCodeLocation(def.Path)
	}

	nodes := make([]*graph.Node, 0, len(def.Assets))
	deps := make(map[graph.NodeKey][]graph.NodeKey, len(def.Assets))

	for _, asset := range def.Assets {
		node := &graph.Node{
			Key:          graph.NodeKey(asset.Key),
			Group:        asset.Group,
			CodeLocation: location,
			Tags:         asset.Tags,
			Owners:       asset.Owners,
			Kinds:        asset.Kinds,
		}

		if asset.CodeLocation != "" {
			node.CodeLocation = asset.CodeLocation
		}

		nodes = append(nodes, node)

		for _, dep := range asset.Deps {
			deps[node.Key] = append(deps[node.Key], graph.NodeKey(dep))
		}
	}

	return nodes, deps
}
