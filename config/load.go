package config

import (
	"context"

	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/internal/telemetry"
	"github.com/gruntwork-io/assetsel/pkg/graph"
	"github.com/gruntwork-io/assetsel/pkg/log"
	"golang.org/x/sync/errgroup"
)

const telemetryOpGraphLoad = "graph_load"

// LoadGraph decodes every file in paths concurrently and merges them into one asset graph.
// Failures from all files are reported together.
func LoadGraph(ctx context.Context, l log.Logger, paths []string, opts ...Option) (*graph.AssetGraph, error) {
	if len(paths) == 0 {
		return nil, errors.New(NoGraphFilesError{})
	}

	var assetGraph *graph.AssetGraph

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, telemetryOpGraphLoad, map[string]any{
		"graph.files": len(paths),
	}, func(ctx context.Context) error {
		defs, err := parseGraphFiles(ctx, l, paths, opts...)
		if err != nil {
			return err
		}

		var (
			nodes []*graph.Node
			deps  = map[graph.NodeKey][]graph.NodeKey{}
		)

		for _, def := range defs {
			defNodes, defDeps := def.Nodes()
			nodes = append(nodes, defNodes...)

			for key, upstream := range defDeps {
				deps[key] = append(deps[key], upstream...)
			}
		}

		assetGraph, err = graph.NewAssetGraph(nodes, deps)

		return err
	})
	if err != nil {
		return nil, err
	}

	l.Debugf("Loaded %d assets from %d files", assetGraph.Len(), len(paths))

	return assetGraph, nil
}

func parseGraphFiles(ctx context.Context, l log.Logger, paths []string, opts ...Option) ([]*GraphDefinition, error) {
	cfg := newLoadConfig(opts...)

	// resolve the environment once for every file
	opts = append(opts, WithEnv(cfg.env))

	var (
		defs = make([]*GraphDefinition, len(paths))
		errs = make([]error, len(paths))
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.concurrency)

	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.New(err)
			}

			defs[i], errs[i] = ParseGraphFile(l, path, opts...)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	var multiErr *errors.MultiError

	for _, err := range errs {
		if err != nil {
			multiErr = multiErr.Append(err)
		}
	}

	if err := multiErr.ErrorOrNil(); err != nil {
		return nil, err
	}

	return defs, nil
}
