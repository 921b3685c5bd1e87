package selection

import (
	"context"

	"github.com/gruntwork-io/assetsel/internal/telemetry"
)

// Telemetry operation names.
const (
	TelemetryOpSelectionParse    = "selection_parse"
	TelemetryOpSelectionEvaluate = "selection_evaluate"
	TelemetryOpGraphTraverse     = "graph_traverse"
)

// Telemetry attribute keys.
const (
	AttrSelectionQuery     = "selection.query"
	AttrTraverseDirection  = "traverse.direction"
	AttrTraverseDepth      = "traverse.depth"
	AttrTraverseStartCount = "traverse.start_count"
)

// TraceSelectionParse wraps selection parsing with telemetry.
// The underlying Telemeter.Collect handles nil/unconfigured telemetry gracefully.
func TraceSelectionParse(ctx context.Context, query string, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpSelectionParse, map[string]any{
		AttrSelectionQuery: query,
	}, fn)
}

// TraceSelectionEvaluate wraps selection evaluation with telemetry.
func TraceSelectionEvaluate(ctx context.Context, query string, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpSelectionEvaluate, map[string]any{
		AttrSelectionQuery: query,
	}, fn)
}

// TraceGraphTraverse wraps a breadth first graph traversal with telemetry.
func TraceGraphTraverse(ctx context.Context, direction string, depth Depth, startCount int, fn func(ctx context.Context) error) error {
	return telemetry.TelemeterFromContext(ctx).Collect(ctx, TelemetryOpGraphTraverse, map[string]any{
		AttrTraverseDirection:  direction,
		AttrTraverseDepth:      depth.String(),
		AttrTraverseStartCount: startCount,
	}, fn)
}
