package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gruntwork-io/assetsel/cli/commands/common"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/gruntwork-io/assetsel/pkg/selection"
)

// Result is the JSON document printed with `--format json`.
type Result struct {
	Analysis   *Explanation `json:"analysis,omitempty"`
	Query      string       `json:"query"`
	Expression string       `json:"expression"`
	Selection  string       `json:"selection"`
}

// Explanation is the printable form of selection.Analysis.
type Explanation struct {
	Predicates        []string `json:"predicates"`
	Functions         []string `json:"functions"`
	Direction         string   `json:"direction"`
	UpstreamDepth     string   `json:"upstream_depth"`
	DownstreamDepth   string   `json:"downstream_depth"`
	Negated           bool     `json:"negated"`
	RequiresAdjacency bool     `json:"requires_adjacency"`
}

// NewExplanation converts an analysis for output.
func NewExplanation(analysis selection.Analysis) *Explanation {
	return &Explanation{
		Predicates:        analysis.Predicates,
		Functions:         analysis.Functions,
		Direction:         analysis.Direction.String(),
		UpstreamDepth:     analysis.UpstreamDepth.String(),
		DownstreamDepth:   analysis.DownstreamDepth.String(),
		Negated:           analysis.IsNegated,
		RequiresAdjacency: analysis.RequiresAdjacency,
	}
}

func Run(ctx context.Context, opts *options.Options) error {
	expr, sel, err := common.ParseSelection(ctx, opts)
	if err != nil {
		return err
	}

	result := &Result{
		Query:      opts.Selection,
		Expression: expr.String(),
		Selection:  sel.String(),
	}

	if opts.Explain {
		result.Analysis = NewExplanation(selection.Analyze(sel))
	}

	switch opts.OutputFormat {
	case options.OutputFormatJSON:
		return outputJSON(opts.Writer, result)
	case options.OutputFormatText:
		return outputText(opts.Writer, result)
	default:
		return errors.New("invalid format: " + opts.OutputFormat)
	}
}

func outputJSON(w io.Writer, result *Result) error {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errors.New(err)
	}

	if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
		return errors.New(err)
	}

	return nil
}

func outputText(w io.Writer, result *Result) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "expression: %s\n", result.Expression)
	fmt.Fprintf(&sb, "selection:  %s\n", result.Selection)

	if explain := result.Analysis; explain != nil {
		fmt.Fprintf(&sb, "predicates: %s\n", joinOrNone(explain.Predicates))
		fmt.Fprintf(&sb, "functions:  %s\n", joinOrNone(explain.Functions))
		fmt.Fprintf(&sb, "traversal:  %s (upstream depth %s, downstream depth %s)\n", explain.Direction, explain.UpstreamDepth, explain.DownstreamDepth)
		fmt.Fprintf(&sb, "negated:    %t\n", explain.Negated)
		fmt.Fprintf(&sb, "adjacency:  %t\n", explain.RequiresAdjacency)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.New(err)
	}

	return nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, ", ")
}
