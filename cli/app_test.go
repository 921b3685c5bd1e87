package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gruntwork-io/assetsel/cli"
	"github.com/gruntwork-io/assetsel/cli/commands/common"
	"github.com/gruntwork-io/assetsel/cli/commands/parse"
	"github.com/gruntwork-io/assetsel/cli/commands/query"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pipelineHCL = `
code_location = "analytics"

asset "raw_orders" {
  group = "ingest"
  kinds = ["python"]
  deps  = ["stripe/charges"]
}

asset "orders" {
  group  = "core"
  owners = ["team:billing"]
  tags   = { tier = "gold" }
  deps   = ["raw_orders"]
}

asset "revenue" {
  group = "reporting"
  kinds = ["dbt"]
  deps  = ["orders"]
}
`

func writeGraph(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pipeline.hcl")
	require.NoError(t, os.WriteFile(path, []byte(pipelineHCL), 0o600))

	return path
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	opts := options.NewOptionsWithWriters(&stdout, &stderr)
	app := cli.NewApp(opts)

	err := app.RunContext(context.Background(), append([]string{cli.AppName}, args...))

	return stdout.String(), stderr.String(), err
}

func TestQueryCommand(t *testing.T) {
	t.Parallel()

	graphFile := writeGraph(t)

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{
			name:     "upstream closure",
			args:     []string{"--no-color", "query", "--graph", graphFile, "*key:orders"},
			expected: "orders (analytics)\nraw_orders (analytics)\nstripe/charges [source] (analytics)\n",
		},
		{
			name:     "alias with bounded downstream",
			args:     []string{"--no-color", "select", "-g", graphFile, "key:raw_orders+"},
			expected: "orders (analytics)\nraw_orders (analytics)\n",
		},
		{
			name:     "kind and sinks",
			args:     []string{"--no-color", "query", "-g", graphFile, "sinks(*) or kind:python"},
			expected: "raw_orders (analytics)\nrevenue (analytics)\n",
		},
		{
			name:     "complement without sources",
			args:     []string{"--no-color", "query", "--exclude-sources", "-g", graphFile, "not group:core"},
			expected: "raw_orders (analytics)\nrevenue (analytics)\n",
		},
		{
			name:     "owner with colon",
			args:     []string{"--no-color", "query", "-g", graphFile, `owner:"team:billing" and tag:tier=gold`},
			expected: "orders (analytics)\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := runApp(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, stdout)
		})
	}
}

func TestQueryCommandJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, "query", "--format", "json", "-g", writeGraph(t), "roots(*)")
	require.NoError(t, err)

	var result query.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, query.Result{Selection: "roots(*)", Assets: []string{"stripe/charges"}}, result)
}

func TestQueryCommandRejectedSelection(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := runApp(t, "--no-color", "query", "-g", writeGraph(t), "key:orders and")
	require.Error(t, err)

	assert.Equal(t, common.ExitCodeSelectionRejected, errors.ExitCode(err))
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Selection error: Missing operand")
	assert.Contains(t, stderr, " --> 'key:orders and'")
}

func TestQueryCommandErrors(t *testing.T) {
	t.Parallel()

	graphFile := writeGraph(t)

	testCases := []struct {
		name string
		args []string
	}{
		{name: "missing selection", args: []string{"query", "-g", graphFile}},
		{name: "missing graph", args: []string{"query", "key:a"}},
		{name: "unreadable graph", args: []string{"query", "-g", filepath.Join(t.TempDir(), "none.hcl"), "key:a"}},
		{name: "invalid format", args: []string{"query", "--format", "xml", "-g", graphFile, "key:a"}},
		{name: "invalid log level", args: []string{"--log-level", "loud", "query", "-g", graphFile, "key:a"}},
		{name: "invalid trace exporter", args: []string{"--telemetry-trace-exporter", "zipkin", "query", "-g", graphFile, "key:a"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := runApp(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, common.ExitCodeGeneralError, errors.ExitCode(err))
		})
	}
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, "parse", "--explain", "+key:a and not owner:bob")
	require.NoError(t, err)

	assert.Equal(t, "expression: +key:a and not owner:bob\n"+
		"selection:  and(upstream(assets(\"a\"), depth=1), not(owner(\"bob\")))\n"+
		"predicates: assets, owner\n"+
		"functions:  none\n"+
		"traversal:  upstream (upstream depth 1, downstream depth 0)\n"+
		"negated:    true\n"+
		"adjacency:  true\n", stdout)
}

func TestParseCommandJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, "parse", "--format", "json", "--explain", "sinks(key:a*)")
	require.NoError(t, err)

	var result parse.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))

	assert.Equal(t, "sinks(key:a*)", result.Query)
	require.NotNil(t, result.Analysis)
	assert.Equal(t, []string{"sinks"}, result.Analysis.Functions)
	assert.Equal(t, "downstream", result.Analysis.Direction)
	assert.Equal(t, "unbounded", result.Analysis.DownstreamDepth)
}

func TestParseCommandRejectedSelection(t *testing.T) {
	t.Parallel()

	_, stderr, err := runApp(t, "--no-color", "parse", "onwer:bob")
	require.Error(t, err)

	assert.Equal(t, common.ExitCodeSelectionRejected, errors.ExitCode(err))
	assert.Contains(t, stderr, "hint: Did you mean 'owner:'?")
}

func TestListCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := runApp(t, "--no-color", "list", "-g", writeGraph(t))
	require.NoError(t, err)

	assert.Equal(t, "orders code_location:analytics group:core owner:\"team:billing\" tag:tier=gold deps:raw_orders\n"+
		"raw_orders code_location:analytics group:ingest kind:python deps:stripe/charges\n"+
		"revenue code_location:analytics group:reporting kind:dbt deps:orders\n"+
		"stripe/charges [source] code_location:analytics\n", stdout)
}
