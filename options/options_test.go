package options_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/gruntwork-io/assetsel/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptionsDefaults(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	opts := options.NewOptionsWithWriters(&stdout, &stderr)

	assert.Equal(t, options.OutputFormatText, opts.OutputFormat)
	assert.True(t, opts.IncludeSources)
	assert.NotNil(t, opts.Telemetry)

	_, err := uuid.Parse(opts.RunID)
	require.NoError(t, err)
	require.NoError(t, opts.Validate())

	opts.Logger.Infof("loaded")
	assert.Contains(t, stderr.String(), "loaded")
	assert.Empty(t, stdout.String())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		modify   func(opts *options.Options)
		name     string
		expected []string
	}{
		{
			name:   "json output",
			modify: func(opts *options.Options) { opts.OutputFormat = options.OutputFormatJSON },
		},
		{
			name:     "unknown output format",
			modify:   func(opts *options.Options) { opts.OutputFormat = "xml" },
			expected: []string{`invalid output format "xml"`},
		},
		{
			name: "every failure is reported",
			modify: func(opts *options.Options) {
				opts.OutputFormat = "yaml"
				opts.LogFormat = "pretty"
				opts.GraphFiles = []string{"defs.hcl", " "}
			},
			expected: []string{`invalid output format "yaml"`, "pretty", "graph file path must not be empty"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := options.NewOptionsWithWriters(&bytes.Buffer{}, &bytes.Buffer{})
			tc.modify(opts)

			err := opts.Validate()
			if len(tc.expected) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)

			for _, msg := range tc.expected {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestClone(t *testing.T) {
	t.Parallel()

	opts := options.NewOptionsWithWriters(&bytes.Buffer{}, &bytes.Buffer{})
	opts.GraphFiles = []string{"a.hcl"}
	opts.Telemetry.TraceExporter = "console"

	clone := opts.Clone()
	clone.GraphFiles[0] = "b.hcl"
	clone.Telemetry.TraceExporter = "none"
	clone.IncludeSources = false

	assert.Equal(t, []string{"a.hcl"}, opts.GraphFiles)
	assert.Equal(t, "console", opts.Telemetry.TraceExporter)
	assert.True(t, opts.IncludeSources)
	assert.Equal(t, opts.RunID, clone.RunID)
}

func TestOptionsContext(t *testing.T) {
	t.Parallel()

	assert.Nil(t, options.OptionsFromContext(context.Background()))

	opts := options.NewOptionsWithWriters(&bytes.Buffer{}, &bytes.Buffer{})
	ctx := options.ContextWithOptions(context.Background(), opts)
	assert.Same(t, opts, options.OptionsFromContext(ctx))
}
