package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gruntwork-io/assetsel/config/hclparse"
	"github.com/gruntwork-io/assetsel/internal/errors"
	"github.com/gruntwork-io/assetsel/pkg/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/mitchellh/mapstructure"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gopkg.in/yaml.v3"
)

// SupportedExtensions lists the definition file extensions that can be loaded.
var SupportedExtensions = []string{".hcl", ".json", ".yaml", ".yml"}

// ParseGraphFile reads and decodes the definition file at path.
func ParseGraphFile(l log.Logger, path string, opts ...Option) (*GraphDefinition, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err)
	}

	return ParseGraphBytes(l, content, path, opts...)
}

// ParseGraphBytes decodes content using the format implied by the extension of path.
func ParseGraphBytes(l log.Logger, content []byte, path string, opts ...Option) (*GraphDefinition, error) {
	cfg := newLoadConfig(opts...)

	var (
		def = &GraphDefinition{}
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".json":
		err = decodeHCL(l, cfg, content, path, def)
	case ".yaml", ".yml":
		err = decodeYAML(content, def)
	default:
		return nil, errors.New(UnsupportedFileFormatError{Path: path})
	}

	if err != nil {
		return nil, errors.New(DecodeFileError{Path: path, Err: err})
	}

	def.Path = path

	l.Debugf("Decoded %d assets from %s", len(def.Assets), path)

	return def, nil
}

func decodeHCL(l log.Logger, cfg *loadConfig, content []byte, path string, out *GraphDefinition) error {
	parserOpts := []hclparse.Option{hclparse.WithLogger(l)}
	if cfg.diagnosticsWriter != nil {
		parserOpts = append(parserOpts, hclparse.WithDiagnosticsWriter(cfg.diagnosticsWriter, cfg.disableColor))
	}

	file, err := hclparse.NewParser(parserOpts...).ParseFromBytes(content, path)
	if err != nil {
		return err
	}

	return file.Decode(out, newEvalContext(cfg.env))
}

func decodeYAML(content []byte, out *GraphDefinition) error {
	var raw map[string]any

	if err := yaml.Unmarshal(content, &raw); err != nil {
		return errors.New(err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.New(err)
	}

	if err := decoder.Decode(raw); err != nil {
		return errors.New(err)
	}

	for i, asset := range out.Assets {
		if asset == nil {
			return errors.Errorf("asset #%d is empty", i+1)
		}
	}

	return nil
}

// newEvalContext exposes env as `env.NAME` and a small set of string functions to HCL expressions.
func newEvalContext(env map[string]string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(env))
	for name, value := range env {
		vars[name] = cty.StringVal(value)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
		Functions: map[string]function.Function{
			"lower":  stdlib.LowerFunc,
			"upper":  stdlib.UpperFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
			"concat": stdlib.ConcatFunc,
		},
	}
}

func environ() map[string]string {
	env := map[string]string{}

	for _, pair := range os.Environ() {
		if name, value, ok := strings.Cut(pair, "="); ok && name != "" {
			env[name] = value
		}
	}

	return env
}
