package config

import (
	"io"
	"runtime"
)

// Option configures how definition files are loaded.
type Option func(*loadConfig)

type loadConfig struct {
	diagnosticsWriter io.Writer
	env               map[string]string
	concurrency       int
	disableColor      bool
}

func newLoadConfig(opts ...Option) *loadConfig {
	cfg := &loadConfig{concurrency: runtime.NumCPU()}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.env == nil {
		cfg.env = environ()
	}

	return cfg
}

// WithEnv sets the variables visible as `env.NAME` in HCL expressions. Defaults to the process environment.
func WithEnv(env map[string]string) Option {
	return func(cfg *loadConfig) {
		cfg.env = env
	}
}

// WithDiagnosticsWriter renders HCL diagnostics to writer.
func WithDiagnosticsWriter(writer io.Writer, disableColor bool) Option {
	return func(cfg *loadConfig) {
		cfg.diagnosticsWriter = writer
		cfg.disableColor = disableColor
	}
}

// WithConcurrency bounds the number of files decoded at the same time.
func WithConcurrency(n int) Option {
	return func(cfg *loadConfig) {
		if n > 0 {
			cfg.concurrency = n
		}
	}
}
