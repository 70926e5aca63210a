package cmd

import (
	"log/slog"

	"goxa/binding"
	"goxa/internal/codegen/common"
	"goxa/internal/codegen/generator"
)

type Generate struct {
	App      string `arg:"" help:"Application name, e.g. Safari"`
	Sdef     string `help:"Path to an sdef file (skips application discovery)" type:"existingfile" env:"GOXA_SDEF"`
	Lang     string `help:"Target language" default:"go" enum:"go,python" env:"GOXA_LANG"`
	Output   string `help:"Output file (defaults to the package name with a language extension)" env:"GOXA_OUTPUT"`
	CacheDir string `help:"Binding model cache directory" env:"GOXA_CACHE_DIR"`
	NoCache  bool   `help:"Skip reading and writing the model cache"`
	Registry string `help:"Bundle registry database path" env:"GOXA_REGISTRY"`
	Refresh  bool   `help:"Probe the filesystem even when the bundle is cached"`
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger) error {
	data, sdefPath, err := loadSdef(logger, c.App, c.Sdef, c.Registry, c.Refresh)
	if err != nil {
		return err
	}
	logger.Info("generating bindings", "app", c.App, "sdef", sdefPath, "lang", c.Lang)

	m, err := c.model(logger, data)
	if err != nil {
		return err
	}

	out := c.Output
	if out == "" {
		ext := map[string]string{"go": ".go", "python": ".py"}[c.Lang]
		out = common.PackageName(m.AppName) + ext
	}

	if err := generator.New(logger).Generate(c.Lang, out, m); err != nil {
		return err
	}
	logger.Info("bindings written", "app", c.App, "output", out, "classes", len(m.Classes))
	return nil
}

// model loads the binding model from the cache when possible, otherwise
// runs the pipeline and refreshes the cache entry.
func (c *Generate) model(logger *slog.Logger, sdefBytes []byte) (*binding.Model, error) {
	key := binding.Key(sdefBytes)

	if c.CacheDir != "" && !c.NoCache {
		if m, ok, err := binding.Load(c.CacheDir, key); err != nil {
			logger.Warn("model cache unreadable", "dir", c.CacheDir, "error", err)
		} else if ok {
			logger.Debug("model served from cache", "key", key)
			return m, nil
		}
	}

	m, err := buildModel(logger, c.App, sdefBytes)
	if err != nil {
		return nil, err
	}

	if c.CacheDir != "" && !c.NoCache {
		if err := binding.Save(c.CacheDir, key, m); err != nil {
			logger.Warn("failed to cache model", "dir", c.CacheDir, "error", err)
		}
	}
	return m, nil
}
