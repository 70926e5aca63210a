package cmd

import (
	"log/slog"
	"os"

	json "github.com/goccy/go-json"
)

type Inspect struct {
	App      string `arg:"" help:"Application name, e.g. Safari"`
	Sdef     string `help:"Path to an sdef file (skips application discovery)" type:"existingfile" env:"GOXA_SDEF"`
	Registry string `help:"Bundle registry database path" env:"GOXA_REGISTRY"`
	Refresh  bool   `help:"Probe the filesystem even when the bundle is cached"`
}

// Run is called by Kong when the inspect command is executed. It prints the
// synthesized binding model as indented JSON on stdout.
func (c *Inspect) Run(logger *slog.Logger) error {
	data, sdefPath, err := loadSdef(logger, c.App, c.Sdef, c.Registry, c.Refresh)
	if err != nil {
		return err
	}
	logger.Debug("inspecting dictionary", "app", c.App, "sdef", sdefPath)

	m, err := buildModel(logger, c.App, data)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = os.Stdout.Write(out)
	return err
}
