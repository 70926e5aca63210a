package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"goxa/bridge"
	"goxa/internal/registry"
)

type Apps struct {
	Name     string `arg:"" optional:"" help:"Application to look up; omit to list all cached bundles"`
	Registry string `help:"Bundle registry database path" env:"GOXA_REGISTRY"`
	Refresh  bool   `help:"Probe the filesystem even when the bundle is cached"`
}

// Run is called by Kong when the apps command is executed.
func (c *Apps) Run(logger *slog.Logger) error {
	if c.Name != "" {
		b, err := resolveBundle(logger, c.Name, c.Registry, c.Refresh)
		if err != nil {
			return err
		}
		return printBundles([]bridge.Bundle{*b})
	}

	path := c.Registry
	if path == "" {
		p, err := registry.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	store, err := registry.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	bundles, err := store.List()
	if err != nil {
		return err
	}
	if len(bundles) == 0 {
		logger.Info("registry is empty", "path", path)
		return nil
	}
	return printBundles(bundles)
}

func printBundles(bundles []bridge.Bundle) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	// Header only for interactive use; scripts get bare rows.
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(w, "NAME\tBUNDLE ID\tSDEF")
	}
	for _, b := range bundles {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, b.ID, b.SdefPath)
	}
	return w.Flush()
}
