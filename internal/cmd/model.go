package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"goxa/binding"
	"goxa/bridge"
	"goxa/internal/registry"
	"goxa/sdef"
)

// resolveBundle finds the application bundle for name, preferring the
// registry cache over a filesystem probe. Fresh probe results are written
// back to the registry.
func resolveBundle(logger *slog.Logger, name, registryPath string, refresh bool) (*bridge.Bundle, error) {
	if registryPath == "" {
		p, err := registry.DefaultPath()
		if err != nil {
			return nil, err
		}
		registryPath = p
	}

	store, err := registry.Open(registryPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if !refresh {
		if b, ok, err := store.Get(name); err != nil {
			return nil, err
		} else if ok {
			logger.Debug("bundle served from registry", "app", name, "path", b.Path)
			return b, nil
		}
	}

	b, err := bridge.NewDiscovery(logger).Discover(name)
	if err != nil {
		return nil, err
	}
	if err := store.Put(b); err != nil {
		logger.Warn("failed to cache bundle", "app", name, "error", err)
	}
	return b, nil
}

// loadSdef returns the raw dictionary bytes for the application, either from
// an explicit sdef path or via bundle discovery.
func loadSdef(logger *slog.Logger, app, sdefPath, registryPath string, refresh bool) ([]byte, string, error) {
	if sdefPath == "" {
		b, err := resolveBundle(logger, app, registryPath, refresh)
		if err != nil {
			return nil, "", err
		}
		if b.SdefPath == "" {
			return nil, "", fmt.Errorf("application %q has no scripting dictionary", app)
		}
		sdefPath = b.SdefPath
	}
	data, err := os.ReadFile(sdefPath)
	if err != nil {
		return nil, "", fmt.Errorf("read dictionary: %w", err)
	}
	return data, sdefPath, nil
}

// buildModel runs the full pipeline over raw sdef bytes. Recoverable
// diagnostics are logged as warnings; only malformed XML is fatal.
func buildModel(logger *slog.Logger, appName string, sdefBytes []byte) (*binding.Model, error) {
	dict, diags, err := sdef.Parse(bytes.NewReader(sdefBytes), appName)
	if err != nil {
		return nil, fmt.Errorf("parse dictionary: %w", err)
	}
	diags = append(diags, sdef.Merge(dict)...)
	diags = append(diags, sdef.Resolve(dict)...)

	m, synthDiags := binding.Synthesize(dict)
	diags = append(diags, synthDiags...)

	for _, d := range diags {
		logger.Warn("dictionary diagnostic", "app", appName, "detail", d.Error())
	}
	return m, nil
}
