// Package generator orchestrates source emission for all target languages.
package generator

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"goxa/binding"
	"goxa/internal/codegen/generator/golang"
	"goxa/internal/codegen/generator/python"
)

// LanguageGenerator renders one binding model as a single source artifact at
// outPath.
type LanguageGenerator func(logger *slog.Logger, outPath string, m *binding.Model) error

var generators = map[string]LanguageGenerator{
	"go":     golang.Generate,
	"python": python.Generate,
}

// Languages lists the supported language keys, sorted.
func Languages() []string {
	out := make([]string, 0, len(generators))
	for k := range generators {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Generator renders binding models to source files.
type Generator struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate runs the emitter for the given language key, writing the artifact
// to outPath and creating parent directories as needed.
func (g *Generator) Generate(lang, outPath string, m *binding.Model) error {
	gen, ok := generators[lang]
	if !ok {
		return fmt.Errorf("unsupported language '%s' (supported: %v)", lang, Languages())
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	g.logger.Info("Generating bindings", "language", lang, "app", m.AppName, "classes", len(m.Classes), "output", outPath)
	if err := gen(g.logger, outPath, m); err != nil {
		return fmt.Errorf("generate %s bindings: %w", lang, err)
	}
	g.logger.Info("Binding generation complete", "language", lang, "output", outPath)
	return nil
}
