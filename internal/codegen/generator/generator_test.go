package generator_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goxa/binding"
	"goxa/internal/codegen/generator"
	"goxa/sdef"
)

func testModel(t *testing.T) *binding.Model {
	t.Helper()
	doc := `<dictionary><suite name="S">
		<class name="application">
			<property name="name" type="text"/>
			<element type="document"/>
		</class>
		<class name="document"><property name="modified" type="boolean"/></class>
	</suite></dictionary>`
	d, diags, err := sdef.Parse(strings.NewReader(doc), "Pages")
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Empty(t, sdef.Merge(d))
	require.Empty(t, sdef.Resolve(d))
	m, diags := binding.Synthesize(d)
	require.Empty(t, diags)
	return m
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"go", "python"}, generator.Languages())
}

func TestGenerateUnsupportedLanguage(t *testing.T) {
	g := generator.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := g.Generate("rust", filepath.Join(t.TempDir(), "out.rs"), testModel(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rust")
	assert.Contains(t, err.Error(), "[go python]")
}

func TestGenerateCreatesParentDirectories(t *testing.T) {
	g := generator.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	out := filepath.Join(t.TempDir(), "nested", "deeper", "pages.go")

	require.NoError(t, g.Generate("go", out, testModel(t)))

	_, err := os.Stat(out)
	assert.NoError(t, err)
}
