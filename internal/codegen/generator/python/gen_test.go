package python_test

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
	"goxa/internal/codegen/generator/python"
	"goxa/sdef"
)

func generate(t *testing.T, doc, appName string) string {
	t.Helper()
	d, diags, err := sdef.Parse(strings.NewReader(doc), appName)
	require.NoError(t, err)
	require.Empty(t, diags)
	require.Empty(t, sdef.Merge(d))
	require.Empty(t, sdef.Resolve(d))
	m, diags := binding.Synthesize(d)
	require.Empty(t, diags)

	out := filepath.Join(t.TempDir(), "bindings.py")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, python.Generate(logger, out, m))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	return string(data)
}

func TestGenerateClasses(t *testing.T) {
	src := generate(t, `<dictionary><suite name="S">
		<class name="application" description="the app">
			<property name="name" type="text" description="app name"/>
			<element type="document"/>
		</class>
		<class name="document">
			<property name="file_name" type="text"/>
			<property name="index" type="integer"/>
		</class>
	</suite></dictionary>`, "Pages")

	assert.Contains(t, src, `# Generated bindings for "Pages".`)

	// List class precedes the singular class.
	listIdx := strings.Index(src, "class PagesDocumentList(XAList):")
	singularIdx := strings.Index(src, "class PagesDocument(XAObject):")
	require.Greater(t, listIdx, -1)
	require.Greater(t, singularIdx, -1)
	assert.Less(t, listIdx, singularIdx)

	// Fast enumeration on the list class.
	assert.Contains(t, src, "def file_name(self) -> list['str']:")
	assert.Contains(t, src, `self.xa_elem.arrayByApplyingSelector_("file_name")`)
	assert.Contains(t, src, "def by_file_name(self, file_name) -> 'PagesDocument':")
	assert.Contains(t, src, `self.by_property("file_name", file_name)`)

	// Singular property getters and element accessors.
	assert.Contains(t, src, "@property\n\tdef index(self) -> 'int':")
	assert.Contains(t, src, "def documents(self, filter: Union[dict, None] = None) -> 'PagesDocumentList':")
	assert.Contains(t, src, "self._new_element(self.xa_elem.documents(), PagesDocumentList, filter)")
}

func TestGenerateCommands(t *testing.T) {
	src := generate(t, `<dictionary><suite name="S">
		<class name="application">
			<property name="name" type="text"/>
			<responds-to command="quit"/>
			<responds-to command="open"/>
		</class>
		<command name="quit"/>
		<command name="open">
			<direct-parameter type="specifier"/>
			<parameter name="with options" type="text"/>
		</command>
	</suite></dictionary>`, "Pages")

	assert.Contains(t, src, "def quit(self):")
	assert.Contains(t, src, "self.xa_elem.quit()")

	assert.Contains(t, src, "def open_command(self, direct_parameter: 'XAObject', with_options: 'str'):")
	assert.Contains(t, src, "self.xa_elem.open(direct_parameter, with_options)")
}
