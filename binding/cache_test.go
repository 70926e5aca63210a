package binding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goxa/binding"
)

func TestCacheRoundTrip(t *testing.T) {
	d := buildDictionary(t, `<dictionary><suite name="S">
		<class name="application">
			<property name="name" type="text"/>
			<element type="document"/>
		</class>
		<class name="document"><property name="modified" type="boolean"/></class>
	</suite></dictionary>`, "Pages")
	m, diags := binding.Synthesize(d)
	require.Empty(t, diags)

	dir := t.TempDir()
	key := binding.Key([]byte("the raw sdef bytes"))

	require.NoError(t, binding.Save(dir, key, m))

	got, ok, err := binding.Load(dir, key)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, m.AppName, got.AppName)
	assert.Equal(t, m.Prefix, got.Prefix)
	require.Len(t, got.Classes, len(m.Classes))
	assert.Equal(t, m.Classes[0].QualifiedName, got.Classes[0].QualifiedName)
	assert.Equal(t, m.Classes[0].Properties, got.Classes[0].Properties)

	app, ok := got.Class("application")
	require.True(t, ok, "the loaded model is indexed again")
	assert.Equal(t, "PagesApplication", app.QualifiedName)
}

func TestCacheMiss(t *testing.T) {
	_, ok, err := binding.Load(t.TempDir(), binding.Key([]byte("nothing saved")))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheKeyTracksContent(t *testing.T) {
	a := binding.Key([]byte("version one"))
	b := binding.Key([]byte("version two"))
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)
}
