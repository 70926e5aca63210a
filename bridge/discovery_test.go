package bridge_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goxa/bridge"
)

const infoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>Keynote</string>
	<key>CFBundleIdentifier</key>
	<string>com.apple.iWork.Keynote</string>
</dict>
</plist>`

// writeBundle lays out a minimal .app directory: Contents/Info.plist plus an
// optional sdef under Contents/Resources.
func writeBundle(t *testing.T, root, name string, withSdef bool) string {
	t.Helper()
	bundle := filepath.Join(root, name+".app")
	contents := filepath.Join(bundle, "Contents")
	require.NoError(t, os.MkdirAll(filepath.Join(contents, "Resources"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(contents, "Info.plist"), []byte(infoPlist), 0o644))
	if withSdef {
		require.NoError(t, os.WriteFile(
			filepath.Join(contents, "Resources", name+".sdef"),
			[]byte(`<dictionary/>`), 0o644))
	}
	return bundle
}

func discoveryLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDiscoverExactMatch(t *testing.T) {
	root := t.TempDir()
	path := writeBundle(t, root, "Keynote", true)

	d := bridge.NewDiscoveryWithRoots(discoveryLogger(), root)
	b, err := d.Discover("Keynote")
	require.NoError(t, err)

	assert.Equal(t, "Keynote", b.Name)
	assert.Equal(t, "com.apple.iWork.Keynote", b.ID)
	assert.Equal(t, path, b.Path)
	assert.Equal(t, filepath.Join(path, "Contents", "Resources", "Keynote.sdef"), b.SdefPath)
}

func TestDiscoverTrimsAppSuffix(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "Keynote", true)

	d := bridge.NewDiscoveryWithRoots(discoveryLogger(), root)
	b, err := d.Discover("Keynote.app")
	require.NoError(t, err)
	assert.Equal(t, "Keynote", b.Name)
}

func TestDiscoverFuzzyMatch(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "Keynote", true)

	d := bridge.NewDiscoveryWithRoots(discoveryLogger(), root)
	b, err := d.Discover("keynote")
	require.NoError(t, err)
	assert.Equal(t, "Keynote", b.Name, "case-insensitive substring match on bundle names")

	b, err = d.Discover("eyno")
	require.NoError(t, err)
	assert.Equal(t, "Keynote", b.Name)
}

func TestDiscoverRootPriority(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	wanted := writeBundle(t, first, "Keynote", true)
	writeBundle(t, second, "Keynote", true)

	d := bridge.NewDiscoveryWithRoots(discoveryLogger(), first, second)
	b, err := d.Discover("Keynote")
	require.NoError(t, err)
	assert.Equal(t, wanted, b.Path, "roots are probed in priority order")
}

func TestDiscoverNotFound(t *testing.T) {
	d := bridge.NewDiscoveryWithRoots(discoveryLogger(), t.TempDir())
	_, err := d.Discover("Nonexistent")
	require.Error(t, err)

	var nf *bridge.ApplicationNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Nonexistent", nf.Name)
}

func TestDiscoverWithoutSdef(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "Calculator", false)

	d := bridge.NewDiscoveryWithRoots(discoveryLogger(), root)
	b, err := d.Discover("Calculator")
	require.NoError(t, err)
	assert.Empty(t, b.SdefPath, "non-scriptable bundles resolve with an empty dictionary path")
}

func TestDiscoverBrokenBundle(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Broken.app", "Contents"), 0o755))

	d := bridge.NewDiscoveryWithRoots(discoveryLogger(), root)
	_, err := d.Discover("Broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read bundle")
}
