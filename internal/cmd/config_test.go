package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInitGeneratesTemplate(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "generate.json")
	c := &ConfigInit{Command: "generate", Format: "json", Output: dest}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "go", got["lang"], "defaults come from the kong tags")
	assert.Equal(t, false, got["noCache"])
	assert.Contains(t, got, "output")
	assert.Contains(t, got, "cacheDir")
	assert.NotContains(t, got, "app", "positional arguments are not configuration")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "apps.json")
	require.NoError(t, os.WriteFile(dest, []byte("{}"), 0o644))

	c := &ConfigInit{Command: "apps", Format: "json", Output: dest}
	err := c.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	c.Force = true
	require.NoError(t, c.Run())
}

func TestConfigInitFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		dest := filepath.Join(t.TempDir(), "inspect."+format)
		c := &ConfigInit{Command: "inspect", Format: format, Output: dest}
		require.NoError(t, c.Run(), format)

		data, err := os.ReadFile(dest)
		require.NoError(t, err, format)
		assert.NotEmpty(t, data, format)
	}
}
