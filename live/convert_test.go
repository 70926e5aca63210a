package live_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goxa/live"
)

func TestAsInt(t *testing.T) {
	n, err := live.AsInt(float64(7))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = live.AsInt(7.5)
	require.Error(t, err, "fractional values are not silently truncated")

	_, err = live.AsInt("7")
	require.Error(t, err)
}

func TestAsRectangle(t *testing.T) {
	r, err := live.AsRectangle([]any{float64(0), float64(20), float64(800), float64(600)})
	require.NoError(t, err)
	assert.Equal(t, live.Rectangle{0, 20, 800, 600}, r)

	_, err = live.AsRectangle([]any{float64(1), float64(2)})
	require.Error(t, err)

	_, err = live.AsRectangle([]any{"a", "b", "c", "d"})
	require.Error(t, err)
}

func TestAsSlices(t *testing.T) {
	ss, err := live.AsStringSlice([]any{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ss)

	_, err = live.AsStringSlice([]any{"a", 1})
	require.Error(t, err)

	fs, err := live.AsFloatSlice([]any{float64(1.5), 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2}, fs)

	bs, err := live.AsBoolSlice([]any{true, false})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, bs)
}
