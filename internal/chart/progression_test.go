package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtding233/bowling-backend/internal/bowling"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderProgression(t *testing.T) {
	g, err := bowling.FromRolls([]int{10, 7, 3, 9, 0, 10, 10})
	require.NoError(t, err)

	png, err := RenderProgression(g, "Dana")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderProgressionUnresolved(t *testing.T) {
	g, err := bowling.FromRolls([]int{10})
	require.NoError(t, err)

	png, err := RenderProgression(g, "")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderProgressionPlaceholder(t *testing.T) {
	png, err := RenderProgression(bowling.NewGame(), "Dana")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(png, pngMagic))
}
