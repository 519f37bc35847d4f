package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFromBytesBoundsWidth(t *testing.T) {
	p, err := FromBytes(pngBytes(t, 640, 480), 16)
	require.NoError(t, err)

	w, h := p.Size()
	assert.LessOrEqual(t, w, 16)
	assert.Greater(t, h, 0)
	assert.NotEmpty(t, p.View())
}

func TestFromBytesTinyImage(t *testing.T) {
	p, err := FromBytes(pngBytes(t, 1, 1), 24)
	require.NoError(t, err)
	assert.NotEmpty(t, p.View())
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	_, err := FromBytes([]byte("not an image"), 24)
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 32, 32), 0600))

	p, err := FromFile(path, 8)
	require.NoError(t, err)
	assert.NotEmpty(t, p.View())
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "absent.png"), 8)
	assert.Error(t, err)
}

func TestReleaseDropsView(t *testing.T) {
	p, err := FromBytes(pngBytes(t, 32, 32), 8)
	require.NoError(t, err)
	require.NotEmpty(t, p.View())

	p.Release()
	assert.Empty(t, p.View())
}
