package graphics

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/zurustar/kame/pkg/turtle"
)

func TestRenderImage(t *testing.T) {
	m := turtle.NewModel(turtle.WithCanvasSize(200, 100))
	m.SetPenSize(4)
	m.Forward(40)

	img, err := RenderImage(m, 0, 0, turtle.RedrawOptions{HideTurtles: true})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())

	// 中心 (100,50) から上へ40ピクセル
	assert.Equal(t, black, img.RGBAAt(100, 30))
	assert.Equal(t, white, img.RGBAAt(10, 10))
}

func TestRenderImage_ExplicitSize(t *testing.T) {
	m := turtle.NewModel()
	img, err := RenderImage(m, 64, 48, turtle.RedrawOptions{})
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out.png", "png", false},
		{"OUT.PNG", "png", false},
		{"dir/drawing.bmp", "bmp", false},
		{"drawing.jpg", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, red)

	var buf bytes.Buffer
	require.NoError(t, EncodeImage(&buf, img, "png"))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	buf.Reset()
	require.NoError(t, EncodeImage(&buf, img, "BMP"))
	decoded, err = bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	err = EncodeImage(&buf, img, "gif")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()
	m := turtle.NewModel(turtle.WithCanvasSize(50, 50))
	m.Forward(10)

	for _, name := range []string{"drawing.png", "drawing.bmp"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveImage(path, m, 0, 0, turtle.RedrawOptions{}))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	err := SaveImage(filepath.Join(dir, "drawing.gif"), m, 0, 0, turtle.RedrawOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
