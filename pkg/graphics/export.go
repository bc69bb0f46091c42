package graphics

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/zurustar/kame/pkg/turtle"
)

// RenderImage はモデルの描画ログをラスタ画像に描画する
// width または height が 0 以下の場合はモデルのキャンバスサイズを使う
func RenderImage(m *turtle.Model, width, height int, opts turtle.RedrawOptions) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		width, height = m.CanvasSize()
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	s := NewRasterSurface(width, height)
	m.Redraw(s, opts)
	return s.Image(), nil
}

// EncodeImage は format ("png" または "bmp") で画像を書き出す
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FormatFromPath は拡張子から画像形式を判定する
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "bmp":
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// SaveImage はモデルを描画して path に保存する
// 形式は拡張子 (.png / .bmp) で決まる
func SaveImage(path string, m *turtle.Model, width, height int, opts turtle.RedrawOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	img, err := RenderImage(m, width, height, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodeImage(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
