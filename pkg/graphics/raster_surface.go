package graphics

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/zurustar/kame/pkg/turtle"
)

// RasterSurface は image.RGBA に描画する turtle.Surface の実装
// GPU を使わないため、ヘッドレス実行と画像書き出しで使う
type RasterSurface struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewRasterSurface は width x height の Surface を作成する
func NewRasterSurface(width, height int) *RasterSurface {
	return &RasterSurface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   vector.NewRasterizer(width, height),
	}
}

// Image は描画結果を返す
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// Size はキャンバスのピクセルサイズを返す
func (s *RasterSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear は背景色で全面を塗りつぶす
func (s *RasterSurface) Clear(bg color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
}

// DrawLine は太さ width の線分を描画する
func (s *RasterSurface) DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	s.begin()
	s.addStroke(x1, y1, x2, y2, width)
	s.paint(c)
}

// DrawArc は円弧を折れ線で近似して描画する
func (s *RasterSurface) DrawArc(cx, cy, radius, startAngle, endAngle float64, clockwise bool, c color.Color, width float64) {
	pts := turtle.FlattenArc(cx, cy, radius, startAngle, endAngle, clockwise)
	s.begin()
	for i := 1; i < len(pts); i++ {
		s.addStroke(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width)
	}
	s.paint(c)
}

// FillPath は閉パスを塗りつぶす
func (s *RasterSurface) FillPath(start turtle.Point, segs []turtle.PathSegment, c color.Color) {
	s.begin()
	s.z.MoveTo(float32(start.X), float32(start.Y))
	for _, seg := range segs {
		if seg.Arc {
			for _, p := range turtle.FlattenArc(seg.CX, seg.CY, seg.Radius, seg.StartAngle, seg.EndAngle, seg.Clockwise) {
				s.z.LineTo(float32(p.X), float32(p.Y))
			}
			continue
		}
		s.z.LineTo(float32(seg.X), float32(seg.Y))
	}
	s.z.ClosePath()
	s.paint(c)
}

func (s *RasterSurface) begin() {
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
}

func (s *RasterSurface) paint(c color.Color) {
	s.z.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

// addStroke は線分を太さ width の四角形としてラスタライザに追加する
func (s *RasterSurface) addStroke(x1, y1, x2, y2, width float64) {
	half := math.Max(width, 1) / 2
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	var nx, ny float64
	if length == 0 {
		// 長さ0の線分は点として描く
		nx, ny = 0, half
		x1 -= half
		x2 += half
	} else {
		nx, ny = -dy/length*half, dx/length*half
	}
	s.z.MoveTo(float32(x1+nx), float32(y1+ny))
	s.z.LineTo(float32(x2+nx), float32(y2+ny))
	s.z.LineTo(float32(x2-nx), float32(y2-ny))
	s.z.LineTo(float32(x1-nx), float32(y1-ny))
	s.z.ClosePath()
}
