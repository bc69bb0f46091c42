package graphics

import (
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/zurustar/kame/pkg/turtle"
)

// EbitenSurface は ebiten.Image に描画する turtle.Surface の実装
type EbitenSurface struct {
	dst       *ebiten.Image
	antialias bool
}

// NewEbitenSurface は dst に描画する Surface を作成する
func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{dst: dst, antialias: true}
}

// Size はキャンバスのピクセルサイズを返す
func (s *EbitenSurface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

// Clear は背景色で全面を塗りつぶす
func (s *EbitenSurface) Clear(bg color.Color) {
	s.dst.Fill(bg)
}

// DrawLine は線分を描画する
func (s *EbitenSurface) DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64) {
	vector.StrokeLine(
		s.dst,
		float32(x1), float32(y1),
		float32(x2), float32(y2),
		float32(width),
		c,
		s.antialias,
	)
}

// DrawArc は円弧を描画する
func (s *EbitenSurface) DrawArc(cx, cy, radius, startAngle, endAngle float64, clockwise bool, c color.Color, width float64) {
	var path vector.Path
	path.MoveTo(float32(cx+radius*math.Cos(startAngle)), float32(cy+radius*math.Sin(startAngle)))
	path.Arc(float32(cx), float32(cy), float32(radius), float32(startAngle), float32(endAngle), direction(clockwise))

	op := &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, op)
	s.drawTriangles(vs, is, c, ebiten.FillRuleFillAll)
}

// FillPath は閉パスを塗りつぶす
func (s *EbitenSurface) FillPath(start turtle.Point, segs []turtle.PathSegment, c color.Color) {
	var path vector.Path
	path.MoveTo(float32(start.X), float32(start.Y))
	for _, seg := range segs {
		if seg.Arc {
			path.Arc(float32(seg.CX), float32(seg.CY), float32(seg.Radius),
				float32(seg.StartAngle), float32(seg.EndAngle), direction(seg.Clockwise))
			continue
		}
		path.LineTo(float32(seg.X), float32(seg.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	s.drawTriangles(vs, is, c, ebiten.FillRuleNonZero)
}

// drawTriangles は頂点に色を設定して描画する
func (s *EbitenSurface) drawTriangles(vs []ebiten.Vertex, is []uint16, c color.Color, rule ebiten.FillRule) {
	r, g, b, a := c.RGBA()
	for i := range vs {
		vs[i].ColorR = float32(r) / 0xFFFF
		vs[i].ColorG = float32(g) / 0xFFFF
		vs[i].ColorB = float32(b) / 0xFFFF
		vs[i].ColorA = float32(a) / 0xFFFF
	}
	op := &ebiten.DrawTrianglesOptions{
		FillRule:  rule,
		AntiAlias: s.antialias,
	}
	s.dst.DrawTriangles(vs, is, whiteImage(), op)
}

func direction(clockwise bool) vector.Direction {
	if clockwise {
		return vector.Clockwise
	}
	return vector.CounterClockwise
}

// whiteImage は頂点色で塗るための白い画像
// ebiten の初期化前に作らないよう、最初の描画時に作成する
var whiteImage = sync.OnceValue(func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
})
