package turtle

import (
	"image/color"
	"math"
)

// turtleSize はタートル（矢印）の基本サイズ
const turtleSize = 15.0

// RedrawOptions は Redraw の挙動を調整する
type RedrawOptions struct {
	// HideTurtles が true の場合、タートルを描画しない（画像書き出し用）
	HideTurtles bool
}

// ZoomIn は表示を拡大する
func (m *Model) ZoomIn() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = m.view.zoomed(ZoomStep)
}

// ZoomOut は表示を縮小する
func (m *Model) ZoomOut() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = m.view.zoomed(1 / ZoomStep)
}

// Pan は表示を論理座標で (dx, dy) だけずらす
func (m *Model) Pan(dx, dy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view.PanX += dx
	m.view.PanY += dy
}

// ResetView はズームとパンを初期値に戻す
func (m *Model) ResetView() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.view = DefaultView()
}

// View は現在の表示変換を返す
func (m *Model) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

// Coordinates はキャンバス上の点を論理座標（整数に丸めたもの）に変換する
// マウス位置の表示などに使う
func (m *Model) Coordinates(cx, cy float64) (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	x, y := m.view.ToLogical(cx, cy, m.width, m.height)
	return int(math.Round(x)), int(math.Round(y))
}

// Redraw は描画ログを再生して Surface に描画する
func (m *Model) Redraw(s Surface, opts RedrawOptions) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w, h := s.Size()
	r := &renderer{surface: s, view: m.view, width: w, height: h, background: m.background}

	s.Clear(m.background)
	for _, p := range m.primitives {
		r.draw(p)
	}

	if opts.HideTurtles {
		return
	}
	for _, id := range m.sortedIDs() {
		t := m.turtles[id]
		if t.Visible {
			r.drawTurtle(t)
		}
	}
}

// renderer は1回の Redraw で使う変換情報を保持する
type renderer struct {
	surface       Surface
	view          View
	width, height int
	background    color.RGBA
}

func (r *renderer) toCanvas(x, y float64) (float64, float64) {
	return r.view.ToCanvas(x, y, r.width, r.height)
}

// canvasAngle は方位（度、0 = 上、時計回り）をキャンバス角度（ラジアン）に変換する
func canvasAngle(bearing float64) float64 {
	return (bearing - 90) * math.Pi / 180
}

func (r *renderer) strokeColor(p Pen) color.Color {
	if p.Mode == PenErase {
		return r.background
	}
	return p.Color
}

func (r *renderer) draw(p Primitive) {
	switch p.Kind {
	case PrimLine:
		x1, y1 := r.toCanvas(p.X1, p.Y1)
		x2, y2 := r.toCanvas(p.X2, p.Y2)
		r.surface.DrawLine(x1, y1, x2, y2, r.strokeColor(p.Pen), p.Pen.Size*r.view.Zoom)

	case PrimArc:
		cx, cy := r.toCanvas(p.CX, p.CY)
		r.surface.DrawArc(cx, cy, p.Radius*r.view.Zoom,
			canvasAngle(p.StartAngle), canvasAngle(p.EndAngle()), p.Sweep > 0,
			r.strokeColor(p.Pen), p.Pen.Size*r.view.Zoom)

	case PrimFill:
		sx, sy := r.toCanvas(p.StartX, p.StartY)
		r.surface.FillPath(Point{X: sx, Y: sy}, r.segments(p.Path), p.FillColor)
		// 輪郭は塗りの上に描き直す
		for _, child := range p.Path {
			r.draw(child)
		}
	}
}

// segments は塗りつぶしパスをキャンバス座標の区間列に変換する
func (r *renderer) segments(path []Primitive) []PathSegment {
	segs := make([]PathSegment, 0, len(path))
	for _, p := range path {
		switch p.Kind {
		case PrimLine:
			x, y := r.toCanvas(p.X2, p.Y2)
			segs = append(segs, PathSegment{X: x, Y: y})
		case PrimArc:
			cx, cy := r.toCanvas(p.CX, p.CY)
			segs = append(segs, PathSegment{
				Arc:        true,
				CX:         cx,
				CY:         cy,
				Radius:     p.Radius * r.view.Zoom,
				StartAngle: canvasAngle(p.StartAngle),
				EndAngle:   canvasAngle(p.EndAngle()),
				Clockwise:  p.Sweep > 0,
			})
		}
	}
	return segs
}

// drawTurtle はタートルを矢印として描画する
func (r *renderer) drawTurtle(t *Turtle) {
	size := turtleSize * r.view.Zoom
	cx, cy := r.toCanvas(t.X, t.Y)
	angle := canvasAngle(t.Heading)
	sin, cos := math.Sincos(angle)

	// 矢印の頂点（先端が +X 方向）
	shape := [][2]float64{
		{size, 0},
		{-size * 0.7, -size * 0.5},
		{-size * 0.4, 0},
		{-size * 0.7, size * 0.5},
	}
	pts := make([]Point, len(shape))
	for i, v := range shape {
		pts[i] = Point{
			X: cx + v[0]*cos - v[1]*sin,
			Y: cy + v[0]*sin + v[1]*cos,
		}
	}

	segs := make([]PathSegment, 0, len(pts))
	for _, p := range pts[1:] {
		segs = append(segs, PathSegment{X: p.X, Y: p.Y})
	}
	segs = append(segs, PathSegment{X: pts[0].X, Y: pts[0].Y})
	r.surface.FillPath(pts[0], segs, t.PenColor)

	outline := color.RGBA{0, 0, 0, 0xFF}
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		r.surface.DrawLine(a.X, a.Y, b.X, b.Y, outline, 1)
	}
}

// FlattenArc は円弧を折れ線の点列に近似する（始点を含む）
// ネイティブの円弧描画を持たない Surface 実装が使う
func FlattenArc(cx, cy, radius, startAngle, endAngle float64, clockwise bool) []Point {
	sweep := endAngle - startAngle
	if clockwise && sweep < 0 {
		sweep += 2 * math.Pi * math.Ceil(-sweep/(2*math.Pi))
	}
	if !clockwise && sweep > 0 {
		sweep -= 2 * math.Pi * math.Ceil(sweep/(2*math.Pi))
	}
	n := int(math.Ceil(math.Abs(sweep) * math.Max(radius, 1) / 4))
	if n < 8 {
		n = 8
	}
	pts := make([]Point, n+1)
	for i := 0; i <= n; i++ {
		a := startAngle + sweep*float64(i)/float64(n)
		pts[i] = Point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	return pts
}
