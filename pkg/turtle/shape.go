package turtle

import (
	"image/color"
	"math"
)

// fillState は FILLED ブロック実行中の塗りつぶし情報
type fillState struct {
	color          color.RGBA
	startX, startY float64
	path           []Primitive
}

// Circle は現在位置を中心に半径 radius の円を描く（タートルは動かない）
// 負の半径は反時計回りに描く
func (m *Model) Circle(radius float64) {
	if radius == 0 || !finite(radius) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.cur()
	if !t.PenDown {
		return
	}
	sweep := 360.0
	if radius < 0 {
		sweep = -360
	}
	m.emit(Primitive{
		Kind:   PrimArc,
		Pen:    t.pen(),
		CX:     t.X,
		CY:     t.Y,
		Radius: math.Abs(radius),
		Sweep:  sweep,
	})
}

// Arc は半径 radius、角度 angle の円弧に沿ってタートルを移動する
//
// 正の半径では中心はタートルの右側にあり、時計回りに進む。
// 負の半径では中心は左側にあり、反時計回りに進む。
// ARC a r の直後に ARC -a r を実行すると元の位置と向きに戻る。
func (m *Model) Arc(angle, radius float64) {
	if radius == 0 || angle == 0 || !finite(radius) || !finite(angle) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.cur()

	side := 90.0
	turn := angle
	if radius < 0 {
		side = -90
		turn = -angle
	}
	r := math.Abs(radius)

	// 中心はタートルから見て side 方向に r の位置
	ux, uy := direction(t.Heading + side)
	cx := t.X + r*ux
	cy := t.Y + r*uy

	start := t.Heading - side
	newHeading := t.Heading + turn
	ex, ey := direction(newHeading - side)

	if t.PenDown {
		m.emit(Primitive{
			Kind:       PrimArc,
			Pen:        t.pen(),
			CX:         cx,
			CY:         cy,
			Radius:     r,
			StartAngle: start,
			Sweep:      turn,
		})
	}

	t.X, t.Y = m.constrain(cx+r*ex, cy+r*ey)
	t.Heading = normalizeHeading(newHeading)
}

// BeginFill は塗りつぶしの記録を開始する
// 塗り色は開始時点のペン色で確定する
func (m *Model) BeginFill() {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.cur()
	m.fills = append(m.fills, &fillState{
		color:  t.PenColor,
		startX: t.X,
		startY: t.Y,
	})
}

// EndFill は記録中の塗りつぶしを確定し、描画ログへ追加する
// 記録中の塗りつぶしがなければ何もしない
func (m *Model) EndFill() {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.fills)
	if n == 0 {
		return
	}
	f := m.fills[n-1]
	m.fills = m.fills[:n-1]
	if len(f.path) == 0 {
		return
	}
	// 外側の塗りつぶしバッファには内側の線分が既に含まれている
	m.primitives = append(m.primitives, Primitive{
		Kind:      PrimFill,
		StartX:    f.startX,
		StartY:    f.startY,
		FillColor: f.color,
		Path:      f.path,
	})
}

// Filling は塗りつぶしの記録中かどうかを返す
func (m *Model) Filling() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.fills) > 0
}

// Towards は現在位置から (x, y) を向くための向き（度）を返す
func (m *Model) Towards(x, y float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t := m.cur()
	return normalizeHeading(math.Atan2(x-t.X, y-t.Y) * 180 / math.Pi)
}

// Distance は現在位置から (x, y) までの距離を返す
func (m *Model) Distance(x, y float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t := m.cur()
	return math.Hypot(x-t.X, y-t.Y)
}
