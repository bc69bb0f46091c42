package turtle

import "math"

const (
	// MinZoom はズーム倍率の下限
	MinZoom = 0.25
	// MaxZoom はズーム倍率の上限
	MaxZoom = 4.0
	// ZoomStep は1回のズームイン/アウトの倍率
	ZoomStep = 1.2
)

// View はキャンバス上の表示変換（パンとズーム）
// 描画ログには影響せず、Redraw 時の座標変換にのみ使われる
type View struct {
	Zoom float64
	PanX float64
	PanY float64
}

// DefaultView は初期状態の表示変換を返す
func DefaultView() View {
	return View{Zoom: 1}
}

// ToCanvas は論理座標をキャンバス座標に変換する
func (v View) ToCanvas(x, y float64, width, height int) (float64, float64) {
	cx := float64(width)/2 + (x+v.PanX)*v.Zoom
	cy := float64(height)/2 - (y+v.PanY)*v.Zoom
	return cx, cy
}

// ToLogical はキャンバス座標を論理座標に変換する
func (v View) ToLogical(cx, cy float64, width, height int) (float64, float64) {
	x := (cx-float64(width)/2)/v.Zoom - v.PanX
	y := -(cy-float64(height)/2)/v.Zoom - v.PanY
	return x, y
}

// zoomed は倍率を掛けて範囲内に収めた View を返す
func (v View) zoomed(factor float64) View {
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, v.Zoom*factor))
	return v
}
