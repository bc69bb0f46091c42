package turtle

import "image/color"

// Point はキャンバス座標系の点
type Point struct {
	X, Y float64
}

// PathSegment は塗りつぶしパスの1区間（キャンバス座標系）
// 角度はラジアンで、+X軸から Y軸下向きに測る
type PathSegment struct {
	Arc bool

	// 線分の終点（始点は直前の区間の終点）
	X, Y float64

	// 円弧
	CX, CY     float64
	Radius     float64
	StartAngle float64
	EndAngle   float64
	Clockwise  bool
}

// Surface はホストが提供する描画先
// 座標はすべてキャンバス座標系（ピクセル）
type Surface interface {
	// Size はキャンバスのピクセルサイズを返す
	Size() (width, height int)
	// Clear は背景色で全面を塗りつぶす
	Clear(bg color.Color)
	// DrawLine は線分を描画する
	DrawLine(x1, y1, x2, y2 float64, c color.Color, width float64)
	// DrawArc は円弧を描画する
	DrawArc(cx, cy, radius, startAngle, endAngle float64, clockwise bool, c color.Color, width float64)
	// FillPath は start から始まる閉パスを塗りつぶす
	FillPath(start Point, path []PathSegment, c color.Color)
}
