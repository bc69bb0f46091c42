package turtle

import "image/color"

// PrimitiveKind は描画プリミティブの種類
type PrimitiveKind int

const (
	PrimLine PrimitiveKind = iota // 線分
	PrimArc                       // 円弧（円は360度の円弧）
	PrimFill                      // 塗りつぶしパス
)

// String はプリミティブ種別の文字列表現を返す
func (k PrimitiveKind) String() string {
	switch k {
	case PrimLine:
		return "line"
	case PrimArc:
		return "arc"
	case PrimFill:
		return "fill"
	default:
		return "unknown"
	}
}

// Primitive は描画ログの1要素（論理座標系）
type Primitive struct {
	Kind PrimitiveKind
	Pen  Pen

	// 線分
	X1, Y1, X2, Y2 float64

	// 円弧
	// StartAngle は中心から見た開始点の方位（度、0 = 上、時計回り）
	// Sweep は掃引角（度）。正なら時計回り
	CX, CY     float64
	Radius     float64
	StartAngle float64
	Sweep      float64

	// 塗りつぶし
	StartX, StartY float64
	FillColor      color.RGBA
	Path           []Primitive
}

// EndAngle は円弧の終了方位を返す
func (p Primitive) EndAngle() float64 {
	return p.StartAngle + p.Sweep
}
