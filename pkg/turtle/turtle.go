// Package turtle はタートルグラフィックスの状態機械と描画ログを提供する
//
// 座標系の概要
//
// 論理座標系 (Logical Coordinates)
//   - 原点: キャンバス中央 (0, 0)
//   - Y軸: 上向きが正
//   - 向き (heading): 0 = 上, 時計回りに増加, 常に [0, 360) に正規化
//
// キャンバス座標系 (Canvas Coordinates)
//   - 原点: キャンバス左上
//   - Y軸: 下向きが正
//   - 変換は View（中心オフセット、パン、ズーム）で行う
//
// 描画ログ（Primitive の列）が描画結果の唯一の正であり、
// 実際のキャンバスは Redraw でログを再生して得られる派生物である。
package turtle

import (
	"image/color"
	"math"
)

// ID はタートルの識別子
type ID int

// PenMode はペンの描画モード
type PenMode int

const (
	PenPaint PenMode = iota // 通常描画
	PenErase                // 背景色で上書き
)

// String はペンモードの文字列表現を返す
func (m PenMode) String() string {
	if m == PenErase {
		return "erase"
	}
	return "paint"
}

// EdgeMode は画面端に到達したときの振る舞い
type EdgeMode int

const (
	EdgeWrap   EdgeMode = iota // 反対側の端から再登場する
	EdgeWindow                 // 画面外へ自由に移動できる
	EdgeFence                  // 画面端で止まる
)

// String はエッジモードの文字列表現を返す
func (m EdgeMode) String() string {
	switch m {
	case EdgeWindow:
		return "window"
	case EdgeFence:
		return "fence"
	default:
		return "wrap"
	}
}

// Pen は描画時点のペン状態
type Pen struct {
	Color color.RGBA
	Size  float64
	Mode  PenMode
}

// Turtle は1匹のタートルの状態
type Turtle struct {
	X, Y     float64
	Heading  float64
	PenDown  bool
	PenColor color.RGBA
	PenSize  float64
	PenMode  PenMode
	Visible  bool
}

// newTurtle は初期状態のタートルを作成する
func newTurtle() *Turtle {
	t := &Turtle{}
	t.reset()
	return t
}

// reset は位置・向き・ペンを初期値に戻す
func (t *Turtle) reset() {
	*t = Turtle{
		PenDown:  true,
		PenColor: color.RGBA{0, 0, 0, 0xFF},
		PenSize:  1,
		PenMode:  PenPaint,
		Visible:  true,
	}
}

// pen は現在のペン状態を返す
func (t *Turtle) pen() Pen {
	return Pen{Color: t.PenColor, Size: t.PenSize, Mode: t.PenMode}
}

// normalizeHeading は角度を [0, 360) に正規化する
func normalizeHeading(angle float64) float64 {
	h := math.Mod(angle, 360)
	if h < 0 {
		h += 360
	}
	// -1e-15 のような値は Mod 後に 360 になりうる
	if h >= 360 {
		h = 0
	}
	return h
}

// direction は向き（度）を単位ベクトルに変換する（0 = 上、時計回り）
func direction(heading float64) (float64, float64) {
	rad := heading * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}
