package turtle

import (
	"image/color"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/zurustar/kame/pkg/logger"
)

const (
	// DefaultWidth は既定のキャンバス幅
	DefaultWidth = 800
	// DefaultHeight は既定のキャンバス高さ
	DefaultHeight = 600

	// wrapStep は WRAP モードで線分を分割する最大長
	wrapStep = 10.0
	// maxWrapSteps は1回の移動で記録する WRAP 線分の上限
	// これを超える分は線を記録せず最終位置だけを求める
	maxWrapSteps = 10000
)

// Model はタートル群・描画ログ・表示変換を保持する
// インタプリタのゴルーチンと描画ゴルーチンから同時に参照されるため、
// すべての操作はミューテックスで保護される
type Model struct {
	mu sync.RWMutex

	turtles    map[ID]*Turtle
	current    ID
	edge       EdgeMode
	background color.RGBA
	primitives []Primitive
	fills      []*fillState
	view       View
	width      int
	height     int

	log *slog.Logger
}

// Option は Model の設定オプション
type Option func(*Model)

// WithLogger はロガーを設定する
func WithLogger(log *slog.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

// WithCanvasSize はキャンバスサイズを設定する
func WithCanvasSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// NewModel は新しい Model を作成する
func NewModel(opts ...Option) *Model {
	m := &Model{
		width:  DefaultWidth,
		height: DefaultHeight,
		log:    logger.GetLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resetLocked()
	return m
}

// Reset はすべての状態を初期化する（キャンバスサイズは保持）
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

func (m *Model) resetLocked() {
	m.turtles = map[ID]*Turtle{0: newTurtle()}
	m.current = 0
	m.edge = EdgeWrap
	m.background = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	m.primitives = nil
	m.fills = nil
	m.view = DefaultView()
}

// SetCanvasSize はキャンバスサイズを更新する
func (m *Model) SetCanvasSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.width = width
	m.height = height
}

// CanvasSize はキャンバスサイズを返す
func (m *Model) CanvasSize() (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.width, m.height
}

// cur は現在のタートルを返す（ロック取得済みであること）
func (m *Model) cur() *Turtle {
	return m.turtles[m.current]
}

// Current は現在のタートルの状態のコピーを返す
func (m *Model) Current() Turtle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.cur()
}

// CurrentID は現在のタートルIDを返す
func (m *Model) CurrentID() ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// TurtleIDs は存在するタートルIDを昇順で返す
func (m *Model) TurtleIDs() []ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedIDs()
}

func (m *Model) sortedIDs() []ID {
	ids := make([]ID, 0, len(m.turtles))
	for id := range m.turtles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Tell は現在のタートルを切り替える（存在しなければ新規作成する）
func (m *Model) Tell(id ID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.turtles[id]; !ok {
		m.turtles[id] = newTurtle()
		m.log.Debug("Turtle created", "id", id)
	}
	m.current = id
}

// Forward は現在の向きに distance だけ進む
func (m *Model) Forward(distance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.cur()
	dx, dy := direction(t.Heading)
	m.moveTo(t.X+distance*dx, t.Y+distance*dy)
}

// Back は現在の向きと逆に distance だけ進む
func (m *Model) Back(distance float64) {
	m.Forward(-distance)
}

// Left は反時計回りに angle 度回転する
func (m *Model) Left(angle float64) {
	m.Right(-angle)
}

// Right は時計回りに angle 度回転する
func (m *Model) Right(angle float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.cur()
	t.Heading = normalizeHeading(t.Heading + angle)
}

// Home は原点に移動し（ペンが下りていれば線を引く）、上を向く
func (m *Model) Home() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveTo(0, 0)
	m.cur().Heading = 0
}

// SetPosition は指定座標へ移動する
func (m *Model) SetPosition(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveTo(x, y)
}

// SetX はX座標のみを変更する
func (m *Model) SetX(x float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveTo(x, m.cur().Y)
}

// SetY はY座標のみを変更する
func (m *Model) SetY(y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveTo(m.cur().X, y)
}

// SetHeading は向きを設定する
func (m *Model) SetHeading(angle float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur().Heading = normalizeHeading(angle)
}

// PenUp はペンを上げる
func (m *Model) PenUp() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur().PenDown = false
}

// PenDown はペンを下ろす
func (m *Model) PenDown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur().PenDown = true
}

// PenErase はペンを消しゴムモードにして下ろす
func (m *Model) PenErase() {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.cur()
	t.PenMode = PenErase
	t.PenDown = true
}

// PenPaint はペンを通常モードにして下ろす
func (m *Model) PenPaint() {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.cur()
	t.PenMode = PenPaint
	t.PenDown = true
}

// SetPenColor はペンの色を設定する
func (m *Model) SetPenColor(c color.RGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur().PenColor = c
}

// SetPenSize はペンの太さを設定する（1未満は1になる）
func (m *Model) SetPenSize(size float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur().PenSize = math.Max(1, size)
}

// SetBackground は背景色を設定する
func (m *Model) SetBackground(c color.RGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.background = c
}

// Background は背景色を返す
func (m *Model) Background() color.RGBA {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.background
}

// HideTurtle は現在のタートルを非表示にする
func (m *Model) HideTurtle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur().Visible = false
}

// ShowTurtle は現在のタートルを表示する
func (m *Model) ShowTurtle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur().Visible = true
}

// SetEdgeMode はエッジモードを設定する
func (m *Model) SetEdgeMode(mode EdgeMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edge = mode
}

// EdgeMode は現在のエッジモードを返す
func (m *Model) EdgeMode() EdgeMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.edge
}

// ClearScreen は描画ログを消去し、すべてのタートルを初期状態に戻す
func (m *Model) ClearScreen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.turtles {
		t.reset()
	}
	m.primitives = nil
	for _, f := range m.fills {
		f.path = nil
	}
}

// Clean は描画ログのみを消去する（タートルはそのまま）
func (m *Model) Clean() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.primitives = nil
	for _, f := range m.fills {
		f.path = nil
	}
}

// Primitives は描画ログのコピーを返す
func (m *Model) Primitives() []Primitive {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Primitive, len(m.primitives))
	copy(out, m.primitives)
	return out
}

// halfExtents は論理座標系での画面の半幅・半高を返す
func (m *Model) halfExtents() (float64, float64) {
	return float64(m.width) / (2 * m.view.Zoom), float64(m.height) / (2 * m.view.Zoom)
}

// moveTo はエッジモードに従って現在のタートルを移動する（ロック取得済みであること）
func (m *Model) moveTo(x, y float64) {
	if !finite(x) || !finite(y) {
		m.log.Debug("Ignoring non-finite move", "x", x, "y", y)
		return
	}
	t := m.cur()
	halfW, halfH := m.halfExtents()

	switch m.edge {
	case EdgeFence:
		x = clamp(x, -halfW, halfW)
		y = clamp(y, -halfH, halfH)
		m.drawSegment(t, t.X, t.Y, x, y)
		t.X, t.Y = x, y

	case EdgeWrap:
		if !t.PenDown {
			t.X = wrapCoord(x, halfW)
			t.Y = wrapCoord(y, halfH)
			return
		}
		dx := x - t.X
		dy := y - t.Y
		total := math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)) / wrapStep)
		steps := int(math.Min(math.Max(total, 1), maxWrapSteps))
		sx := dx / total
		sy := dy / total
		if total < 1 {
			sx, sy = dx, dy
		}
		for i := 0; i < steps; i++ {
			nx := t.X + sx
			ny := t.Y + sy
			m.drawSegment(t, t.X, t.Y, nx, ny)
			t.X = wrapCoord(nx, halfW)
			t.Y = wrapCoord(ny, halfH)
		}
		if float64(steps) < total {
			t.X = wrapCoord(x, halfW)
			t.Y = wrapCoord(y, halfH)
		}

	default:
		m.drawSegment(t, t.X, t.Y, x, y)
		t.X, t.Y = x, y
	}
}

// drawSegment はペンが下りていれば線分を記録する
func (m *Model) drawSegment(t *Turtle, x1, y1, x2, y2 float64) {
	if !t.PenDown {
		return
	}
	m.emit(Primitive{Kind: PrimLine, Pen: t.pen(), X1: x1, Y1: y1, X2: x2, Y2: y2})
}

// emit はプリミティブを描画ログと塗りつぶしバッファへ追加する
func (m *Model) emit(p Primitive) {
	m.primitives = append(m.primitives, p)
	for _, f := range m.fills {
		f.path = append(f.path, p)
	}
}

// constrain はエッジモードに従って最終位置を補正する
func (m *Model) constrain(x, y float64) (float64, float64) {
	halfW, halfH := m.halfExtents()
	switch m.edge {
	case EdgeFence:
		return clamp(x, -halfW, halfW), clamp(y, -halfH, halfH)
	case EdgeWrap:
		return wrapCoord(x, halfW), wrapCoord(y, halfH)
	default:
		return x, y
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// wrapCoord は [-half, half] の外に出た座標を反対側へ折り返す
// 何周分はみ出していても画面内に収まるまで折り返す
func wrapCoord(v, half float64) float64 {
	if v >= -half && v <= half {
		return v
	}
	if half <= 0 || !finite(v) {
		return 0
	}
	r := math.Mod(v+half, 2*half)
	if r < 0 {
		r += 2 * half
	}
	return r - half
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
