package window

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/zurustar/kame/pkg/graphics"
	"github.com/zurustar/kame/pkg/logger"
	"github.com/zurustar/kame/pkg/turtle"
)

var (
	// コンソールの文字色
	textColor = color.RGBA{0x20, 0x20, 0x20, 0xFF}
	// エラー行の文字色
	errorTextColor = color.RGBA{0xC0, 0x20, 0x20, 0xFF}
	// デフォルトフォント
	defaultFace = text.NewGoXFace(basicfont.Face7x13)
)

const (
	// 矢印キー1回あたりのパン量（ピクセル）
	panStep = 20.0
	// 画面に表示するコンソールの行数
	consoleVisibleLines = 8
	// 行の高さ
	lineHeight = 15.0
)

// Action はキー操作に対応する表示操作
type Action int

const (
	ActionNone Action = iota
	ActionZoomIn
	ActionZoomOut
	ActionResetView
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionToggleConsole
	ActionStop
)

// Runner はウィンドウから操作するインタプリタ
type Runner interface {
	IsRunning() bool
	Stop()
}

// Game はEbitengineのゲームインターフェースを実装する
type Game struct {
	model   *turtle.Model
	runner  Runner
	console *Console
	timeout time.Duration

	// 実行開始の制御
	startFunc func() // 最初の Update で呼ばれる
	started   bool
	startTime time.Time

	showConsole bool
	dragging    bool
	dragX       int
	dragY       int
	cursorX     int
	cursorY     int

	mu sync.RWMutex
}

// NewGame Gameを作成
func NewGame(model *turtle.Model, console *Console, timeout time.Duration) *Game {
	return &Game{
		model:       model,
		console:     console,
		timeout:     timeout,
		showConsole: true,
		startTime:   time.Now(),
	}
}

// SetRunner は ESC やタイムアウトで停止するインタプリタを設定する
func (g *Game) SetRunner(r Runner) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.runner = r
}

// SetStartFunc はプログラムを開始する関数を設定する
// Ebitengine の初期化が終わった後、最初の Update() で一度だけ呼ばれる
func (g *Game) SetStartFunc(startFunc func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.startFunc = startFunc
}

// Update ゲームロジックの更新（Ebitengineが毎フレーム呼び出す）
func (g *Game) Update() error {
	g.mu.Lock()
	if !g.started && g.startFunc != nil {
		g.started = true
		g.startTime = time.Now()
		g.startFunc()
	}
	timedOut := g.timeout > 0 && time.Since(g.startTime) >= g.timeout
	g.mu.Unlock()

	// タイムアウトチェック
	if timedOut {
		g.stopRunner()
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		// 実行中なら停止、停止済みなら終了
		if g.isRunning() {
			g.Apply(ActionStop)
			return nil
		}
		return ebiten.Termination
	}

	for _, a := range pressedActions() {
		g.Apply(a)
	}
	g.processMouse()

	return nil
}

// pressedActions は今フレームで押されたキーに対応する操作を返す
func pressedActions() []Action {
	keys := []struct {
		key    ebiten.Key
		action Action
	}{
		{ebiten.KeyEqual, ActionZoomIn},
		{ebiten.KeyNumpadAdd, ActionZoomIn},
		{ebiten.KeyMinus, ActionZoomOut},
		{ebiten.KeyNumpadSubtract, ActionZoomOut},
		{ebiten.KeyDigit0, ActionResetView},
		{ebiten.KeyNumpad0, ActionResetView},
		{ebiten.KeyArrowLeft, ActionPanLeft},
		{ebiten.KeyArrowRight, ActionPanRight},
		{ebiten.KeyArrowUp, ActionPanUp},
		{ebiten.KeyArrowDown, ActionPanDown},
		{ebiten.KeyF1, ActionToggleConsole},
	}

	var actions []Action
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			actions = append(actions, k.action)
		}
	}
	return actions
}

// Apply は表示操作を実行する
func (g *Game) Apply(a Action) {
	step := panStep / g.model.View().Zoom
	switch a {
	case ActionZoomIn:
		g.model.ZoomIn()
	case ActionZoomOut:
		g.model.ZoomOut()
	case ActionResetView:
		g.model.ResetView()
	case ActionPanLeft:
		g.model.Pan(step, 0)
	case ActionPanRight:
		g.model.Pan(-step, 0)
	case ActionPanUp:
		g.model.Pan(0, -step)
	case ActionPanDown:
		g.model.Pan(0, step)
	case ActionToggleConsole:
		g.mu.Lock()
		g.showConsole = !g.showConsole
		g.mu.Unlock()
	case ActionStop:
		g.stopRunner()
	}
}

// processMouse はマウス位置の記録とドラッグによるパンを処理する
func (g *Game) processMouse() {
	x, y := ebiten.CursorPosition()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.cursorX, g.cursorY = x, y

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.dragX, g.dragY = x, y
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
		return
	}
	if g.dragging {
		g.dragBy(x-g.dragX, y-g.dragY)
		g.dragX, g.dragY = x, y
	}
}

// dragBy はピクセル単位のドラッグ量だけ表示をずらす
func (g *Game) dragBy(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	zoom := g.model.View().Zoom
	g.model.Pan(float64(dx)/zoom, -float64(dy)/zoom)
}

func (g *Game) isRunning() bool {
	g.mu.RLock()
	r := g.runner
	g.mu.RUnlock()
	return r != nil && r.IsRunning()
}

func (g *Game) stopRunner() {
	g.mu.RLock()
	r := g.runner
	g.mu.RUnlock()
	if r != nil && r.IsRunning() {
		logger.GetLogger().Info("Stopping program from window")
		r.Stop()
	}
}

// Draw 画面描画（Ebitengineが毎フレーム呼び出す）
func (g *Game) Draw(screen *ebiten.Image) {
	g.model.Redraw(graphics.NewEbitenSurface(screen), turtle.RedrawOptions{})

	g.mu.RLock()
	showConsole := g.showConsole
	cx, cy := g.cursorX, g.cursorY
	g.mu.RUnlock()

	drawText(screen, g.statusLine(cx, cy), 8, 4, textColor)

	if !showConsole || g.console == nil {
		return
	}
	lines := g.console.Tail(consoleVisibleLines)
	h := screen.Bounds().Dy()
	for i, line := range lines {
		y := float64(h) - float64(len(lines)-i)*lineHeight - 4
		c := color.Color(textColor)
		if len(line) > 0 && line[0] == '!' {
			c = errorTextColor
		}
		drawText(screen, line, 8, y, c)
	}
}

// statusLine はマウス位置の論理座標とズーム率を表示する文字列を返す
func (g *Game) statusLine(cx, cy int) string {
	x, y := g.model.Coordinates(float64(cx), float64(cy))
	state := "done"
	if g.isRunning() {
		state = "running (ESC to stop)"
	}
	return fmt.Sprintf("x: %d  y: %d  zoom: %d%%  %s", x, y, int(g.model.View().Zoom*100+0.5), state)
}

func drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, defaultFace, op)
}

// Layout 画面サイズを返す
// ウィンドウのサイズをそのままキャンバスサイズとして使う
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.model.SetCanvasSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run GUIモードでウィンドウを実行
func Run(game *Game, title string) error {
	w, h := game.model.CanvasSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
