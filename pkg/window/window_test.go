package window

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zurustar/kame/pkg/turtle"
)

type fakeRunner struct {
	running atomic.Bool
	stops   atomic.Int32
}

func (r *fakeRunner) IsRunning() bool { return r.running.Load() }

func (r *fakeRunner) Stop() {
	r.stops.Add(1)
	r.running.Store(false)
}

func newTestGame() *Game {
	return NewGame(turtle.NewModel(), NewConsole(10), 0)
}

func TestGame_ZoomActions(t *testing.T) {
	g := newTestGame()

	g.Apply(ActionZoomIn)
	assert.InDelta(t, turtle.ZoomStep, g.model.View().Zoom, 1e-9)

	g.Apply(ActionZoomOut)
	g.Apply(ActionZoomOut)
	assert.InDelta(t, 1/turtle.ZoomStep, g.model.View().Zoom, 1e-9)

	g.Apply(ActionResetView)
	assert.Equal(t, turtle.DefaultView(), g.model.View())
}

func TestGame_PanActions(t *testing.T) {
	tests := []struct {
		action     Action
		panX, panY float64
	}{
		{ActionPanLeft, panStep, 0},
		{ActionPanRight, -panStep, 0},
		{ActionPanUp, 0, -panStep},
		{ActionPanDown, 0, panStep},
	}

	for _, tt := range tests {
		g := newTestGame()
		g.Apply(tt.action)
		v := g.model.View()
		assert.InDelta(t, tt.panX, v.PanX, 1e-9, "action %d", tt.action)
		assert.InDelta(t, tt.panY, v.PanY, 1e-9, "action %d", tt.action)
	}
}

func TestGame_PanScalesWithZoom(t *testing.T) {
	g := newTestGame()
	for range 4 {
		g.Apply(ActionZoomIn)
	}
	zoom := g.model.View().Zoom
	g.Apply(ActionPanLeft)
	assert.InDelta(t, panStep/zoom, g.model.View().PanX, 1e-9)
}

func TestGame_DragBy(t *testing.T) {
	g := newTestGame()
	g.dragBy(10, 20)
	v := g.model.View()
	assert.InDelta(t, 10, v.PanX, 1e-9)
	assert.InDelta(t, -20, v.PanY, 1e-9)

	// ドラッグした分だけ原点が画面上で移動する
	w, h := g.model.CanvasSize()
	cx, cy := v.ToCanvas(0, 0, w, h)
	assert.InDelta(t, float64(w)/2+10, cx, 1e-9)
	assert.InDelta(t, float64(h)/2+20, cy, 1e-9)
}

func TestGame_ToggleConsole(t *testing.T) {
	g := newTestGame()
	assert.True(t, g.showConsole)
	g.Apply(ActionToggleConsole)
	assert.False(t, g.showConsole)
}

func TestGame_Stop(t *testing.T) {
	g := newTestGame()
	r := &fakeRunner{}
	r.running.Store(true)
	g.SetRunner(r)

	assert.True(t, g.isRunning())
	g.Apply(ActionStop)
	assert.Equal(t, int32(1), r.stops.Load())
	assert.False(t, g.isRunning())

	// 停止済みなら Stop は呼ばれない
	g.Apply(ActionStop)
	assert.Equal(t, int32(1), r.stops.Load())
}

func TestGame_Layout(t *testing.T) {
	g := newTestGame()
	w, h := g.Layout(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	cw, ch := g.model.CanvasSize()
	assert.Equal(t, 640, cw)
	assert.Equal(t, 480, ch)
}

func TestGame_StatusLine(t *testing.T) {
	g := newTestGame()
	g.Layout(800, 600)

	assert.Equal(t, "x: 0  y: 0  zoom: 100%  done", g.statusLine(400, 300))
	assert.Equal(t, "x: 100  y: 50  zoom: 100%  done", g.statusLine(500, 250))

	r := &fakeRunner{}
	r.running.Store(true)
	g.SetRunner(r)
	g.Apply(ActionZoomIn)
	assert.Equal(t, "x: 0  y: 0  zoom: 120%  running (ESC to stop)", g.statusLine(400, 300))
}
