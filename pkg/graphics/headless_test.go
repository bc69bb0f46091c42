package graphics

import (
	"image/color"
	"log/slog"
	"os"
	"testing"

	"github.com/zurustar/kame/pkg/turtle"
)

func TestNewHeadlessSurface(t *testing.T) {
	hs := NewHeadlessSurface()
	if hs == nil {
		t.Fatal("NewHeadlessSurface returned nil")
	}

	w, h := hs.Size()
	if w != turtle.DefaultWidth || h != turtle.DefaultHeight {
		t.Errorf("expected default size %dx%d, got %dx%d", turtle.DefaultWidth, turtle.DefaultHeight, w, h)
	}
	if !hs.logOperations {
		t.Error("expected logOperations to be true by default")
	}
	if hs.recordHistory {
		t.Error("expected recordHistory to be false by default")
	}
}

func TestHeadlessSurface_Options(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hs := NewHeadlessSurface(
		WithHeadlessLogger(logger),
		WithHeadlessSize(320, 240),
		WithLogOperations(false),
	)

	w, h := hs.Size()
	if w != 320 || h != 240 {
		t.Errorf("expected 320x240, got %dx%d", w, h)
	}
	if hs.logOperations {
		t.Error("expected logOperations to be false")
	}
}

func TestHeadlessSurface_History(t *testing.T) {
	hs := NewHeadlessSurface(WithLogOperations(false), WithRecordHistory(true))

	hs.Clear(color.White)
	hs.DrawLine(0, 0, 10, 10, color.Black, 2)
	hs.DrawArc(5, 5, 3, 0, 1, true, color.Black, 1)
	hs.FillPath(turtle.Point{}, []turtle.PathSegment{{X: 1}, {X: 1, Y: 1}}, color.Black)

	history := hs.GetOperationHistory()
	if len(history) != 4 {
		t.Fatalf("expected 4 operations, got %d", len(history))
	}

	ops := []string{"Clear", "DrawLine", "DrawArc", "FillPath"}
	for i, op := range ops {
		if history[i].Operation != op {
			t.Errorf("operation %d: expected %s, got %s", i, op, history[i].Operation)
		}
	}
	if history[1].Args["x2"] != 10.0 {
		t.Errorf("expected x2 = 10, got %v", history[1].Args["x2"])
	}
	if history[3].Args["segments"] != 2 {
		t.Errorf("expected 2 segments, got %v", history[3].Args["segments"])
	}

	hs.ClearOperationHistory()
	if hs.GetOperationCount() != 0 {
		t.Errorf("expected empty history after clear, got %d", hs.GetOperationCount())
	}
}

func TestHeadlessSurface_HistoryDisabled(t *testing.T) {
	hs := NewHeadlessSurface(WithLogOperations(false))
	hs.DrawLine(0, 0, 1, 1, color.Black, 1)
	if hs.GetOperationCount() != 0 {
		t.Errorf("expected no history when recording is disabled, got %d", hs.GetOperationCount())
	}
}

func TestHeadlessSurface_Forward(t *testing.T) {
	raster := NewRasterSurface(40, 30)
	hs := NewHeadlessSurface(WithForward(raster), WithLogOperations(false))

	w, h := hs.Size()
	if w != 40 || h != 30 {
		t.Errorf("expected forwarded size 40x30, got %dx%d", w, h)
	}

	hs.Clear(red)
	if got := raster.Image().RGBAAt(20, 15); got != red {
		t.Errorf("expected Clear to reach the raster surface, got %v", got)
	}
}

func TestHeadlessSurface_Redraw(t *testing.T) {
	m := turtle.NewModel()
	for range 4 {
		m.Forward(50)
		m.Right(90)
	}

	hs := NewHeadlessSurface(WithLogOperations(false), WithRecordHistory(true))
	m.Redraw(hs, turtle.RedrawOptions{HideTurtles: true})

	// Clear + 4本の線
	if got := hs.GetOperationCount(); got != 5 {
		t.Errorf("expected 5 operations, got %d", got)
	}
}
