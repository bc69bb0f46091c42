package graphics

import (
	"image/color"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/kame/pkg/turtle"
)

var (
	black = color.RGBA{0, 0, 0, 0xFF}
	red   = color.RGBA{0xFF, 0, 0, 0xFF}
	white = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

func TestRasterSurface_Size(t *testing.T) {
	s := NewRasterSurface(120, 80)
	w, h := s.Size()
	if w != 120 || h != 80 {
		t.Errorf("expected 120x80, got %dx%d", w, h)
	}
}

func TestRasterSurface_Clear(t *testing.T) {
	s := NewRasterSurface(10, 10)
	s.Clear(red)
	for _, p := range [][2]int{{0, 0}, {5, 5}, {9, 9}} {
		if got := s.Image().RGBAAt(p[0], p[1]); got != red {
			t.Errorf("pixel %v: expected %v, got %v", p, red, got)
		}
	}
}

func TestRasterSurface_DrawLine(t *testing.T) {
	s := NewRasterSurface(100, 40)
	s.Clear(white)
	s.DrawLine(10, 10.5, 90, 10.5, red, 3)

	if got := s.Image().RGBAAt(50, 10); got != red {
		t.Errorf("expected line pixel to be red, got %v", got)
	}
	if got := s.Image().RGBAAt(50, 30); got != white {
		t.Errorf("expected pixel away from the line to stay white, got %v", got)
	}
	if got := s.Image().RGBAAt(5, 10); got != white {
		t.Errorf("expected pixel before the line start to stay white, got %v", got)
	}
}

func TestRasterSurface_DrawLineZeroLength(t *testing.T) {
	s := NewRasterSurface(20, 20)
	s.Clear(white)
	s.DrawLine(10, 10, 10, 10, red, 4)

	if got := s.Image().RGBAAt(10, 10); got == white {
		t.Error("expected a zero length line to leave a dot")
	}
}

func TestRasterSurface_DrawArc(t *testing.T) {
	s := NewRasterSurface(100, 100)
	s.Clear(black)
	s.DrawArc(50, 50, 20, 0, 2*math.Pi, true, red, 2)

	if got := s.Image().RGBAAt(70, 50); got.R == 0 {
		t.Errorf("expected circle outline at (70,50), got %v", got)
	}
	if got := s.Image().RGBAAt(50, 50); got != black {
		t.Errorf("expected circle center to stay black, got %v", got)
	}
}

func TestRasterSurface_FillPath(t *testing.T) {
	s := NewRasterSurface(60, 60)
	s.Clear(white)
	s.FillPath(turtle.Point{X: 10, Y: 10}, []turtle.PathSegment{
		{X: 50, Y: 10},
		{X: 50, Y: 50},
		{X: 10, Y: 50},
	}, red)

	if got := s.Image().RGBAAt(30, 30); got != red {
		t.Errorf("expected inside of the square to be red, got %v", got)
	}
	if got := s.Image().RGBAAt(55, 55); got != white {
		t.Errorf("expected outside of the square to stay white, got %v", got)
	}
}

func TestRasterSurface_FillPathWithArc(t *testing.T) {
	s := NewRasterSurface(100, 100)
	s.Clear(white)
	// 半径20の円（右端から時計回りに一周）
	s.FillPath(turtle.Point{X: 70, Y: 50}, []turtle.PathSegment{
		{Arc: true, CX: 50, CY: 50, Radius: 20, StartAngle: 0, EndAngle: 2 * math.Pi, Clockwise: true},
	}, red)

	if got := s.Image().RGBAAt(50, 50); got.R != 0xFF || got.G > 4 {
		t.Errorf("expected circle center to be filled, got %v", got)
	}
	if got := s.Image().RGBAAt(5, 5); got != white {
		t.Errorf("expected corner to stay white, got %v", got)
	}
}

// Property: 塗りつぶした矩形の内側はすべて塗り色になる
func TestProperty_FillRectangleInterior(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("rectangle interior is fully painted", prop.ForAll(
		func(x, y, w, h int) bool {
			s := NewRasterSurface(100, 100)
			s.Clear(white)
			x0, y0 := float64(x), float64(y)
			x1, y1 := float64(x+w), float64(y+h)
			s.FillPath(turtle.Point{X: x0, Y: y0}, []turtle.PathSegment{
				{X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
			}, red)
			for py := y; py < y+h; py++ {
				for px := x; px < x+w; px++ {
					if s.Image().RGBAAt(px, py) != red {
						return false
					}
				}
			}
			return s.Image().RGBAAt(x+w, y+h) == white
		},
		gen.IntRange(0, 40),
		gen.IntRange(0, 40),
		gen.IntRange(1, 40),
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
