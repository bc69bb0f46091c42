package turtle

import (
	"image/color"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

const epsilon = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// headingDiff は向きの差を [-180, 180) で返す
func headingDiff(a, b float64) float64 {
	d := math.Mod(a-b+540, 360) - 180
	return d
}

func TestForward_Headings(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		wantX   float64
		wantY   float64
	}{
		{"up", 0, 0, 100},
		{"right", 90, 100, 0},
		{"down", 180, 0, -100},
		{"left", 270, -100, 0},
		{"diagonal", 45, 100 / math.Sqrt2, 100 / math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			m.SetEdgeMode(EdgeWindow)
			m.SetHeading(tt.heading)
			m.Forward(100)
			cur := m.Current()
			if !near(cur.X, tt.wantX) || !near(cur.Y, tt.wantY) {
				t.Errorf("position = (%v, %v), want (%v, %v)", cur.X, cur.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestHeadingNormalization(t *testing.T) {
	tests := []struct {
		name  string
		apply func(m *Model)
		want  float64
	}{
		{"right 90", func(m *Model) { m.Right(90) }, 90},
		{"left 90", func(m *Model) { m.Left(90) }, 270},
		{"right 450", func(m *Model) { m.Right(450) }, 90},
		{"left 720", func(m *Model) { m.Left(720) }, 0},
		{"seth -45", func(m *Model) { m.SetHeading(-45) }, 315},
		{"seth 360", func(m *Model) { m.SetHeading(360) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel()
			tt.apply(m)
			got := m.Current().Heading
			if !near(got, tt.want) {
				t.Errorf("heading = %v, want %v", got, tt.want)
			}
			if got < 0 || got >= 360 {
				t.Errorf("heading %v out of [0, 360)", got)
			}
		})
	}
}

func TestPenUp_NoPrimitives(t *testing.T) {
	m := NewModel()
	m.PenUp()
	m.Forward(50)
	m.Circle(20)
	m.Arc(90, 20)
	if n := len(m.Primitives()); n != 0 {
		t.Errorf("expected no primitives with pen up, got %d", n)
	}
	m.PenDown()
	m.Forward(10)
	if n := len(m.Primitives()); n != 1 {
		t.Errorf("expected 1 primitive, got %d", n)
	}
}

func TestFence_Clamps(t *testing.T) {
	m := NewModel()
	m.SetEdgeMode(EdgeFence)
	m.Forward(1000)
	cur := m.Current()
	if !near(cur.Y, DefaultHeight/2) {
		t.Errorf("Y = %v, want %v", cur.Y, DefaultHeight/2)
	}
	m.SetHeading(270)
	m.Forward(1000)
	cur = m.Current()
	if !near(cur.X, -DefaultWidth/2) {
		t.Errorf("X = %v, want %v", cur.X, -DefaultWidth/2)
	}
}

func TestWrap_ReappearsOnOppositeSide(t *testing.T) {
	m := NewModel()
	m.Forward(350)
	cur := m.Current()
	if !near(cur.Y, -250) {
		t.Errorf("Y = %v, want -250", cur.Y)
	}
	// 10 単位ずつ分割される
	if n := len(m.Primitives()); n != 35 {
		t.Errorf("expected 35 segments, got %d", n)
	}
	for _, p := range m.Primitives() {
		if math.Hypot(p.X2-p.X1, p.Y2-p.Y1) > wrapStep+epsilon {
			t.Errorf("segment longer than %v: %+v", wrapStep, p)
		}
	}
}

func TestWrapCoord(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"内側", 120, 120},
		{"境界", 300, 300},
		{"1周", 350, -250},
		{"複数周", 1900, 100},
		{"負の複数周", -1900, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapCoord(tt.v, 300); !near(got, tt.want) {
				t.Errorf("wrapCoord(%v, 300) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestWrap_LargeArcStaysVisible(t *testing.T) {
	m := NewModel()
	m.Arc(90, 1900)
	cur := m.Current()
	if !near(cur.X, 300) || !near(cur.Y, 100) {
		t.Errorf("after ARC 90 1900: (%v, %v), want (300, 100)", cur.X, cur.Y)
	}
}

func TestWrap_LongMoveIsBounded(t *testing.T) {
	m := NewModel()
	m.Forward(1e7)
	cur := m.Current()
	if !near(cur.X, 0) || !near(cur.Y, -200) {
		t.Errorf("after FD 1e7: (%v, %v), want (0, -200)", cur.X, cur.Y)
	}
	if n := len(m.Primitives()); n != maxWrapSteps {
		t.Errorf("expected %d segments, got %d", maxWrapSteps, n)
	}

	m = NewModel()
	m.PenUp()
	m.Forward(1e7)
	cur = m.Current()
	if !near(cur.Y, -200) || len(m.Primitives()) != 0 {
		t.Errorf("pen up FD 1e7: Y = %v, primitives = %d", cur.Y, len(m.Primitives()))
	}
}

func TestMove_IgnoresNonFinite(t *testing.T) {
	m := NewModel()
	m.Forward(math.Inf(1))
	m.SetPosition(math.NaN(), 0)
	cur := m.Current()
	if cur.X != 0 || cur.Y != 0 {
		t.Errorf("turtle moved to (%v, %v)", cur.X, cur.Y)
	}
	if n := len(m.Primitives()); n != 0 {
		t.Errorf("expected no primitives, got %d", n)
	}
}

func TestWindow_Unbounded(t *testing.T) {
	m := NewModel()
	m.SetEdgeMode(EdgeWindow)
	m.Forward(5000)
	if y := m.Current().Y; !near(y, 5000) {
		t.Errorf("Y = %v, want 5000", y)
	}
	if n := len(m.Primitives()); n != 1 {
		t.Errorf("expected a single line, got %d", n)
	}
}

func TestHome_DrawsAndResetsHeading(t *testing.T) {
	m := NewModel()
	m.SetEdgeMode(EdgeWindow)
	m.Right(90)
	m.Forward(40)
	m.Home()
	cur := m.Current()
	if cur.X != 0 || cur.Y != 0 || cur.Heading != 0 {
		t.Errorf("after Home: %+v", cur)
	}
	if n := len(m.Primitives()); n != 2 {
		t.Errorf("expected 2 lines, got %d", n)
	}
}

func TestCircle_DoesNotMove(t *testing.T) {
	m := NewModel()
	m.SetEdgeMode(EdgeWindow)
	m.SetPosition(10, 20)
	m.SetHeading(30)
	m.Circle(50)
	cur := m.Current()
	if cur.X != 10 || cur.Y != 20 || cur.Heading != 30 {
		t.Errorf("turtle moved: %+v", cur)
	}
	prims := m.Primitives()
	last := prims[len(prims)-1]
	if last.Kind != PrimArc || last.Radius != 50 || last.Sweep != 360 {
		t.Errorf("unexpected circle primitive: %+v", last)
	}
}

func TestArc_QuarterTurn(t *testing.T) {
	m := NewModel()
	m.SetEdgeMode(EdgeWindow)
	m.Arc(90, 100)
	cur := m.Current()
	// 右側に中心 (100, 0) があり、時計回りに 90 度進む
	if !near(cur.X, 100) || !near(cur.Y, 100) || !near(cur.Heading, 90) {
		t.Errorf("after ARC 90 100: %+v", cur)
	}

	m = NewModel()
	m.SetEdgeMode(EdgeWindow)
	m.Arc(90, -100)
	cur = m.Current()
	if !near(cur.X, -100) || !near(cur.Y, 100) || !near(cur.Heading, 270) {
		t.Errorf("after ARC 90 -100: %+v", cur)
	}
}

func TestFill_ColorCapturedAtBegin(t *testing.T) {
	m := NewModel()
	red := color.RGBA{0xFF, 0, 0, 0xFF}
	blue := color.RGBA{0, 0, 0xFF, 0xFF}
	m.SetPenColor(red)
	m.BeginFill()
	m.SetPenColor(blue)
	for i := 0; i < 4; i++ {
		m.Forward(50)
		m.Right(90)
	}
	m.EndFill()

	prims := m.Primitives()
	last := prims[len(prims)-1]
	if last.Kind != PrimFill {
		t.Fatalf("last primitive kind = %v, want fill", last.Kind)
	}
	if last.FillColor != red {
		t.Errorf("fill color = %v, want %v", last.FillColor, red)
	}
	for _, p := range last.Path {
		if p.Pen.Color != blue {
			t.Errorf("outline color = %v, want %v", p.Pen.Color, blue)
		}
	}
	if m.Filling() {
		t.Error("fill should be finished")
	}
}

func TestFill_EdgeCases(t *testing.T) {
	m := NewModel()
	m.EndFill() // 記録中でなければ何もしない
	m.BeginFill()
	m.EndFill()
	if n := len(m.Primitives()); n != 0 {
		t.Errorf("empty fill should add nothing, got %d primitives", n)
	}
}

func TestClearScreenAndClean(t *testing.T) {
	m := NewModel()
	m.SetEdgeMode(EdgeWindow)
	m.Forward(30)
	m.Tell(2)
	m.Forward(30)

	m.Clean()
	if len(m.Primitives()) != 0 {
		t.Error("Clean should clear the log")
	}
	if y := m.Current().Y; y != 30 {
		t.Errorf("Clean moved turtle: Y = %v", y)
	}

	m.Forward(10)
	m.ClearScreen()
	if len(m.Primitives()) != 0 {
		t.Error("ClearScreen should clear the log")
	}
	for _, id := range m.TurtleIDs() {
		m.Tell(id)
		if cur := m.Current(); cur.X != 0 || cur.Y != 0 || cur.Heading != 0 {
			t.Errorf("turtle %d not reset: %+v", id, cur)
		}
	}
	if m.EdgeMode() != EdgeWindow {
		t.Error("ClearScreen should keep edge mode")
	}
}

func TestTell_CreatesTurtles(t *testing.T) {
	m := NewModel()
	m.Tell(3)
	m.Tell(1)
	ids := m.TurtleIDs()
	want := []ID{0, 1, 3}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids = %v, want %v", ids, want)
		}
	}
	if m.CurrentID() != 1 {
		t.Errorf("current = %d, want 1", m.CurrentID())
	}
}

func TestTowardsAndDistance(t *testing.T) {
	m := NewModel()
	tests := []struct {
		x, y     float64
		heading  float64
		distance float64
	}{
		{0, 10, 0, 10},
		{10, 0, 90, 10},
		{0, -10, 180, 10},
		{-10, 0, 270, 10},
		{3, 4, math.Atan2(3, 4) * 180 / math.Pi, 5},
	}
	for _, tt := range tests {
		if got := m.Towards(tt.x, tt.y); !near(got, tt.heading) {
			t.Errorf("Towards(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.heading)
		}
		if got := m.Distance(tt.x, tt.y); !near(got, tt.distance) {
			t.Errorf("Distance(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.distance)
		}
	}
}

func TestSetPenSize_Minimum(t *testing.T) {
	m := NewModel()
	m.SetPenSize(0)
	if s := m.Current().PenSize; s != 1 {
		t.Errorf("pen size = %v, want 1", s)
	}
	m.SetPenSize(5)
	if s := m.Current().PenSize; s != 5 {
		t.Errorf("pen size = %v, want 5", s)
	}
}

// TestProperty_PolygonCloses は正多角形を描くと元の位置と向きに戻ることを検証する
func TestProperty_PolygonCloses(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("REPEAT n [FD s RT 360/n] returns home", prop.ForAll(
		func(n int, side float64) bool {
			m := NewModel()
			m.SetEdgeMode(EdgeWindow)
			for i := 0; i < n; i++ {
				m.Forward(side)
				m.Right(360 / float64(n))
			}
			cur := m.Current()
			return math.Abs(cur.X) < 1e-6 && math.Abs(cur.Y) < 1e-6 &&
				math.Abs(headingDiff(cur.Heading, 0)) < 1e-6
		},
		gen.IntRange(3, 36),
		gen.Float64Range(1, 500),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestProperty_ArcInverse は ARC a r の後に ARC -a r で元に戻ることを検証する
func TestProperty_ArcInverse(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("ARC a r then ARC -a r is identity", prop.ForAll(
		func(heading, angle, radius float64) bool {
			if radius == 0 {
				return true
			}
			m := NewModel()
			m.SetEdgeMode(EdgeWindow)
			m.SetPosition(12, -34)
			m.SetHeading(heading)
			m.Arc(angle, radius)
			m.Arc(-angle, radius)
			cur := m.Current()
			return math.Abs(cur.X-12) < 1e-6 && math.Abs(cur.Y+34) < 1e-6 &&
				math.Abs(headingDiff(cur.Heading, normalizeHeading(heading))) < 1e-6
		},
		gen.Float64Range(0, 360),
		gen.Float64Range(-720, 720),
		gen.Float64Range(-300, 300),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
